package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/suparena/modelrepo"
	"github.com/suparena/modelrepo/factory"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := modelrepo.GetVersionInfo()
		fmt.Printf("modelrepo backends version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	paths := factory.Paths()
	sort.Strings(paths)

	fmt.Println("Registered repository class paths:")
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}
}
