/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package modelrepo

// Version metadata, overridable at build time with
// -ldflags "-X github.com/suparena/modelrepo.Version=..."
var (
	// Version is the modelrepo release version
	Version = "0.1.0"

	// GitCommit identifies the commit the binary was built from
	GitCommit = "unknown"

	// BuildDate is when the binary was built
	BuildDate = "unknown"

	// GoVersion is the Go toolchain that built the binary
	GoVersion = "unknown"
)

// VersionInfo bundles the build metadata for display and for health/debug
// endpoints that want to report it as JSON.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns the build metadata of this modelrepo binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
	}
}
