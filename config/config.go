/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration surface consumed by the composition root.
type Config struct {
	ModelRepository RepositoryConfig `yaml:"model_repository"`
}

// RepositoryConfig selects a repository backend and carries its settings.
// Args keys are forwarded verbatim to the backend constructor.
type RepositoryConfig struct {
	ClassPath string         `yaml:"class_path"`
	Args      map[string]any `yaml:"args"`
}

// Map flattens the section into the mapping the factory consumes: the
// class_path key plus every arg.
func (c RepositoryConfig) Map() map[string]any {
	out := make(map[string]any, len(c.Args)+1)
	for k, v := range c.Args {
		out[k] = v
	}
	out["class_path"] = c.ClassPath
	return out
}

// Load reads a YAML configuration file. A .env file in the working directory
// is loaded first when present, and ${VAR} references in the YAML are expanded
// from the environment, so connection strings can stay out of the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, proceeding with environment variables")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}
