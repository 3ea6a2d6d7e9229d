/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factory

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	storeerrors "github.com/suparena/modelrepo/errors"
	"github.com/suparena/modelrepo/repository"
	"github.com/suparena/modelrepo/repository/ddb"
	"github.com/suparena/modelrepo/repository/memory"
	"github.com/suparena/modelrepo/repository/mongodb"
	"github.com/suparena/modelrepo/repository/sqlite"
)

// PathKey is the configuration key naming the backend class path. It is a
// resolution-only key: it is stripped from the settings before they reach a
// backend constructor.
const PathKey = "class_path"

// Backend identifies one of the built-in repository implementations.
type Backend int

const (
	Memory Backend = iota + 1
	SQLite
	MongoDB
	DynamoDB
)

var (
	pathsMu sync.RWMutex
	paths   = map[string]Backend{
		"modelrepo/repository/memory.Repository":  Memory,
		"memory.Repository":                       Memory,
		"modelrepo/repository/sqlite.Repository":  SQLite,
		"sqlite.Repository":                       SQLite,
		"modelrepo/repository/mongodb.Repository": MongoDB,
		"mongodb.Repository":                      MongoDB,
		"modelrepo/repository/ddb.Repository":     DynamoDB,
		"ddb.Repository":                          DynamoDB,
	}
)

// RegisterPath adds an alias for a backend to the resolution table. It panics
// when the path is already registered, to prevent accidental overrides.
func RegisterPath(path string, b Backend) {
	pathsMu.Lock()
	defer pathsMu.Unlock()
	if _, exists := paths[path]; exists {
		panic(fmt.Sprintf("factory: class path %q already registered", path))
	}
	paths[path] = b
}

// Paths returns the registered class paths, for diagnostics.
func Paths() []string {
	pathsMu.RLock()
	defer pathsMu.RUnlock()
	out := make([]string, 0, len(paths))
	for p := range paths {
		out = append(out, p)
	}
	return out
}

// Provider is a resolved backend selection: a class path bound to its backend
// and settings. It acts as the constructor closure of the design — the model
// type is bound later, by NewRepository, typically inside the registry.
type Provider struct {
	backend  Backend
	path     string
	settings map[string]any
}

// New resolves a class path against the registered backends and binds the
// given settings. Resolution failures are configuration errors and propagate.
func New(classPath string, settings map[string]any) (*Provider, error) {
	if !strings.Contains(classPath, ".") {
		err := fmt.Errorf("malformed class path %q", classPath)
		slog.Error("failed to resolve repository class", "class_path", classPath, "err", err)
		return nil, err
	}

	pathsMu.RLock()
	b, ok := paths[classPath]
	pathsMu.RUnlock()
	if !ok {
		err := storeerrors.NewUnknownBackendError(classPath)
		slog.Error("failed to resolve repository class", "class_path", classPath, "err", err)
		return nil, err
	}

	slog.Info("using model repository class", "class_path", classPath)

	clean := make(map[string]any, len(settings))
	for k, v := range settings {
		if k == PathKey {
			continue
		}
		clean[k] = v
	}
	return &Provider{backend: b, path: classPath, settings: clean}, nil
}

// FromConfig resolves a provider from a configuration mapping that exposes
// the class_path key plus backend settings.
func FromConfig(cfg map[string]any) (*Provider, error) {
	raw, ok := cfg[PathKey]
	if !ok {
		err := fmt.Errorf("configuration is missing %q", PathKey)
		slog.Error("failed to resolve repository class", "err", err)
		return nil, err
	}
	classPath, ok := raw.(string)
	if !ok {
		err := fmt.Errorf("configuration key %q is not a string", PathKey)
		slog.Error("failed to resolve repository class", "err", err)
		return nil, err
	}
	return New(classPath, cfg)
}

// Path returns the resolved class path.
func (p *Provider) Path() string {
	return p.path
}

// Backend returns the resolved backend.
func (p *Provider) Backend() Backend {
	return p.backend
}

// Settings returns a copy of the backend settings. The class_path resolution
// key is never present.
func (p *Provider) Settings() map[string]any {
	out := make(map[string]any, len(p.settings))
	for k, v := range p.settings {
		out[k] = v
	}
	return out
}

func (p *Provider) stringSetting(key string) (string, error) {
	raw, ok := p.settings[key]
	if !ok {
		return "", fmt.Errorf("backend %q requires setting %q", p.path, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("backend %q setting %q is not a string", p.path, key)
	}
	return s, nil
}

// NewRepository constructs a repository for model type T from a resolved
// provider. This is where the provider's late model-type binding happens.
func NewRepository[T any](p *Provider) (repository.Repository[T], error) {
	switch p.backend {
	case Memory:
		return memory.New[T](), nil

	case SQLite:
		dsn, err := p.stringSetting("connection_string")
		if err != nil {
			return nil, err
		}
		return sqlite.New[T](dsn)

	case MongoDB:
		uri, err := p.stringSetting("connection_string")
		if err != nil {
			return nil, err
		}
		dbName, err := p.stringSetting("database")
		if err != nil {
			return nil, err
		}
		return mongodb.New[T](uri, dbName)

	case DynamoDB:
		accessKey, err := p.stringSetting("aws_access_key")
		if err != nil {
			return nil, err
		}
		secretKey, err := p.stringSetting("aws_secret_key")
		if err != nil {
			return nil, err
		}
		region, err := p.stringSetting("aws_region")
		if err != nil {
			return nil, err
		}
		table, err := p.stringSetting("table")
		if err != nil {
			return nil, err
		}
		return ddb.New[T](accessKey, secretKey, region, table)
	}
	return nil, storeerrors.NewUnknownBackendError(p.path)
}
