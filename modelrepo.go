/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package modelrepo

import (
	"github.com/suparena/modelrepo/config"
	"github.com/suparena/modelrepo/factory"
	"github.com/suparena/modelrepo/registry"
)

// Open wires a loaded configuration into a ready registry: the configured
// class path is resolved to a backend provider, and every model registered
// against the returned registry uses that backend.
func Open(cfg *config.Config) (*registry.Registry, error) {
	p, err := factory.FromConfig(cfg.ModelRepository.Map())
	if err != nil {
		return nil, err
	}
	return registry.New(p), nil
}
