/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"log/slog"
	"reflect"
	"sync"

	storeerrors "github.com/suparena/modelrepo/errors"
	"github.com/suparena/modelrepo/factory"
	"github.com/suparena/modelrepo/repository"
)

// Registry maps model types to repository instances. It is constructed with a
// resolved factory provider and is the single source of truth for "get me the
// repository for type T". Lookup is strict: asking for an unregistered type is
// a failure, not an absent result, because it signals a composition bug.
type Registry struct {
	mu       sync.RWMutex
	provider *factory.Provider
	repos    map[reflect.Type]any
}

// New constructs a Registry bound to the given provider.
func New(p *factory.Provider) *Registry {
	return &Registry{
		provider: p,
		repos:    make(map[reflect.Type]any),
	}
}

// Len reports the number of registered model types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.repos)
}

// Models returns the names of all registered model types.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.repos))
	for t := range r.repos {
		out = append(out, t.Name())
	}
	return out
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterModel builds a repository for T with the registry's provider and
// stores it under T. Construction failures propagate.
func RegisterModel[T any](r *Registry) error {
	repo, err := factory.NewRepository[T](r.provider)
	if err != nil {
		slog.Error("failed to build repository for model", "model", repository.ModelName[T](), "err", err)
		return err
	}
	RegisterRepository[T](r, repo)
	return nil
}

// RegisterRepository stores a repository instance for T directly, bypassing
// the factory. Supports manual wiring and test doubles.
func RegisterRepository[T any](r *Registry, repo repository.Repository[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repos[typeOf[T]()] = repo
	slog.Info("registered repository for model", "model", repository.ModelName[T]())
}

// GetRepository returns the repository registered for T, or a NotRegisteredError
// when T has no entry.
func GetRepository[T any](r *Registry) (repository.Repository[T], error) {
	r.mu.RLock()
	raw, ok := r.repos[typeOf[T]()]
	r.mu.RUnlock()
	if !ok {
		err := storeerrors.NewNotRegisteredError(repository.ModelName[T]())
		slog.Error("no repository found for model", "model", repository.ModelName[T](), "err", err)
		return nil, err
	}
	return raw.(repository.Repository[T]), nil
}

// RegisterDeferred drains the builder's declarations into the registry, in
// declaration order. The first failing registration stops the flush and
// propagates; the queue is cleared regardless, so a repeated flush never
// re-processes entries. Flushing an empty builder is a no-op.
func (r *Registry) RegisterDeferred(b *Builder) error {
	for _, bind := range b.drain() {
		if err := bind(r); err != nil {
			slog.Error("deferred model registration failed", "err", err)
			return err
		}
	}
	return nil
}
