/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	storeerrors "github.com/suparena/modelrepo/errors"
	"github.com/suparena/modelrepo/repository"
)

// Repository implements repository.Repository[T] over a private in-process
// map. Every instance owns its own storage; two repositories for the same
// model type never observe each other's writes.
//
// Writes from concurrent callers sharing one instance are guarded per
// operation, but callers needing read-modify-write sequences must serialize
// externally.
type Repository[T any] struct {
	mu     sync.RWMutex
	models map[string]*T
}

// New constructs an empty in-memory repository for model type T.
func New[T any]() *Repository[T] {
	return &Repository[T]{
		models: make(map[string]*T),
	}
}

var _ repository.Repository[struct{}] = (*Repository[struct{}])(nil)

// Create builds an instance of T from the attribute map and stores it. When
// the data carries no identifier a random UUID is generated.
func (r *Repository[T]) Create(ctx context.Context, data map[string]any) (*T, error) {
	model := new(T)
	if err := repository.Decode(data, model); err != nil {
		slog.Error("memory create failed", "model", repository.ModelName[T](), "err", err)
		return nil, err
	}

	id, ok := repository.ModelID(model)
	if !ok {
		id = uuid.NewString()
		if err := repository.SetModelID(model, id); err != nil {
			slog.Error("memory create failed to assign id", "model", repository.ModelName[T](), "err", err)
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[id] = model
	return model, nil
}

// GetByID returns the stored instance for id, or (nil, nil) when absent.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.models[id], nil
}

// FindOne returns some instance matching the predicate; iteration order over
// the map is arbitrary.
func (r *Repository[T]) FindOne(ctx context.Context, query repository.Predicate) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, model := range r.models {
		if repository.Matches(model, query) {
			return model, nil
		}
	}
	return nil, nil
}

// FindAll returns every instance matching the predicate, applying Skip before
// Limit when opts is given.
func (r *Repository[T]) FindAll(ctx context.Context, query repository.Predicate, opts *repository.FindOptions) ([]*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*T, 0, len(r.models))
	for _, model := range r.models {
		if repository.Matches(model, query) {
			results = append(results, model)
		}
	}

	if opts != nil && opts.Skip != nil {
		if skip := *opts.Skip; skip >= int64(len(results)) {
			results = nil
		} else if skip > 0 {
			results = results[skip:]
		}
	}
	// A negative limit reads as unbounded, matching SQLite's LIMIT -1.
	if opts != nil && opts.Limit != nil && *opts.Limit >= 0 && *opts.Limit < int64(len(results)) {
		results = results[:*opts.Limit]
	}
	return results, nil
}

// Update applies the given attributes to the stored instance. Unlike the
// relational and document backends, a missing id is a NotFoundError failure,
// not an absent result.
func (r *Repository[T]) Update(ctx context.Context, id string, updates map[string]any) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	model, ok := r.models[id]
	if !ok {
		err := storeerrors.NewNotFoundError(repository.ModelName[T](), id)
		slog.Error("memory update failed", "model", repository.ModelName[T](), "id", id, "err", err)
		return nil, err
	}
	if err := repository.Decode(updates, model); err != nil {
		slog.Error("memory update failed", "model", repository.ModelName[T](), "id", id, "err", err)
		return nil, err
	}
	return model, nil
}

// Delete removes the stored instance. A missing id is a NotFoundError failure;
// see Update.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.models[id]; !ok {
		err := storeerrors.NewNotFoundError(repository.ModelName[T](), id)
		slog.Error("memory delete failed", "model", repository.ModelName[T](), "id", id, "err", err)
		return false, err
	}
	delete(r.models, id)
	return true, nil
}

// Count returns the number of stored instances matching the predicate.
func (r *Repository[T]) Count(ctx context.Context, query repository.Predicate) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, model := range r.models {
		if repository.Matches(model, query) {
			n++
		}
	}
	return n, nil
}

// Clear empties the repository. Test support, not part of the common contract.
func (r *Repository[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = make(map[string]*T)
}
