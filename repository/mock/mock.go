/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a configurable in-memory implementation of the
// Repository interface for testing.
package mock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/suparena/modelrepo/repository"
)

// Repository is a mock implementation of repository.Repository[T] for testing.
// It stores models in a map and can be configured to fail selected operations.
type Repository[T any] struct {
	mu        sync.RWMutex
	data      map[string]*T
	createErr error
	updateErr error
	deleteErr error
	findErr   error
}

// New creates a new mock Repository.
func New[T any]() *Repository[T] {
	return &Repository[T]{
		data: make(map[string]*T),
	}
}

var _ repository.Repository[struct{}] = (*Repository[struct{}])(nil)

// WithCreateErr makes Create return an error.
func (m *Repository[T]) WithCreateErr(err error) *Repository[T] {
	m.createErr = err
	return m
}

// WithUpdateErr makes Update return an error.
func (m *Repository[T]) WithUpdateErr(err error) *Repository[T] {
	m.updateErr = err
	return m
}

// WithDeleteErr makes Delete return an error.
func (m *Repository[T]) WithDeleteErr(err error) *Repository[T] {
	m.deleteErr = err
	return m
}

// WithFindErr makes the lookup operations return an error.
func (m *Repository[T]) WithFindErr(err error) *Repository[T] {
	m.findErr = err
	return m
}

// Seed stores a model under the given id, bypassing Create.
func (m *Repository[T]) Seed(id string, model *T) *Repository[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = model
	return m
}

// Len reports the number of stored models.
func (m *Repository[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *Repository[T]) Create(ctx context.Context, data map[string]any) (*T, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	model := new(T)
	if err := repository.Decode(data, model); err != nil {
		return nil, err
	}
	id, ok := repository.ModelID(model)
	if !ok {
		id = uuid.NewString()
		if err := repository.SetModelID(model, id); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = model
	return model, nil
}

func (m *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[id], nil
}

func (m *Repository[T]) FindOne(ctx context.Context, query repository.Predicate) (*T, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, model := range m.data {
		if repository.Matches(model, query) {
			return model, nil
		}
	}
	return nil, nil
}

func (m *Repository[T]) FindAll(ctx context.Context, query repository.Predicate, opts *repository.FindOptions) ([]*T, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := []*T{}
	for _, model := range m.data {
		if repository.Matches(model, query) {
			results = append(results, model)
		}
	}
	if opts != nil && opts.Skip != nil {
		if skip := *opts.Skip; skip >= int64(len(results)) {
			results = results[:0]
		} else if skip > 0 {
			results = results[skip:]
		}
	}
	// Negative limit reads as unbounded.
	if opts != nil && opts.Limit != nil && *opts.Limit >= 0 && *opts.Limit < int64(len(results)) {
		results = results[:*opts.Limit]
	}
	return results, nil
}

func (m *Repository[T]) Update(ctx context.Context, id string, updates map[string]any) (*T, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	model, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	if err := repository.Decode(updates, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (m *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return false, nil
	}
	delete(m.data, id)
	return true, nil
}

func (m *Repository[T]) Count(ctx context.Context, query repository.Predicate) (int64, error) {
	if m.findErr != nil {
		return 0, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, model := range m.data {
		if repository.Matches(model, query) {
			n++
		}
	}
	return n, nil
}
