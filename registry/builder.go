/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import "sync"

// binding registers one declared model type against a registry.
type binding func(*Registry) error

// Builder collects model declarations made before the registry (and the
// configuration behind its factory) exists. The pending list is scoped to the
// builder instance, not the process: the composition root creates one builder,
// lets the application declare model types against it, then flushes it into
// the registry with RegisterDeferred exactly once, before concurrent use.
type Builder struct {
	mu      sync.Mutex
	pending []binding
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Declare marks model type T for deferred registration. The declaration
// carries the type; the repository is only built when the builder is flushed
// into a registry.
func Declare[T any](b *Builder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, func(r *Registry) error {
		return RegisterModel[T](r)
	})
}

// Pending reports the number of declared but not yet flushed model types.
func (b *Builder) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// drain returns the declarations in FIFO order and clears the list.
func (b *Builder) drain() []binding {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}
