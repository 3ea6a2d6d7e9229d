/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"context"
)

// Predicate is a flat equality filter: every key names a model attribute and
// every value is the exact value that attribute must hold. Terms are combined
// with logical AND. A nil or empty Predicate matches every instance.
type Predicate map[string]any

// FindOptions carries optional pagination parameters for FindAll.
// Skip is applied before Limit. A nil pointer leaves the bound unset.
type FindOptions struct {
	// Limit caps the number of returned instances.
	Limit *int64
	// Skip drops the first n matching instances.
	Skip *int64
}

// Repository is the storage-agnostic CRUD contract, bound to exactly one model
// type T and one backend configuration for its entire lifetime.
//
// Identifiers cross this interface as strings; each backend parses them into
// its native form (UUID, integer primary key, hex object id). Operations that
// look up data report absence as (nil, nil), never as an error; errors are
// reserved for contract violations and unrecoverable backend conditions.
type Repository[T any] interface {
	// Create persists one instance built from the given attribute values and
	// returns it. A uniqueness-constraint violation is reported as absence,
	// not as an error.
	Create(ctx context.Context, data map[string]any) (*T, error)

	// GetByID fetches one instance by identifier. A well-formed id that
	// references nothing, or a malformed id, both resolve to (nil, nil).
	GetByID(ctx context.Context, id string) (*T, error)

	// FindOne returns the first instance matching the predicate; order is
	// backend-defined.
	FindOne(ctx context.Context, query Predicate) (*T, error)

	// FindAll returns every instance matching the predicate, honoring
	// opts.Skip then opts.Limit. A nil opts applies no bounds.
	FindAll(ctx context.Context, query Predicate, opts *FindOptions) ([]*T, error)

	// Update applies only the given attribute values to the identified
	// instance and returns the updated instance.
	Update(ctx context.Context, id string, updates map[string]any) (*T, error)

	// Delete removes the identified instance, reporting whether a stored
	// instance existed and was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the number of instances matching the predicate.
	Count(ctx context.Context, query Predicate) (int64, error)
}
