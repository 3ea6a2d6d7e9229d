/*
Package repository defines the storage-agnostic CRUD contract of modelrepo.

The main interface is Repository[T], which provides generic CRUD operations for
any model type T:

	type Repository[T any] interface {
	    Create(ctx context.Context, data map[string]any) (*T, error)
	    GetByID(ctx context.Context, id string) (*T, error)
	    FindOne(ctx context.Context, query Predicate) (*T, error)
	    FindAll(ctx context.Context, query Predicate, opts *FindOptions) ([]*T, error)
	    Update(ctx context.Context, id string, updates map[string]any) (*T, error)
	    Delete(ctx context.Context, id string) (bool, error)
	    Count(ctx context.Context, query Predicate) (int64, error)
	}

Implementations:
  - memory: map-backed reference implementation, no external resource
  - sqlite: relational implementation over database/sql
  - mongodb: document implementation over the official MongoDB driver
  - ddb: DynamoDB implementation
  - mock: configurable in-memory mock for testing

Two result conventions run through every implementation. Absence — a lookup
that finds nothing, a malformed identifier, a create hitting a uniqueness
constraint — is (nil, nil). Failures — invalid model data, unreachable
backends, the in-memory backend's Update/Delete on a missing id — are non-nil
errors from the errors package.

Model types are plain structs with an exported ID field. Predicate keys and
attribute-map keys match exported field names case-insensitively for the
in-memory backend; the relational and document backends match their native
column and document key names.
*/
package repository
