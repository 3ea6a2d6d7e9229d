/*
Package registry maps model types to repository instances.

The Registry is keyed by reflect.Type and accessed through top-level generic
functions, since Go methods cannot carry type parameters:

	reg := registry.New(provider)
	if err := registry.RegisterModel[User](reg); err != nil { ... }
	repo, err := registry.GetRepository[User](reg)

GetRepository is strict — an unregistered model type is an error, not an
absent result — because it indicates a composition bug rather than missing
data.

Model declarations can precede the registry. A Builder collects them:

	b := registry.NewBuilder()
	registry.Declare[User](b)
	registry.Declare[Order](b)

	// later, once configuration is available:
	reg := registry.New(provider)
	if err := reg.RegisterDeferred(b); err != nil { ... }

The pending list lives on the builder instance, never in package state, and a
flush drains it exactly once; the first failing registration aborts the flush
and propagates. The composition root is expected to flush before any
concurrent access to the registry begins.
*/
package registry
