/*
Package modelrepo provides a storage-agnostic data access layer for Go
applications: a single generic CRUD contract with interchangeable in-memory,
SQLite, MongoDB and DynamoDB backends, selected by configuration rather than
code.

The library separates three concerns:
  - The contract: repository.Repository[T], one interface every backend honors
  - The wiring: factory resolves a class path plus settings into a Provider
  - The lookup: registry maps model types to their repositories at runtime

Basic Usage:

	cfg, _ := config.Load("config.yml")
	reg, _ := modelrepo.Open(cfg)

	_ = registry.RegisterModel[Player](reg)
	repo, _ := registry.GetRepository[Player](reg)

	player, err := repo.Create(ctx, map[string]any{"name": "Alice"})

Backends that cannot observe a record report absence as (nil, nil); an error
always means the operation itself failed. See the repository package for the
full contract.

For more information, see the documentation at https://github.com/suparena/modelrepo
*/
package modelrepo
