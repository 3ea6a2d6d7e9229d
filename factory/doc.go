/*
Package factory resolves repository backends from configuration.

Backend selection is configuration-driven but reflection-free: a class path
string (for example "modelrepo/repository/sqlite.Repository") is looked up in
a registered table of known backends. The table is populated with the built-in
backends and can be extended with aliases via RegisterPath.

Resolution produces a Provider, which binds the class path and the remaining
configuration keys as backend settings. The class_path key itself is stripped
so it never reaches a backend constructor. The model type is bound last:

	p, err := factory.FromConfig(map[string]any{
	    "class_path":        "modelrepo/repository/sqlite.Repository",
	    "connection_string": "file:app.db",
	})
	...
	repo, err := factory.NewRepository[User](p)

Unknown or malformed class paths are configuration errors and propagate;
they are never folded into the absence convention of the repositories.
*/
package factory
