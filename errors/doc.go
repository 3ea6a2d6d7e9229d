/*
Package errors provides semantic error types for the modelrepo library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound       = errors.New("model not found")
	    ErrDuplicate      = errors.New("duplicate model")
	    ErrNotRegistered  = errors.New("no repository registered for model type")
	    ErrUnknownBackend = errors.New("unknown repository backend")
	    ErrInvalidModel   = errors.New("invalid model data")
	)

These errors mark the failure family of the repository contract: contract
violations that propagate to the caller. Data absence (an id or predicate
matching nothing) is never reported through this package; repositories report
absence as a nil result with a nil error.

Usage:

	repo, err := registry.GetRepository[User](reg)
	if err != nil {
	    if errors.IsNotRegistered(err) {
	        // composition bug: User was never registered
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("User", "123")
*/
package errors
