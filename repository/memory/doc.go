/*
Package memory provides the in-memory reference implementation of the
Repository interface.

The backend keeps models in a plain map keyed by identifier, generating a UUID
when created data carries none. It needs no external resource and is the
default choice for tests and examples.

One deliberate asymmetry: Update and Delete on a missing id return a
NotFoundError instead of the absent result the relational and document
backends produce for the same scenario. Callers relying on uniform absence
semantics across backends should check errors.IsNotFound.
*/
package memory
