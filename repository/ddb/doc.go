/*
Package ddb provides a DynamoDB implementation of the Repository interface.

The table layout is a single string partition key named `id`; items keep the
attribute names supplied at create time and predicates filter on those names
via scan filter expressions.

Uniqueness is enforced with conditional writes: Create puts with
attribute_not_exists(id) and Update sets with attribute_exists(id). A failed
condition maps to the contract's absence result. Delete determines success
from the ALL_OLD return value.

Unlike the relational and document backends, lookup errors from the service
are surfaced to the caller rather than downgraded; DynamoDB throttling and
permission failures are operational conditions worth propagating.
*/
package ddb
