/*
Package sqlite provides the relational implementation of the Repository
interface over database/sql with the pure-Go modernc.org/sqlite driver.

The table for a model type is derived from its exported fields at construction
time and created with CREATE TABLE IF NOT EXISTS. Column names come from `db`
struct tags, falling back to snake_case field names; the `unique` tag option
adds a uniqueness constraint. The primary key is always an autoincrement
integer `id` column backed by an int64 ID field on the model.

Error discipline follows the repository contract: uniqueness violations on
Create/Update roll back and resolve to absence, and unexpected lookup errors
are logged and downgraded to absent, empty or zero results. Only write-path
infrastructure failures (failing to open a transaction, a non-constraint
insert error) surface as errors.
*/
package sqlite
