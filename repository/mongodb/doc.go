/*
Package mongodb provides the document-store implementation of the Repository
interface over the official MongoDB Go driver.

One client is bound at construction and the logical collection is named after
the model type. Incoming string identifiers are opportunistically parsed into
24-hex object ids; a parse failure resolves to absent (GetByID, Update) or
false (Delete) without issuing a query.

All read paths funnel raw documents through a single wrap helper, which
renders the native _id as its hex string so model types carry the identifier
in a plain string field tagged `bson:"_id"`.

Write success is determined by driver counts, not error absence: Update checks
MatchedCount and Delete checks DeletedCount. Duplicate-key violations on
Create and Update are logged and resolve to absence.
*/
package mongodb
