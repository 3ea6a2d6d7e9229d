package testmodels

import "github.com/go-openapi/strfmt"

// Player is the string-keyed model used by the in-memory, mock and DynamoDB
// repository tests.
type Player struct {

	// Unique identifier; generated when absent on create.
	ID string

	// Display name of the player.
	Name string

	// Contact email.
	Email string

	// Rating value.
	Value int

	// Timestamp when the player was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime
}

// Account is the relational model used by the sqlite repository tests. The id
// column is the backend-native integer primary key.
type Account struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Email  string `db:"email,unique"`
	Value  int64  `db:"value"`
	Active bool   `db:"active"`
}

// Profile is the document model used by the mongodb repository tests. The _id
// field carries the 24-hex object identifier.
type Profile struct {
	ID    string `bson:"_id,omitempty"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Value int    `bson:"value"`
}
