package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrMessageNotFound is returned when an operation targets a message id
	// that does not exist in the index.
	ErrMessageNotFound = errors.New("message not found in local index")

	// ErrLocationNotFound is returned when Index is handed a location token
	// that no stored message carries.
	ErrLocationNotFound = errors.New("stored message location not found")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
