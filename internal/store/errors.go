package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrBookmarkNotFound is returned when an update targets a link key that
	// does not exist for the owner.
	ErrBookmarkNotFound = errors.New("bookmark was not found")

	// ErrLinkKeyConflict is returned when an insert or relink would attach
	// the same link key to two records for one owner.
	ErrLinkKeyConflict = errors.New("link key conflict")

	// ErrNothingInserted is returned when a bulk insert completes without
	// error but the number of affected rows is zero.
	ErrNothingInserted = errors.New("no bookmarks were inserted")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan bookmark row")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommittingTransaction = errors.New("failed to commit transaction")
)
