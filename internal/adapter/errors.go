package adapter

import "errors"

// Sentinel errors mapped from remote store responses. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUnauthorized is returned when the bookmark store rejects the
	// session token.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound is returned when an update targets a link key the store
	// has no record for.
	ErrNotFound = errors.New("bookmark not found")

	// ErrLinkKeyConflict is returned when the store refuses an operation
	// that would attach the same link key to two records.
	ErrLinkKeyConflict = errors.New("link key conflict")

	// ErrRemote wraps any other non-success response from the store.
	ErrRemote = errors.New("remote bookmark store error")
)
