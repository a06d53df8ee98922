package adapter

import (
	"context"

	"github.com/avelikov/go-bookmark-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Persistence is the remote bookmark store collaborator. Implementations own
// transport, identity, and retries; callers see only record operations.
//
// Upsert-by-link-key semantics back the relink path: an update op with
// SetLinkKey claims an existing unlinked record when one matches, otherwise
// creates the record.
type Persistence interface {
	// OwnerID returns the identity all operations act on behalf of.
	OwnerID() string

	// GetAll returns every record owned by ownerID, ordered by date added
	// descending.
	GetAll(ctx context.Context, ownerID string) ([]models.PersistedBookmark, error)

	// BulkInsert creates one record per local bookmark in a single call and
	// returns the created records.
	BulkInsert(ctx context.Context, ownerID string, records []models.LocalBookmark) ([]models.PersistedBookmark, error)

	// Update applies one update op, keyed by the op's link key.
	Update(ctx context.Context, ownerID string, op models.UpdateOp) (models.PersistedBookmark, error)

	// BulkDeleteByLinkKey removes every record whose link key is listed.
	BulkDeleteByLinkKey(ctx context.Context, ownerID string, linkKeys []string) error
}
