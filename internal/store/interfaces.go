package store

import (
	"context"

	"github.com/avelikov/go-bookmark-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// BookmarkRepository is the server-side bookmark record store.
type BookmarkRepository interface {
	// GetAll returns every record owned by ownerID, ordered by date added
	// descending.
	GetAll(ctx context.Context, ownerID string) ([]models.PersistedBookmark, error)

	// BulkInsert creates one record per local bookmark inside a single
	// transaction and returns the created records.
	BulkInsert(ctx context.Context, ownerID string, records []models.LocalBookmark) ([]models.PersistedBookmark, error)

	// UpdateByLinkKey applies one update op. A plain op updates the record
	// carrying the op's link key; a SetLinkKey op claims the first unlinked
	// record matching the op's title or URL, creating the record when no
	// candidate exists (upsert-by-link-key).
	UpdateByLinkKey(ctx context.Context, ownerID string, op models.UpdateOp) (models.PersistedBookmark, error)

	// BulkDeleteByLinkKey removes every record whose link key is listed.
	BulkDeleteByLinkKey(ctx context.Context, ownerID string, linkKeys []string) error
}
