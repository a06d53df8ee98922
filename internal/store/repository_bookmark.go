package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/models"
)

// bookmarkRepository is the PostgreSQL-backed implementation of
// [BookmarkRepository]. It executes all record operations against the
// "bookmarks" table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so database interactions are traced with structured
// fields (owner_id, link_key, record counts).
type bookmarkRepository struct {
	*DB
	logger *logger.Logger
}

// NewBookmarkRepository constructs a [BookmarkRepository] backed by the
// provided database connection and logger.
func NewBookmarkRepository(db *DB, log *logger.Logger) BookmarkRepository {
	return &bookmarkRepository{
		DB:     db,
		logger: log,
	}
}

// GetAll implements [BookmarkRepository].
func (r *bookmarkRepository) GetAll(ctx context.Context, ownerID string) ([]models.PersistedBookmark, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllBookmarks, ownerID)
	if err != nil {
		log.Err(err).
			Str("owner_id", ownerID).
			Msg("failed to execute query for getting all bookmarks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.PersistedBookmark, 0, 50)

	for rows.Next() {
		record, scanErr := scanBookmark(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("owner_id", ownerID).
				Msg("failed to scan bookmark row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, rowsErr)
	}

	return results, nil
}

// BulkInsert implements [BookmarkRepository]. All records are inserted in a
// single transaction so the batch is all-or-nothing.
func (r *bookmarkRepository) BulkInsert(ctx context.Context, ownerID string, records []models.LocalBookmark) ([]models.PersistedBookmark, error) {
	log := logger.FromContext(ctx)

	if len(records) == 0 {
		return nil, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("owner_id", ownerID).Msg("failed to begin bulk insert transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := make([]models.PersistedBookmark, 0, len(records))
	for i := range records {
		lb := &records[i]

		row := tx.QueryRowContext(ctx, insertBookmark,
			ownerID,
			lb.LocalID,
			lb.Title,
			lb.URL,
			lb.FolderPath,
			lb.ParentID,
			lb.DateAdded,
		)
		record, scanErr := scanBookmark(row)
		if scanErr != nil {
			if IsUniqueViolation(scanErr) {
				log.Err(scanErr).
					Str("owner_id", ownerID).
					Str("link_key", lb.LocalID).
					Msg("duplicate link key on bulk insert")
				return nil, fmt.Errorf("%w: %s", ErrLinkKeyConflict, lb.LocalID)
			}
			log.Err(scanErr).
				Str("owner_id", ownerID).
				Int("index", i).
				Msg("failed to insert bookmark")
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
		}
		inserted = append(inserted, record)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("owner_id", ownerID).Msg("failed to commit bulk insert")
		return nil, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	if len(inserted) == 0 {
		return nil, ErrNothingInserted
	}
	return inserted, nil
}

// UpdateByLinkKey implements [BookmarkRepository].
func (r *bookmarkRepository) UpdateByLinkKey(ctx context.Context, ownerID string, op models.UpdateOp) (models.PersistedBookmark, error) {
	log := logger.FromContext(ctx)

	targetID := ""
	if op.SetLinkKey {
		// Relink: claim an unlinked candidate, or fall through to insert
		// when none exists (upsert-by-link-key).
		err := r.DB.QueryRowContext(ctx, findRelinkCandidate, ownerID, op.Fields.Title, op.Fields.URL).Scan(&targetID)
		if errors.Is(err, sql.ErrNoRows) {
			return r.insertFromOp(ctx, ownerID, op)
		}
		if err != nil {
			log.Err(err).
				Str("owner_id", ownerID).
				Str("link_key", op.LinkKey).
				Msg("failed to find relink candidate")
			return models.PersistedBookmark{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	query, args, err := buildUpdateQuery(ownerID, op, targetID)
	if err != nil {
		log.Err(err).Str("link_key", op.LinkKey).Msg("failed to build update query")
		return models.PersistedBookmark{}, err
	}

	record, err := scanBookmark(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.PersistedBookmark{}, fmt.Errorf("%w: %s", ErrBookmarkNotFound, op.LinkKey)
	}
	if err != nil {
		if IsUniqueViolation(err) {
			return models.PersistedBookmark{}, fmt.Errorf("%w: %s", ErrLinkKeyConflict, op.LinkKey)
		}
		log.Err(err).
			Str("owner_id", ownerID).
			Str("link_key", op.LinkKey).
			Msg("failed to execute update")
		return models.PersistedBookmark{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// BulkDeleteByLinkKey implements [BookmarkRepository].
func (r *bookmarkRepository) BulkDeleteByLinkKey(ctx context.Context, ownerID string, linkKeys []string) error {
	log := logger.FromContext(ctx)

	if len(linkKeys) == 0 {
		return nil
	}

	if _, err := r.DB.ExecContext(ctx, deleteBookmarksByLinkKey, ownerID, linkKeys); err != nil {
		log.Err(err).
			Str("owner_id", ownerID).
			Int("link_keys", len(linkKeys)).
			Msg("failed to execute bulk delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *bookmarkRepository) insertFromOp(ctx context.Context, ownerID string, op models.UpdateOp) (models.PersistedBookmark, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, insertBookmark,
		ownerID,
		op.LinkKey,
		op.Fields.Title,
		op.Fields.URL,
		op.Fields.FolderPath,
		op.Fields.ParentID,
		time.Now().UTC(),
	)
	record, err := scanBookmark(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return models.PersistedBookmark{}, fmt.Errorf("%w: %s", ErrLinkKeyConflict, op.LinkKey)
		}
		log.Err(err).
			Str("owner_id", ownerID).
			Str("link_key", op.LinkKey).
			Msg("failed to insert record for relink op")
		return models.PersistedBookmark{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return record, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row rowScanner) (models.PersistedBookmark, error) {
	var record models.PersistedBookmark
	var linkKey, folderPath, parentID sql.NullString

	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&linkKey,
		&record.Title,
		&record.URL,
		&folderPath,
		&parentID,
		&record.DateAdded,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return models.PersistedBookmark{}, err
	}

	record.LinkKey = linkKey.String
	record.FolderPath = folderPath.String
	record.ParentID = parentID.String
	return record, nil
}
