package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avelikov/go-bookmark-sync/models"
)

const bookmarkColumns = `id, owner_id, link_key, title, url, folder_path, parent_id, date_added, created_at, updated_at`

const (
	getAllBookmarks = `SELECT ` + bookmarkColumns + `
		FROM bookmarks
		WHERE owner_id = $1
		ORDER BY date_added DESC;`

	insertBookmark = `INSERT INTO bookmarks (
			owner_id,
			link_key,
			title,
			url,
			folder_path,
			parent_id,
			date_added
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookmarkColumns + `;`

	deleteBookmarksByLinkKey = `DELETE FROM bookmarks
		WHERE owner_id = $1 AND link_key = ANY($2);`

	// findRelinkCandidate locates the oldest unlinked record whose
	// normalized title or URL matches, mirroring the engine's relink rule.
	findRelinkCandidate = `SELECT id
		FROM bookmarks
		WHERE owner_id = $1
		  AND link_key = ''
		  AND (lower(trim(title)) = lower(trim($2)) OR lower(trim(url)) = lower(trim($3)))
		ORDER BY date_added DESC
		LIMIT 1;`
)

// buildUpdateQuery assembles the dynamic UPDATE for one op with squirrel.
// A relink op targets a specific record id and additionally claims the link
// key; a plain op targets the record already carrying the link key.
func buildUpdateQuery(ownerID string, op models.UpdateOp, targetID string) (string, []any, error) {
	builder := sq.Update("bookmarks").
		PlaceholderFormat(sq.Dollar).
		Set("title", op.Fields.Title).
		Set("url", op.Fields.URL).
		Set("folder_path", op.Fields.FolderPath).
		Set("parent_id", op.Fields.ParentID).
		Set("updated_at", time.Now().UTC()).
		Suffix("RETURNING " + bookmarkColumns)

	if op.SetLinkKey {
		builder = builder.
			Set("link_key", op.LinkKey).
			Where(sq.Eq{"owner_id": ownerID, "id": targetID})
	} else {
		builder = builder.
			Where(sq.Eq{"owner_id": ownerID, "link_key": op.LinkKey})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
