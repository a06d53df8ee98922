package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createFingerprintsTable = `CREATE TABLE IF NOT EXISTS fingerprints (
	owner_id    TEXT PRIMARY KEY,
	fingerprint TEXT NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);`

const (
	getFingerprint = `SELECT fingerprint FROM fingerprints WHERE owner_id = ?;`

	putFingerprint = `INSERT INTO fingerprints (owner_id, fingerprint, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			updated_at = excluded.updated_at;`
)

// sqliteFingerprintStore keeps the last synced snapshot fingerprint per
// owner in a local SQLite file, so an unchanged snapshot short-circuits the
// sync run even across daemon restarts.
type sqliteFingerprintStore struct {
	db *sql.DB
}

// NewSQLiteFingerprintStore opens (creating if needed) the fingerprint
// database at path. ":memory:" or an empty path keeps fingerprints in
// process memory only.
func NewSQLiteFingerprintStore(path string) (*sqliteFingerprintStore, error) {
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create fingerprint store dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open fingerprint store: %w", err)
	}

	if _, err = db.Exec(createFingerprintsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create fingerprints table: %w", err)
	}

	return &sqliteFingerprintStore{db: db}, nil
}

// Get implements service.FingerprintStore. A missing row yields an empty
// string with no error.
func (s *sqliteFingerprintStore) Get(ctx context.Context, ownerID string) (string, error) {
	var fingerprint string
	err := s.db.QueryRowContext(ctx, getFingerprint, ownerID).Scan(&fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get fingerprint: %w", err)
	}
	return fingerprint, nil
}

// Put implements service.FingerprintStore.
func (s *sqliteFingerprintStore) Put(ctx context.Context, ownerID string, fingerprint string) error {
	if _, err := s.db.ExecContext(ctx, putFingerprint, ownerID, fingerprint, time.Now().UTC()); err != nil {
		return fmt.Errorf("put fingerprint: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *sqliteFingerprintStore) Close() error {
	return s.db.Close()
}
