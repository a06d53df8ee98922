package service

import (
	"context"
	"time"

	"github.com/avelikov/go-bookmark-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ReconcileEngine computes the operation set that converges the persisted
// store onto the local snapshot. Implementations are pure: no I/O, no state,
// identical inputs always produce identical outputs.
type ReconcileEngine interface {
	// BuildSyncOps classifies every local bookmark into exactly one outcome
	// (matched-unchanged, matched-updated, relinked, or inserted) and every
	// orphaned persisted link into a delete.
	BuildSyncOps(local []models.LocalBookmark, remote []models.PersistedBookmark) models.SyncOps
}

// BookmarkSource is the browser side of a sync run: the connectivity probe
// and the local snapshot.
type BookmarkSource interface {
	// Ping issues the lightweight connectivity probe bounded by timeout.
	Ping(ctx context.Context, timeout time.Duration) error

	// FetchLocal returns the flattened local snapshot in traversal order.
	FetchLocal(ctx context.Context) ([]models.LocalBookmark, error)
}

// FingerprintStore persists the last synced snapshot fingerprint per owner
// so unchanged snapshots short-circuit, including across restarts.
type FingerprintStore interface {
	// Get returns the stored fingerprint for ownerID, or an empty string
	// when none has been stored yet.
	Get(ctx context.Context, ownerID string) (string, error)

	// Put stores the fingerprint for ownerID, replacing any previous value.
	Put(ctx context.Context, ownerID string, fingerprint string) error
}

// Orchestrator drives complete sync runs. Only one run may be in progress at
// a time; a concurrent call is rejected with ErrSyncInProgress, not queued.
type Orchestrator interface {
	// Sync performs one full run and returns its report. The report's counts
	// are populated even on partial failure; a fatal error is returned
	// alongside a report in StateFailed.
	Sync(ctx context.Context) (models.SyncReport, error)

	// State returns the phase the current (or last) run is in.
	State() models.SyncState
}

// SyncJob is the background worker that fires sync runs on a schedule and on
// browser change events.
type SyncJob interface {
	// Start launches the background goroutine. Any previously running job is
	// stopped first.
	Start(ctx context.Context)

	// Stop signals the goroutine to exit and blocks until it has terminated.
	Stop()

	// Trigger requests an immediate run, subject to the same single-run
	// guard as scheduled ones.
	Trigger()
}
