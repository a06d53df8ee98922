package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avelikov/go-bookmark-sync/internal/adapter"
	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/models"
)

// OrchestratorConfig carries the orchestrator's externally tunable timeouts.
type OrchestratorConfig struct {
	// ProbeTimeout bounds the connectivity check. Defaults to 5s.
	ProbeTimeout time.Duration
	// SyncTimeout bounds one run up to the apply phase. Defaults to 60s.
	// Apply itself always runs to completion.
	SyncTimeout time.Duration
}

// syncOrchestrator drives one sync run at a time through the fixed phase
// sequence: connectivity check, both fetches, fingerprint short-circuit,
// reconcile, apply, report.
type syncOrchestrator struct {
	source       BookmarkSource
	store        adapter.Persistence
	fingerprints FingerprintStore
	engine       ReconcileEngine
	cfg          OrchestratorConfig
	logger       *logger.Logger

	// inFlight is the single-run guard. Checked-and-set atomically at entry;
	// a losing caller is rejected without touching the winner's state.
	inFlight atomic.Bool

	mu    sync.Mutex
	state models.SyncState
}

// NewSyncOrchestrator constructs an [Orchestrator] over the given
// collaborators.
func NewSyncOrchestrator(
	source BookmarkSource,
	store adapter.Persistence,
	fingerprints FingerprintStore,
	cfg OrchestratorConfig,
	log *logger.Logger,
) Orchestrator {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = 60 * time.Second
	}

	return &syncOrchestrator{
		source:       source,
		store:        store,
		fingerprints: fingerprints,
		engine:       NewReconcileEngine(),
		cfg:          cfg,
		logger:       log,
		state:        models.StateIdle,
	}
}

// State implements [Orchestrator].
func (o *syncOrchestrator) State() models.SyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *syncOrchestrator) setState(s models.SyncState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Sync implements [Orchestrator].
func (o *syncOrchestrator) Sync(ctx context.Context) (models.SyncReport, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return models.SyncReport{State: o.State()}, ErrSyncInProgress
	}
	defer o.inFlight.Store(false)

	// The sync timeout covers everything before apply; apply itself is
	// never abandoned mid-way.
	runCtx, cancel := context.WithTimeout(ctx, o.cfg.SyncTimeout)
	defer cancel()

	report, err := o.run(runCtx)

	o.setState(report.State)
	if err != nil {
		o.logger.Err(err).
			Str("state", string(report.State)).
			Int("inserted", report.Inserted).
			Int("updated", report.Updated).
			Int("removed", report.Removed).
			Msg("sync run failed")
		return report, err
	}

	o.logger.Info().
		Bool("has_changes", report.HasChanges).
		Int("inserted", report.Inserted).
		Int("updated", report.Updated).
		Int("removed", report.Removed).
		Int("total", report.Total).
		Msg("sync run finished")
	return report, nil
}

func (o *syncOrchestrator) run(ctx context.Context) (models.SyncReport, error) {
	report := models.SyncReport{State: models.StateFailed}
	ownerID := o.store.OwnerID()

	o.setState(models.StateCheckingConnectivity)
	if err := o.source.Ping(ctx, o.cfg.ProbeTimeout); err != nil {
		report.Err = fmt.Errorf("%w: %w", ErrConnectivity, err)
		return report, report.Err
	}

	o.setState(models.StateFetchingLocal)
	local, err := o.source.FetchLocal(ctx)
	if err != nil {
		report.Err = fmt.Errorf("%w: local: %w", ErrFetchFailed, err)
		return report, report.Err
	}

	o.setState(models.StateFetchingRemote)
	remote, err := o.store.GetAll(ctx, ownerID)
	if err != nil {
		report.Err = fmt.Errorf("%w: remote: %w", ErrFetchFailed, err)
		return report, report.Err
	}

	fingerprint := SnapshotFingerprint(local)
	stored, err := o.fingerprints.Get(ctx, ownerID)
	if err != nil {
		o.logger.Warn().Err(err).Msg("fingerprint lookup failed, continuing without short-circuit")
		stored = ""
	}
	if stored != "" && stored == fingerprint {
		// Nothing changed since the last run: report Done with zero counts.
		report.State = models.StateDone
		return report, nil
	}

	o.setState(models.StateReconciling)
	ops := o.engine.BuildSyncOps(local, remote)
	report.HasChanges = ops.HasChanges()
	report.Total = len(ops.Inserts) + len(ops.Updates) + len(ops.Deletes)

	if !report.HasChanges {
		o.storeFingerprint(ctx, ownerID, fingerprint)
		report.State = models.StateDone
		return report, nil
	}

	o.setState(models.StateApplying)
	// Apply runs to completion even if the run context expires partway.
	applyCtx := context.WithoutCancel(ctx)
	if err = o.apply(applyCtx, ownerID, ops, &report); err != nil {
		report.Err = err
		return report, err
	}

	o.storeFingerprint(applyCtx, ownerID, fingerprint)
	report.State = models.StateDone
	return report, nil
}

// apply executes the op set: inserts as one batched write, updates strictly
// sequentially with per-record failures counted but not fatal, deletes as
// one batched write. Counts accumulate into report on every path.
func (o *syncOrchestrator) apply(ctx context.Context, ownerID string, ops models.SyncOps, report *models.SyncReport) error {
	if len(ops.Inserts) > 0 {
		inserted, err := o.store.BulkInsert(ctx, ownerID, ops.Inserts)
		if err != nil {
			return fmt.Errorf("%w: bulk insert: %w", ErrApplyFailed, err)
		}
		report.Inserted = len(inserted)
	}

	// Sequential on purpose: a failure is attributable to exactly one
	// record, and one bad record never aborts the rest.
	for _, op := range ops.Updates {
		if _, err := o.store.Update(ctx, ownerID, op); err != nil {
			o.logger.Warn().Err(err).
				Str("link_key", op.LinkKey).
				Bool("relink", op.SetLinkKey).
				Msg("update failed, continuing with remaining updates")
			continue
		}
		report.Updated++
	}

	if len(ops.Deletes) > 0 {
		if err := o.store.BulkDeleteByLinkKey(ctx, ownerID, ops.Deletes); err != nil {
			return fmt.Errorf("%w: bulk delete: %w", ErrApplyFailed, err)
		}
		report.Removed = len(ops.Deletes)
	}

	return nil
}

func (o *syncOrchestrator) storeFingerprint(ctx context.Context, ownerID, fingerprint string) {
	if err := o.fingerprints.Put(ctx, ownerID, fingerprint); err != nil {
		// Worst case the next run reconciles an unchanged snapshot and
		// produces an empty op set.
		o.logger.Warn().Err(err).Msg("storing fingerprint failed")
	}
}
