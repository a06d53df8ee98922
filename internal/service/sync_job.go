package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
)

// SyncJobConfig carries the background job's tunables.
type SyncJobConfig struct {
	// Interval is the period between scheduled runs. Defaults to 5 minutes.
	Interval time.Duration
	// Debounce is how long the job waits after a change event before
	// running, coalescing bursts. Defaults to 2 seconds.
	Debounce time.Duration
}

type syncJob struct {
	orchestrator Orchestrator
	events       <-chan string
	cfg          SyncJobConfig
	logger       *logger.Logger

	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a [SyncJob] that runs the orchestrator on a ticker, on
// browser change events (debounced), and on explicit Trigger calls. The job
// is idle until Start is called.
func NewSyncJob(orchestrator Orchestrator, events <-chan string, cfg SyncJobConfig, log *logger.Logger) SyncJob {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 2 * time.Second
	}

	return &syncJob{
		orchestrator: orchestrator,
		events:       events,
		cfg:          cfg,
		logger:       log,
		trigger:      make(chan struct{}, 1),
	}
}

// Start implements [SyncJob]. It stops any previously running job, then
// launches a background goroutine that exits when ctx is cancelled or Stop
// is called.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.cfg.Interval)
		defer t.Stop()

		// The debounce timer starts stopped; the first change event arms it.
		debounce := time.NewTimer(j.cfg.Debounce)
		if !debounce.Stop() {
			<-debounce.C
		}
		defer debounce.Stop()

		events := j.events
		for {
			select {
			case <-jobCtx.Done():
				return

			case <-t.C:
				j.run(jobCtx, "interval")

			case <-j.trigger:
				j.run(jobCtx, "trigger")

			case event, ok := <-events:
				if !ok {
					events = nil
					continue
				}
				j.logger.Debug().Str("event", event).Msg("bookmark change event, debouncing")
				debounce.Reset(j.cfg.Debounce)

			case <-debounce.C:
				j.run(jobCtx, "event")
			}
		}
	}()
}

// Stop implements [SyncJob]. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Trigger implements [SyncJob]. A trigger that arrives while one is already
// queued collapses into it.
func (j *syncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

func (j *syncJob) run(ctx context.Context, reason string) {
	_, err := j.orchestrator.Sync(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, ErrSyncInProgress) {
		j.logger.Debug().Str("reason", reason).Msg("sync already in progress, trigger dropped")
		return
	}
	j.logger.Err(err).Str("reason", reason).Msg("background sync failed")
}
