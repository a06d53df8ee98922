// Package bridge turns the fire-and-forget, possibly-undelivered message
// passing between isolated browser contexts and the sync daemon into a
// reliable request/response protocol.
//
// A single dispatch goroutine, registered once at construction, consumes the
// transport's receive stream and correlates response envelopes against a
// pending-request registry keyed by request id. Each pending slot is removed
// exactly once: on the first matching response or on timeout, never both.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/models"
	"github.com/google/uuid"
	"github.com/matryer/try"
)

// Config carries the externally tunable bridge constants. Zero values fall
// back to the defaults noted per field.
type Config struct {
	// Source is the envelope source tag stamped on outbound requests.
	// Defaults to models.SourceSyncd.
	Source string
	// RequestTimeout is the default deadline for Send when the caller passes
	// a non-positive timeout. Defaults to 15s.
	RequestTimeout time.Duration
	// WarmupDelay is the pause between waking an absent listener and the
	// single delivery retry. Defaults to 1s.
	WarmupDelay time.Duration
}

// deniedSources lists known foreign instrumentation origins whose envelopes
// share the broadcast channel. They are dropped before correlation so a
// third-party message can never satisfy a pending request.
var deniedSources = map[string]struct{}{
	"react-devtools-content-script":  {},
	"react-devtools-bridge":          {},
	"react-devtools-backend-manager": {},
	"react-devtools-detector":        {},
	"redux-devtools-extension":       {},
}

type result struct {
	resp *models.ActionResponse
	err  error
}

// pendingRequest is one in-flight exchange. It is owned exclusively by the
// bridge instance that registered it and leaves the registry exactly once.
type pendingRequest struct {
	requestID string
	issuedAt  time.Time
	timer     *time.Timer
	done      chan result
}

// Bridge provides request/response semantics over a [Transport].
type Bridge struct {
	transport Transport
	cfg       Config
	logger    *logger.Logger

	mu      sync.Mutex
	pending map[string]*pendingRequest
	closed  bool

	events chan string
	wg     sync.WaitGroup
}

// New constructs a Bridge over the given transport and starts its dispatch
// goroutine. Close must be called to release it.
func New(transport Transport, cfg Config, log *logger.Logger) *Bridge {
	if cfg.Source == "" {
		cfg.Source = models.SourceSyncd
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.WarmupDelay <= 0 {
		cfg.WarmupDelay = time.Second
	}

	b := &Bridge{
		transport: transport,
		cfg:       cfg,
		logger:    log,
		pending:   make(map[string]*pendingRequest),
		events:    make(chan string, 64),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Send transmits an action payload to the peer contexts and waits for the
// correlated response. It rejects with ErrTimeout after timeout (the
// configured default when timeout <= 0), with ErrPeerUnavailable when
// nothing is connected, and with ErrDelivery when listener recovery fails.
// The pending slot is removed on every exit path.
func (b *Bridge) Send(ctx context.Context, payload *models.ActionPayload, timeout time.Duration) (*models.ActionResponse, error) {
	if timeout <= 0 {
		timeout = b.cfg.RequestTimeout
	}

	requestID := uuid.NewString()
	env := &models.Envelope{
		Source:    b.cfg.Source,
		RequestID: requestID,
		Payload:   payload,
	}

	p, err := b.register(requestID, timeout)
	if err != nil {
		return nil, err
	}

	if err = b.deliver(ctx, env); err != nil {
		b.unregister(requestID)
		return nil, err
	}

	select {
	case <-ctx.Done():
		b.unregister(requestID)
		return nil, ctx.Err()
	case res := <-p.done:
		if res.err != nil {
			return nil, res.err
		}
		return res.resp, nil
	}
}

// Relay forwards an envelope whose request id is not pending on this bridge,
// without inspecting payload contents. Middle-tier contexts use it to pass
// traffic between a UI surface and the privileged backend; an envelope that
// does correlate locally is consumed instead, so Relay reports false for it.
func (b *Bridge) Relay(ctx context.Context, env *models.Envelope) (bool, error) {
	b.mu.Lock()
	_, isLocal := b.pending[env.RequestID]
	b.mu.Unlock()

	if isLocal && env.RequestID != "" {
		return false, nil
	}

	if err := b.transport.Deliver(ctx, env); err != nil {
		return false, fmt.Errorf("relay envelope %s: %w", env.RequestID, err)
	}
	return true, nil
}

// Events returns the stream of change-event names pushed by the browser side
// (bookmarkCreated, bookmarkRemoved, ...). The channel is closed on Close;
// events are dropped, not queued, when the consumer lags.
func (b *Bridge) Events() <-chan string {
	return b.events
}

// Close shuts the bridge down: the transport is closed, the dispatch
// goroutine drains out, and every still-pending request fails with ErrClosed.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	stale := make([]*pendingRequest, 0, len(b.pending))
	for id, p := range b.pending {
		delete(b.pending, id)
		p.timer.Stop()
		stale = append(stale, p)
	}
	b.mu.Unlock()

	for _, p := range stale {
		p.done <- result{err: ErrClosed}
	}

	err := b.transport.Close()
	b.wg.Wait()
	close(b.events)
	return err
}

// deliver runs the delivery-failure recovery sequence: attempt, detect
// listener absence, wake the peer, wait the warm-up delay, retry exactly
// once, give up with ErrDelivery.
func (b *Bridge) deliver(ctx context.Context, env *models.Envelope) error {
	err := try.Do(func(attempt int) (bool, error) {
		deliverErr := b.transport.Deliver(ctx, env)
		if deliverErr == nil {
			return false, nil
		}
		if !errors.Is(deliverErr, ErrNoListener) || attempt > 1 {
			return false, deliverErr
		}

		b.logger.Warn().
			Str("request_id", env.RequestID).
			Msg("no listener registered, waking peer before retry")

		if wakeErr := b.transport.WakePeer(ctx); wakeErr != nil {
			return false, wakeErr
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(b.cfg.WarmupDelay):
		}

		return true, deliverErr
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoListener) {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return err
}

func (b *Bridge) register(requestID string, timeout time.Duration) (*pendingRequest, error) {
	p := &pendingRequest{
		requestID: requestID,
		issuedAt:  time.Now(),
		done:      make(chan result, 1),
	}
	p.timer = time.AfterFunc(timeout, func() { b.expire(requestID) })

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		p.timer.Stop()
		return nil, ErrClosed
	}
	b.pending[requestID] = p
	return p, nil
}

func (b *Bridge) unregister(requestID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.pending[requestID]; ok {
		delete(b.pending, requestID)
		p.timer.Stop()
	}
}

// expire fires on the request timer. The slot may already be gone when the
// response won the race; in that case this is a no-op.
func (b *Bridge) expire(requestID string) {
	b.mu.Lock()
	p, ok := b.pending[requestID]
	if ok {
		delete(b.pending, requestID)
	}
	b.mu.Unlock()

	if ok {
		p.done <- result{err: ErrTimeout}
	}
}

// dispatch is the single receive loop. Envelopes from denied sources are
// dropped before correlation; responses settle their pending slot; anything
// else that still carries a request id is relayed onward untouched.
func (b *Bridge) dispatch() {
	defer b.wg.Done()

	for env := range b.transport.Receive() {
		if env == nil {
			continue
		}
		if _, denied := deniedSources[env.Source]; denied {
			b.logger.Debug().Str("source", env.Source).Msg("dropping envelope from denied source")
			continue
		}
		if env.Source == b.cfg.Source {
			// Our own broadcast reflected back by the substrate.
			continue
		}

		switch {
		case env.Event != "":
			select {
			case b.events <- env.Event:
			default:
				b.logger.Debug().Str("event", env.Event).Msg("event channel full, dropping")
			}

		case env.IsResponse():
			b.settle(env)

		case env.IsRequest():
			ctx, cancel := context.WithTimeout(context.Background(), b.cfg.RequestTimeout)
			if _, err := b.Relay(ctx, env); err != nil {
				b.logger.Debug().Err(err).Str("request_id", env.RequestID).Msg("relay failed")
			}
			cancel()
		}
	}
}

// settle resolves the pending request matching a response envelope. A late
// response whose slot is already gone is ignored without any state mutation.
func (b *Bridge) settle(env *models.Envelope) {
	b.mu.Lock()
	p, ok := b.pending[env.RequestID]
	if ok {
		delete(b.pending, env.RequestID)
		p.timer.Stop()
	}
	b.mu.Unlock()

	if !ok {
		b.logger.Debug().
			Str("request_id", env.RequestID).
			Msg("late or unknown response, ignoring")
		return
	}

	p.done <- result{resp: env.Response}
}

// Pending reports the number of in-flight requests. Used by tests and the
// daemon's shutdown logging.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
