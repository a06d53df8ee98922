package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/models"
)

// fakePeer pretends to be the browser side: it reads requests from its
// transport and answers them with the configured response.
type fakePeer struct {
	transport *PairTransport
	respond   func(env *models.Envelope) *models.Envelope
	got       chan *models.Envelope
}

func startFakePeer(t *testing.T, transport *PairTransport, respond func(env *models.Envelope) *models.Envelope) *fakePeer {
	t.Helper()
	p := &fakePeer{transport: transport, respond: respond, got: make(chan *models.Envelope, 16)}

	go func() {
		for env := range transport.Receive() {
			p.got <- env
			if p.respond == nil {
				continue
			}
			if resp := p.respond(env); resp != nil {
				_ = transport.Deliver(context.Background(), resp)
			}
		}
	}()

	return p
}

func okResponse(env *models.Envelope) *models.Envelope {
	return &models.Envelope{
		Source:    models.SourceBackground,
		RequestID: env.RequestID,
		Response:  &models.ActionResponse{Success: true},
	}
}

func newTestBridge(t *testing.T, transport Transport, cfg Config) *Bridge {
	t.Helper()
	b := New(transport, cfg, logger.Nop())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBridge_SendRoundTrip(t *testing.T) {
	local, remote := NewPair()
	startFakePeer(t, remote, okResponse)

	b := newTestBridge(t, local, Config{Source: models.SourceSyncd})

	resp, err := b.Send(context.Background(), &models.ActionPayload{Action: models.ActionPing}, time.Second)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.Zero(t, b.Pending())
}

func TestBridge_SendTimesOutAndCleansUp(t *testing.T) {
	local, remote := NewPair()
	startFakePeer(t, remote, nil) // accepts but never answers

	b := newTestBridge(t, local, Config{Source: models.SourceSyncd})

	_, err := b.Send(context.Background(), &models.ActionPayload{Action: models.ActionPing}, 50*time.Millisecond)

	require.ErrorIs(t, err, ErrTimeout)
	assert.Zero(t, b.Pending())
}

func TestBridge_LateResponseIsIgnored(t *testing.T) {
	local, remote := NewPair()

	requests := make(chan *models.Envelope, 1)
	startFakePeer(t, remote, func(env *models.Envelope) *models.Envelope {
		requests <- env
		return nil
	})

	b := newTestBridge(t, local, Config{Source: models.SourceSyncd})

	_, err := b.Send(context.Background(), &models.ActionPayload{Action: models.ActionPing}, 50*time.Millisecond)
	require.ErrorIs(t, err, ErrTimeout)

	// The answer arrives after the deadline already fired; it must settle
	// nothing and leave no state behind.
	req := <-requests
	require.NoError(t, remote.Deliver(context.Background(), okResponse(req)))

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, b.Pending())
}

func TestBridge_WakesPeerWhenListenerIsGone(t *testing.T) {
	local, remote := NewPair()
	startFakePeer(t, remote, okResponse)

	// The peer is connected but its listener is gone, the way a suspended
	// page drops its message handler.
	remote.SetListening(false)

	b := newTestBridge(t, local, Config{
		Source:      models.SourceSyncd,
		WarmupDelay: 10 * time.Millisecond,
	})

	resp, err := b.Send(context.Background(), &models.ActionPayload{Action: models.ActionPing}, time.Second)

	require.NoError(t, err)
	assert.True(t, resp.Success)
}

// deadListenerTransport reports a missing listener on every delivery no
// matter how often the peer is woken.
type deadListenerTransport struct {
	deliveries int
	wakes      int
	recv       chan *models.Envelope
}

func (d *deadListenerTransport) Deliver(context.Context, *models.Envelope) error {
	d.deliveries++
	return ErrNoListener
}

func (d *deadListenerTransport) WakePeer(context.Context) error {
	d.wakes++
	return nil
}

func (d *deadListenerTransport) Receive() <-chan *models.Envelope { return d.recv }

func (d *deadListenerTransport) Close() error {
	close(d.recv)
	return nil
}

func TestBridge_GivesUpAfterSingleRecoveryRetry(t *testing.T) {
	transport := &deadListenerTransport{recv: make(chan *models.Envelope)}

	b := newTestBridge(t, transport, Config{
		Source:      models.SourceSyncd,
		WarmupDelay: 10 * time.Millisecond,
	})

	_, err := b.Send(context.Background(), &models.ActionPayload{Action: models.ActionPing}, time.Second)

	require.ErrorIs(t, err, ErrDelivery)
	assert.Equal(t, 2, transport.deliveries, "exactly one retry after waking the peer")
	assert.Equal(t, 1, transport.wakes)
	assert.Zero(t, b.Pending())
}

func TestBridge_PeerUnavailableFailsFast(t *testing.T) {
	local, remote := NewPair()
	remote.SetReachable(false)

	b := newTestBridge(t, local, Config{Source: models.SourceSyncd})

	start := time.Now()
	_, err := b.Send(context.Background(), &models.ActionPayload{Action: models.ActionPing}, 5*time.Second)

	require.ErrorIs(t, err, ErrPeerUnavailable)
	assert.Less(t, time.Since(start), time.Second, "no-peer failure must not wait out the request timeout")
	assert.Zero(t, b.Pending())
}

func TestBridge_EventsAreForwarded(t *testing.T) {
	local, remote := NewPair()

	b := newTestBridge(t, local, Config{Source: models.SourceSyncd})

	require.NoError(t, remote.Deliver(context.Background(), &models.Envelope{
		Source: models.SourceBackground,
		Event:  models.EventBookmarkCreated,
	}))

	select {
	case event := <-b.Events():
		assert.Equal(t, models.EventBookmarkCreated, event)
	case <-time.After(time.Second):
		t.Fatal("event was not forwarded")
	}
}

func TestBridge_DeniedSourcesAreDropped(t *testing.T) {
	local, remote := NewPair()

	b := newTestBridge(t, local, Config{Source: models.SourceSyncd})

	require.NoError(t, remote.Deliver(context.Background(), &models.Envelope{
		Source: "react-devtools-content-script",
		Event:  models.EventBookmarkCreated,
	}))

	select {
	case <-b.Events():
		t.Fatal("event from denied source must be dropped")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBridge_OwnEchoIsDropped(t *testing.T) {
	local, remote := NewPair()

	b := newTestBridge(t, local, Config{Source: models.SourceSyncd})

	// The substrate reflects our own broadcast back at us.
	require.NoError(t, remote.Deliver(context.Background(), &models.Envelope{
		Source: models.SourceSyncd,
		Event:  models.EventBookmarkCreated,
	}))

	select {
	case <-b.Events():
		t.Fatal("own echo must be dropped")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBridge_RelaysForeignRequests(t *testing.T) {
	local, remote := NewPair()

	newTestBridge(t, local, Config{Source: models.SourceSyncd})

	peer := startFakePeer(t, remote, nil)

	// A request originated by another context and not pending here must be
	// passed along untouched.
	foreign := &models.Envelope{
		Source:    models.SourceContent,
		RequestID: "req-123",
		Payload:   &models.ActionPayload{Action: models.ActionAddBookmark, Title: "Go", URL: "https://go.dev"},
	}
	require.NoError(t, remote.Deliver(context.Background(), foreign))

	select {
	case relayed := <-peer.got:
		assert.Equal(t, foreign.RequestID, relayed.RequestID)
		assert.Equal(t, foreign.Source, relayed.Source)
		require.NotNil(t, relayed.Payload)
		assert.Equal(t, models.ActionAddBookmark, relayed.Payload.Action)
	case <-time.After(time.Second):
		t.Fatal("foreign request was not relayed")
	}
}

func TestBridge_CloseFailsPendingRequests(t *testing.T) {
	local, remote := NewPair()
	startFakePeer(t, remote, nil)

	b := New(local, Config{Source: models.SourceSyncd}, logger.Nop())

	errs := make(chan error, 1)
	go func() {
		_, err := b.Send(context.Background(), &models.ActionPayload{Action: models.ActionPing}, time.Minute)
		errs <- err
	}()

	// Wait until the request is actually registered before closing.
	require.Eventually(t, func() bool { return b.Pending() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Close())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("pending request did not fail on Close")
	}

	// Events channel is closed too.
	_, open := <-b.Events()
	assert.False(t, open)

	// Close is idempotent.
	assert.NoError(t, b.Close())
}

func TestBridge_SendAfterCloseIsRejected(t *testing.T) {
	local, _ := NewPair()

	b := New(local, Config{Source: models.SourceSyncd}, logger.Nop())
	require.NoError(t, b.Close())

	_, err := b.Send(context.Background(), &models.ActionPayload{Action: models.ActionPing}, time.Second)
	assert.ErrorIs(t, err, ErrClosed)
}
