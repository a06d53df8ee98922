package bridge

import (
	"context"
	"sync"

	"github.com/avelikov/go-bookmark-sync/models"
)

// PairTransport is an in-memory [Transport] connecting two endpoints
// directly. It reproduces the substrate's failure modes on demand (absent
// listener, no peer at all) and is used by tests and by embedding callers
// that host both sides in one process.
type PairTransport struct {
	mu        sync.Mutex
	other     *PairTransport
	listening bool
	reachable bool
	closed    bool

	recv chan *models.Envelope
}

// NewPair returns two connected PairTransports. Both start reachable and
// listening.
func NewPair() (*PairTransport, *PairTransport) {
	a := &PairTransport{listening: true, reachable: true, recv: make(chan *models.Envelope, 64)}
	b := &PairTransport{listening: true, reachable: true, recv: make(chan *models.Envelope, 64)}
	a.other = b
	b.other = a
	return a, b
}

// SetListening flips whether the opposite endpoint will accept deliveries.
func (t *PairTransport) SetListening(v bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listening = v
}

// SetReachable flips whether the endpoint is connected at all. Unreachable
// endpoints make Deliver and WakePeer fail with ErrPeerUnavailable.
func (t *PairTransport) SetReachable(v bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reachable = v
}

// Deliver implements [Transport].
func (t *PairTransport) Deliver(ctx context.Context, env *models.Envelope) error {
	peer := t.other

	peer.mu.Lock()
	reachable, listening, closed := peer.reachable, peer.listening, peer.closed
	peer.mu.Unlock()

	if closed || !reachable {
		return ErrPeerUnavailable
	}
	if !listening {
		return ErrNoListener
	}

	select {
	case peer.recv <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WakePeer implements [Transport]. Waking an in-memory peer re-registers its
// listener, mirroring script re-injection on the real substrate.
func (t *PairTransport) WakePeer(_ context.Context) error {
	peer := t.other

	peer.mu.Lock()
	defer peer.mu.Unlock()
	if peer.closed || !peer.reachable {
		return ErrPeerUnavailable
	}
	peer.listening = true
	return nil
}

// Receive implements [Transport].
func (t *PairTransport) Receive() <-chan *models.Envelope {
	return t.recv
}

// Close implements [Transport].
func (t *PairTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.recv)
	return nil
}
