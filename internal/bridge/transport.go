package bridge

import (
	"context"

	"github.com/avelikov/go-bookmark-sync/models"
)

//go:generate mockgen -source=transport.go -destination=../mock/transport_mock.go -package=mock

// Transport is the raw delivery capability the bridge is built on. It models
// the substrate as it actually behaves: broadcast rather than addressed,
// unordered, and with no delivery guarantee. The bridge layers correlation,
// timeouts, and recovery on top.
type Transport interface {
	// Deliver transmits one envelope to every reachable peer context.
	// It returns ErrPeerUnavailable when nothing is connected at all and
	// ErrNoListener when peers are connected but none has registered a
	// listener yet. A nil return means at least one peer accepted the
	// envelope; it says nothing about whether a response will ever come.
	Deliver(ctx context.Context, env *models.Envelope) error

	// WakePeer asks connected peer contexts to (re)establish their listener
	// artifact. It is the recovery hook used after Deliver reports
	// ErrNoListener; the caller waits a warm-up delay before retrying.
	WakePeer(ctx context.Context) error

	// Receive returns the stream of envelopes arriving from peer contexts.
	// The channel is closed when the transport shuts down.
	Receive() <-chan *models.Envelope

	// Close tears the transport down and closes the Receive channel.
	Close() error
}
