package bridge

import "errors"

// Sentinel errors returned by bridge operations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrPeerUnavailable is returned when no peer context is reachable at
	// all: nothing is connected to the transport, so neither delivery nor
	// listener recovery can make progress.
	ErrPeerUnavailable = errors.New("no peer context reachable")

	// ErrTimeout is returned when no response envelope arrives before the
	// request deadline. The pending request slot is removed before the error
	// is surfaced, so a stray late response has no observable effect.
	ErrTimeout = errors.New("bridge request timed out")

	// ErrDelivery is returned when a send failed because no listener was
	// registered, and the wake-then-retry recovery also failed.
	ErrDelivery = errors.New("bridge delivery failed after recovery")

	// ErrNoListener is the transport-level condition that triggers delivery
	// recovery: peers are connected but none has a registered listener.
	ErrNoListener = errors.New("no listener registered on any peer")

	// ErrClosed is returned for operations on a bridge that has been shut
	// down. Pending requests are failed with it on Close.
	ErrClosed = errors.New("bridge is closed")
)
