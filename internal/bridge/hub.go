package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/models"
	"github.com/coder/websocket"
)

// wakeEvent is the control frame sent to connected contexts that have not
// registered a listener yet, prompting them to (re)inject it.
const wakeEvent = "wake"

// listenerReadyEvent is the control frame a peer sends once its listener is
// installed. Until it arrives, the connection counts as present but deaf.
const listenerReadyEvent = "listenerReady"

type hubPeer struct {
	tag       string
	listening bool
}

// HubTransport is a WebSocket hub implementation of [Transport]. Browser
// contexts connect to /bridge and tag themselves with a hello frame; Deliver
// broadcasts to every connection whose listener is ready. A connection that
// exists but never sent listenerReady reproduces the "page loaded before the
// content script attached" failure mode, which is what WakePeer recovers.
type HubTransport struct {
	addr     string
	logger   *logger.Logger
	listener net.Listener
	server   *http.Server

	mu    sync.RWMutex
	peers map[*websocket.Conn]*hubPeer

	recv chan *models.Envelope

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHubTransport constructs a hub listening on addr. Start must be called
// before the transport is usable.
func NewHubTransport(addr string, log *logger.Logger) *HubTransport {
	ctx, cancel := context.WithCancel(context.Background())

	return &HubTransport{
		addr:   addr,
		logger: log,
		peers:  make(map[*websocket.Conn]*hubPeer),
		recv:   make(chan *models.Envelope, 64),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins listening and serving WebSocket upgrades on /bridge.
func (h *HubTransport) Start() error {
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("hub listen on %s: %w", h.addr, err)
	}
	h.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/bridge", h.handleBridge)
	mux.HandleFunc("/health", h.handleHealth)

	h.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.logger.Info().Str("addr", h.addr).Msg("bridge hub listening")
		if serveErr := h.server.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			h.logger.Err(serveErr).Msg("bridge hub server error")
		}
	}()

	return nil
}

// Addr returns the address the hub is actually bound to, which differs from
// the configured one when it named port 0.
func (h *HubTransport) Addr() string {
	if h.listener == nil {
		return h.addr
	}
	return h.listener.Addr().String()
}

// Deliver implements [Transport]. The envelope is broadcast to every
// connection with a ready listener.
func (h *HubTransport) Deliver(ctx context.Context, env *models.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	h.mu.RLock()
	total := len(h.peers)
	targets := make([]*websocket.Conn, 0, total)
	for conn, peer := range h.peers {
		if peer.listening {
			targets = append(targets, conn)
		}
	}
	h.mu.RUnlock()

	if total == 0 {
		return ErrPeerUnavailable
	}
	if len(targets) == 0 {
		return ErrNoListener
	}

	delivered := 0
	for _, conn := range targets {
		if writeErr := conn.Write(ctx, websocket.MessageText, data); writeErr != nil {
			h.logger.Debug().Err(writeErr).Msg("peer write failed, removing connection")
			h.removePeer(conn)
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return ErrNoListener
	}
	return nil
}

// WakePeer implements [Transport]. Every connection, listening or not, gets
// a wake frame asking the context to (re)establish its listener.
func (h *HubTransport) WakePeer(ctx context.Context) error {
	env := &models.Envelope{Source: models.SourceSyncd, Event: wakeEvent}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode wake frame: %w", err)
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.peers))
	for conn := range h.peers {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	if len(conns) == 0 {
		return ErrPeerUnavailable
	}

	for _, conn := range conns {
		if writeErr := conn.Write(ctx, websocket.MessageText, data); writeErr != nil {
			h.removePeer(conn)
		}
	}
	return nil
}

// Receive implements [Transport].
func (h *HubTransport) Receive() <-chan *models.Envelope {
	return h.recv
}

// Close implements [Transport]. All peer connections are closed, the HTTP
// server shuts down, and the receive channel is closed once the read loops
// have drained.
func (h *HubTransport) Close() error {
	h.cancel()

	h.mu.Lock()
	for conn := range h.peers {
		_ = conn.Close(websocket.StatusGoingAway, "hub shutting down")
		delete(h.peers, conn)
	}
	h.mu.Unlock()

	var err error
	if h.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := h.server.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("hub shutdown: %w", shutdownErr)
		}
	}

	h.wg.Wait()
	close(h.recv)
	return err
}

func (h *HubTransport) handleBridge(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Err(err).Msg("websocket upgrade failed")
		return
	}

	tag := r.URL.Query().Get("peer")
	if tag == "" {
		tag = models.SourceContent
	}

	h.mu.Lock()
	h.peers[conn] = &hubPeer{tag: tag}
	count := len(h.peers)
	h.mu.Unlock()

	h.logger.Info().Str("peer", tag).Int("total", count).Msg("bridge peer connected")

	h.wg.Add(1)
	go h.readLoop(conn)
}

func (h *HubTransport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	count := len(h.peers)
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"peers": count})
}

// readLoop consumes frames from one peer connection. The listenerReady
// control frame flips the connection to listening; everything else is pushed
// onto the receive stream.
func (h *HubTransport) readLoop(conn *websocket.Conn) {
	defer h.wg.Done()
	defer h.removePeer(conn)

	for {
		_, data, err := conn.Read(h.ctx)
		if err != nil {
			return
		}

		var env models.Envelope
		if err = json.Unmarshal(data, &env); err != nil {
			h.logger.Debug().Err(err).Msg("dropping malformed frame")
			continue
		}

		if env.Event == listenerReadyEvent {
			h.mu.Lock()
			if peer, ok := h.peers[conn]; ok {
				peer.listening = true
				if env.Source != "" {
					peer.tag = env.Source
				}
			}
			h.mu.Unlock()
			continue
		}

		select {
		case h.recv <- &env:
		case <-h.ctx.Done():
			return
		}
	}
}

func (h *HubTransport) removePeer(conn *websocket.Conn) {
	h.mu.Lock()
	if _, exists := h.peers[conn]; exists {
		delete(h.peers, conn)
		count := len(h.peers)
		h.mu.Unlock()

		_ = conn.Close(websocket.StatusNormalClosure, "")
		h.logger.Info().Int("total", count).Msg("bridge peer disconnected")
		return
	}
	h.mu.Unlock()
}
