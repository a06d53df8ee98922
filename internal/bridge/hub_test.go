package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/models"
)

func startTestHub(t *testing.T) *HubTransport {
	t.Helper()
	hub := NewHubTransport("127.0.0.1:0", logger.Nop())
	require.NoError(t, hub.Start())
	t.Cleanup(func() { _ = hub.Close() })
	return hub
}

// hubClient is a raw WebSocket peer connected to the hub, standing in for
// the browser extension side.
type hubClient struct {
	conn *websocket.Conn
}

func dialHub(t *testing.T, hub *HubTransport, tag string) *hubClient {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws://"+hub.Addr()+"/bridge?peer="+tag, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })

	return &hubClient{conn: conn}
}

func (c *hubClient) send(t *testing.T, env *models.Envelope) {
	t.Helper()
	data, err := json.Marshal(env)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.conn.Write(ctx, websocket.MessageText, data))
}

func (c *hubClient) read(t *testing.T) *models.Envelope {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := c.conn.Read(ctx)
	require.NoError(t, err)

	var env models.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return &env
}

func (c *hubClient) markListening(t *testing.T) {
	t.Helper()
	c.send(t, &models.Envelope{Source: models.SourceBackground, Event: listenerReadyEvent})
}

func waitForPeers(t *testing.T, hub *HubTransport, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.peers) == want
	}, 2*time.Second, 10*time.Millisecond)
}

func waitForListening(t *testing.T, hub *HubTransport) {
	t.Helper()
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for _, peer := range hub.peers {
			if peer.listening {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubTransport_DeliverWithoutPeers(t *testing.T) {
	hub := startTestHub(t)

	err := hub.Deliver(context.Background(), &models.Envelope{Source: models.SourceSyncd})
	assert.ErrorIs(t, err, ErrPeerUnavailable)
}

func TestHubTransport_DeliverWithoutListener(t *testing.T) {
	hub := startTestHub(t)

	// Connected but never announced a listener.
	dialHub(t, hub, "bookmark-background")
	waitForPeers(t, hub, 1)

	err := hub.Deliver(context.Background(), &models.Envelope{Source: models.SourceSyncd})
	assert.ErrorIs(t, err, ErrNoListener)
}

func TestHubTransport_DeliverReachesListeningPeer(t *testing.T) {
	hub := startTestHub(t)

	client := dialHub(t, hub, "bookmark-background")
	waitForPeers(t, hub, 1)
	client.markListening(t)
	waitForListening(t, hub)

	sent := &models.Envelope{
		Source:    models.SourceSyncd,
		RequestID: "req-1",
		Payload:   &models.ActionPayload{Action: models.ActionPing},
	}
	require.NoError(t, hub.Deliver(context.Background(), sent))

	got := client.read(t)
	assert.Equal(t, "req-1", got.RequestID)
	require.NotNil(t, got.Payload)
	assert.Equal(t, models.ActionPing, got.Payload.Action)
}

func TestHubTransport_WakeReachesDeafPeer(t *testing.T) {
	hub := startTestHub(t)

	client := dialHub(t, hub, "bookmark-background")
	waitForPeers(t, hub, 1)

	require.NoError(t, hub.WakePeer(context.Background()))

	got := client.read(t)
	assert.Equal(t, wakeEvent, got.Event)
}

func TestHubTransport_PeerFramesReachReceive(t *testing.T) {
	hub := startTestHub(t)

	client := dialHub(t, hub, "bookmark-background")
	waitForPeers(t, hub, 1)

	client.send(t, &models.Envelope{
		Source: models.SourceBackground,
		Event:  models.EventBookmarkCreated,
	})

	select {
	case env := <-hub.Receive():
		assert.Equal(t, models.EventBookmarkCreated, env.Event)
	case <-time.After(2 * time.Second):
		t.Fatal("frame never reached the receive stream")
	}
}

func TestHubTransport_HealthEndpoint(t *testing.T) {
	hub := startTestHub(t)

	dialHub(t, hub, "bookmark-background")
	waitForPeers(t, hub, 1)

	resp, err := http.Get("http://" + hub.Addr() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body["peers"])
}

func TestHubTransport_CloseClosesReceive(t *testing.T) {
	hub := NewHubTransport("127.0.0.1:0", logger.Nop())
	require.NoError(t, hub.Start())

	dialHub(t, hub, "bookmark-background")
	waitForPeers(t, hub, 1)

	require.NoError(t, hub.Close())

	_, open := <-hub.Receive()
	assert.False(t, open)
}
