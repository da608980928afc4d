package websocket

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cx-tal-miterani/ticket-admission/internal/events"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHub(t *testing.T) (*Hub, *events.Bus, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	bus := events.NewBus(nil)
	hub, err := NewHub(ctx, bus, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	go hub.Run(ctx)

	r := mux.NewRouter()
	r.HandleFunc("/api/sessions/{id}/flights/{flight}/ws", hub.HandleWebSocket)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		cancel()
		bus.Close()
	})
	return hub, bus, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_DeliversEventsForWatchedFlight(t *testing.T) {
	hub, bus, srv := setupHub(t)
	conn := dial(t, srv, "/api/sessions/s1/flights/F1/ws")

	require.Eventually(t, func() bool {
		return hub.ClientCount(events.WatchKey("s1", "F1")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, bus.Publish(events.Event{
		Type:      events.TypeTicketsSold,
		SessionID: "s1",
		Flight:    "F2",
		Lines:     []string{"sold F2 0 0 0"},
	}))
	require.NoError(t, bus.Publish(events.Event{
		Type:      events.TypeTicketsSold,
		SessionID: "s2",
		Flight:    "F1",
		Lines:     []string{"sold F1 0 0 0"},
	}))
	require.NoError(t, bus.Publish(events.Event{
		Type:      events.TypeTicketsSold,
		SessionID: "s1",
		Flight:    "F1",
		Lines:     []string{"sold F1 1 0 1"},
	}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got events.Event
	require.NoError(t, conn.ReadJSON(&got))

	assert.Equal(t, events.TypeTicketsSold, got.Type)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, "F1", got.Flight)
	assert.Equal(t, []string{"sold F1 1 0 1"}, got.Lines)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, _, srv := setupHub(t)
	key := events.WatchKey("s1", "F1")

	conn := dial(t, srv, "/api/sessions/s1/flights/F1/ws")
	require.Eventually(t, func() bool {
		return hub.ClientCount(key) == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool {
		return hub.ClientCount(key) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
