package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cx-tal-miterani/ticket-admission/internal/events"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Subscriber is a source of flight events.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan events.Event, error)
}

// Client represents a WebSocket client connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	key  string
}

// Hub manages WebSocket connections per session flight
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     <-chan events.Event
	done       chan struct{}
	logger     *slog.Logger
	mu         sync.RWMutex
}

// NewHub creates a new Hub subscribed to source. The subscription starts
// here, so events published before Run is called are buffered, not lost.
func NewHub(ctx context.Context, source Subscriber, logger *slog.Logger) (*Hub, error) {
	ch, err := source.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     ch,
		done:       make(chan struct{}),
		logger:     logger,
	}, nil
}

// Run starts the hub's main loop. It returns when ctx is done, closing
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for key, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, key)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.key] == nil {
				h.clients[client.key] = make(map[*Client]bool)
			}
			h.clients[client.key][client] = true
			h.logger.Debug("websocket client registered", "key", client.key, "total", len(h.clients[client.key]))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case ev, ok := <-h.events:
			if !ok {
				h.events = nil
				continue
			}
			h.broadcast(ev)
		}
	}
}

func (h *Hub) broadcast(ev events.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warn("failed to marshal event", "error", err)
		return
	}

	key := ev.Key()
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[key] {
		select {
		case client.send <- data:
		default:
			// slow reader
			h.remove(client)
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.key]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	h.logger.Debug("websocket client unregistered", "key", client.key, "remaining", len(clients))
	if len(clients) == 0 {
		delete(h.clients, client.key)
	}
}

// ClientCount returns the number of clients watching key
func (h *Hub) ClientCount(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[key])
}

// HandleWebSocket handles GET /api/sessions/{id}/flights/{flight}/ws
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		key:  events.WatchKey(vars["id"], vars["flight"]),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only watches for the peer going away; clients never send.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
