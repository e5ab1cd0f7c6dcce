// Package push streams refresh results to connected dashboards over
// WebSocket, implementing the rendering capability of the core.
package push

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"SignalDeck/internal/domain/models"
	"SignalDeck/pkg/logger"
)

const (
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The dashboard is a static page served from anywhere.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Event is one push frame.
type Event struct {
	Type string      `json:"type"` // signals, statistics, loading, error
	Data interface{} `json:"data"`
}

// Hub broadcasts render events to every connected client. It implements
// repository.Renderer.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *logger.Logger
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// NewHub creates an empty hub.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{clients: make(map[*client]struct{}), log: log}
}

// Handler upgrades the request and keeps the connection until the peer
// goes away.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("push: upgrade failed", logger.Error(err))
			return
		}

		c := &client{conn: conn, send: make(chan Event, 16)}
		h.mu.Lock()
		h.clients[c] = struct{}{}
		h.mu.Unlock()
		h.log.Debug("push: client connected", logger.Int("clients", h.ClientCount()))

		go h.writeLoop(c)
		go h.readLoop(c)
	}
}

// Render implements repository.Renderer.
func (h *Hub) Render(signals []models.Signal) {
	h.broadcast(Event{Type: "signals", Data: signals})
}

func (h *Hub) RenderStatistics(stats models.Statistics) {
	h.broadcast(Event{Type: "statistics", Data: stats})
}

func (h *Hub) SetLoading(loading bool) {
	h.broadcast(Event{Type: "loading", Data: loading})
}

func (h *Hub) RenderError(message string) {
	h.broadcast(Event{Type: "error", Data: message})
}

// ClientCount returns the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			// Slow consumer; drop the frame rather than block a refresh.
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(ev); err != nil {
				h.drop(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(c)
				return
			}
		}
	}
}

func (h *Hub) readLoop(c *client) {
	// Clients never send meaningful frames; the read loop only detects
	// closure.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}
