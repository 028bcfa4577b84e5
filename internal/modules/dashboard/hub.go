package dashboard

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pixelcraft/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// FeedEvent is what connected dashboard clients receive when a quote lands.
type FeedEvent struct {
	QuoteID     string    `json:"quote_id"`
	ServiceSlug string    `json:"service_slug"`
	BudgetRange string    `json:"budget_range"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

// connection is a single feed client. All writes to conn go through the send
// channel and its writePump; the websocket allows only one concurrent writer.
type connection struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts new-quote events to every connected admin client. A slow or
// dead client is skipped or dropped; it never affects the others, and never
// the submitting request.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// ServeWS registers the connection and blocks until the client goes away.
func (h *Hub) ServeWS(conn *websocket.Conn) {
	c := &connection{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// PublishQuote implements intake.FeedPublisher. The event is queued per
// connection; a client whose buffer is full just misses it.
func (h *Hub) PublishQuote(q *domain.Quote) {
	data, err := json.Marshal(FeedEvent{
		QuoteID:     q.ID,
		ServiceSlug: q.ServiceSlug,
		BudgetRange: q.BudgetRange,
		Priority:    string(q.Priority),
		CreatedAt:   q.CreatedAt,
	})
	if err != nil {
		zap.L().Error("feed event marshal failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		select {
		case c.send <- data:
		default:
			// Client too slow — skip
		}
	}
}

func (h *Hub) ConnectedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}

// readPump drains control frames; any read error means the client went away.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump is the single writer for its connection.
func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
