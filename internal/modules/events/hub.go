package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event is the wire shape pushed to every connected dashboard client.
type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// client pairs a socket with a write lock; gorilla allows at most one
// concurrent writer per connection, and broadcasts can overlap.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(event Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteJSON(event)
}

type Hub struct {
	clients map[string]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register adds a connection and returns its id for later Unregister.
func (h *Hub) Register(conn *websocket.Conn) string {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	id := uuid.NewString()
	h.clients[id] = &client{conn: conn}
	return id
}

func (h *Hub) Unregister(id string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.clients[id]; exists {
		_ = c.conn.Close()
		delete(h.clients, id)
	}
}

// Broadcast pushes an event to every connection. Delivery is best
// effort: a failed write drops that connection and the rest continue.
func (h *Hub) Broadcast(eventType string, data any) {
	event := Event{Type: eventType, Data: data, At: time.Now().UTC()}

	h.mutex.RLock()
	clients := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		clients[id] = c
	}
	h.mutex.RUnlock()

	for id, c := range clients {
		if err := c.send(event); err != nil {
			h.Unregister(id)
		}
	}
}

func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, id)
	}
}
