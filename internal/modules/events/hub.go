package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one entity mutation pushed to connected dashboards. Clients use
// it as a staleness signal: whatever report or listing they hold for that
// resource should be refetched.
type Event struct {
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	ID       int64     `json:"id"`
	At       time.Time `json:"at"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// client wraps a connection with its own write lock. gorilla/websocket
// allows at most one concurrent writer per connection, and Publish runs on
// whatever request goroutine performed the mutation.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(event Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(event)
}

// Hub fans entity-change events out to every connected client.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[userID]; exists {
		_ = old.conn.Close()
	}

	h.clients[userID] = &client{conn: conn}
}

// Unregister drops the user's entry only while it still holds conn. A
// handler shutting down after its connection was replaced must not evict
// the replacement.
func (h *Hub) Unregister(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	cl, exists := h.clients[userID]
	if !exists || cl.conn != conn {
		return
	}

	_ = cl.conn.Close()
	delete(h.clients, userID)
}

func (h *Hub) ConnectedCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

// Publish broadcasts a change event to all connected clients. Dead
// connections are dropped on write failure.
func (h *Hub) Publish(resource, action string, id int64) {
	event := Event{
		Resource: resource,
		Action:   action,
		ID:       id,
		At:       time.Now(),
	}

	h.mutex.RLock()
	clients := make(map[int64]*client, len(h.clients))
	for userID, cl := range h.clients {
		clients[userID] = cl
	}
	h.mutex.RUnlock()

	for userID, cl := range clients {
		if err := cl.send(event); err != nil {
			h.Unregister(userID, cl.conn)
		}
	}
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, cl := range h.clients {
		_ = cl.conn.Close()
		delete(h.clients, userID)
	}
}
