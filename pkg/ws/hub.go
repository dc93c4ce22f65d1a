package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn wraps a websocket connection with a write lock. gorilla/websocket
// permits at most one concurrent writer per connection, and a watcher's
// connection is written to both by its own stream loop and by hub
// broadcasts, so every write must go through this wrapper.
type Conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func NewConn(c *websocket.Conn) *Conn {
	return &Conn{ws: c}
}

func (c *Conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.ws.WriteJSON(v)
}

// Hub tracks websocket watchers per request id. A request id can have any
// number of watchers (the form plus however many tabs are open on it).
type Hub struct {
	mu       sync.RWMutex
	watchers map[string]map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{watchers: map[string]map[*Conn]struct{}{}}
}

func (h *Hub) Add(id string, c *Conn) {
	h.mu.Lock()
	set, ok := h.watchers[id]
	if !ok {
		set = map[*Conn]struct{}{}
		h.watchers[id] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(id string, c *Conn) {
	h.mu.Lock()
	if set, ok := h.watchers[id]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.watchers, id)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) Count(id string) int {
	h.mu.RLock()
	n := len(h.watchers[id])
	h.mu.RUnlock()
	return n
}

// Broadcast writes v as JSON to every watcher of id. Write failures are
// left for the watcher's own read loop to notice and clean up.
func (h *Hub) Broadcast(id string, v interface{}) {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.watchers[id]))
	for c := range h.watchers[id] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		_ = c.WriteJSON(v)
	}
}
