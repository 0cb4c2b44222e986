// Package live streams store snapshots to websocket clients.
package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/rstore/internal/logging"
	"github.com/vango-dev/rstore/pkg/store"
)

// client serialises writes to one connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub pushes a JSON snapshot of one store to every connected client after
// each store notification. New clients get the current snapshot on connect.
type Hub[T any] struct {
	store  *store.Store[T]
	logger *slog.Logger

	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader

	unsubscribe func()
}

// NewHub subscribes to s. Call Close to detach.
func NewHub[T any](s *store.Store[T], logger *slog.Logger) *Hub[T] {
	if logger == nil {
		logger = logging.Nop()
	}
	h := &Hub[T]{
		store:   s,
		logger:  logger.With("store", s.Name()),
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	h.unsubscribe = s.Subscribe(h.broadcast)
	return h
}

// ServeHTTP upgrades the request and keeps the connection until the client
// goes away.
func (h *Hub[T]) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	// Hold the client's write lock until the first snapshot is out, so a
	// concurrent broadcast can't overtake it.
	c.mu.Lock()
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	data, err := json.Marshal(h.store.Snapshot())
	if err == nil {
		err = conn.WriteMessage(websocket.TextMessage, data)
	}
	c.mu.Unlock()
	if err != nil {
		h.drop(c)
		return
	}
	h.logger.Debug("live client connected", "remote", req.RemoteAddr)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
}

func (h *Hub[T]) broadcast(snap store.Snapshot[T]) {
	data, err := json.Marshal(snap)
	if err != nil {
		h.logger.Warn("snapshot encode failed", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.drop(c)
		}
	}
}

func (h *Hub[T]) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub[T]) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close detaches from the store and closes all client connections.
func (h *Hub[T]) Close() {
	h.unsubscribe()

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}
