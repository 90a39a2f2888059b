package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message types.
const (
	TypeSnapshot = "snapshot"
	TypeShutdown = "shutdown"
)

// Message is one frame sent to a client. Snapshot frames carry the full
// current result of the stream's query in Data.
type Message struct {
	Type   string `json:"type"`
	Entity string `json:"entity,omitempty"`
	ID     int64  `json:"id,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// NewSnapshot creates a snapshot Message for an entity stream. id is the
// owning list for item streams and zero otherwise.
func NewSnapshot(entity string, id int64, data any) Message {
	return Message{
		Type:   TypeSnapshot,
		Entity: entity,
		ID:     id,
		Data:   data,
	}
}

// Hub maintains the set of active WebSocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients, whatever they are
// subscribed to.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		c.enqueue(data)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
