package ws

import (
	"encoding/json"
	"sync"
)

// Client represents a single WebSocket connection. A client with UserID 0
// is a gateway subscription and receives every user's events.
type Client struct {
	UserID int64
	Role   string
	Send   chan []byte
	Hub    *Hub // set so Close() can unregister
	mu     sync.Mutex
	closed bool
}

func NewClient(userID int64, role string) *Client {
	return &Client{UserID: userID, Role: role, Send: make(chan []byte, 256)}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.Hub != nil {
		c.Hub.unregister(c)
	}
}

// Hub maintains the set of active clients and broadcasts to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	// userID -> clients (one user can have multiple connections)
	byUser   map[int64]map[*Client]struct{}
	firehose map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[*Client]struct{}),
		byUser:   make(map[int64]map[*Client]struct{}),
		firehose: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Hub = h
	h.clients[c] = struct{}{}
	if c.UserID == 0 {
		h.firehose[c] = struct{}{}
		return
	}
	if h.byUser[c.UserID] == nil {
		h.byUser[c.UserID] = make(map[*Client]struct{})
	}
	h.byUser[c.UserID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	delete(h.firehose, c)
	if m := h.byUser[c.UserID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byUser, c.UserID)
		}
	}
}

// BroadcastToUser delivers payload to userID's connections and to every
// gateway subscription. Slow clients drop messages.
func (h *Hub) BroadcastToUser(userID int64, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.byUser[userID])+len(h.firehose))
	for c := range h.byUser[userID] {
		clients = append(clients, c)
	}
	for c := range h.firehose {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	send(clients, data)
}

func (h *Hub) BroadcastAll(payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	send(clients, data)
}

func send(clients []*Client, data []byte) {
	for _, c := range clients {
		c.mu.Lock()
		if !c.closed {
			select {
			case c.Send <- data:
			default:
			}
		}
		c.mu.Unlock()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
