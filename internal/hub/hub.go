// Package hub tracks the clients connected to a server so they can be
// counted, notified of shared changes and drained on shutdown.
package hub

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Registry is the interface clients use to talk to the hub.
type Registry interface {
	Register(username string) *Handle
	Unregister(id uuid.UUID)
	Players() int
	Broadcast(ev Event)
}

// EventType identifies a hub event.
type EventType int

const (
	EventServerShutdown     EventType = iota
	EventLeaderboardChanged           // another client submitted a score
)

// Event is sent from the hub to a client.
type Event struct {
	Type EventType
	From uuid.UUID // originating client, zero for the server
}

// Handle represents a client's registration.
type Handle struct {
	ID       uuid.UUID
	Username string
	EventsCh chan Event
}

// Hub is the client registry. It is safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Handle
	logger  *log.Logger
}

// Compile-time check that Hub implements Registry.
var _ Registry = (*Hub)(nil)

// New creates an empty hub.
func New(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients: make(map[uuid.UUID]*Handle),
		logger:  logger,
	}
}

// Register adds a client and returns its handle.
func (h *Hub) Register(username string) *Handle {
	handle := &Handle{
		ID:       uuid.New(),
		Username: username,
		EventsCh: make(chan Event, 16),
	}

	h.mu.Lock()
	h.clients[handle.ID] = handle
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client registered", "id", handle.ID, "user", username, "players", n)
	return handle
}

// Unregister removes a client and closes its event channel.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	handle, ok := h.clients[id]
	if ok {
		close(handle.EventsCh)
		delete(h.clients, id)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info("client unregistered", "id", id, "user", handle.Username, "players", n)
	}
}

// Players returns the number of connected clients.
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers ev to every client except its sender. Clients whose
// queue is full miss the event.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, handle := range h.clients {
		if id == ev.From {
			continue
		}
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to the given timeout. The caller should stop accepting connections
// before calling it.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.Broadcast(Event{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			h.logger.Warn("shutdown timeout, clients still connected", "players", h.Players())
			return
		case <-ticker.C:
			if h.Players() == 0 {
				return
			}
		}
	}
}
