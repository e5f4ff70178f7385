// Package stream broadcasts calendar change events to connected
// server-sent-event clients.
package stream

import (
	"sync"
	"time"
)

// EventBookingsChanged tells clients to refetch calendar data.
const EventBookingsChanged = "bookings_changed"

// Event is a single server-sent event.
type Event struct {
	Name string
	Data any
}

// Hub fans events out to every subscribed client. A client that cannot
// keep up has the event dropped rather than blocking the broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new client and returns its event channel.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 8)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes the client and closes its channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BookingsChanged broadcasts a calendar change to every client.
func (h *Hub) BookingsChanged() {
	h.broadcast(Event{
		Name: EventBookingsChanged,
		Data: map[string]string{"changed_at": time.Now().UTC().Format(time.RFC3339)},
	})
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}
