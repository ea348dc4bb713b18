// Package events pushes booking lifecycle events to connected admin
// dashboards over websockets, so the agenda view updates without polling.
package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Event struct {
	Type      string    `json:"type"` // booking_created, booking_confirmed, booking_cancelled, booking_no_show
	BookingID string    `json:"booking_id"`
	SalonID   string    `json:"salon_id"`
	StaffID   string    `json:"staff_id,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher is what the lifecycle services depend on. A nil *Hub is a valid
// no-op publisher.
type Publisher interface {
	Publish(ev Event)
}

type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]string // conn -> salon id
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]string),
	}
}

func (h *Hub) Register(salonID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = salonID
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.conns[conn]; exists {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

// Publish fans the event out to every dashboard watching the salon. A write
// failure drops the connection; publishing never blocks the caller beyond
// the websocket write deadline.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}

	h.mu.RLock()
	targets := make([]*websocket.Conn, 0, len(h.conns))
	for conn, salonID := range h.conns {
		if salonID == ev.SalonID {
			targets = append(targets, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(ev); err != nil {
			h.Unregister(conn)
		}
	}
}
