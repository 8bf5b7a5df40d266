package share

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks every connected peer and fans messages out to them. The single
// mutex also serializes writes: gorilla conns allow one writer at a time, and
// broadcasts arrive both from the UI goroutine and from per-peer readers.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

// Add registers a peer connection.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	log.Printf("[share] peer connected: %s", conn.RemoteAddr())
}

// Remove drops a peer connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	log.Printf("[share] peer disconnected: %s", conn.RemoteAddr())
}

// Broadcast sends msg to every peer except the excluded one, which is how a
// relay avoids echoing a frame straight back at its sender.
func (h *Hub) Broadcast(msg Message, exclude *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if conn == exclude {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("[share] send to %s: %v", conn.RemoteAddr(), err)
		}
	}
}

// Count returns the number of connected peers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
