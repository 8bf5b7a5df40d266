package share

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Host serves a color session over websocket. Local edits broadcast to every
// peer; a frame from one peer is applied locally and relayed to the others,
// excluding the sender.
type Host struct {
	site  string
	hub   *Hub
	srv   *http.Server
	apply func(Message)

	upgrader websocket.Upgrader
}

// NewHost builds a host for the given site ID. apply is invoked from per-peer
// reader goroutines for every frame that did not originate here; the caller
// decides how to hop onto its own goroutine.
func NewHost(site string, apply func(Message)) *Host {
	return &Host{
		site:  site,
		hub:   NewHub(),
		apply: apply,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Session peers are plain Go clients on the LAN, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ListenAndServe blocks serving the session on the port until Close.
func (h *Host) ListenAndServe(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handle)
	h.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("[share] hosting session on port %d", port)
	if err := h.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("session server: %w", err)
	}
	return nil
}

func (h *Host) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[share] upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	h.hub.Add(conn)

	go func() {
		defer func() {
			h.hub.Remove(conn)
			conn.Close()
		}()
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				log.Printf("[share] peer %s dropped: %v", conn.RemoteAddr(), err)
				return
			}
			if msg.Type != MessageColor || msg.Site == h.site {
				continue
			}
			h.apply(msg)
			h.hub.Broadcast(msg, conn)
		}
	}()
}

// AnnounceChange publishes a local edit to every peer.
func (h *Host) AnnounceChange(msg Message) {
	h.hub.Broadcast(msg, nil)
}

// Peers returns how many clients are connected right now.
func (h *Host) Peers() int {
	return h.hub.Count()
}

// Close shuts the server down; connected peers see their reads fail.
func (h *Host) Close() error {
	if h.srv == nil {
		return nil
	}
	return h.srv.Close()
}
