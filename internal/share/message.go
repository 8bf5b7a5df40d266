// Package share synchronizes the picked color across instances on the local
// network: one instance hosts a websocket session, others join it, and every
// accepted edit is announced to the rest. Messages are tagged with the
// originating site ID so an instance can drop its own echoes.
package share

import (
	"huepick/internal/colorconv"
	"huepick/internal/picker"
)

// MessageColor is the only message type in the protocol today. The field
// exists so the protocol can grow without breaking old peers, which skip
// types they do not know.
const MessageColor = "color"

// Message is one frame on the wire.
type Message struct {
	Type string `json:"type"`
	Site string `json:"site"`
	R    int    `json:"r"`
	G    int    `json:"g"`
	B    int    `json:"b"`
	Hex  string `json:"hex"`
}

// ColorMessage wraps an engine change for the wire.
func ColorMessage(site string, ch picker.Change) Message {
	return Message{Type: MessageColor, Site: site, R: ch.R, G: ch.G, B: ch.B, Hex: ch.Hex}
}

// RGB returns the announced color with channels clamped, so a malformed or
// hostile frame can never produce an out-of-range color.
func (m Message) RGB() colorconv.RGB {
	return colorconv.RGB{
		R: colorconv.Clamp8(m.R),
		G: colorconv.Clamp8(m.G),
		B: colorconv.Clamp8(m.B),
	}
}
