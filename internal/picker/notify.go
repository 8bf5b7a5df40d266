package picker

import "huepick/internal/colorconv"

// Change is the one normalized notification every accepted edit produces:
// the canonical channels plus the derived hex spelling, always computed from
// the same color so subscribers never see the two disagree.
type Change struct {
	R, G, B int
	Hex     string
}

// ChangeFor builds the notification payload for a color.
func ChangeFor(c colorconv.RGB) Change {
	return Change{R: int(c.R), G: int(c.G), B: int(c.B), Hex: c.Hex()}
}

// RGB returns the payload's color as a canonical triple.
func (ch Change) RGB() colorconv.RGB {
	return colorconv.RGB{R: uint8(ch.R), G: uint8(ch.G), B: uint8(ch.B)}
}

// Notifier fans engine events out to subscribers in registration order.
// Subscriptions are not safe to add concurrently with engine calls; wire
// everything up before Start.
type Notifier struct {
	changeFns []func(Change)
	readyFns  []func()
}

// OnChange registers fn to run after every accepted edit.
func (n *Notifier) OnChange(fn func(Change)) {
	n.changeFns = append(n.changeFns, fn)
}

// OnReady registers fn to run once, after initialization completes.
func (n *Notifier) OnReady(fn func()) {
	n.readyFns = append(n.readyFns, fn)
}

func (n *Notifier) emitChange(ch Change) {
	for _, fn := range n.changeFns {
		fn(ch)
	}
}

func (n *Notifier) emitReady() {
	for _, fn := range n.readyFns {
		fn()
	}
}
