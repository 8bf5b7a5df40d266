// Package picker owns the color state of the app: the canonical RGB value,
// the independently persisted hue, and the cached plane position, plus the
// entry points every edit funnels through. It is headless; the ui package
// renders whatever it says.
package picker

import (
	"strconv"
	"strings"

	"huepick/internal/colorconv"
	"huepick/internal/plane"
)

// Config sizes the discrete sampling surfaces and seeds the loupe.
type Config struct {
	PlaneW, PlaneH int // saturation/lightness plane in pixels, at least 2×2
	BarW           int // hue bar width in pixels

	// DefaultX, DefaultY place the loupe until a seed or an edit moves it.
	DefaultX, DefaultY int

	// GrayTolerance is the max-min channel spread below which a color counts
	// as gray and leaves the hue alone.
	GrayTolerance uint8
}

// DefaultConfig mirrors the stock widget dimensions.
func DefaultConfig() Config {
	return Config{
		PlaneW:        256,
		PlaneH:        256,
		BarW:          360,
		DefaultX:      128,
		DefaultY:      128,
		GrayTolerance: 10,
	}
}

// State is everything the picker knows about the current color.
//
// Color is the single source of truth. Hue is stored separately because it is
// underdetermined by gray colors and must survive them. X and Y are a cache
// of where Color sits (or sat nearest) on the plane; they are recomputed by
// inverse search whenever an edit arrives by value instead of by position.
type State struct {
	Color colorconv.RGB
	Hue   float64 // whole degrees in [0, 360)
	X, Y  int
}

// Engine applies edits to the picker state and guarantees exactly one change
// notification per accepted edit. All methods must be called from a single
// goroutine; in the app that is the fyne event loop.
type Engine struct {
	Notifier

	cfg     Config
	surface *plane.Plane
	state   State
	gest    gesture
	started bool
}

// New builds an engine around a fresh, unrendered plane. Call Start before
// anything else.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		surface: plane.New(cfg.PlaneW, cfg.PlaneH),
	}
}

// Config returns the dimensions the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state }

// Plane exposes the sampling surface for display. The buffer is rewritten in
// place whenever the hue moves; read it only between engine calls.
func (e *Engine) Plane() *plane.Plane { return e.surface }

// Start establishes the initial color and fires the ready signal exactly
// once. A seed of the form "r,g,b" is adopted with channels clamped to
// 0..255; an empty or unparseable seed falls back to sampling the default
// loupe position. Start emits no change notification: subscribers attach
// before Start and read the state directly once ready fires.
func (e *Engine) Start(seed string) {
	if e.started {
		return
	}
	e.started = true

	e.state.X = clampInt(e.cfg.DefaultX, 0, e.cfg.PlaneW-1)
	e.state.Y = clampInt(e.cfg.DefaultY, 0, e.cfg.PlaneH-1)

	if c, ok := parseSeed(seed); ok {
		e.state = commitColor(e.state, e.surface, e.cfg, c)
	} else {
		ensureRendered(e.surface, e.state.Hue)
		c := e.surface.Sample(e.state.X, e.state.Y)
		e.state.Color = c
		e.state.Hue = resyncHue(e.state.Hue, c, e.cfg.GrayTolerance)
	}
	e.emitReady()
}

// PlanePress begins a plane gesture at (x, y). The press is the only pointer
// event on the plane allowed to move the hue; the resulting hue is anchored
// for the rest of the gesture.
func (e *Engine) PlanePress(x, y int) {
	if !e.started || !e.gest.idle() {
		return
	}
	e.state = planePress(e.state, e.surface, e.cfg, x, y)
	e.gest = gesture{phase: gesturePlane, anchorHue: e.state.Hue}
	e.emitChange(ChangeFor(e.state.Color))
}

// PlaneDrag continues a plane gesture. Drags without a preceding press are
// ignored.
func (e *Engine) PlaneDrag(x, y int) {
	if e.gest.phase != gesturePlane {
		return
	}
	e.state = planeDrag(e.state, e.surface, e.cfg, x, y, e.gest.anchorHue)
	e.emitChange(ChangeFor(e.state.Color))
}

// PlaneRelease ends any plane gesture. It changes no state and emits nothing.
func (e *Engine) PlaneRelease() {
	if e.gest.phase == gesturePlane {
		e.gest = gesture{}
	}
}

// BarPress begins a hue bar gesture at bar offset x.
func (e *Engine) BarPress(x int) {
	if !e.started || !e.gest.idle() {
		return
	}
	e.gest = gesture{phase: gestureBar}
	e.state = barEdit(e.state, e.surface, e.cfg, x)
	e.emitChange(ChangeFor(e.state.Color))
}

// BarDrag continues a hue bar gesture; same behavior as the press, gated on
// the gesture being live.
func (e *Engine) BarDrag(x int) {
	if e.gest.phase != gestureBar {
		return
	}
	e.state = barEdit(e.state, e.surface, e.cfg, x)
	e.emitChange(ChangeFor(e.state.Color))
}

// BarRelease ends any hue bar gesture.
func (e *Engine) BarRelease() {
	if e.gest.phase == gestureBar {
		e.gest = gesture{}
	}
}

// CommitRGB applies a numeric field commit. All three strings must parse as
// integers in 0..255; otherwise the whole commit is ignored and nothing is
// emitted, leaving the previous state untouched.
func (e *Engine) CommitRGB(r, g, b string) {
	if !e.started {
		return
	}
	c, ok := parseChannels(r, g, b)
	if !ok {
		return
	}
	e.state = commitColor(e.state, e.surface, e.cfg, c)
	e.emitChange(ChangeFor(e.state.Color))
}

// CommitHex applies a hex field commit. ParseHex is the entire gate: input
// that is not an optional # plus six hex digits, padding included, is
// ignored without emitting.
func (e *Engine) CommitHex(s string) {
	if !e.started {
		return
	}
	c, err := colorconv.ParseHex(s)
	if err != nil {
		return
	}
	e.state = commitColor(e.state, e.surface, e.cfg, c)
	e.emitChange(ChangeFor(e.state.Color))
}

// ApplyRGB commits an already validated color, the path shared-session
// updates and swatch taps arrive through. Same continuation as a field
// commit, including the notification.
func (e *Engine) ApplyRGB(c colorconv.RGB) {
	if !e.started {
		return
	}
	e.state = commitColor(e.state, e.surface, e.cfg, c)
	e.emitChange(ChangeFor(e.state.Color))
}

// parseChannels validates a numeric field commit: three integers, each in
// 0..255, rejected wholesale on the first failure.
func parseChannels(rs, gs, bs string) (colorconv.RGB, bool) {
	var out [3]uint8
	for i, s := range [3]string{rs, gs, bs} {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 || n > 255 {
			return colorconv.RGB{}, false
		}
		out[i] = uint8(n)
	}
	return colorconv.RGB{R: out[0], G: out[1], B: out[2]}, true
}

// parseSeed parses the optional "r,g,b" startup seed. Unlike field commits,
// out-of-range channels are clamped rather than rejected; a seed that is not
// three integers is dropped wholesale and the default position is sampled
// instead.
func parseSeed(seed string) (colorconv.RGB, bool) {
	if seed == "" {
		return colorconv.RGB{}, false
	}
	parts := strings.Split(seed, ",")
	if len(parts) != 3 {
		return colorconv.RGB{}, false
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return colorconv.RGB{}, false
		}
		ch[i] = colorconv.Clamp8(n)
	}
	return colorconv.RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}
