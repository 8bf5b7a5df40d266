package picker

import (
	"math"

	"huepick/internal/colorconv"
	"huepick/internal/plane"
)

// The transitions below are pure: State in, State out, with the plane buffer
// as the only side effect (re-rendered when a transition moves the hue). The
// engine owns gating and notification around them.

// planePress samples the pressed pixel and, uniquely among pointer
// transitions, lets the sampled color re-derive the hue.
func planePress(s State, p *plane.Plane, cfg Config, x, y int) State {
	x, y = clampPoint(cfg, x, y)
	c := p.Sample(x, y)
	s.Color = c
	s.X, s.Y = x, y
	s.Hue = resyncHue(s.Hue, c, cfg.GrayTolerance)
	return s
}

// planeDrag re-samples under the moving pointer while the hue stays pinned to
// whatever the press established, even across gray pixels.
func planeDrag(s State, p *plane.Plane, cfg Config, x, y int, anchor float64) State {
	x, y = clampPoint(cfg, x, y)
	c := p.Sample(x, y)
	s.Color = c
	s.X, s.Y = x, y
	s.Hue = anchor
	return s
}

// barEdit moves the hue to the bar position, re-renders the plane for it, and
// re-samples the canonical color at the unchanged loupe position.
func barEdit(s State, p *plane.Plane, cfg Config, x int) State {
	x = clampInt(x, 0, cfg.BarW-1)
	s.Hue = math.Round(float64(x) / float64(cfg.BarW) * 360)
	ensureRendered(p, s.Hue)
	s.Color = p.Sample(s.X, s.Y)
	return s
}

// commitColor is the shared continuation of the numeric, hex, seed and remote
// paths: adopt the color, re-derive the hue under the grayscale rule, then
// relocate the loupe by inverse search on a plane rendered for that hue.
func commitColor(s State, p *plane.Plane, cfg Config, c colorconv.RGB) State {
	s.Color = c
	s.Hue = resyncHue(s.Hue, c, cfg.GrayTolerance)
	ensureRendered(p, s.Hue)
	s.X, s.Y = p.Locate(c)
	return s
}

// ensureRendered re-renders the plane when its buffer is stale for hue.
// Every transition that samples after moving the hue goes through here;
// sampling a stale buffer is the one ordering hazard in the design.
func ensureRendered(p *plane.Plane, hue float64) {
	if !p.Rendered() || p.RenderedHue() != hue {
		p.Render(hue)
	}
}

// resyncHue returns the hue implied by c in whole degrees, unless c is too
// close to gray to carry one, in which case the previous hue survives.
func resyncHue(prev float64, c colorconv.RGB, tol uint8) float64 {
	if c.Grayish(tol) {
		return prev
	}
	h, _, _ := colorconv.RGBToHSL(c)
	return roundHue(h)
}

// roundHue converts a [0, 1] hue fraction to whole degrees, folding the 360
// that rounding produces for near-red colors back to 0.
func roundHue(h float64) float64 {
	d := math.Round(h * 360)
	if d >= 360 {
		d = 0
	}
	return d
}

func clampPoint(cfg Config, x, y int) (int, int) {
	return clampInt(x, 0, cfg.PlaneW-1), clampInt(y, 0, cfg.PlaneH-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
