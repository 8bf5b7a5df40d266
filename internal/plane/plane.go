// Package plane renders the saturation/lightness surface for a fixed hue and
// maps colors to surface coordinates and back.
package plane

import (
	"image"
	"math"

	"huepick/internal/colorconv"
)

// Plane is a W×H pixel buffer holding the saturation/lightness gradient for a
// single hue. Saturation runs 0→1 left to right, lightness 1→0 top to bottom,
// so the top edge is always white, the bottom edge always black and the left
// column gray regardless of hue.
type Plane struct {
	w, h        int
	img         *image.RGBA
	renderedHue float64
	rendered    bool
}

// New creates an unrendered plane. Both dimensions must be at least 2, and
// Render must be called before any Sample or Locate.
func New(w, h int) *Plane {
	return &Plane{
		w:   w,
		h:   h,
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

// Width returns the horizontal pixel count.
func (p *Plane) Width() int { return p.w }

// Height returns the vertical pixel count.
func (p *Plane) Height() int { return p.h }

// Render fills the buffer with the gradient for hue, given in degrees. The
// hue is recorded so callers can tell whether the buffer is stale.
func (p *Plane) Render(hue float64) {
	for y := 0; y < p.h; y++ {
		l := 1 - float64(y)/float64(p.h-1)
		for x := 0; x < p.w; x++ {
			s := float64(x) / float64(p.w-1)
			c := colorconv.HSLToRGB(hue/360, s, l)
			i := p.img.PixOffset(x, y)
			p.img.Pix[i+0] = c.R
			p.img.Pix[i+1] = c.G
			p.img.Pix[i+2] = c.B
			p.img.Pix[i+3] = 0xff
		}
	}
	p.renderedHue = hue
	p.rendered = true
}

// Rendered reports whether Render has run at least once.
func (p *Plane) Rendered() bool { return p.rendered }

// RenderedHue returns the hue the buffer currently holds. Meaningless before
// the first Render.
func (p *Plane) RenderedHue() float64 { return p.renderedHue }

// Image exposes the live render target for display. Treat it as read-only;
// it is rewritten in place by the next Render.
func (p *Plane) Image() *image.RGBA { return p.img }

// Sample reads the rendered color at (x, y). Coordinates must already be
// clamped to the plane bounds, and the buffer must be fresh for the hue in
// effect: sampling a stale render yields stale colors.
func (p *Plane) Sample(x, y int) colorconv.RGB {
	i := p.img.PixOffset(x, y)
	return colorconv.RGB{R: p.img.Pix[i], G: p.img.Pix[i+1], B: p.img.Pix[i+2]}
}

// Locate scans the rendered buffer for the position whose color is nearest
// the target in squared RGB distance. An exact match returns immediately;
// ties go to the first candidate in row-major order. Gray targets (equal
// channels) only ever match pixels that are themselves gray, so a gray never
// snaps onto a nearby chromatic pixel.
func (p *Plane) Locate(target colorconv.RGB) (int, int) {
	grayOnly := target.R == target.G && target.G == target.B

	bestX, bestY := 0, 0
	bestDist := math.MaxInt
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			c := p.Sample(x, y)
			if grayOnly && (c.R != c.G || c.G != c.B) {
				continue
			}
			d := colorconv.DistanceSq(target, c)
			if d == 0 {
				return x, y
			}
			if d < bestDist {
				bestDist = d
				bestX, bestY = x, y
			}
		}
	}
	return bestX, bestY
}
