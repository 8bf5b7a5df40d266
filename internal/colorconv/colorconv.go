// Package colorconv holds the RGB/HSL/hex conversions the picker is built on.
// RGB with 8-bit channels is the canonical form everywhere; HSL values travel
// as fractions in [0, 1] and are only turned into degrees/percent at the edges.
package colorconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is an 8-bit-per-channel color triple.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a lowercase hex string with a leading #,
// e.g. "#eb6f92".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer as an rgb() triple, e.g. "rgb(235, 111, 146)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Grayish reports whether the channels sit within tol of each other, meaning
// the color is too close to gray to carry a meaningful hue.
func (c RGB) Grayish(tol uint8) bool {
	max := c.R
	min := c.R
	for _, v := range [2]uint8{c.G, c.B} {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return int(max)-int(min) < int(tol)
}

// ParseHex parses a hex color like "#eb6f92" or "EB6F92". The leading # is
// optional; everything after it must be exactly six hex digits. This is the
// only validation hex input gets anywhere, so it is strict: signs, spaces and
// shorthand three-digit forms are all rejected.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// RGBToHSL converts c to hue, saturation and lightness, each in [0, 1].
// For pure grays the hue is mathematically undefined and comes back as 0;
// callers must not treat that zero as a real hue.
func RGBToHSL(c RGB) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l < 0.5 {
		s = d / (max + min)
	} else {
		s = d / (2 - max - min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h /= 6
	return h, s, l
}

// HSLToRGB converts hue, saturation and lightness in [0, 1] back to an RGB
// triple. Channels are rounded to the nearest integer, not truncated, so a
// round trip through RGBToHSL recovers the original bytes.
func HSLToRGB(h, s, l float64) RGB {
	if s == 0 {
		v := round255(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: round255(hueToChannel(p, q, h+1.0/3)),
		G: round255(hueToChannel(p, q, h)),
		B: round255(hueToChannel(p, q, h-1.0/3)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case 6*t < 1:
		return p + (q-p)*6*t
	case 2*t < 1:
		return q
	case 3*t < 2:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func round255(v float64) uint8 {
	n := math.Round(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// DistanceSq returns the squared Euclidean distance between two colors in RGB
// space. Good enough for nearest-pixel search; no perceptual weighting.
func DistanceSq(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Clamp8 squeezes an arbitrary int into a valid channel value.
func Clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
