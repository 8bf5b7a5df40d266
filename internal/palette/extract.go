package palette

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"

	"huepick/internal/colorconv"
)

// FromImage extracts the n most common colors from an image. Channels are
// quantized into 16-wide buckets so near-identical pixels pool together, and
// the image is shrunk first; dominant colors survive the resampling.
func FromImage(img image.Image, n int) *Palette {
	small := imaging.Resize(img, 64, 0, imaging.Lanczos)

	counts := make(map[colorconv.RGB]int)
	bounds := small.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := small.At(x, y).RGBA()
			q := colorconv.RGB{
				R: quantize(uint8(r >> 8)),
				G: quantize(uint8(g >> 8)),
				B: quantize(uint8(b >> 8)),
			}
			counts[q]++
		}
	}

	type freq struct {
		color colorconv.RGB
		count int
	}
	ranked := make([]freq, 0, len(counts))
	for c, count := range counts {
		ranked = append(ranked, freq{color: c, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].color.Hex() < ranked[j].color.Hex()
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	pal := &Palette{Name: "extracted"}
	for i := 0; i < n; i++ {
		pal.Entries = append(pal.Entries, Entry{
			Name:  fmt.Sprintf("swatch-%02d", i+1),
			Color: ranked[i].color,
		})
	}
	return pal
}

// quantize snaps a channel to the bottom of its 16-wide bucket.
func quantize(v uint8) uint8 {
	return v / 16 * 16
}
