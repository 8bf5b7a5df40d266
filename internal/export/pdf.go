// Package export renders palettes to shareable PDF sheets.
package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"huepick/internal/colorconv"
	"huepick/internal/palette"
)

// A4 portrait, millimetres.
const (
	pageTop    = 28.0
	pageBottom = 280.0
	marginX    = 16.0
	rowH       = 14.0
	swatchW    = 42.0
)

// Sheet writes an A4 PDF with one row per palette entry: the swatch itself
// plus its hex, rgb() and hsl() spellings.
func Sheet(path string, pal *palette.Palette) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetFont("Helvetica", "B", 16)
	p.Text(marginX, 18, pal.Name)
	p.SetDrawColor(120, 120, 120)
	p.SetLineWidth(0.2)

	y := pageTop
	for _, e := range pal.Entries {
		if y+rowH > pageBottom {
			p.AddPage()
			y = pageTop
		}

		p.SetFillColor(int(e.Color.R), int(e.Color.G), int(e.Color.B))
		p.Rect(marginX, y, swatchW, rowH-3, "FD")

		p.SetTextColor(30, 30, 30)
		p.SetFont("Helvetica", "B", 10)
		p.Text(marginX+swatchW+6, y+4.5, e.Name)
		p.SetFont("Helvetica", "", 9)
		p.SetTextColor(90, 90, 90)
		p.Text(marginX+swatchW+6, y+9.5, spellings(e.Color))

		y += rowH
	}

	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing palette sheet: %w", err)
	}
	return nil
}

// spellings formats the three notations shown under each swatch name.
func spellings(c colorconv.RGB) string {
	h, s, l := colorconv.RGBToHSL(c)
	return fmt.Sprintf("%s   %s   hsl(%.0f, %.0f%%, %.0f%%)", c.Hex(), c, h*360, s*100, l*100)
}
