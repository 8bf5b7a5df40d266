package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"huepick/internal/colorconv"
	"huepick/internal/palette"
	"huepick/internal/picker"
)

// --- Custom Widget for Palette Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    colorconv.RGB
	OnTapped func(colorconv.RGB)
}

func newColorSwatch(c colorconv.RGB, tapped func(colorconv.RGB)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 0xff})
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewSwatchRow builds a tappable strip of palette presets. Tapping commits
// the preset through the engine like any other validated edit.
func NewSwatchRow(pal *palette.Palette, engine *picker.Engine) fyne.CanvasObject {
	onTapped := func(c colorconv.RGB) {
		engine.ApplyRGB(c)
	}

	row := container.NewGridWithColumns(4)
	for _, e := range pal.Entries {
		row.Add(newColorSwatch(e.Color, onTapped))
	}
	return container.NewVBox(widget.NewLabel(pal.Name), row)
}
