package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"huepick/internal/picker"
)

// Fields binds the numeric and hex entries plus the preview swatch to the
// engine. Commits flow in on Enter; accepted changes flow back out through
// Apply. Typing alone never commits, so half-typed values cannot disturb the
// engine.
type Fields struct {
	R, G, B *widget.Entry
	Hex     *widget.Entry
	Preview *canvas.Rectangle

	engine *picker.Engine
}

func NewFields(engine *picker.Engine) *Fields {
	f := &Fields{
		R:       widget.NewEntry(),
		G:       widget.NewEntry(),
		B:       widget.NewEntry(),
		Hex:     widget.NewEntry(),
		Preview: canvas.NewRectangle(color.Black),
		engine:  engine,
	}
	f.Preview.SetMinSize(fyne.NewSize(0, 56))

	commit := func(string) {
		f.engine.CommitRGB(f.R.Text, f.G.Text, f.B.Text)
	}
	f.R.OnSubmitted = commit
	f.G.OnSubmitted = commit
	f.B.OnSubmitted = commit
	f.Hex.OnSubmitted = func(s string) {
		f.engine.CommitHex(s)
	}
	return f
}

// Apply updates the displayed values from a change notification. SetText does
// not fire OnSubmitted, so applying never loops back into a commit.
func (f *Fields) Apply(ch picker.Change) {
	f.R.SetText(strconv.Itoa(ch.R))
	f.G.SetText(strconv.Itoa(ch.G))
	f.B.SetText(strconv.Itoa(ch.B))
	f.Hex.SetText(ch.Hex)
	f.Preview.FillColor = color.NRGBA{R: uint8(ch.R), G: uint8(ch.G), B: uint8(ch.B), A: 0xff}
	f.Preview.Refresh()
}

// Container lays the preview over the labelled entries.
func (f *Fields) Container() fyne.CanvasObject {
	grid := container.NewGridWithColumns(2,
		widget.NewLabel("R"), f.R,
		widget.NewLabel("G"), f.G,
		widget.NewLabel("B"), f.B,
		widget.NewLabel("Hex"), f.Hex,
	)
	return container.NewVBox(f.Preview, grid)
}
