package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"huepick/internal/palette"
	"huepick/internal/picker"
)

// RunApp assembles the picker window around the engine and blocks until it
// closes. The engine must not have been started yet: RunApp subscribes the
// widgets first, then starts it with the seed, so the first paint already
// shows the seeded color.
func RunApp(engine *picker.Engine, pal *palette.Palette, seed, status string) {
	a := app.New()
	win := a.NewWindow("huepick")

	planeView := NewPlaneWidget(engine)
	hueBar := NewHueBar(engine)
	fields := NewFields(engine)
	swatches := NewSwatchRow(pal, engine)

	engine.OnChange(func(ch picker.Change) {
		fields.Apply(ch)
		planeView.Refresh()
		hueBar.Refresh()
	})

	engine.Start(seed)
	fields.Apply(picker.ChangeFor(engine.State().Color))

	side := container.NewVBox(
		fields.Container(),
		widget.NewSeparator(),
		swatches,
	)
	if status != "" {
		lbl := widget.NewLabel(status)
		lbl.Wrapping = fyne.TextWrapWord
		side.Add(widget.NewSeparator())
		side.Add(lbl)
	}

	center := container.NewBorder(nil, hueBar, nil, nil, planeView)
	win.SetContent(container.NewBorder(nil, nil, nil, side, center))
	win.Resize(fyne.NewSize(680, 440))
	win.ShowAndRun()
}
