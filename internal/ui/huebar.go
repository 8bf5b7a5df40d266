package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"huepick/internal/colorconv"
	"huepick/internal/picker"
)

// HueBar is the horizontal hue strip under the plane. The marker position is
// derived from the engine's hue on every draw; it is never stored, so it can
// never drift out of sync.
type HueBar struct {
	widget.BaseWidget
	engine *picker.Engine
}

var _ fyne.Widget = (*HueBar)(nil)
var _ fyne.Draggable = (*HueBar)(nil)
var _ desktop.Mouseable = (*HueBar)(nil)

func NewHueBar(engine *picker.Engine) *HueBar {
	b := &HueBar{engine: engine}
	b.ExtendBaseWidget(b)
	return b
}

func (b *HueBar) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.engine.BarPress(b.toBar(e.Position))
}

func (b *HueBar) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.engine.BarRelease()
	}
}

func (b *HueBar) Dragged(e *fyne.DragEvent) {
	b.engine.BarDrag(b.toBar(e.Position))
}

func (b *HueBar) DragEnd() {
	b.engine.BarRelease()
}

func (b *HueBar) toBar(pos fyne.Position) int {
	size := b.Size()
	if size.Width <= 0 {
		return 0
	}
	return int(pos.X / size.Width * float32(b.engine.Config().BarW))
}

func (b *HueBar) CreateRenderer() fyne.WidgetRenderer {
	r := &hueBarRenderer{bar: b}
	r.raster = canvas.NewRaster(b.draw)
	return r
}

func (b *HueBar) draw(outW, outH int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	if outW == 0 || outH == 0 {
		return out
	}

	for x := 0; x < outW; x++ {
		c := colorconv.HSLToRGB(float64(x)/float64(outW), 1, 0.5)
		for y := 0; y < outH; y++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = 0xff
		}
	}

	// Marker: white notch with black flanks at the current hue.
	mx := int(b.engine.State().Hue / 360 * float64(outW))
	for dx := -2; dx <= 2; dx++ {
		x := mx + dx
		if x < 0 || x >= outW {
			continue
		}
		v := uint8(0)
		if dx == 0 {
			v = 0xff
		}
		for y := 0; y < outH; y++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
			out.Pix[i+3] = 0xff
		}
	}
	return out
}

type hueBarRenderer struct {
	bar    *HueBar
	raster *canvas.Raster
}

func (r *hueBarRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *hueBarRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *hueBarRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.bar.engine.Config().PlaneW), 26)
}

func (r *hueBarRenderer) Refresh() {
	canvas.Refresh(r.raster)
}

func (r *hueBarRenderer) Destroy() {}
