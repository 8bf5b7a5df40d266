package ui

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"huepick/internal/colorconv"
	"huepick/internal/picker"
)

// PlaneWidget shows the saturation/lightness plane with a ring marking the
// loupe position. Every pointer event is forwarded to the engine; the widget
// redraws from engine state and keeps none of its own.
type PlaneWidget struct {
	widget.BaseWidget
	engine *picker.Engine
}

var _ fyne.Widget = (*PlaneWidget)(nil)
var _ fyne.Draggable = (*PlaneWidget)(nil)
var _ desktop.Mouseable = (*PlaneWidget)(nil)

func NewPlaneWidget(engine *picker.Engine) *PlaneWidget {
	w := &PlaneWidget{engine: engine}
	w.ExtendBaseWidget(w)
	return w
}

func (w *PlaneWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := w.toPlane(e.Position)
	w.engine.PlanePress(x, y)
}

func (w *PlaneWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.engine.PlaneRelease()
	}
}

func (w *PlaneWidget) Dragged(e *fyne.DragEvent) {
	x, y := w.toPlane(e.Position)
	w.engine.PlaneDrag(x, y)
}

func (w *PlaneWidget) DragEnd() {
	w.engine.PlaneRelease()
}

// toPlane converts a widget-local position to plane pixel coordinates. The
// engine clamps, so overshooting the edges mid-drag is fine.
func (w *PlaneWidget) toPlane(pos fyne.Position) (int, int) {
	size := w.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return 0, 0
	}
	cfg := w.engine.Config()
	x := int(pos.X / size.Width * float32(cfg.PlaneW))
	y := int(pos.Y / size.Height * float32(cfg.PlaneH))
	return x, y
}

func (w *PlaneWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &planeRenderer{plane: w}
	r.raster = canvas.NewRaster(w.draw)
	return r
}

// draw scales the engine's plane buffer to the widget and stamps the loupe
// ring on top.
func (w *PlaneWidget) draw(outW, outH int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	if outW == 0 || outH == 0 {
		return out
	}
	src := w.engine.Plane().Image()
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()

	for y := 0; y < outH; y++ {
		sy := y * srcH / outH
		for x := 0; x < outW; x++ {
			sx := x * srcW / outW
			i := src.PixOffset(sx, sy)
			o := out.PixOffset(x, y)
			copy(out.Pix[o:o+4], src.Pix[i:i+4])
		}
	}

	st := w.engine.State()
	cx := int((float64(st.X) + 0.5) * float64(outW) / float64(srcW))
	cy := int((float64(st.Y) + 0.5) * float64(outH) / float64(srcH))
	drawRing(out, cx, cy, 6, markerShade(st.Color))
	return out
}

// markerShade picks black or white so the ring stays visible on the pixel
// under it.
func markerShade(c colorconv.RGB) color.Color {
	if _, _, l := colorconv.RGBToHSL(c); l > 0.6 {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// drawRing stamps a two-pixel circle outline onto img, skipping anything that
// falls outside the bounds.
func drawRing(img *image.RGBA, cx, cy, r int, c color.Color) {
	for deg := 0; deg < 360; deg++ {
		rad := float64(deg) * math.Pi / 180
		sin, cos := math.Sincos(rad)
		for _, rr := range [2]int{r, r + 1} {
			x := cx + int(math.Round(float64(rr)*cos))
			y := cy + int(math.Round(float64(rr)*sin))
			if image.Pt(x, y).In(img.Bounds()) {
				img.Set(x, y, c)
			}
		}
	}
}

type planeRenderer struct {
	plane  *PlaneWidget
	raster *canvas.Raster
}

func (r *planeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *planeRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *planeRenderer) MinSize() fyne.Size {
	cfg := r.plane.engine.Config()
	return fyne.NewSize(float32(cfg.PlaneW), float32(cfg.PlaneH))
}

func (r *planeRenderer) Refresh() {
	canvas.Refresh(r.raster)
}

func (r *planeRenderer) Destroy() {}
