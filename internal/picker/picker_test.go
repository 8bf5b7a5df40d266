package picker

import (
	"testing"

	"huepick/internal/colorconv"
	"huepick/internal/plane"
)

func testCfg() Config {
	return Config{
		PlaneW:        64,
		PlaneH:        64,
		BarW:          360,
		DefaultX:      32,
		DefaultY:      32,
		GrayTolerance: 10,
	}
}

// started returns an engine that has gone through Start(""), plus a counter
// of change notifications seen since.
func started(t *testing.T) (*Engine, *int) {
	t.Helper()
	e := New(testCfg())
	count := new(int)
	e.OnChange(func(Change) { *count++ })
	e.Start("")
	if *count != 0 {
		t.Fatalf("Start emitted %d change notifications, want 0", *count)
	}
	return e, count
}

func TestStartSamplesDefaultPosition(t *testing.T) {
	e := New(testCfg())
	ready := 0
	e.OnReady(func() { ready++ })
	e.Start("")

	st := e.State()
	if st.X != 32 || st.Y != 32 {
		t.Fatalf("start position = (%d,%d), want (32,32)", st.X, st.Y)
	}
	if want := e.Plane().Sample(32, 32); st.Color != want {
		t.Errorf("start color = %v, want sampled %v", st.Color, want)
	}
	if ready != 1 {
		t.Errorf("ready fired %d times, want 1", ready)
	}
}

func TestStartSeed(t *testing.T) {
	e := New(testCfg())
	changes := 0
	e.OnChange(func(Change) { changes++ })
	e.Start("10,200,30")

	st := e.State()
	if want := (colorconv.RGB{R: 10, G: 200, B: 30}); st.Color != want {
		t.Fatalf("seeded color = %v, want %v", st.Color, want)
	}
	if st.Hue != 126 {
		t.Errorf("seeded hue = %v, want 126", st.Hue)
	}
	if got := e.Plane().RenderedHue(); got != 126 {
		t.Errorf("plane rendered for hue %v, want 126", got)
	}
	if changes != 0 {
		t.Errorf("seeding emitted %d change notifications, want 0", changes)
	}
}

func TestStartSeedClampsChannels(t *testing.T) {
	e := New(testCfg())
	e.Start("300,-5,90")
	if got, want := e.State().Color, (colorconv.RGB{R: 255, G: 0, B: 90}); got != want {
		t.Errorf("clamped seed color = %v, want %v", got, want)
	}
}

func TestStartSeedMalformedFallsBack(t *testing.T) {
	for _, seed := range []string{"1,2", "1,2,3,4", "a,b,c", "1.5,2,3", "255;0;0", ","} {
		t.Run(seed, func(t *testing.T) {
			e := New(testCfg())
			e.Start(seed)
			st := e.State()
			if st.X != 32 || st.Y != 32 {
				t.Fatalf("seed %q moved position to (%d,%d), want default", seed, st.X, st.Y)
			}
			if want := e.Plane().Sample(32, 32); st.Color != want {
				t.Errorf("seed %q: color = %v, want default sample %v", seed, st.Color, want)
			}
		})
	}
}

func TestStartRunsOnce(t *testing.T) {
	e := New(testCfg())
	ready := 0
	e.OnReady(func() { ready++ })
	e.Start("")
	before := e.State()
	e.Start("200,10,10")
	if e.State() != before {
		t.Error("second Start changed state")
	}
	if ready != 1 {
		t.Errorf("ready fired %d times, want 1", ready)
	}
}

func TestEditsBeforeStartIgnored(t *testing.T) {
	e := New(testCfg())
	changes := 0
	e.OnChange(func(Change) { changes++ })

	e.PlanePress(10, 10)
	e.BarPress(100)
	e.CommitRGB("1", "2", "3")
	e.CommitHex("#aabbcc")
	e.ApplyRGB(colorconv.RGB{R: 9})

	if changes != 0 {
		t.Errorf("pre-start edits emitted %d notifications, want 0", changes)
	}
	if e.State() != (State{}) {
		t.Errorf("pre-start edits changed state: %+v", e.State())
	}
}

func TestCommitRGBResyncsHue(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b string
		want    colorconv.RGB
		hue     float64
	}{
		{name: "red", r: "255", g: "0", b: "0", want: colorconv.RGB{R: 255}, hue: 0},
		{name: "green", r: "0", g: "255", b: "0", want: colorconv.RGB{G: 255}, hue: 120},
		{name: "blue", r: "0", g: "0", b: "255", want: colorconv.RGB{B: 255}, hue: 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, count := started(t)
			e.CommitRGB(tt.r, tt.g, tt.b)
			st := e.State()
			if st.Color != tt.want {
				t.Fatalf("canonical color = %v, want exact %v", st.Color, tt.want)
			}
			if st.Hue != tt.hue {
				t.Errorf("hue = %v, want %v", st.Hue, tt.hue)
			}
			if got := e.Plane().RenderedHue(); got != tt.hue {
				t.Errorf("plane rendered for hue %v, want %v", got, tt.hue)
			}
			// A pure primary needs l = 0.5, which falls between two rows of an
			// even-sized plane: the loupe lands on the nearest pixel while the
			// canonical color stays exact.
			wx, wy := locateRef(e.Plane(), tt.want)
			if st.X != wx || st.Y != wy {
				t.Errorf("relocated to (%d,%d), want nearest pixel (%d,%d)", st.X, st.Y, wx, wy)
			}
			if *count != 1 {
				t.Errorf("commit emitted %d notifications, want 1", *count)
			}
		})
	}
}

// locateRef is the plain row-major argmin the engine's relocation must agree
// with, gray restriction included.
func locateRef(p *plane.Plane, target colorconv.RGB) (int, int) {
	grayOnly := target.R == target.G && target.G == target.B
	bestX, bestY, bestDist := 0, 0, 1<<62
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			c := p.Sample(x, y)
			if grayOnly && (c.R != c.G || c.G != c.B) {
				continue
			}
			if d := colorconv.DistanceSq(target, c); d < bestDist {
				bestDist = d
				bestX, bestY = x, y
			}
		}
	}
	return bestX, bestY
}

func TestGrayCommitKeepsHue(t *testing.T) {
	e, count := started(t)
	e.CommitRGB("0", "255", "0")
	if got := e.State().Hue; got != 120 {
		t.Fatalf("setup hue = %v, want 120", got)
	}

	e.CommitRGB("128", "128", "128")
	st := e.State()
	if st.Hue != 120 {
		t.Errorf("gray commit moved hue to %v, want 120 preserved", st.Hue)
	}
	if want := (colorconv.RGB{R: 128, G: 128, B: 128}); st.Color != want {
		t.Errorf("canonical color = %v, want %v", st.Color, want)
	}
	// The loupe snaps to the nearest achromatic pixel; the canonical color
	// itself must not snap with it.
	if c := e.Plane().Sample(st.X, st.Y); c.R != c.G || c.G != c.B {
		t.Errorf("gray commit located chromatic pixel %v", c)
	}
	if *count != 2 {
		t.Errorf("two commits emitted %d notifications, want 2", *count)
	}
}

func TestCommitHex(t *testing.T) {
	e, count := started(t)
	e.CommitHex("#3b82f6")
	st := e.State()
	if want := (colorconv.RGB{R: 0x3b, G: 0x82, B: 0xf6}); st.Color != want {
		t.Fatalf("hex commit color = %v, want %v", st.Color, want)
	}
	if st.Color.Grayish(10) {
		t.Fatal("test color unexpectedly gray")
	}
	if *count != 1 {
		t.Errorf("hex commit emitted %d notifications, want 1", *count)
	}
}

func TestInvalidCommitsAreSilent(t *testing.T) {
	tests := []struct {
		name string
		edit func(e *Engine)
	}{
		{name: "rgb above range", edit: func(e *Engine) { e.CommitRGB("256", "0", "0") }},
		{name: "rgb below range", edit: func(e *Engine) { e.CommitRGB("0", "-1", "0") }},
		{name: "rgb not a number", edit: func(e *Engine) { e.CommitRGB("0", "abc", "0") }},
		{name: "rgb empty field", edit: func(e *Engine) { e.CommitRGB("10", "", "20") }},
		{name: "rgb float", edit: func(e *Engine) { e.CommitRGB("12.5", "0", "0") }},
		{name: "hex short", edit: func(e *Engine) { e.CommitHex("#abc") }},
		{name: "hex bad digits", edit: func(e *Engine) { e.CommitHex("zzzzzz") }},
		{name: "hex empty", edit: func(e *Engine) { e.CommitHex("") }},
		{name: "hex padded", edit: func(e *Engine) { e.CommitHex(" ff0000 ") }},
		{name: "hex trailing space", edit: func(e *Engine) { e.CommitHex("#ff0000 ") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, count := started(t)
			before := e.State()
			tt.edit(e)
			if e.State() != before {
				t.Errorf("state changed: %+v -> %+v", before, e.State())
			}
			if *count != 0 {
				t.Errorf("invalid edit emitted %d notifications, want 0", *count)
			}
		})
	}
}

func TestCommitRGBTrimsSpaces(t *testing.T) {
	e, _ := started(t)
	e.CommitRGB(" 10 ", " 20", "30 ")
	if got, want := e.State().Color, (colorconv.RGB{R: 10, G: 20, B: 30}); got != want {
		t.Errorf("color = %v, want %v", got, want)
	}
}

func TestPlanePressSamples(t *testing.T) {
	e, count := started(t)
	e.PlanePress(63, 40)
	st := e.State()
	if st.X != 63 || st.Y != 40 {
		t.Fatalf("press position = (%d,%d), want (63,40)", st.X, st.Y)
	}
	if want := e.Plane().Sample(63, 40); st.Color != want {
		t.Errorf("press color = %v, want sampled %v", st.Color, want)
	}
	if *count != 1 {
		t.Errorf("press emitted %d notifications, want 1", *count)
	}
}

func TestPlanePressClampsCoordinates(t *testing.T) {
	e, _ := started(t)
	e.PlanePress(-10, 9999)
	st := e.State()
	if st.X != 0 || st.Y != 63 {
		t.Errorf("clamped position = (%d,%d), want (0,63)", st.X, st.Y)
	}
}

func TestPressAnchorsHueAcrossDrag(t *testing.T) {
	e, count := started(t)

	// Move to a green plane first so a lost hue is visible as a reset.
	e.BarPress(120)
	e.BarRelease()
	if got := e.State().Hue; got != 120 {
		t.Fatalf("setup hue = %v, want 120", got)
	}
	*count = 0

	// Press on a saturated pixel: hue re-derives from the sample and anchors.
	e.PlanePress(63, 40)
	if got := e.State().Hue; got != 120 {
		t.Fatalf("hue after chromatic press = %v, want 120", got)
	}
	if e.gest.anchorHue != 120 {
		t.Fatalf("anchor = %v, want 120", e.gest.anchorHue)
	}

	// Drag across the gray column: the sampled color carries no hue, the
	// anchored one must survive.
	e.PlaneDrag(0, 32)
	st := e.State()
	if st.Color.R != st.Color.G || st.Color.G != st.Color.B {
		t.Fatalf("gray column sample = %v, want achromatic", st.Color)
	}
	if st.Hue != 120 {
		t.Errorf("hue after gray drag = %v, want anchored 120", st.Hue)
	}

	// Drag on to a third, chromatic position: still the anchored hue's plane,
	// never a re-rendered one.
	e.PlaneDrag(40, 20)
	if got := e.Plane().RenderedHue(); got != 120 {
		t.Errorf("plane re-rendered for hue %v mid-gesture, want 120", got)
	}
	want := colorconv.HSLToRGB(120.0/360, 40.0/63, 1-20.0/63)
	if got := e.State().Color; got != want {
		t.Errorf("third drag color = %v, want %v", got, want)
	}

	e.PlaneRelease()
	if *count != 3 {
		t.Errorf("press and two drags emitted %d notifications, want 3", *count)
	}
}

func TestDragWithoutPressIgnored(t *testing.T) {
	e, count := started(t)
	before := e.State()
	e.PlaneDrag(10, 10)
	e.BarDrag(100)
	if e.State() != before {
		t.Error("orphan drag changed state")
	}
	if *count != 0 {
		t.Errorf("orphan drags emitted %d notifications, want 0", *count)
	}
}

func TestBarEditRendersBeforeSampling(t *testing.T) {
	e, count := started(t)
	e.BarPress(240)
	st := e.State()
	if st.Hue != 240 {
		t.Fatalf("bar press hue = %v, want 240", st.Hue)
	}
	if st.X != 32 || st.Y != 32 {
		t.Fatalf("bar press moved loupe to (%d,%d), want unchanged (32,32)", st.X, st.Y)
	}
	if got := e.Plane().RenderedHue(); got != 240 {
		t.Fatalf("plane rendered for hue %v, want 240", got)
	}
	// A stale sample would still be the hue-0 pixel; the fresh one is blue.
	want := colorconv.HSLToRGB(240.0/360, 32.0/63, 1-32.0/63)
	if st.Color != want {
		t.Errorf("bar press color = %v, want fresh sample %v", st.Color, want)
	}
	if *count != 1 {
		t.Errorf("bar press emitted %d notifications, want 1", *count)
	}
}

func TestBarClampsOffset(t *testing.T) {
	e, _ := started(t)
	e.BarPress(-5)
	if got := e.State().Hue; got != 0 {
		t.Errorf("hue = %v, want 0", got)
	}
	e.BarRelease()
	e.BarPress(99999)
	if got := e.State().Hue; got != 359 {
		t.Errorf("hue = %v, want 359", got)
	}
}

func TestGesturesAreExclusive(t *testing.T) {
	e, count := started(t)
	e.PlanePress(10, 10)
	hue := e.State().Hue
	e.BarPress(200)
	if got := e.State().Hue; got != hue {
		t.Errorf("bar press during plane gesture moved hue to %v", got)
	}
	if *count != 1 {
		t.Errorf("notifications = %d, want 1 (second press ignored)", *count)
	}
	e.PlaneRelease()
	e.BarPress(200)
	if got := e.State().Hue; got != 200 {
		t.Errorf("hue after release and bar press = %v, want 200", got)
	}
}

func TestChangePayloadConsistent(t *testing.T) {
	e := New(testCfg())
	var last Change
	e.OnChange(func(ch Change) { last = ch })
	e.Start("")

	e.CommitHex("#3b82f6")
	if last.R != 0x3b || last.G != 0x82 || last.B != 0xf6 {
		t.Errorf("change channels = (%d,%d,%d), want (59,130,246)", last.R, last.G, last.B)
	}
	if last.Hex != "#3b82f6" {
		t.Errorf("change hex = %q, want %q", last.Hex, "#3b82f6")
	}
	if last.RGB() != e.State().Color {
		t.Errorf("change RGB() = %v, want %v", last.RGB(), e.State().Color)
	}
}

func TestApplyRGBMatchesCommit(t *testing.T) {
	a, _ := started(t)
	b, _ := started(t)
	a.CommitRGB("200", "50", "50")
	b.ApplyRGB(colorconv.RGB{R: 200, G: 50, B: 50})
	if a.State() != b.State() {
		t.Errorf("ApplyRGB state %+v, want same as CommitRGB %+v", b.State(), a.State())
	}
}

func TestRoundHueWrap(t *testing.T) {
	// RGB(255,0,1) sits a hair under 360 degrees; rounding must fold it to 0.
	h, _, _ := colorconv.RGBToHSL(colorconv.RGB{R: 255, G: 0, B: 1})
	if got := roundHue(h); got != 0 {
		t.Errorf("roundHue(%v) = %v, want 0", h, got)
	}
}
