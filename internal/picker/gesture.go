package picker

// gesturePhase names which pointer track, if any, has a gesture in flight.
type gesturePhase int

const (
	gestureIdle gesturePhase = iota
	gesturePlane
	gestureBar
)

// gesture is the tagged state of the pointer tracks. anchorHue is captured
// when a plane gesture starts; it is what keeps a drag across the gray column
// from losing the hue the press established.
type gesture struct {
	phase     gesturePhase
	anchorHue float64
}

func (g gesture) idle() bool { return g.phase == gestureIdle }
