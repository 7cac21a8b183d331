package engine

// MaxStep caps the time delta fed to a single Update call. Real-world frame
// gaps (tab switches, debugger pauses) can be arbitrarily large; integrating
// across them destabilizes every explicit scheme.
const MaxStep = 0.05

// Surface is the 2D drawing target a simulation binds to at Init. Coordinates
// are sub-pixel: a terminal canvas exposes 2x4 dots per character cell.
type Surface interface {
	// Size returns the drawable area in sub-pixels. Either dimension may be
	// zero, in which case Render calls must be no-ops.
	Size() (width, height int)
	Set(x, y int)
	Line(x0, y0, x1, y1 int)
	Circle(cx, cy, r int)
	// Text overlays a label starting at a cell position. Purely cosmetic.
	Text(col, row int, s string)
	Clear()
}

// Simulation is the contract a host drives once per animation frame.
//
// Init must fully reinitialize state and may be called again with a new
// surface on remount. Update owns all state mutation; it clamps dt and reads
// recognized params with documented defaults. Render is pure with respect to
// physical state and tolerates a zero-sized surface. Reset restores the
// Init-time condition without rebinding the surface. After Destroy the
// instance is not required to be reusable.
type Simulation interface {
	Init(surface Surface) error
	Update(dt float64, params Params)
	Render()
	Reset()
	Destroy()
	StateDescription() string
	Resize(width, height int)
}

// Probe is an optional capability: a simulation exposing a primary scalar
// diagnostic (total energy, pressure, tide height) gets trailing charts and
// recorded series in hosts. The value must be a pure function of current
// state.
type Probe interface {
	ProbeName() string
	ProbeValue() float64
}

// ClampStep bounds a frame delta to (0, MaxStep]. Negative and NaN deltas
// collapse to zero so a bad host clock cannot run time backwards.
func ClampStep(dt float64) float64 {
	if !(dt > 0) {
		return 0
	}
	if dt > MaxStep {
		return MaxStep
	}
	return dt
}
