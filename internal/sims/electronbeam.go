package sims

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/physlab/internal/engine"
)

const (
	beamMaxElectrons = 200
	// Deflection plates occupy the middle band of the tube.
	beamPlateStart = 0.35
	beamPlateEnd   = 0.6
	phosphorCap    = 240
)

type electron struct {
	// frac is the position along the tube axis in [0, 1]; off is the
	// transverse offset pair in sub-pixels at the current axial position.
	frac       float64
	offX, offY float64
	velX, velY float64 // transverse velocity, picked up inside the plates
}

type phosphorDot struct {
	x, y int
	age  float64 // render-side persistence counter, cosmetic only
}

// ElectronBeam animates a cathode-ray tube: electrons accelerated by the gun
// voltage drift down the tube, are deflected by the plate voltages while
// between the plates, and land on the screen, where a phosphor dot fades.
type ElectronBeam struct {
	surface engine.Surface

	electrons []electron
	count     int

	gunVoltage  float64
	deflectionX float64
	deflectionY float64

	// phosphor holds landing spots with decaying ages. The dots are never
	// read back by Update; they are cosmetic state owned by Render.
	phosphor []phosphorDot
	hits     int

	rng *rand.Rand
}

func NewElectronBeam() *ElectronBeam {
	return &ElectronBeam{
		count:      60,
		gunVoltage: 2000,
		rng:        rand.New(rand.NewSource(5)),
	}
}

func (e *ElectronBeam) Init(surface engine.Surface) error {
	if surface == nil {
		return engine.ErrNoSurface
	}
	e.surface = surface
	e.Reset()
	return nil
}

func (e *ElectronBeam) Reset() {
	e.electrons = make([]electron, e.count)
	for i := range e.electrons {
		// Stagger along the tube so the beam is continuous from frame one.
		e.electrons[i] = electron{frac: e.rng.Float64()}
	}
	e.phosphor = e.phosphor[:0]
	e.hits = 0
}

// axialSpeed converts the gun voltage to tube fractions per second. Speed
// goes as the square root of the accelerating voltage.
func (e *ElectronBeam) axialSpeed() float64 {
	return 0.4 * math.Sqrt(e.gunVoltage/1000)
}

func (e *ElectronBeam) Update(dt float64, params engine.Params) {
	dt = engine.ClampStep(dt)
	if dt == 0 {
		return
	}

	count := params.Int("beamCurrent", 60)
	count = int(engine.Clamp(float64(count), 1, beamMaxElectrons))
	if count != e.count {
		e.count = count
		e.Reset()
	}
	e.gunVoltage = engine.Clamp(params.Get("gunVoltage", 2000), 100, 10000)
	e.deflectionX = engine.Clamp(params.Get("deflectionX", 0), -100, 100)
	e.deflectionY = engine.Clamp(params.Get("deflectionY", 0), -100, 100)

	speed := e.axialSpeed()
	for i := range e.electrons {
		el := &e.electrons[i]
		el.frac += speed * dt

		if el.frac >= beamPlateStart && el.frac <= beamPlateEnd {
			// Constant transverse force between the plates. Lighter gun
			// voltage means more time in the field and a larger deflection.
			el.velX += e.deflectionX * 3 * dt
			el.velY += e.deflectionY * 3 * dt
		}
		el.offX += el.velX * dt
		el.offY += el.velY * dt

		if el.frac >= 1 {
			e.markHit(el.offX, el.offY)
			*el = electron{frac: el.frac - 1}
		}
	}
}

func (e *ElectronBeam) markHit(offX, offY float64) {
	e.hits++
	if e.surface == nil {
		return
	}
	w, h := e.surface.Size()
	if w == 0 || h == 0 {
		return
	}
	x := w - 3
	y := h/2 + int(offY)
	_ = offX // the side view flattens horizontal deflection into brightness
	if len(e.phosphor) >= phosphorCap {
		e.phosphor = e.phosphor[1:]
	}
	e.phosphor = append(e.phosphor, phosphorDot{x: x, y: y, age: 1})
}

func (e *ElectronBeam) Render() {
	if e.surface == nil {
		return
	}
	w, h := e.surface.Size()
	if w == 0 || h == 0 {
		return
	}
	e.surface.Clear()

	mid := h / 2
	// Tube outline: gun at the left, screen at the right.
	e.surface.Line(0, mid-2, 4, mid-2)
	e.surface.Line(0, mid+2, 4, mid+2)
	e.surface.Line(w-2, 2, w-2, h-3)

	// Deflection plates.
	px0 := int(beamPlateStart * float64(w))
	px1 := int(beamPlateEnd * float64(w))
	e.surface.Line(px0, mid-6, px1, mid-6)
	e.surface.Line(px0, mid+6, px1, mid+6)

	for i := range e.electrons {
		el := &e.electrons[i]
		x := int(el.frac * float64(w-2))
		y := mid + int(el.offY)
		e.surface.Set(x, y)
	}

	// Phosphor decay is cosmetic: Render owns it, Update never reads it.
	alive := e.phosphor[:0]
	for _, d := range e.phosphor {
		d.age *= 0.96
		if d.age > 0.15 {
			e.surface.Set(d.x, d.y)
			alive = append(alive, d)
		}
	}
	e.phosphor = alive

	e.surface.Text(0, 0, fmt.Sprintf("gun=%.0fV dX=%.0f dY=%.0f", e.gunVoltage, e.deflectionX, e.deflectionY))
}

func (e *ElectronBeam) StateDescription() string {
	return fmt.Sprintf(
		"A cathode-ray tube accelerates %d electrons through %.0f V, giving an axial "+
			"speed factor of %.2f tube lengths per second. The deflection plates are at "+
			"%.0f and %.0f, bending the beam before it lands on the phosphor screen; "+
			"%d electrons have struck the screen so far. Lowering the gun voltage slows "+
			"the beam and amplifies the deflection.",
		e.count, e.gunVoltage, e.axialSpeed(), e.deflectionX, e.deflectionY, e.hits)
}

func (e *ElectronBeam) Resize(width, height int) {
	// Stale screen coordinates would paint outside the new tube.
	e.phosphor = e.phosphor[:0]
}

func (e *ElectronBeam) Destroy() {
	e.electrons = nil
	e.phosphor = nil
	e.surface = nil
}
