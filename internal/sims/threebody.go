package sims

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/metrics"
)

const (
	threeBodySoftening = 0.1
	threeBodySubSteps  = 4
	// Real-time gravity at unit G is too fast to watch; every sub-step is
	// additionally scaled by this factor.
	threeBodySlowMotion = 0.35
	trailCap            = 500
	energyCap           = 600
)

// Presets selected by the integer "preset" parameter.
const (
	presetFigureEight = iota
	presetTriangle
	presetRandom
)

type gravBody struct {
	x, y   float64
	vx, vy float64
	mass   float64
	trailX *engine.History
	trailY *engine.History
}

// ThreeBody integrates the planar gravitational three-body problem with
// velocity Verlet. Bodies are never merged or removed on close approach;
// the softening term alone keeps forces finite.
type ThreeBody struct {
	surface engine.Surface

	bodies  [3]gravBody
	gravity float64
	preset  int
	masses  [3]float64

	kinetic   float64
	potential float64
	energyLog *engine.History
	drift     *metrics.EnergyDrift

	rng *rand.Rand
}

func NewThreeBody() *ThreeBody {
	return &ThreeBody{
		gravity:   1.0,
		preset:    presetFigureEight,
		masses:    [3]float64{1, 1, 1},
		energyLog: engine.NewHistory(energyCap),
		drift:     metrics.NewEnergyDrift(),
		rng:       rand.New(rand.NewSource(8)),
	}
}

func (t *ThreeBody) Init(surface engine.Surface) error {
	if surface == nil {
		return engine.ErrNoSurface
	}
	t.surface = surface
	if t.energyLog == nil {
		t.energyLog = engine.NewHistory(energyCap)
	}
	t.Reset()
	return nil
}

func (t *ThreeBody) Reset() {
	t.placeBodies()
	t.energyLog.Clear()
	t.drift.Reset()
	t.recomputeEnergy()
}

func (t *ThreeBody) placeBodies() {
	for i := range t.bodies {
		t.bodies[i].mass = t.masses[i]
		if t.bodies[i].trailX == nil {
			t.bodies[i].trailX = engine.NewHistory(trailCap)
			t.bodies[i].trailY = engine.NewHistory(trailCap)
		}
		t.bodies[i].trailX.Clear()
		t.bodies[i].trailY.Clear()
	}

	switch t.preset {
	case presetTriangle:
		// Equilateral triangle with tangential velocities.
		for i := range t.bodies {
			a := 2 * math.Pi * float64(i) / 3
			t.bodies[i].x = math.Cos(a)
			t.bodies[i].y = math.Sin(a)
			t.bodies[i].vx = -math.Sin(a) * 0.55
			t.bodies[i].vy = math.Cos(a) * 0.55
		}
	case presetRandom:
		for i := range t.bodies {
			t.bodies[i].x = t.rng.Float64()*2 - 1
			t.bodies[i].y = t.rng.Float64()*2 - 1
			t.bodies[i].vx = t.rng.Float64()*0.6 - 0.3
			t.bodies[i].vy = t.rng.Float64()*0.6 - 0.3
		}
	default:
		// Chenciner-Montgomery figure-eight initial conditions.
		t.bodies[0] = gravBody{x: 0.97000436, y: -0.24308753, vx: 0.466203685, vy: 0.43236573,
			mass: t.masses[0], trailX: t.bodies[0].trailX, trailY: t.bodies[0].trailY}
		t.bodies[1] = gravBody{x: -0.97000436, y: 0.24308753, vx: 0.466203685, vy: 0.43236573,
			mass: t.masses[1], trailX: t.bodies[1].trailX, trailY: t.bodies[1].trailY}
		t.bodies[2] = gravBody{x: 0, y: 0, vx: -0.93240737, vy: -0.86473146,
			mass: t.masses[2], trailX: t.bodies[2].trailX, trailY: t.bodies[2].trailY}
	}
}

// accelerations computes pairwise softened inverse-square accelerations at
// the current positions.
func (t *ThreeBody) accelerations() (ax, ay [3]float64) {
	eps2 := threeBodySoftening * threeBodySoftening
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			rx := t.bodies[j].x - t.bodies[i].x
			ry := t.bodies[j].y - t.bodies[i].y
			r2 := rx*rx + ry*ry + eps2
			inv := 1 / math.Sqrt(r2)
			inv3 := inv * inv * inv

			fi := t.gravity * t.bodies[j].mass * inv3
			ax[i] += fi * rx
			ay[i] += fi * ry

			fj := t.gravity * t.bodies[i].mass * inv3
			ax[j] -= fj * rx
			ay[j] -= fj * ry
		}
	}
	return ax, ay
}

func (t *ThreeBody) Update(dt float64, params engine.Params) {
	dt = engine.ClampStep(dt)
	if dt == 0 {
		return
	}

	preset := params.Int("preset", presetFigureEight)
	masses := [3]float64{
		math.Max(params.Get("m1", 1.0), 0.05),
		math.Max(params.Get("m2", 1.0), 0.05),
		math.Max(params.Get("m3", 1.0), 0.05),
	}
	// Preset or mass changes restart the system outright rather than
	// morphing a trajectory that no longer solves the new equations.
	if preset != t.preset || masses != t.masses {
		t.preset = preset
		t.masses = masses
		t.Reset()
	}
	t.gravity = engine.Clamp(params.Get("gravity", 1.0), 0.1, 10)

	sub := dt * threeBodySlowMotion / threeBodySubSteps
	for s := 0; s < threeBodySubSteps; s++ {
		t.verletStep(sub)
	}

	for i := range t.bodies {
		t.bodies[i].trailX.Push(t.bodies[i].x)
		t.bodies[i].trailY.Push(t.bodies[i].y)
	}

	t.recomputeEnergy()
	total := t.kinetic + t.potential
	t.energyLog.Push(total)
	t.drift.Observe(total)
}

// verletStep advances one velocity Verlet sub-step: position update with the
// old acceleration, then velocity update with the average of old and new.
func (t *ThreeBody) verletStep(dt float64) {
	ax0, ay0 := t.accelerations()
	dt2 := dt * dt
	for i := range t.bodies {
		t.bodies[i].x += t.bodies[i].vx*dt + 0.5*ax0[i]*dt2
		t.bodies[i].y += t.bodies[i].vy*dt + 0.5*ay0[i]*dt2
	}
	ax1, ay1 := t.accelerations()
	for i := range t.bodies {
		t.bodies[i].vx += 0.5 * (ax0[i] + ax1[i]) * dt
		t.bodies[i].vy += 0.5 * (ay0[i] + ay1[i]) * dt
	}
}

func (t *ThreeBody) recomputeEnergy() {
	eps2 := threeBodySoftening * threeBodySoftening
	ke, pe := 0.0, 0.0
	for i := range t.bodies {
		b := t.bodies[i]
		ke += 0.5 * b.mass * (b.vx*b.vx + b.vy*b.vy)
		for j := i + 1; j < 3; j++ {
			rx := t.bodies[j].x - b.x
			ry := t.bodies[j].y - b.y
			pe -= t.gravity * b.mass * t.bodies[j].mass / math.Sqrt(rx*rx+ry*ry+eps2)
		}
	}
	t.kinetic, t.potential = ke, pe
}

func (t *ThreeBody) Render() {
	if t.surface == nil {
		return
	}
	w, h := t.surface.Size()
	if w == 0 || h == 0 {
		return
	}
	t.surface.Clear()

	// Fit a [-2.5, 2.5] world box, preserving aspect.
	scale := math.Min(float64(w), float64(h)) / 5.0
	toScreen := func(x, y float64) (int, int) {
		return int(x*scale) + w/2, int(-y*scale) + h/2
	}

	for i := range t.bodies {
		xs := t.bodies[i].trailX.Values()
		ys := t.bodies[i].trailY.Values()
		for k := range xs {
			px, py := toScreen(xs[k], ys[k])
			t.surface.Set(px, py)
		}
		px, py := toScreen(t.bodies[i].x, t.bodies[i].y)
		r := 1 + int(math.Cbrt(t.bodies[i].mass))
		t.surface.Circle(px, py, r)
	}

	t.surface.Text(0, 0, fmt.Sprintf("E=%.3f drift=%.2f%%", t.kinetic+t.potential, t.drift.Value()*100))
}

func (t *ThreeBody) StateDescription() string {
	names := map[int]string{presetFigureEight: "figure-eight", presetTriangle: "triangle", presetRandom: "random"}
	total := t.kinetic + t.potential
	return fmt.Sprintf(
		"Three gravitating bodies in the %s configuration with masses %.2f, %.2f and %.2f. "+
			"Kinetic energy is %.3f and potential energy is %.3f, for a total of %.3f. "+
			"Total energy has drifted %.2f%% from its starting value, which measures the "+
			"integrator's stability rather than any physical change.",
		names[t.preset], t.masses[0], t.masses[1], t.masses[2],
		t.kinetic, t.potential, total, t.drift.Value()*100)
}

func (t *ThreeBody) Resize(width, height int) {
	// Layout is derived from the surface each frame; nothing cached.
}

func (t *ThreeBody) Destroy() {
	for i := range t.bodies {
		t.bodies[i].trailX = nil
		t.bodies[i].trailY = nil
	}
	t.energyLog = nil
	t.surface = nil
}

// Energies exposes the current derived energy split for hosts and tests.
func (t *ThreeBody) Energies() (kinetic, potential float64) {
	return t.kinetic, t.potential
}

// EnergyHistory returns the bounded total-energy series for drift charts.
func (t *ThreeBody) EnergyHistory() []float64 { return t.energyLog.Values() }

// CenterOfMass returns the mass-weighted mean position.
func (t *ThreeBody) CenterOfMass() (x, y float64) {
	var m float64
	for i := range t.bodies {
		x += t.bodies[i].mass * t.bodies[i].x
		y += t.bodies[i].mass * t.bodies[i].y
		m += t.bodies[i].mass
	}
	return x / m, y / m
}

// Bodies returns position copies for rendering hosts and tests.
func (t *ThreeBody) Bodies() [3][2]float64 {
	var out [3][2]float64
	for i := range t.bodies {
		out[i] = [2]float64{t.bodies[i].x, t.bodies[i].y}
	}
	return out
}
