package sims

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/metrics"
)

const (
	gasMaxParticles   = 400
	gasBoltzmann      = 1.0 // reduced units
	gasParticleMass   = 1.0
	gasPressureWindow = 45 // frames of impulse smoothing
)

type gasParticle struct {
	x, y   float64
	vx, vy float64
}

// GasLaws animates kinetic gas theory in a piston chamber. Particles fly in
// straight lines between perfectly elastic wall reflections; the pressure
// gauge is the impulse the walls absorb, averaged over a short window, so it
// can be compared against the ideal-gas prediction.
type GasLaws struct {
	surface engine.Surface

	particles []gasParticle
	count     int

	// Chamber bounds in sub-pixels. The right wall is the piston: its
	// position scales with the volume parameter.
	left, right float64
	top, bottom float64
	fullWidth   float64

	temperature float64
	volume      float64

	impulse  float64 // accumulated this frame
	pressure *metrics.SlidingMean

	rng *rand.Rand
}

func NewGasLaws() *GasLaws {
	return &GasLaws{
		count:       120,
		temperature: 300,
		volume:      1.0,
		pressure:    metrics.NewSlidingMean("pressure", gasPressureWindow),
		rng:         rand.New(rand.NewSource(17)),
	}
}

func (g *GasLaws) Init(surface engine.Surface) error {
	if surface == nil {
		return engine.ErrNoSurface
	}
	g.surface = surface
	if g.pressure == nil {
		g.pressure = metrics.NewSlidingMean("pressure", gasPressureWindow)
	}
	w, h := surface.Size()
	g.layout(w, h)
	g.Reset()
	return nil
}

// layout recomputes chamber bounds from the surface size.
func (g *GasLaws) layout(w, h int) {
	g.left = 2
	g.fullWidth = math.Max(float64(w)-4, 8)
	g.right = g.left + g.fullWidth*g.volume
	g.top = 6 // leave the header row clear
	g.bottom = math.Max(float64(h)-2, g.top+4)
}

func (g *GasLaws) Reset() {
	g.placeParticles()
	g.pressure.Reset()
	g.impulse = 0
}

// thermalSpeed is the RMS speed implied by the temperature parameter, scaled
// to sub-pixels per second.
func (g *GasLaws) thermalSpeed() float64 {
	return 4 * math.Sqrt(g.temperature/100)
}

func (g *GasLaws) placeParticles() {
	g.particles = make([]gasParticle, g.count)
	speed := g.thermalSpeed()
	for i := range g.particles {
		a := g.rng.Float64() * 2 * math.Pi
		// Maxwell-ish spread around the RMS speed.
		s := speed * (0.5 + g.rng.Float64())
		g.particles[i] = gasParticle{
			x:  g.left + g.rng.Float64()*(g.right-g.left),
			y:  g.top + g.rng.Float64()*(g.bottom-g.top),
			vx: s * math.Cos(a),
			vy: s * math.Sin(a),
		}
	}
}

func (g *GasLaws) Update(dt float64, params engine.Params) {
	dt = engine.ClampStep(dt)
	if dt == 0 {
		return
	}

	count := params.Int("particleCount", 120)
	count = int(engine.Clamp(float64(count), 1, gasMaxParticles))
	temperature := engine.Clamp(params.Get("temperature", 300), 50, 1200)
	volume := engine.Clamp(params.Get("volume", 1.0), 0.2, 1.0)

	if count != g.count {
		g.count = count
		g.placeParticles()
	}
	if temperature != g.temperature {
		// Rescale existing velocities instead of re-placing: temperature
		// changes should look like heating, not like a reset.
		ratio := math.Sqrt(temperature / g.temperature)
		for i := range g.particles {
			g.particles[i].vx *= ratio
			g.particles[i].vy *= ratio
		}
		g.temperature = temperature
	}
	if volume != g.volume {
		g.volume = volume
		g.right = g.left + g.fullWidth*volume
		// Particles stranded beyond the piston get pushed back inside.
		for i := range g.particles {
			if g.particles[i].x > g.right {
				g.particles[i].x = g.right
				if g.particles[i].vx > 0 {
					g.particles[i].vx = -g.particles[i].vx
				}
			}
		}
	}

	g.impulse = 0
	for i := range g.particles {
		p := &g.particles[i]
		p.x += p.vx * dt
		p.y += p.vy * dt

		if p.x < g.left {
			p.x = g.left
			p.vx = -p.vx
			g.impulse += 2 * gasParticleMass * math.Abs(p.vx)
		} else if p.x > g.right {
			p.x = g.right
			p.vx = -p.vx
			g.impulse += 2 * gasParticleMass * math.Abs(p.vx)
		}
		if p.y < g.top {
			p.y = g.top
			p.vy = -p.vy
			g.impulse += 2 * gasParticleMass * math.Abs(p.vy)
		} else if p.y > g.bottom {
			p.y = g.bottom
			p.vy = -p.vy
			g.impulse += 2 * gasParticleMass * math.Abs(p.vy)
		}
	}

	// Force per unit wall length, impulse/dt spread over the perimeter.
	perimeter := 2 * ((g.right - g.left) + (g.bottom - g.top))
	if perimeter > 0 {
		g.pressure.Observe(g.impulse / dt / perimeter)
	}
}

// IdealPressure is the PV = NkT prediction for the current chamber, using
// area in place of volume in two dimensions.
func (g *GasLaws) IdealPressure() float64 {
	area := (g.right - g.left) * (g.bottom - g.top)
	if area == 0 {
		return 0
	}
	return float64(g.count) * gasBoltzmann * g.temperature / area / 100
}

func (g *GasLaws) Pressure() float64 { return g.pressure.Value() }

func (g *GasLaws) Render() {
	if g.surface == nil {
		return
	}
	w, h := g.surface.Size()
	if w == 0 || h == 0 {
		return
	}
	g.surface.Clear()

	l, r := int(g.left), int(g.right)
	t, b := int(g.top), int(g.bottom)
	g.surface.Line(l, t, r, t)
	g.surface.Line(l, b, r, b)
	g.surface.Line(l, t, l, b)
	g.surface.Line(r, t, r, b) // piston

	for i := range g.particles {
		g.surface.Set(int(g.particles[i].x), int(g.particles[i].y))
	}

	g.surface.Text(0, 0, fmt.Sprintf("P=%.2f T=%.0fK V=%.0f%% N=%d",
		g.pressure.Value(), g.temperature, g.volume*100, g.count))
}

func (g *GasLaws) StateDescription() string {
	return fmt.Sprintf(
		"%d gas particles bounce inside a chamber at %.0f K with the piston at %.0f%% of "+
			"full volume. The walls measure a pressure of %.2f from particle impacts, "+
			"against an ideal-gas prediction of %.2f. Compressing the piston or raising "+
			"the temperature raises the collision rate and with it the pressure.",
		g.count, g.temperature, g.volume*100, g.pressure.Value(), g.IdealPressure())
}

// Resize re-derives the chamber from the new surface size. Particle positions
// are absolute sub-pixel coordinates, so they are intentionally re-placed.
func (g *GasLaws) Resize(width, height int) {
	g.layout(width, height)
	g.placeParticles()
	g.pressure.Reset()
}

func (g *GasLaws) Destroy() {
	g.particles = nil
	g.surface = nil
}

// Bounds exposes the chamber rectangle for tests.
func (g *GasLaws) Bounds() (left, right, top, bottom float64) {
	return g.left, g.right, g.top, g.bottom
}

// Particles returns position/velocity copies for tests.
func (g *GasLaws) Particles() [][4]float64 {
	out := make([][4]float64, len(g.particles))
	for i, p := range g.particles {
		out[i] = [4]float64{p.x, p.y, p.vx, p.vy}
	}
	return out
}
