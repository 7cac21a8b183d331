package sims

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/physlab/internal/engine"
)

const (
	diffusionMaxParticles = 500
	perlinAlpha           = 2.0
	perlinBeta            = 2.0
	perlinOctaves         = 3
	perlinScale           = 0.015 // sub-pixels to noise coordinates
)

// Diffusion animates Brownian walkers released at the center of a dish.
// Each particle takes random thermal kicks plus a smooth drift read from a
// Perlin noise field, so the spreading cloud shows both diffusion and
// convection-like streaming. Walls reflect.
type Diffusion struct {
	surface engine.Surface

	xs, ys []float64
	count  int

	temperature float64
	drift       float64

	// Dish bounds in sub-pixels, derived from the surface size.
	left, right float64
	top, bottom float64

	elapsed float64
	noise   *perlin.Perlin
	rng     *rand.Rand
}

func NewDiffusion() *Diffusion {
	return &Diffusion{
		count:       150,
		temperature: 300,
		drift:       1.0,
		noise:       perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, 11),
		rng:         rand.New(rand.NewSource(11)),
	}
}

func (d *Diffusion) Init(surface engine.Surface) error {
	if surface == nil {
		return engine.ErrNoSurface
	}
	d.surface = surface
	w, h := surface.Size()
	d.layout(w, h)
	d.Reset()
	return nil
}

func (d *Diffusion) layout(w, h int) {
	d.left, d.top = 1, 5
	d.right = math.Max(float64(w)-2, d.left+4)
	d.bottom = math.Max(float64(h)-2, d.top+4)
}

func (d *Diffusion) Reset() {
	d.elapsed = 0
	d.xs = make([]float64, d.count)
	d.ys = make([]float64, d.count)
	cx := (d.left + d.right) / 2
	cy := (d.top + d.bottom) / 2
	for i := range d.xs {
		// Tight initial droplet.
		d.xs[i] = cx + d.rng.NormFloat64()*2
		d.ys[i] = cy + d.rng.NormFloat64()*2
	}
	d.clampAll()
}

func (d *Diffusion) clampAll() {
	for i := range d.xs {
		d.xs[i] = engine.Clamp(d.xs[i], d.left, d.right)
		d.ys[i] = engine.Clamp(d.ys[i], d.top, d.bottom)
	}
}

func (d *Diffusion) Update(dt float64, params engine.Params) {
	dt = engine.ClampStep(dt)
	if dt == 0 {
		return
	}
	d.elapsed += dt

	count := params.Int("particleCount", 150)
	count = int(engine.Clamp(float64(count), 1, diffusionMaxParticles))
	if count != d.count {
		d.count = count
		d.Reset()
	}
	d.temperature = engine.Clamp(params.Get("temperature", 300), 50, 1200)
	d.drift = engine.Clamp(params.Get("driftStrength", 1.0), 0, 5)

	// Random-walk step size from the Einstein relation shape: displacement
	// variance grows linearly with temperature and dt.
	kick := math.Sqrt(2 * d.temperature * 0.05 * dt)
	for i := range d.xs {
		nx := d.noise.Noise2D(d.xs[i]*perlinScale, d.ys[i]*perlinScale)
		ny := d.noise.Noise2D(d.xs[i]*perlinScale+100, d.ys[i]*perlinScale+100)

		d.xs[i] += d.rng.NormFloat64()*kick + nx*d.drift*20*dt
		d.ys[i] += d.rng.NormFloat64()*kick + ny*d.drift*20*dt

		if d.xs[i] < d.left {
			d.xs[i] = 2*d.left - d.xs[i]
		} else if d.xs[i] > d.right {
			d.xs[i] = 2*d.right - d.xs[i]
		}
		if d.ys[i] < d.top {
			d.ys[i] = 2*d.top - d.ys[i]
		} else if d.ys[i] > d.bottom {
			d.ys[i] = 2*d.bottom - d.ys[i]
		}
	}
	d.clampAll()
}

// Spread returns the RMS distance of the cloud from its centroid, the
// diffusion progress the narration reports.
func (d *Diffusion) Spread() float64 {
	if len(d.xs) == 0 {
		return 0
	}
	var cx, cy float64
	for i := range d.xs {
		cx += d.xs[i]
		cy += d.ys[i]
	}
	cx /= float64(len(d.xs))
	cy /= float64(len(d.ys))
	var sum float64
	for i := range d.xs {
		dx, dy := d.xs[i]-cx, d.ys[i]-cy
		sum += dx*dx + dy*dy
	}
	return math.Sqrt(sum / float64(len(d.xs)))
}

func (d *Diffusion) Render() {
	if d.surface == nil {
		return
	}
	w, h := d.surface.Size()
	if w == 0 || h == 0 {
		return
	}
	d.surface.Clear()

	l, r := int(d.left), int(d.right)
	t, b := int(d.top), int(d.bottom)
	d.surface.Line(l, t, r, t)
	d.surface.Line(l, b, r, b)
	d.surface.Line(l, t, l, b)
	d.surface.Line(r, t, r, b)

	for i := range d.xs {
		d.surface.Set(int(d.xs[i]), int(d.ys[i]))
	}

	d.surface.Text(0, 0, fmt.Sprintf("T=%.0fK spread=%.1f t=%.1fs", d.temperature, d.Spread(), d.elapsed))
}

func (d *Diffusion) StateDescription() string {
	return fmt.Sprintf(
		"%d Brownian particles released at the center of the dish %.1f seconds ago at "+
			"%.0f K. The cloud's RMS spread is %.1f; hotter solvent means larger thermal "+
			"kicks and faster spreading, while the drift field at strength %.1f adds "+
			"slow streaming currents through the dish.",
		d.count, d.elapsed, d.temperature, d.Spread(), d.drift)
}

// Resize re-derives the dish and re-releases the droplet: positions are
// absolute coordinates in the old dish and would be stranded in the new one.
func (d *Diffusion) Resize(width, height int) {
	d.layout(width, height)
	d.Reset()
}

func (d *Diffusion) Destroy() {
	d.xs = nil
	d.ys = nil
	d.surface = nil
}

// Positions returns coordinate copies for tests.
func (d *Diffusion) Positions() ([]float64, []float64) {
	xs := make([]float64, len(d.xs))
	ys := make([]float64, len(d.ys))
	copy(xs, d.xs)
	copy(ys, d.ys)
	return xs, ys
}

// Bounds exposes the dish rectangle for tests.
func (d *Diffusion) Bounds() (left, right, top, bottom float64) {
	return d.left, d.right, d.top, d.bottom
}
