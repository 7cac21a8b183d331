package sims

// Probe implementations: the one scalar each simulation considers its
// headline diagnostic. Hosts chart and record these.

func (t *ThreeBody) ProbeName() string { return "total_energy" }
func (t *ThreeBody) ProbeValue() float64 {
	return t.kinetic + t.potential
}

func (g *GasLaws) ProbeName() string   { return "pressure" }
func (g *GasLaws) ProbeValue() float64 { return g.pressure.Value() }

func (r *RLC) ProbeName() string { return "current" }
func (r *RLC) ProbeValue() float64 {
	_, i := r.At(r.elapsed)
	return i
}

func (t *Tides) ProbeName() string   { return "tide_height" }
func (t *Tides) ProbeValue() float64 { return t.HeightAt(t.elapsed) }

func (d *Diffusion) ProbeName() string   { return "rms_spread" }
func (d *Diffusion) ProbeValue() float64 { return d.Spread() }

func (e *ElectronBeam) ProbeName() string   { return "screen_hits" }
func (e *ElectronBeam) ProbeValue() float64 { return float64(e.hits) }
