package engine

import "math"

// Params is the per-frame parameter bag supplied by the host. Keys a
// simulation does not recognize are ignored; missing keys fall back to the
// default passed at the read site. Values are read-only to the simulation.
type Params map[string]float64

// Get returns the value for key, or def when absent or non-finite.
func (p Params) Get(key string, def float64) float64 {
	v, ok := p[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Int reads an integer-valued parameter, rounding to nearest. The rounding is
// the documented coercion policy for counts (particle numbers, preset
// indices), not an accident of the caller.
func (p Params) Int(key string, def int) int {
	v := p.Get(key, float64(def))
	return int(math.Round(v))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
