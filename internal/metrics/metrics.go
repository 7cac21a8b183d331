// Package metrics provides scalar-sample observers simulations and hosts use
// for derived diagnostic quantities: conservation drift, sliding averages,
// extremes. Observers never persist state beyond Reset; values are always a
// function of the samples seen since.
package metrics

import "math"

type Metric interface {
	Name() string
	Observe(v float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative deviation from the first observed
// sample. A symplectic integrator should keep this small but not zero.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(v float64) {
	if e.samples == 0 {
		e.initial = v
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(v-e.initial) / math.Abs(e.initial)
		if drift > e.maxDrift {
			e.maxDrift = drift
		}
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// SlidingMean averages the most recent window samples. Backs gauges derived
// from noisy per-frame contributions, like wall-impulse pressure estimates.
type SlidingMean struct {
	name   string
	window []float64
	head   int
	count  int
	sum    float64
}

func NewSlidingMean(name string, window int) *SlidingMean {
	if window < 1 {
		window = 1
	}
	return &SlidingMean{name: name, window: make([]float64, window)}
}

func (s *SlidingMean) Name() string { return s.name }

func (s *SlidingMean) Observe(v float64) {
	if s.count == len(s.window) {
		s.sum -= s.window[s.head]
	} else {
		s.count++
	}
	s.window[s.head] = v
	s.sum += v
	s.head = (s.head + 1) % len(s.window)
}

func (s *SlidingMean) Value() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

func (s *SlidingMean) Reset() {
	s.head = 0
	s.count = 0
	s.sum = 0
}

// MinMax records the extremes of the observed samples.
type MinMax struct {
	name     string
	min, max float64
	samples  int
}

func NewMinMax(name string) *MinMax { return &MinMax{name: name} }

func (m *MinMax) Name() string { return m.name }

func (m *MinMax) Observe(v float64) {
	if m.samples == 0 || v < m.min {
		m.min = v
	}
	if m.samples == 0 || v > m.max {
		m.max = v
	}
	m.samples++
}

// Value returns the observed range (max minus min).
func (m *MinMax) Value() float64 { return m.max - m.min }

func (m *MinMax) Min() float64 { return m.min }
func (m *MinMax) Max() float64 { return m.max }

func (m *MinMax) Reset() {
	m.min = 0
	m.max = 0
	m.samples = 0
}
