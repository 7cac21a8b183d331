package sims

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/engine"
)

const (
	rlcHistoryCap = 600
	// Frequency floor keeps the capacitive reactance 1/(omega*C) finite.
	rlcMinFrequency = 0.1
)

// RLC animates a series RLC circuit driven by a sinusoidal source. The
// governing equation has a known steady-state solution, so nothing is
// integrated: state is a single elapsed-time scalar and every drawn quantity
// is evaluated in closed form from it. Two call sequences that net to the
// same elapsed time therefore produce identical traces.
type RLC struct {
	surface engine.Surface

	elapsed float64

	voltage     float64 // V0, source amplitude
	frequency   float64 // Hz
	resistance  float64 // ohms
	inductance  float64 // henries
	capacitance float64 // microfarads

	voltageLog *engine.History
	currentLog *engine.History
}

func NewRLC() *RLC {
	return &RLC{
		voltage:     10,
		frequency:   50,
		resistance:  50,
		inductance:  0.1,
		capacitance: 100,
		voltageLog:  engine.NewHistory(rlcHistoryCap),
		currentLog:  engine.NewHistory(rlcHistoryCap),
	}
}

func (r *RLC) Init(surface engine.Surface) error {
	if surface == nil {
		return engine.ErrNoSurface
	}
	r.surface = surface
	if r.voltageLog == nil {
		r.voltageLog = engine.NewHistory(rlcHistoryCap)
		r.currentLog = engine.NewHistory(rlcHistoryCap)
	}
	r.Reset()
	return nil
}

func (r *RLC) Reset() {
	r.elapsed = 0
	r.voltageLog.Clear()
	r.currentLog.Clear()
}

func (r *RLC) Update(dt float64, params engine.Params) {
	dt = engine.ClampStep(dt)
	r.elapsed += dt

	r.voltage = engine.Clamp(params.Get("voltage", 10), 1, 100)
	r.frequency = engine.Clamp(params.Get("frequency", 50), rlcMinFrequency, 1000)
	r.resistance = engine.Clamp(params.Get("resistance", 50), 1, 1000)
	r.inductance = engine.Clamp(params.Get("inductance", 0.1), 0.001, 10)
	r.capacitance = engine.Clamp(params.Get("capacitance", 100), 0.1, 1000)

	if dt > 0 {
		v, i := r.At(r.elapsed)
		r.voltageLog.Push(v)
		r.currentLog.Push(i)
	}
}

// Impedance returns the series impedance magnitude and phase at the current
// parameters.
func (r *RLC) Impedance() (z, phase float64) {
	omega := 2 * math.Pi * r.frequency
	xl := omega * r.inductance
	xc := 1 / (omega * r.capacitance * 1e-6)
	reactance := xl - xc
	z = math.Sqrt(r.resistance*r.resistance + reactance*reactance)
	phase = math.Atan2(reactance, r.resistance)
	return z, phase
}

// At evaluates source voltage and circuit current at elapsed time t.
func (r *RLC) At(t float64) (v, i float64) {
	omega := 2 * math.Pi * r.frequency
	z, phase := r.Impedance()
	v = r.voltage * math.Sin(omega*t)
	i = r.voltage / z * math.Sin(omega*t-phase)
	return v, i
}

// ResonantFrequency returns 1/(2*pi*sqrt(LC)) in Hz.
func (r *RLC) ResonantFrequency() float64 {
	return 1 / (2 * math.Pi * math.Sqrt(r.inductance*r.capacitance*1e-6))
}

func (r *RLC) Render() {
	if r.surface == nil {
		return
	}
	w, h := r.surface.Size()
	if w == 0 || h == 0 {
		return
	}
	r.surface.Clear()

	mid := h / 2
	r.surface.Line(0, mid, w-1, mid)

	vs := r.voltageLog.Values()
	is := r.currentLog.Values()
	z, _ := r.Impedance()
	iScale := z / math.Max(r.voltage, 1) // normalize current to voltage height
	amp := float64(h) * 0.4

	plot := func(series []float64, scale float64) {
		n := len(series)
		if n < 2 {
			return
		}
		for k := 1; k < n; k++ {
			x0 := (k - 1) * (w - 1) / (n - 1)
			x1 := k * (w - 1) / (n - 1)
			y0 := mid - int(series[k-1]*scale*amp/r.voltage)
			y1 := mid - int(series[k]*scale*amp/r.voltage)
			r.surface.Line(x0, y0, x1, y1)
		}
	}
	plot(vs, 1)
	plot(is, iScale)

	_, phase := r.Impedance()
	r.surface.Text(0, 0, fmt.Sprintf("Z=%.1f phase=%.0fdeg f0=%.1fHz",
		z, phase*180/math.Pi, r.ResonantFrequency()))
}

func (r *RLC) StateDescription() string {
	z, phase := r.Impedance()
	v, i := r.At(r.elapsed)
	return fmt.Sprintf(
		"A series RLC circuit driven at %.1f Hz by a %.1f V source. With R=%.0f ohms, "+
			"L=%.2f H and C=%.0f uF the impedance is %.1f ohms and the current lags the "+
			"voltage by %.0f degrees. Instantaneous source voltage is %.2f V and current "+
			"%.3f A; resonance sits at %.1f Hz, where the reactances cancel.",
		r.frequency, r.voltage, r.resistance, r.inductance, r.capacitance,
		z, phase*180/math.Pi, v, i, r.ResonantFrequency())
}

func (r *RLC) Resize(width, height int) {
	// Traces rescale from the surface each frame.
}

func (r *RLC) Destroy() {
	r.voltageLog = nil
	r.currentLog = nil
	r.surface = nil
}

// Elapsed returns cumulative simulated time, the whole of this simulation's
// physical state.
func (r *RLC) Elapsed() float64 { return r.elapsed }
