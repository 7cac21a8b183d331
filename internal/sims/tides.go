package sims

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/engine"
)

const (
	tidesHistoryCap = 600
	// Periods compressed so a full lunar cycle fits in about 25 seconds of
	// watching. The 12.42 h / 12.00 h ratio between the lunar and solar
	// constituents is kept.
	lunarPeriod = 2.484
	solarPeriod = 2.4
)

// Tides evaluates a two-constituent harmonic tide in closed form: a lunar
// and a solar component whose relative phase (the alignment parameter) sets
// spring versus neap range. State is elapsed time only.
type Tides struct {
	surface engine.Surface

	elapsed float64

	lunarAmp  float64 // meters
	solarAmp  float64
	alignment float64 // degrees between moon and sun

	heightLog *engine.History
}

func NewTides() *Tides {
	return &Tides{
		lunarAmp:  2.0,
		solarAmp:  0.9,
		heightLog: engine.NewHistory(tidesHistoryCap),
	}
}

func (t *Tides) Init(surface engine.Surface) error {
	if surface == nil {
		return engine.ErrNoSurface
	}
	t.surface = surface
	if t.heightLog == nil {
		t.heightLog = engine.NewHistory(tidesHistoryCap)
	}
	t.Reset()
	return nil
}

func (t *Tides) Reset() {
	t.elapsed = 0
	t.heightLog.Clear()
}

func (t *Tides) Update(dt float64, params engine.Params) {
	dt = engine.ClampStep(dt)
	t.elapsed += dt

	t.lunarAmp = engine.Clamp(params.Get("lunarAmplitude", 2.0), 0.1, 5)
	t.solarAmp = engine.Clamp(params.Get("solarAmplitude", 0.9), 0, 3)
	t.alignment = engine.Clamp(params.Get("alignment", 0), 0, 180)

	if dt > 0 {
		t.heightLog.Push(t.HeightAt(t.elapsed))
	}
}

// HeightAt evaluates the tide height in meters at elapsed time tt.
func (t *Tides) HeightAt(tt float64) float64 {
	lunar := t.lunarAmp * math.Cos(2*math.Pi*tt/lunarPeriod)
	solar := t.solarAmp * math.Cos(2*math.Pi*tt/solarPeriod+t.alignment*math.Pi/180)
	return lunar + solar
}

// Range returns the current crest-to-trough prediction from the constituent
// amplitudes and alignment.
func (t *Tides) Range() float64 {
	phase := t.alignment * math.Pi / 180
	return 2 * math.Sqrt(t.lunarAmp*t.lunarAmp+t.solarAmp*t.solarAmp+2*t.lunarAmp*t.solarAmp*math.Cos(phase))
}

func (t *Tides) Render() {
	if t.surface == nil {
		return
	}
	w, h := t.surface.Size()
	if w == 0 || h == 0 {
		return
	}
	t.surface.Clear()

	mid := h / 2
	t.surface.Line(0, mid, w-1, mid)

	maxAmp := t.lunarAmp + t.solarAmp
	scale := float64(h) * 0.4 / math.Max(maxAmp, 0.1)

	hs := t.heightLog.Values()
	for k := 1; k < len(hs); k++ {
		x0 := (k - 1) * (w - 1) / (len(hs) - 1)
		x1 := k * (w - 1) / (len(hs) - 1)
		t.surface.Line(x0, mid-int(hs[k-1]*scale), x1, mid-int(hs[k]*scale))
	}

	t.surface.Text(0, 0, fmt.Sprintf("h=%.2fm range=%.2fm align=%.0fdeg",
		t.HeightAt(t.elapsed), t.Range(), t.alignment))
}

func (t *Tides) StateDescription() string {
	kind := "mixed"
	if t.alignment < 30 {
		kind = "spring"
	} else if t.alignment > 150 {
		kind = "neap"
	}
	return fmt.Sprintf(
		"Tide height is %.2f m, the sum of a %.1f m lunar constituent and a %.1f m solar "+
			"constituent %.0f degrees out of alignment. This is a %s tide regime with a "+
			"predicted range of %.2f m; when the two constituents align their crests add, "+
			"and when they oppose they partially cancel.",
		t.HeightAt(t.elapsed), t.lunarAmp, t.solarAmp, t.alignment, kind, t.Range())
}

func (t *Tides) Resize(width, height int) {}

func (t *Tides) Destroy() {
	t.heightLog = nil
	t.surface = nil
}

// Elapsed returns cumulative simulated time.
func (t *Tides) Elapsed() float64 { return t.elapsed }
