package analysis

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFFTConstantSignalIsPureDC(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 3.5
	}
	out := FFT(data)
	if got := cmplx.Abs(out[0]); math.Abs(got-3.5*64) > 1e-9 {
		t.Errorf("expected DC bin %v, got %v", 3.5*64, got)
	}
	for k := 1; k < len(out); k++ {
		if cmplx.Abs(out[k]) > 1e-9 {
			t.Errorf("expected zero at bin %d, got %v", k, cmplx.Abs(out[k]))
		}
	}
}

func TestFFTPadsToPowerOfTwo(t *testing.T) {
	data := make([]float64, 100)
	out := FFT(data)
	if len(out) != 128 {
		t.Errorf("expected length padded to 128, got %d", len(out))
	}
}

func TestDominantPeriodOfSine(t *testing.T) {
	// Eight full cycles over 256 samples, period 32.
	data := make([]float64, 256)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / 256)
	}
	if got := DominantPeriod(data); got != 32 {
		t.Errorf("expected period 32, got %v", got)
	}
}

func TestDominantPeriodIgnoresOffset(t *testing.T) {
	// A large constant offset must not win over the oscillation.
	data := make([]float64, 128)
	for i := range data {
		data[i] = 100 + math.Sin(2*math.Pi*4*float64(i)/128)
	}
	if got := DominantPeriod(data); got != 32 {
		t.Errorf("expected period 32, got %v", got)
	}
}

func TestDominantPeriodFlatSeries(t *testing.T) {
	if got := DominantPeriod(make([]float64, 64)); got != 0 {
		t.Errorf("expected 0 for a flat series, got %v", got)
	}
	if got := DominantPeriod([]float64{1}); got != 0 {
		t.Errorf("expected 0 for a one-sample series, got %v", got)
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 256))
	if len(ps) != 128 {
		t.Errorf("expected half-spectrum of 128 bins, got %d", len(ps))
	}
}
