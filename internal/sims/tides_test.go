package sims

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/canvas"
	"github.com/san-kum/physlab/internal/engine"
)

func TestTidesElapsedTimeDeterminesHeight(t *testing.T) {
	params := engine.Params{"lunarAmplitude": 2.5, "solarAmplitude": 1.0, "alignment": 45}

	coarse := NewTides()
	if err := coarse.Init(canvas.New(40, 12)); err != nil {
		t.Fatal(err)
	}
	coarse.Update(0.04, params)

	fine := NewTides()
	if err := fine.Init(canvas.New(40, 12)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		fine.Update(0.004, params)
	}

	ha := coarse.HeightAt(coarse.Elapsed())
	hb := fine.HeightAt(fine.Elapsed())
	if math.Abs(ha-hb) > 1e-9 {
		t.Errorf("height diverged for equal elapsed time: %v vs %v", ha, hb)
	}
}

func TestTidesSpringRangeIsAmplitudeSum(t *testing.T) {
	sim := NewTides()
	if err := sim.Init(canvas.New(40, 12)); err != nil {
		t.Fatal(err)
	}
	sim.Update(1.0/60, engine.Params{"lunarAmplitude": 2.0, "solarAmplitude": 0.9, "alignment": 0})

	want := 2 * (2.0 + 0.9)
	if got := sim.Range(); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected spring range %v, got %v", want, got)
	}
}

func TestTidesNeapRangeIsAmplitudeDifference(t *testing.T) {
	sim := NewTides()
	if err := sim.Init(canvas.New(40, 12)); err != nil {
		t.Fatal(err)
	}
	sim.Update(1.0/60, engine.Params{"lunarAmplitude": 2.0, "solarAmplitude": 0.9, "alignment": 180})

	want := 2 * (2.0 - 0.9)
	if got := sim.Range(); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected neap range %v, got %v", want, got)
	}
}

func TestTidesHeightBoundedByConstituents(t *testing.T) {
	sim := NewTides()
	if err := sim.Init(canvas.New(40, 12)); err != nil {
		t.Fatal(err)
	}
	params := engine.Params{"lunarAmplitude": 3.0, "solarAmplitude": 1.5, "alignment": 90}
	bound := 3.0 + 1.5 + 1e-9
	for i := 0; i < 1200; i++ {
		sim.Update(1.0/60, params)
		if h := sim.HeightAt(sim.Elapsed()); math.Abs(h) > bound {
			t.Fatalf("height %v exceeds constituent sum %v at frame %d", h, bound, i)
		}
	}
}

func TestTidesResetClearsState(t *testing.T) {
	sim := NewTides()
	if err := sim.Init(canvas.New(40, 12)); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		sim.Update(1.0/60, engine.Params{})
	}

	sim.Reset()
	if sim.Elapsed() != 0 {
		t.Errorf("expected elapsed 0 after reset, got %v", sim.Elapsed())
	}
	if sim.heightLog.Len() != 0 {
		t.Error("expected height trace cleared after reset")
	}
}
