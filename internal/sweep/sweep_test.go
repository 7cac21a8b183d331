package sweep

import (
	"context"
	"testing"

	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/sims"
)

func lookup(t *testing.T, slug string) engine.Entry {
	t.Helper()
	e, err := sims.DefaultRegistry().Lookup(slug)
	if err != nil {
		t.Fatalf("lookup %s failed: %v", slug, err)
	}
	return e
}

func TestAxisValues(t *testing.T) {
	a := Axis{Key: "frequency", Min: 10, Max: 50, Steps: 5}
	got := a.Values()
	want := []float64{10, 20, 30, 40, 50}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	single := Axis{Key: "frequency", Min: 10, Max: 50, Steps: 1}
	if vs := single.Values(); len(vs) != 1 || vs[0] != 10 {
		t.Errorf("expected single-step axis pinned at Min, got %v", vs)
	}
}

func TestSweepRejectsUnknownParameter(t *testing.T) {
	entry := lookup(t, "rlc-circuit")
	_, err := New(entry, Config{Axes: []Axis{{Key: "bogus", Min: 0, Max: 1, Steps: 2}}})
	if err == nil {
		t.Fatal("expected error for unknown swept parameter")
	}
}

func TestSweepFindsResonancePeak(t *testing.T) {
	entry := lookup(t, "rlc-circuit")

	// With L=0.1 H and C=100 uF resonance sits near 50.3 Hz; current peaks
	// there, so the largest current_max point should be the middle frequency.
	s, err := New(entry, Config{
		Axes:  []Axis{{Key: "frequency", Min: 10, Max: 90, Steps: 3}},
		Dt:    1.0 / 60,
		Steps: 240,
	})
	if err != nil {
		t.Fatalf("new sweep failed: %v", err)
	}

	points, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 grid points, got %d", len(points))
	}

	best, err := Best(points, "current_max", true)
	if err != nil {
		t.Fatalf("best failed: %v", err)
	}
	if got := best.Params["frequency"]; got != 50 {
		t.Errorf("expected peak current at 50 Hz, got %v", got)
	}
}

func TestSweepGridOrder(t *testing.T) {
	entry := lookup(t, "tides")
	s, err := New(entry, Config{
		Axes: []Axis{
			{Key: "lunarAmplitude", Min: 1, Max: 2, Steps: 2},
			{Key: "alignment", Min: 0, Max: 180, Steps: 2},
		},
		Steps: 10,
	})
	if err != nil {
		t.Fatalf("new sweep failed: %v", err)
	}

	points, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 grid points, got %d", len(points))
	}

	// Last axis varies fastest.
	wantLunar := []float64{1, 1, 2, 2}
	wantAlign := []float64{0, 180, 0, 180}
	for i, p := range points {
		if p.Params["lunarAmplitude"] != wantLunar[i] || p.Params["alignment"] != wantAlign[i] {
			t.Errorf("point %d: expected lunar=%v align=%v, got lunar=%v align=%v",
				i, wantLunar[i], wantAlign[i], p.Params["lunarAmplitude"], p.Params["alignment"])
		}
	}
}

func TestSweepHonorsCancellation(t *testing.T) {
	entry := lookup(t, "gas-laws")
	s, err := New(entry, Config{
		Axes:    []Axis{{Key: "temperature", Min: 50, Max: 1200, Steps: 50}},
		Steps:   5000,
		Workers: 1,
	})
	if err != nil {
		t.Fatalf("new sweep failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Run(ctx); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestBestMissingSummary(t *testing.T) {
	if _, err := Best([]Point{{Summary: map[string]float64{}}}, "nope", false); err == nil {
		t.Fatal("expected error when no point carries the summary")
	}
}
