package engine

import (
	"math"
	"testing"
)

func TestParamsGet(t *testing.T) {
	p := Params{"voltage": 12.5}

	if got := p.Get("voltage", 10); got != 12.5 {
		t.Errorf("expected 12.5, got %v", got)
	}
	if got := p.Get("missing", 10); got != 10 {
		t.Errorf("expected default 10 for missing key, got %v", got)
	}
}

func TestParamsGetRejectsNonFinite(t *testing.T) {
	p := Params{"a": math.NaN(), "b": math.Inf(1)}

	if got := p.Get("a", 3); got != 3 {
		t.Errorf("expected default for NaN, got %v", got)
	}
	if got := p.Get("b", 3); got != 3 {
		t.Errorf("expected default for Inf, got %v", got)
	}
}

func TestParamsIntRounds(t *testing.T) {
	p := Params{"count": 41.7}
	if got := p.Int("count", 10); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := p.Int("missing", 10); got != 10 {
		t.Errorf("expected default 10, got %d", got)
	}
}

func TestClampStep(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.01, 0.01},
		{MaxStep, MaxStep},
		{10, MaxStep},
		{0, 0},
		{-1, 0},
	}
	for _, c := range cases {
		if got := ClampStep(c.in); got != c.want {
			t.Errorf("ClampStep(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
	if got := ClampStep(math.NaN()); got != 0 {
		t.Errorf("ClampStep(NaN): expected 0, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
	if got := Clamp(-5, 0, 3); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Clamp(2, 0, 3); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
}
