package config

import (
	"math"
	"path/filepath"
	"testing"
)

var testSpecs = []ParamSpec{
	{Key: "count", Min: 1, Max: 100, Default: 50, Integer: true},
	{Key: "rate", Min: 0.1, Max: 2.0, Default: 1.0},
}

func TestNormalizeClamps(t *testing.T) {
	out := Normalize(map[string]float64{"count": 500, "rate": -3}, testSpecs)

	if out["count"] != 100 {
		t.Errorf("expected count clamped to 100, got %v", out["count"])
	}
	if out["rate"] != 0.1 {
		t.Errorf("expected rate clamped to 0.1, got %v", out["rate"])
	}
}

func TestNormalizeRoundsIntegers(t *testing.T) {
	out := Normalize(map[string]float64{"count": 41.6}, testSpecs)
	if out["count"] != 42 {
		t.Errorf("expected count rounded to 42, got %v", out["count"])
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	out := Normalize(map[string]float64{}, testSpecs)
	if out["count"] != 50 {
		t.Errorf("expected default count 50, got %v", out["count"])
	}
	if out["rate"] != 1.0 {
		t.Errorf("expected default rate 1.0, got %v", out["rate"])
	}
}

func TestNormalizeRejectsNonFinite(t *testing.T) {
	out := Normalize(map[string]float64{"rate": math.NaN()}, testSpecs)
	if out["rate"] != 1.0 {
		t.Errorf("expected NaN replaced by default, got %v", out["rate"])
	}
}

func TestNormalizePassesUnknownKeys(t *testing.T) {
	in := map[string]float64{"mystery": 7}
	out := Normalize(in, testSpecs)
	if out["mystery"] != 7 {
		t.Errorf("expected unknown key to pass through, got %v", out["mystery"])
	}
	if in["count"] != 0 {
		t.Error("input map must not be modified")
	}
}

func TestSimConfigDefaults(t *testing.T) {
	cfg := SimConfig{Slug: "x", ParamSpecs: testSpecs}
	d := cfg.Defaults()
	if len(d) != 2 || d["count"] != 50 || d["rate"] != 1.0 {
		t.Errorf("unexpected defaults: %v", d)
	}
}

func TestGetPreset(t *testing.T) {
	bag := GetPreset("three-body-problem", "figure-eight")
	if bag == nil {
		t.Fatal("expected preset, got nil")
	}
	if bag["preset"] != 0 {
		t.Errorf("expected preset index 0, got %v", bag["preset"])
	}

	if GetPreset("three-body-problem", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "figure-eight") != nil {
		t.Error("expected nil for nonexistent slug")
	}
}

func TestOverridesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	in := Overrides{"x": {"count": 10, "rate": 0.5}}

	if err := Save(path, in); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if out["x"]["count"] != 10 || out["x"]["rate"] != 0.5 {
		t.Errorf("unexpected overrides after round trip: %v", out)
	}

	cfg := SimConfig{Slug: "x", ParamSpecs: testSpecs}
	params := out.Apply(cfg)
	if params["count"] != 10 {
		t.Errorf("expected applied count 10, got %v", params["count"])
	}
}
