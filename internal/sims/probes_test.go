package sims

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/canvas"
	"github.com/san-kum/physlab/internal/engine"
)

func TestEverySimulationExposesAProbe(t *testing.T) {
	registry := DefaultRegistry()
	seen := map[string]bool{}
	for _, slug := range registry.List() {
		entry, err := registry.Lookup(slug)
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		sim := entry.New()
		probe, ok := sim.(engine.Probe)
		if !ok {
			t.Errorf("%s does not expose a probe", slug)
			continue
		}
		name := probe.ProbeName()
		if name == "" {
			t.Errorf("%s: empty probe name", slug)
		}
		if seen[name] {
			t.Errorf("duplicate probe name %q", name)
		}
		seen[name] = true

		if err := sim.Init(canvas.New(40, 16)); err != nil {
			t.Fatalf("%s: init failed: %v", slug, err)
		}
		for i := 0; i < 60; i++ {
			sim.Update(1.0/60, entry.Config.Defaults())
		}
		if v := probe.ProbeValue(); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s: probe %s not finite: %v", slug, name, v)
		}
	}
}
