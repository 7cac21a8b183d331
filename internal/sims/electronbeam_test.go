package sims

import (
	"testing"

	"github.com/san-kum/physlab/internal/canvas"
	"github.com/san-kum/physlab/internal/engine"
)

func TestElectronBeamRecyclesAtScreen(t *testing.T) {
	sim := NewElectronBeam()
	if err := sim.Init(canvas.New(60, 24)); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// At 10 kV the axial speed is 0.4*sqrt(10) tube lengths per second, so a
	// few seconds of frames cycle every electron through the screen.
	params := engine.Params{"gunVoltage": 10000}
	for i := 0; i < 300; i++ {
		sim.Update(1.0/60, params)
		for j := range sim.electrons {
			if f := sim.electrons[j].frac; f < 0 || f >= 1 {
				t.Fatalf("electron %d outside tube at frame %d: frac=%v", j, i, f)
			}
		}
	}
	if sim.hits == 0 {
		t.Error("expected screen hits after cycling the tube")
	}
}

func TestElectronBeamDeflectionBendsBeam(t *testing.T) {
	sim := NewElectronBeam()
	if err := sim.Init(canvas.New(60, 24)); err != nil {
		t.Fatal(err)
	}

	params := engine.Params{"deflectionY": 80}
	for i := 0; i < 240; i++ {
		sim.Update(1.0/60, params)
	}

	deflected := 0
	for i := range sim.electrons {
		el := &sim.electrons[i]
		if el.frac > beamPlateEnd && el.offY > 0 {
			deflected++
		}
	}
	if deflected == 0 {
		t.Error("expected downstream electrons pushed off axis by the plates")
	}
}

func TestElectronBeamLowerVoltageDeflectsMore(t *testing.T) {
	landing := func(gunVoltage float64) int {
		sim := NewElectronBeam()
		if err := sim.Init(canvas.New(60, 24)); err != nil {
			t.Fatal(err)
		}
		// Single electron launched from the gun for a clean trajectory.
		sim.electrons = []electron{{frac: 0}}
		sim.count = 1
		params := engine.Params{"beamCurrent": 1, "gunVoltage": gunVoltage, "deflectionY": 50}
		for i := 0; i < 2000; i++ {
			sim.Update(1.0/60, params)
			if sim.hits > 0 {
				break
			}
		}
		if len(sim.phosphor) == 0 {
			t.Fatalf("electron never reached the screen at %v V", gunVoltage)
		}
		return sim.phosphor[len(sim.phosphor)-1].y
	}

	slow := landing(500)
	fast := landing(8000)
	if slow <= fast {
		t.Errorf("expected larger deflection at lower gun voltage: slow=%v fast=%v", slow, fast)
	}
}

func TestElectronBeamPhosphorCapped(t *testing.T) {
	sim := NewElectronBeam()
	if err := sim.Init(canvas.New(60, 24)); err != nil {
		t.Fatal(err)
	}
	params := engine.Params{"beamCurrent": 200, "gunVoltage": 10000}
	for i := 0; i < 600; i++ {
		sim.Update(1.0/60, params)
	}
	if len(sim.phosphor) > phosphorCap {
		t.Errorf("expected phosphor capped at %d, got %d", phosphorCap, len(sim.phosphor))
	}
}

func TestElectronBeamResizeClearsScreen(t *testing.T) {
	sim := NewElectronBeam()
	if err := sim.Init(canvas.New(60, 24)); err != nil {
		t.Fatal(err)
	}
	params := engine.Params{"gunVoltage": 10000}
	for i := 0; i < 300; i++ {
		sim.Update(1.0/60, params)
	}
	if len(sim.phosphor) == 0 {
		t.Fatal("expected phosphor dots before resize")
	}

	sim.Resize(200, 80)
	if len(sim.phosphor) != 0 {
		t.Errorf("expected phosphor cleared on resize, got %d dots", len(sim.phosphor))
	}
}
