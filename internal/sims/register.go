// Package sims holds the simulation library. Every file is one independent,
// self-contained simulation; nothing here shares mutable state with anything
// else. This file declares each simulation's parameter schema and wires the
// factories into a registry hosts look up by slug.
package sims

import (
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/engine"
)

func DefaultRegistry() *engine.Registry {
	r := engine.NewRegistry()

	r.Register(engine.Entry{
		Config: config.SimConfig{
			Slug:     "three-body-problem",
			Name:     "Three-Body Problem",
			Category: "physics",
			ParamSpecs: []config.ParamSpec{
				{Key: "preset", Label: "Preset", Min: 0, Max: 2, Default: 0, Step: 1, Integer: true},
				{Key: "m1", Label: "Mass 1", Min: 0.05, Max: 10, Default: 1, Step: 0.1},
				{Key: "m2", Label: "Mass 2", Min: 0.05, Max: 10, Default: 1, Step: 0.1},
				{Key: "m3", Label: "Mass 3", Min: 0.05, Max: 10, Default: 1, Step: 0.1},
				{Key: "gravity", Label: "Gravity", Min: 0.1, Max: 10, Default: 1, Step: 0.1},
			},
		},
		New: func() engine.Simulation { return NewThreeBody() },
	})

	r.Register(engine.Entry{
		Config: config.SimConfig{
			Slug:     "gas-laws",
			Name:     "Kinetic Gas Theory",
			Category: "chemistry",
			ParamSpecs: []config.ParamSpec{
				{Key: "particleCount", Label: "Particles", Min: 1, Max: 400, Default: 120, Step: 10, Integer: true},
				{Key: "temperature", Label: "Temperature", Min: 50, Max: 1200, Default: 300, Step: 25, Unit: "K"},
				{Key: "volume", Label: "Volume", Min: 0.2, Max: 1, Default: 1, Step: 0.05},
			},
		},
		New: func() engine.Simulation { return NewGasLaws() },
	})

	r.Register(engine.Entry{
		Config: config.SimConfig{
			Slug:     "rlc-circuit",
			Name:     "Series RLC Circuit",
			Category: "physics",
			ParamSpecs: []config.ParamSpec{
				{Key: "voltage", Label: "Source Voltage", Min: 1, Max: 100, Default: 10, Step: 1, Unit: "V"},
				{Key: "frequency", Label: "Frequency", Min: 0.1, Max: 1000, Default: 50, Step: 5, Unit: "Hz"},
				{Key: "resistance", Label: "Resistance", Min: 1, Max: 1000, Default: 50, Step: 10, Unit: "ohm"},
				{Key: "inductance", Label: "Inductance", Min: 0.001, Max: 10, Default: 0.1, Step: 0.01, Unit: "H"},
				{Key: "capacitance", Label: "Capacitance", Min: 0.1, Max: 1000, Default: 100, Step: 10, Unit: "uF"},
			},
		},
		New: func() engine.Simulation { return NewRLC() },
	})

	r.Register(engine.Entry{
		Config: config.SimConfig{
			Slug:     "electron-beam",
			Name:     "Cathode-Ray Tube",
			Category: "physics",
			ParamSpecs: []config.ParamSpec{
				{Key: "beamCurrent", Label: "Beam Electrons", Min: 1, Max: 200, Default: 60, Step: 5, Integer: true},
				{Key: "gunVoltage", Label: "Gun Voltage", Min: 100, Max: 10000, Default: 2000, Step: 100, Unit: "V"},
				{Key: "deflectionX", Label: "X Deflection", Min: -100, Max: 100, Default: 0, Step: 5, Unit: "V"},
				{Key: "deflectionY", Label: "Y Deflection", Min: -100, Max: 100, Default: 0, Step: 5, Unit: "V"},
			},
		},
		New: func() engine.Simulation { return NewElectronBeam() },
	})

	r.Register(engine.Entry{
		Config: config.SimConfig{
			Slug:     "tides",
			Name:     "Tidal Constituents",
			Category: "physics",
			ParamSpecs: []config.ParamSpec{
				{Key: "lunarAmplitude", Label: "Lunar Amplitude", Min: 0.1, Max: 5, Default: 2, Step: 0.1, Unit: "m"},
				{Key: "solarAmplitude", Label: "Solar Amplitude", Min: 0, Max: 3, Default: 0.9, Step: 0.1, Unit: "m"},
				{Key: "alignment", Label: "Sun-Moon Alignment", Min: 0, Max: 180, Default: 0, Step: 5, Unit: "deg"},
			},
		},
		New: func() engine.Simulation { return NewTides() },
	})

	r.Register(engine.Entry{
		Config: config.SimConfig{
			Slug:     "diffusion",
			Name:     "Brownian Diffusion",
			Category: "chemistry",
			ParamSpecs: []config.ParamSpec{
				{Key: "particleCount", Label: "Particles", Min: 1, Max: 500, Default: 150, Step: 10, Integer: true},
				{Key: "temperature", Label: "Temperature", Min: 50, Max: 1200, Default: 300, Step: 25, Unit: "K"},
				{Key: "driftStrength", Label: "Drift Strength", Min: 0, Max: 5, Default: 1, Step: 0.25},
			},
		},
		New: func() engine.Simulation { return NewDiffusion() },
	})

	return r
}
