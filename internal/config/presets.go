package config

// Presets are named parameter bags layered over a simulation's defaults.
// Only the keys that differ from the defaults are listed.
var Presets = map[string]map[string]map[string]float64{
	"three-body-problem": {
		"figure-eight": {"preset": 0, "m1": 1.0, "m2": 1.0, "m3": 1.0},
		"triangle":     {"preset": 1},
		"random":       {"preset": 2},
		"heavy-sun":    {"preset": 1, "m1": 6.0},
	},
	"gas-laws": {
		"stp":        {"temperature": 300, "volume": 1.0, "particleCount": 120},
		"hot":        {"temperature": 900, "volume": 1.0, "particleCount": 120},
		"compressed": {"temperature": 300, "volume": 0.4, "particleCount": 120},
		"sparse":     {"temperature": 300, "volume": 1.0, "particleCount": 30},
	},
	"rlc-circuit": {
		"resonance":  {"frequency": 50.3, "resistance": 10},
		"overdamped": {"frequency": 20, "resistance": 400},
		"inductive":  {"frequency": 200, "inductance": 0.3},
		"capacitive": {"frequency": 10, "capacitance": 50},
	},
	"electron-beam": {
		"centered":  {"deflectionX": 0, "deflectionY": 0},
		"lissajous": {"deflectionX": 60, "deflectionY": -40},
		"slow-gun":  {"gunVoltage": 400},
	},
	"tides": {
		"spring": {"alignment": 0},
		"neap":   {"alignment": 180},
	},
	"diffusion": {
		"cold":   {"temperature": 100, "particleCount": 150},
		"hot":    {"temperature": 900, "particleCount": 150},
		"drifty": {"driftStrength": 2.5},
	},
}

// GetPreset returns the preset bag, or nil when unknown.
func GetPreset(slug, name string) map[string]float64 {
	simPresets, ok := Presets[slug]
	if !ok {
		return nil
	}
	bag, ok := simPresets[name]
	if !ok {
		return nil
	}
	return bag
}

func ListPresets(slug string) []string {
	simPresets, ok := Presets[slug]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(simPresets))
	for name := range simPresets {
		names = append(names, name)
	}
	return names
}
