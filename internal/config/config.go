package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ParamSpec declares one tunable numeric parameter of a simulation: its key
// in the host-supplied parameter bag, display metadata, range, and default.
type ParamSpec struct {
	Key     string  `yaml:"key" json:"key"`
	Label   string  `yaml:"label" json:"label"`
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
	Default float64 `yaml:"default" json:"default"`
	Step    float64 `yaml:"step" json:"step"`
	Unit    string  `yaml:"unit,omitempty" json:"unit,omitempty"`
	Integer bool    `yaml:"integer,omitempty" json:"integer,omitempty"`
}

// SimConfig is the schema a host looks up by slug before driving a
// simulation: the recognized parameter keys and their ranges.
type SimConfig struct {
	Slug       string      `yaml:"slug" json:"slug"`
	Name       string      `yaml:"name" json:"name"`
	Category   string      `yaml:"category" json:"category"`
	ParamSpecs []ParamSpec `yaml:"params" json:"paramSpecs"`
}

// Defaults returns the parameter bag a simulation sees when the host supplies
// nothing.
func (c SimConfig) Defaults() map[string]float64 {
	out := make(map[string]float64, len(c.ParamSpecs))
	for _, s := range c.ParamSpecs {
		out[s.Key] = s.Default
	}
	return out
}

// Spec returns the spec for key, if declared.
func (c SimConfig) Spec(key string) (ParamSpec, bool) {
	for _, s := range c.ParamSpecs {
		if s.Key == key {
			return s, true
		}
	}
	return ParamSpec{}, false
}

// Normalize coerces a raw parameter bag against the schema: out-of-range
// values clamp to [Min, Max], integer-valued specs round to nearest, and
// missing keys are filled from defaults. Keys with no spec pass through
// untouched. The input map is not modified.
func Normalize(params map[string]float64, specs []ParamSpec) map[string]float64 {
	out := make(map[string]float64, len(specs))
	for k, v := range params {
		out[k] = v
	}
	for _, s := range specs {
		v, ok := out[s.Key]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			v = s.Default
		}
		if v < s.Min {
			v = s.Min
		}
		if v > s.Max {
			v = s.Max
		}
		if s.Integer {
			v = math.Round(v)
		}
		out[s.Key] = v
	}
	return out
}

// Overrides is an on-disk parameter override file: slug to key to value.
type Overrides map[string]map[string]float64

func Load(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	return o, nil
}

func Save(path string, o Overrides) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply merges overrides for slug on top of the schema defaults.
func (o Overrides) Apply(cfg SimConfig) map[string]float64 {
	params := cfg.Defaults()
	for k, v := range o[cfg.Slug] {
		params[k] = v
	}
	return Normalize(params, cfg.ParamSpecs)
}
