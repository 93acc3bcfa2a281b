package config

import "sort"

// Presets maps a scenario name to its charge list. "dipole" is the default
// ±1 nC pair at (∓2, 0).
var Presets = map[string][]ChargeConfig{
	"dipole": {
		{Q: 1e-9, X: -2, Y: 0},
		{Q: -1e-9, X: 2, Y: 0},
	},
	"like": {
		{Q: 1e-9, X: -2, Y: 0},
		{Q: 1e-9, X: 2, Y: 0},
	},
	"single": {
		{Q: 1e-9, X: 0, Y: 0},
	},
	"quadrupole": {
		{Q: 1e-9, X: -2, Y: 0},
		{Q: -1e-9, X: 0, Y: 2},
		{Q: 1e-9, X: 2, Y: 0},
		{Q: -1e-9, X: 0, Y: -2},
	},
	"triangle": {
		{Q: 2e-9, X: 0, Y: 2},
		{Q: -1e-9, X: -1.732, Y: -1},
		{Q: -1e-9, X: 1.732, Y: -1},
	},
}

// GetPreset returns a copy of the named charge list, or nil.
func GetPreset(name string) []ChargeConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	out := make([]ChargeConfig, len(p))
	copy(out, p)
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
