package config

import "sort"

var Presets = map[string]map[string]*Config{
	"logistic": {
		"edge": {
			Map: "logistic", A: 3.58, Iterations: 5, Length: 16, Curve: DefaultCurveConfig(),
		},
		"classic": {
			Map: "logistic", A: 3.9, Iterations: 5, Length: 16, Curve: DefaultCurveConfig(),
		},
		"full": {
			Map: "logistic", A: 3.99, Iterations: 10, Length: 32, Curve: DefaultCurveConfig(),
		},
	},
	"singer": {
		"onset": {
			Map: "singer", A: 0.9, Iterations: 5, Length: 16, Curve: DefaultCurveConfig(),
		},
		"chaotic": {
			Map: "singer", A: 1.07, Iterations: 5, Length: 16, Curve: DefaultCurveConfig(),
		},
	},
	"pwlcm": {
		"low": {
			Map: "pwlcm", A: 0.3, Iterations: 5, Length: 16, Curve: DefaultCurveConfig(),
		},
		"mid": {
			Map: "pwlcm", A: 0.45, Iterations: 5, Length: 16, Curve: DefaultCurveConfig(),
		},
		"high": {
			Map: "pwlcm", A: 0.9, Iterations: 10, Length: 32, Curve: DefaultCurveConfig(),
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(mapName, preset string) *Config {
	mapPresets, ok := Presets[mapName]
	if !ok {
		return nil
	}
	cfg, ok := mapPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names for a map, sorted.
func ListPresets(mapName string) []string {
	mapPresets, ok := Presets[mapName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(mapPresets))
	for name := range mapPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
