package config

import "sort"

var Presets = map[string]*Config{
	"skydiver": {
		TMax: 60.0, Points: 500,
		Scenarios: []ScenarioConfig{
			{Label: "belly-to-earth", Mass: 80, Drag: 12, Gravity: 9.81, V0: 0},
			{Label: "head-down", Mass: 80, Drag: 9, Gravity: 9.81, V0: 0},
			{Label: "open canopy", Mass: 85, Drag: 160, Gravity: 9.81, V0: 55},
		},
	},
	"raindrop": {
		TMax: 3.0, Points: 300,
		Scenarios: []ScenarioConfig{
			{Label: "drizzle", Mass: 4.2e-6, Drag: 1.5e-5, Gravity: 9.81, V0: 0},
			{Label: "downpour", Mass: 6.5e-5, Drag: 9.0e-5, Gravity: 9.81, V0: 0},
		},
	},
	"mass-sweep": {
		TMax: 30.0, Points: 400,
		Scenarios: []ScenarioConfig{
			{Label: "40 kg", Mass: 40, Drag: 12, Gravity: 9.81, V0: 0},
			{Label: "80 kg", Mass: 80, Drag: 12, Gravity: 9.81, V0: 0},
			{Label: "120 kg", Mass: 120, Drag: 12, Gravity: 9.81, V0: 0},
		},
	},
	"approach": {
		TMax: 40.0, Points: 400,
		Scenarios: []ScenarioConfig{
			{Label: "from rest", Mass: 80, Drag: 12, Gravity: 9.81, V0: 0},
			{Label: "past terminal", Mass: 80, Drag: 12, Gravity: 9.81, V0: 120},
			{Label: "at terminal", Mass: 80, Drag: 12, Gravity: 9.81, V0: 65.4},
		},
	},
	"moon": {
		TMax: 20.0, Points: 400,
		Scenarios: []ScenarioConfig{
			{Label: "earth", Mass: 80, Drag: 12, Gravity: 9.81, V0: 0},
			{Label: "moon, thin drag", Mass: 80, Drag: 2, Gravity: 1.62, V0: 0},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
