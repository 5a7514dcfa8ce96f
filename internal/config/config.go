package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/averdu/dragfall/internal/fall"
)

// Classical exercise defaults: an 80 kg skydiver with linear drag.
const (
	DefaultMass    = 80.0
	DefaultDrag    = 12.0
	DefaultGravity = 9.81
	DefaultV0      = 0.0
	DefaultTMax    = 10.0
	DefaultPoints  = 500
)

type Config struct {
	TMax      float64          `yaml:"t_max"`
	Points    int              `yaml:"points"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
}

type ScenarioConfig struct {
	Label   string  `yaml:"label"`
	Mass    float64 `yaml:"mass"`
	Drag    float64 `yaml:"drag"`
	Gravity float64 `yaml:"gravity"`
	V0      float64 `yaml:"v0"`
}

func DefaultConfig() *Config {
	return &Config{
		TMax:   DefaultTMax,
		Points: DefaultPoints,
		Scenarios: []ScenarioConfig{
			{Label: "skydiver", Mass: DefaultMass, Drag: DefaultDrag, Gravity: DefaultGravity, V0: DefaultV0},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{TMax: DefaultTMax, Points: DefaultPoints}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildScenarios converts the configured entries into domain scenarios
// sharing the run-wide sampling window. Unlabeled entries get positional
// labels so faults stay attributable; an omitted gravity falls back to the
// default rather than to zero.
func (c *Config) BuildScenarios() []fall.Scenario {
	scenarios := make([]fall.Scenario, 0, len(c.Scenarios))
	for i, sc := range c.Scenarios {
		label := sc.Label
		if label == "" {
			label = fmt.Sprintf("scenario %d", i+1)
		}
		gravity := sc.Gravity
		if gravity == 0 {
			gravity = DefaultGravity
		}
		scenarios = append(scenarios, fall.Scenario{
			Label: label,
			Params: fall.Params{
				Mass:    sc.Mass,
				Drag:    sc.Drag,
				Gravity: gravity,
				V0:      sc.V0,
			},
			TMax:   c.TMax,
			Points: c.Points,
		})
	}
	return scenarios
}
