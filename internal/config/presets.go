package config

import (
	"sort"

	"github.com/san-kum/statanim/internal/dataset"
)

// Presets tweak the default configuration per scene.
var Presets = map[string]map[string]func(*Config){
	"regression": {
		"fitted": func(c *Config) {},
		"placeholder": func(c *Config) {
			c.Regression.Line = &dataset.Line{Slope: 1.1, Intercept: 1}
		},
		"noisy": func(c *Config) {
			c.Regression.Points = []dataset.Point{
				{X: 1, Y: 1.2}, {X: 2, Y: 3.4}, {X: 3, Y: 2.1}, {X: 4, Y: 4.8}, {X: 5, Y: 3.9}, {X: 6, Y: 6.5},
			}
		},
	},
	"anova": {
		"tight": func(c *Config) {
			c.ANOVA.Jitter = 0.05
		},
		"spread": func(c *Config) {
			c.ANOVA.Jitter = 0.2
		},
		"fast": func(c *Config) {
			c.Timing.Stagger = 0.1
			c.Timing.LongHold = 1
		},
	},
	"fstat": {
		"classic": func(c *Config) {},
		"wide": func(c *Config) {
			c.FStat.DFModel = 5
			c.FStat.DFError = 20
		},
		"small_sample": func(c *Config) {
			c.FStat.DFModel = 2
			c.FStat.DFError = 4
		},
		"strict": func(c *Config) {
			c.FStat.Alpha = 0.01
		},
	},
}

// GetPreset returns the default configuration with the named preset applied,
// or nil if the scene or preset is unknown.
func GetPreset(scene, name string) *Config {
	ps, ok := Presets[scene]
	if !ok {
		return nil
	}
	apply, ok := ps[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets(scene string) []string {
	ps, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
