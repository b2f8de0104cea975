package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/san-kum/statanim/internal/dataset"
	"github.com/san-kum/statanim/internal/geometry"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRunTime  = 1.0
	DefaultHold     = 1.0
	DefaultLongHold = 3.0
	DefaultStagger  = 0.3

	DefaultRegressionShift = 3.0
	DefaultANOVAShift      = 2.0

	DefaultDFModel   = 2
	DefaultDFError   = 10
	DefaultDFSquared = 2
	DefaultAlpha     = 0.05
)

type Config struct {
	Timing     TimingConfig     `yaml:"timing"`
	Regression RegressionConfig `yaml:"regression"`
	ANOVA      ANOVAConfig      `yaml:"anova"`
	FStat      FStatConfig      `yaml:"fstat"`
	Palette    geometry.Palette `yaml:"palette"`
}

type TimingConfig struct {
	RunTime  float64 `yaml:"run_time"`
	Hold     float64 `yaml:"hold"`
	LongHold float64 `yaml:"long_hold"`
	Stagger  float64 `yaml:"stagger"`
}

type RegressionConfig struct {
	Points []dataset.Point `yaml:"points"`
	// Line pins the drawn regression line; the least squares fit is used when nil.
	Line  *dataset.Line `yaml:"line,omitempty"`
	Shift float64       `yaml:"shift"`
}

// GroupConfig is one ANOVA group. A nil Centre places group i at x = i+1.
type GroupConfig struct {
	Name   string    `yaml:"name"`
	Centre *float64  `yaml:"centre,omitempty"`
	Values []float64 `yaml:"values"`
}

type ANOVAConfig struct {
	Groups []GroupConfig `yaml:"groups"`
	Jitter float64       `yaml:"jitter"`
	Shift  float64       `yaml:"shift"`
}

type FStatConfig struct {
	DFModel   int     `yaml:"df_model"`
	DFError   int     `yaml:"df_error"`
	DFSquared int     `yaml:"df_squared"`
	Samples   int     `yaml:"samples"`
	Alpha     float64 `yaml:"alpha"`
}

func DefaultConfig() *Config {
	groups := dataset.ANOVAGroups(dataset.DefaultJitter)
	gcs := make([]GroupConfig, len(groups))
	for i, g := range groups {
		centre := float64(i + 1)
		gcs[i] = GroupConfig{Name: g.Name, Centre: &centre, Values: g.Ys()}
	}
	return &Config{
		Timing: TimingConfig{
			RunTime:  DefaultRunTime,
			Hold:     DefaultHold,
			LongHold: DefaultLongHold,
			Stagger:  DefaultStagger,
		},
		Regression: RegressionConfig{
			Points: dataset.RegressionSample(),
			Shift:  DefaultRegressionShift,
		},
		ANOVA: ANOVAConfig{
			Groups: gcs,
			Jitter: dataset.DefaultJitter,
			Shift:  DefaultANOVAShift,
		},
		FStat: FStatConfig{
			DFModel:   DefaultDFModel,
			DFError:   DefaultDFError,
			DFSquared: DefaultDFSquared,
			Samples:   geometry.DefaultSamples,
			Alpha:     DefaultAlpha,
		},
		Palette: geometry.DefaultPalette(),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base; keys missing from the file keep the
// values of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.Palette = cfg.Palette.Merge(geometry.DefaultPalette())
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Validate rejects datasets and parameters no scene can be built from.
func (c *Config) Validate() error {
	if len(c.Regression.Points) < 2 {
		return fmt.Errorf("regression needs at least 2 points: %w", dataset.ErrEmpty)
	}
	if c.Regression.Line == nil {
		if _, err := dataset.Fit(c.Regression.Points); err != nil {
			return fmt.Errorf("regression: %w", err)
		}
	}
	if err := c.Groups().Validate(); err != nil {
		return fmt.Errorf("anova: %w", err)
	}
	if c.FStat.DFModel < 1 || c.FStat.DFError < 1 || c.FStat.DFSquared < 1 {
		return fmt.Errorf("fstat: degrees of freedom must be positive")
	}
	if c.FStat.Samples < 2 {
		return fmt.Errorf("fstat: samples must be at least 2, got %d", c.FStat.Samples)
	}
	if c.FStat.Alpha < 0 || c.FStat.Alpha >= 1 {
		return fmt.Errorf("fstat: alpha must be in [0, 1), got %v", c.FStat.Alpha)
	}
	if c.Timing.RunTime <= 0 {
		return fmt.Errorf("timing: run_time must be positive")
	}
	return nil
}

// Groups builds the ANOVA groups, spreading each group's values around its
// centre by the configured jitter.
func (c *Config) Groups() dataset.Groups {
	groups := make(dataset.Groups, len(c.ANOVA.Groups))
	for i, gc := range c.ANOVA.Groups {
		name := gc.Name
		if name == "" {
			name = fmt.Sprintf("Group %d", i+1)
		}
		centre := float64(i + 1)
		if gc.Centre != nil {
			centre = *gc.Centre
		}
		groups[i] = dataset.Jitter(name, centre, c.ANOVA.Jitter, gc.Values)
	}
	return groups
}

// RegressionLine is the pinned line, or the least squares fit of the points.
func (c *Config) RegressionLine() (dataset.Line, error) {
	if c.Regression.Line != nil {
		return *c.Regression.Line, nil
	}
	return dataset.Fit(c.Regression.Points)
}
