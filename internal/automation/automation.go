package automation

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/scene"
	"github.com/san-kum/statanim/internal/stats"
	"github.com/san-kum/statanim/internal/storage"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Scenario is a batch of renders described in YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep renders one scene. ConfigPath, when set, is read on top of the
// preset; Timing and FStat override single values after that.
type ScenarioStep struct {
	Scene      string   `yaml:"scene"`
	Preset     string   `yaml:"preset"`
	ConfigPath string   `yaml:"config"`
	RunTime    float64  `yaml:"run_time"`
	DFModel    int      `yaml:"df_model"`
	DFError    int      `yaml:"df_error"`
	Alpha      *float64 `yaml:"alpha"`
	SVGWidth   int      `yaml:"svg_width"`
	GIF        bool     `yaml:"gif"`
}

// Result is the outcome of one scenario step.
type Result struct {
	Step     int
	Scene    string
	RunID    string
	Steps    int
	Duration float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, errors.Wrapf(err, "parse scenario %s", path)
	}
	if len(scenario.Steps) == 0 {
		return nil, errors.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Config resolves the configuration of a step.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Scene, s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset %s for %s", s.Preset, s.Scene)
		}
	}
	if s.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadOver(s.ConfigPath, cfg); err != nil {
			return nil, err
		}
	}
	if s.RunTime > 0 {
		cfg.Timing.RunTime = s.RunTime
	}
	if s.DFModel > 0 {
		cfg.FStat.DFModel = s.DFModel
	}
	if s.DFError > 0 {
		cfg.FStat.DFError = s.DFError
	}
	if s.Alpha != nil {
		cfg.FStat.Alpha = *s.Alpha
	}
	return cfg, cfg.Validate()
}

// RunScenario builds every step concurrently and stores the timelines in
// order. Nothing is stored if any step fails to build.
func RunScenario(ctx context.Context, scenario *Scenario, registry *scene.Registry, st *storage.Store) ([]Result, error) {
	n := len(scenario.Steps)
	timelines := make([]*scene.Timeline, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			step := scenario.Steps[idx]
			cfg, err := step.Config()
			if err != nil {
				errs[idx] = err
				return
			}
			timelines[idx], errs[idx] = registry.Build(step.Scene, cfg)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	results := make([]Result, 0, n)
	for i, tl := range timelines {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		step := scenario.Steps[i]
		runID, err := st.Save(tl, storage.Options{Preset: step.Preset, SVGWidth: step.SVGWidth, GIF: step.GIF, GIFCols: 72, GIFRows: 20})
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		log.WithFields(log.Fields{
			"scenario": scenario.Name,
			"step":     i + 1,
			"scene":    tl.Name,
			"run":      runID,
		}).Info("scenario step rendered")
		results = append(results, Result{Step: i + 1, Scene: tl.Name, RunID: runID, Steps: len(tl.Steps), Duration: tl.Duration()})
	}
	return results, nil
}

// CriticalSweep tabulates F critical values for one numerator df across a
// range of denominator df.
type CriticalSweep struct {
	DFModel int
	DFMin   int
	DFMax   int
	Alpha   float64
}

type SweepResult struct {
	DFError  int
	Critical float64
	// Mass is the probability beyond the critical value; it equals Alpha.
	Mass float64
}

func RunSweep(ctx context.Context, sweep *CriticalSweep) ([]SweepResult, error) {
	if sweep.DFMax < sweep.DFMin {
		return nil, fmt.Errorf("sweep: df range [%d, %d] is empty", sweep.DFMin, sweep.DFMax)
	}
	results := make([]SweepResult, 0, sweep.DFMax-sweep.DFMin+1)
	for d := sweep.DFMin; d <= sweep.DFMax; d++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		crit, err := stats.FCritical(sweep.Alpha, sweep.DFModel, d)
		if err != nil {
			return nil, fmt.Errorf("sweep df_error=%d: %w", d, err)
		}
		mass, err := stats.FPValue(crit, sweep.DFModel, d)
		if err != nil {
			return nil, fmt.Errorf("sweep df_error=%d: %w", d, err)
		}
		results = append(results, SweepResult{DFError: d, Critical: crit, Mass: mass})
	}
	return results, nil
}
