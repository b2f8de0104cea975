package scene

import (
	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/geometry"
)

// Regression scripts the decomposition SS_total = SS_residual + SS_model.
// The scatter, mean and regression line appear first; then the total,
// residual and model deviation lines are shown in turn, each followed by its
// formula.
func Regression(cfg *config.Config) (*Timeline, error) {
	pal := cfg.Palette.Merge(geometry.DefaultPalette())
	points := cfg.Regression.Points
	line, err := cfg.RegressionLine()
	if err != nil {
		return nil, err
	}
	rl, err := geometry.NewRegressionLines(points, line, pal)
	if err != nil {
		return nil, err
	}
	shift := geometry.Down.Scale(cfg.Regression.Shift)

	ssTot := toCorner(formula(`SS_{tot} = \sum (Y_i - Y_{mean})^2`, formulaSize, pal.Text), geometry.Up, geometry.Left)
	ssRes := formula(`SS_{res} = \sum (Y_i - \hat{Y}_i)^2`, formulaSize, pal.Text).NextTo(ssTot, geometry.Down, nextToBuff, false)
	ssMod := formula(`SS_{mod} = SS_{tot} - SS_{res}`, formulaSize, pal.Text).NextTo(ssRes, geometry.Down, nextToBuff, false)

	phase := func(name string, lines, f geometry.Group, exit Exit) Phase {
		return Phase{
			Name:    name,
			Formula: Layer{Name: name + "_formula", Shapes: f, Write: true},
			Lines:   lines.Translate(shift),
			Exit:    exit,
		}
	}

	d := Decomposition{
		Name:    "regression",
		RunTime: cfg.Timing.RunTime,
		Setup: []Layer{
			{Name: "data", Shapes: geometry.Scatter(points, pal.Data).Translate(shift)},
			{Name: "mean_line", Shapes: geometry.Group{rl.MeanLine}.Translate(shift)},
			{Name: "regression_line", Shapes: geometry.Group{rl.FitLine}.Translate(shift)},
		},
		Phases: []Phase{
			phase("ss_total", rl.Total, ssTot, ExitRemove),
			phase("ss_residual", rl.Residual, ssRes, ExitRemove),
			phase("ss_model", rl.Model, ssMod, ExitKeep),
		},
		FinalHold: cfg.Timing.LongHold,
	}
	return d.Timeline()
}
