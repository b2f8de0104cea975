package scene

import (
	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/geometry"
)

// ANOVA scripts the one-way decomposition. Group means and the within-group
// deviations come first, then the grand mean with each point's deviation
// from it, and finally the deviations of the group means from the grand mean
// under SS_total = SS_between + SS_within. Every deviation line is drawn on
// its own.
func ANOVA(cfg *config.Config) (*Timeline, error) {
	pal := cfg.Palette.Merge(geometry.DefaultPalette())
	groups := cfg.Groups()
	al, err := geometry.NewANOVALines(groups, pal)
	if err != nil {
		return nil, err
	}
	shift := geometry.Down.Scale(cfg.ANOVA.Shift)
	t := cfg.Timing

	ssBetween := formula(`SS_{between} = \sum n_i(\overline{Y}_{i} - \overline{Y})^2`, formulaSize, pal.Text).ToEdge(geometry.Left, edgeBuff)
	ssWithin := formula(`SS_{within} = \sum (Y_{ij} - \overline{Y}_{i})^2`, formulaSize, pal.Text).NextTo(ssBetween, geometry.Down, nextToBuff, true)
	ssTotal := formula(`SS_{total} = SS_{between} + SS_{within}`, formulaSize, pal.Text).NextTo(ssWithin, geometry.Down, nextToBuff, true)

	groupMeans := al.GroupMeanLines.Translate(shift)
	grandMean := geometry.Group{al.GrandMeanLine}.Translate(shift)

	d := Decomposition{
		Name:    "anova",
		RunTime: t.RunTime,
		Setup: []Layer{
			{Name: "data", Shapes: geometry.Scatter(groups.All(), pal.GroupData).Translate(shift)},
		},
		Phases: []Phase{
			{
				Name: "ss_within",
				Intro: []Layer{
					{Name: "group_means", Shapes: groupMeans},
					{Name: "group_means_label", Shapes: text("Group means", labelSize, pal.Text).NextTo(groupMeans, geometry.Left, nextToBuff, false), Write: true, Transient: true},
				},
				IntroHold:    t.LongHold,
				Formula:      Layer{Name: "ss_within_formula", Shapes: ssWithin, Write: true},
				FormulaFirst: true,
				Lines:        al.ToGroupMean.Translate(shift),
				Stagger:      t.Stagger,
				Hold:         t.LongHold,
				Exit:         ExitFadeOut,
			},
			{
				Name: "ss_between",
				Intro: []Layer{
					{Name: "grand_mean", Shapes: grandMean},
					{Name: "grand_mean_label", Shapes: text("Grand mean", labelSize, pal.Text).NextTo(grandMean, geometry.Left, nextToBuff, false), Write: true, Transient: true},
				},
				IntroHold:    t.LongHold,
				Formula:      Layer{Name: "ss_between_formula", Shapes: ssBetween, Write: true},
				FormulaFirst: true,
				Lines:        al.ToGrandMean.Translate(shift),
				Stagger:      t.Stagger,
				Hold:         t.LongHold,
				Exit:         ExitFadeOut,
			},
			{
				Name:         "ss_total",
				Formula:      Layer{Name: "ss_total_formula", Shapes: ssTotal, Write: true},
				FormulaFirst: true,
				Lines:        al.GroupToGrand.Translate(shift),
				Stagger:      t.Stagger,
				Hold:         t.LongHold,
				Exit:         ExitKeep,
			},
		},
	}
	return d.Timeline()
}
