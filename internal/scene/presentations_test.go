package scene_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/dataset"
	"github.com/san-kum/statanim/internal/geometry"
	"github.com/san-kum/statanim/internal/scene"
)

func visibleNames(tl *scene.Timeline, f scene.Frame) []string {
	names := make([]string, 0, len(f.Visible))
	for _, s := range f.Visible {
		e, _ := tl.Entity(s.Entity)
		names = append(names, e.Name)
	}
	return names
}

func lastFrame(tl *scene.Timeline) scene.Frame {
	frames, err := tl.Frames()
	Expect(err).NotTo(HaveOccurred())
	Expect(frames).NotTo(BeEmpty())
	return frames[len(frames)-1]
}

func entityShapes(tl *scene.Timeline, name string) geometry.Group {
	e, ok := tl.Lookup(name)
	Expect(ok).To(BeTrue(), "entity %s", name)
	return e.Shapes
}

var _ = Describe("Presentations", func() {
	var (
		cfg      *config.Config
		registry *scene.Registry
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		registry = scene.NewRegistry()
	})

	It("registers every presentation", func() {
		Expect(registry.List()).To(Equal([]string{"anova", "fstat", "regression"}))
		Expect(registry.Describe("anova")).NotTo(BeEmpty())

		_, err := registry.Build("bogus", cfg)
		Expect(err).To(MatchError(scene.ErrUnknownScene))
	})

	It("never references an entity before it is registered", func() {
		for _, name := range registry.List() {
			tl, err := registry.Build(name, cfg)
			Expect(err).NotTo(HaveOccurred(), name)

			for i, step := range tl.Steps {
				for _, a := range step.Animations {
					e, ok := tl.Entity(a.Target)
					Expect(ok).To(BeTrue())
					Expect(e.Since).To(BeNumerically("<=", i), "%s step %d", name, i)
					if a.Into != 0 {
						into, ok := tl.Entity(a.Into)
						Expect(ok).To(BeTrue())
						Expect(into.Since).To(BeNumerically("<=", i), "%s step %d", name, i)
					}
				}
			}
		}
	})

	Describe("regression", func() {
		var tl *scene.Timeline

		BeforeEach(func() {
			var err error
			tl, err = scene.Regression(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("shows total, residual and model lines in turn", func() {
			ops := func(i int) []scene.Op {
				var out []scene.Op
				for _, a := range tl.Steps[i].Animations {
					out = append(out, a.Op)
				}
				return out
			}
			Expect(tl.Steps).To(HaveLen(10))
			Expect(ops(0)).To(Equal([]scene.Op{scene.OpCreate, scene.OpCreate, scene.OpCreate}))
			Expect(ops(1)).To(Equal([]scene.Op{scene.OpCreate}))
			Expect(ops(2)).To(Equal([]scene.Op{scene.OpWrite}))
			Expect(ops(3)).To(Equal([]scene.Op{scene.OpRemove}))
			Expect(ops(8)).To(Equal([]scene.Op{scene.OpWrite}))
			Expect(tl.Steps[9].Kind()).To(Equal("hold"))
			Expect(tl.Steps[9].RunTime).To(Equal(config.DefaultLongHold))
		})

		It("ends with the model lines and all three formulas", func() {
			Expect(visibleNames(tl, lastFrame(tl))).To(ConsistOf(
				"data", "mean_line", "regression_line",
				"ss_total_formula", "ss_residual_formula",
				"ss_model", "ss_model_formula",
			))
		})

		It("draws lines whose squared lengths decompose", func() {
			total := geometry.SumSquaredLengths(entityShapes(tl, "ss_total"))
			residual := geometry.SumSquaredLengths(entityShapes(tl, "ss_residual"))
			model := geometry.SumSquaredLengths(entityShapes(tl, "ss_model"))
			Expect(total).To(BeNumerically("~", 5.8, 1e-9))
			Expect(residual + model).To(BeNumerically("~", total, 1e-9))
		})

		It("shifts the data below the formulas", func() {
			dots := entityShapes(tl, "data")
			Expect(dots[0].Points[0]).To(Equal(geometry.Vec2{X: 1, Y: 2 - config.DefaultRegressionShift}))
		})

		It("fails on an empty dataset", func() {
			cfg.Regression.Points = nil
			cfg.Regression.Line = &dataset.Line{Slope: 1}
			_, err := scene.Regression(cfg)
			Expect(err).To(HaveOccurred())
		})

		It("refuses to fit a line through points that share one x", func() {
			cfg.Regression.Points = []dataset.Point{{X: 2, Y: 1}, {X: 2, Y: 3}, {X: 2, Y: 5}}
			_, err := scene.Regression(cfg)
			Expect(err).To(MatchError(dataset.ErrDegenerate))
		})
	})

	Describe("anova", func() {
		var tl *scene.Timeline

		BeforeEach(func() {
			var err error
			tl, err = scene.ANOVA(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("draws every deviation line on its own", func() {
			Expect(tl.Steps).To(HaveLen(40))
			staggered := 0
			for _, step := range tl.Steps {
				if len(step.Animations) == 1 && step.RunTime == config.DefaultStagger {
					staggered++
				}
			}
			Expect(staggered).To(Equal(27))
		})

		It("fades out each phase's lines, label and formula", func() {
			frames, err := tl.Frames()
			Expect(err).NotTo(HaveOccurred())

			// setup, then intro, hold, formula, 9 lines, hold, fade out
			afterWithin := visibleNames(tl, frames[14])
			Expect(afterWithin).To(ConsistOf("data", "group_means"))

			afterBetween := visibleNames(tl, frames[28])
			Expect(afterBetween).To(ConsistOf("data", "group_means", "grand_mean"))
		})

		It("ends with the group-to-grand lines under the total formula", func() {
			names := visibleNames(tl, lastFrame(tl))
			Expect(names).To(HaveLen(13))
			Expect(names).To(ContainElements("data", "group_means", "grand_mean", "ss_total_formula", "ss_total[0]", "ss_total[8]"))
		})

		It("decomposes the sums of squares", func() {
			sum := func(prefix string) float64 {
				total := 0.0
				for i := 0; i < 9; i++ {
					total += geometry.SumSquaredLengths(entityShapes(tl, fmt.Sprintf("%s[%d]", prefix, i)))
				}
				return total
			}
			within := sum("ss_within")
			toGrand := sum("ss_between")
			groupToGrand := sum("ss_total")
			Expect(within).To(BeNumerically("~", 1.5, 1e-9))
			Expect(groupToGrand).To(BeNumerically("~", 6, 1e-9))
			Expect(toGrand).To(BeNumerically("~", within+groupToGrand, 1e-9))
		})

		It("fails on an empty group", func() {
			cfg.ANOVA.Groups[2].Values = nil
			_, err := scene.ANOVA(cfg)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("fstat", func() {
		var tl *scene.Timeline

		BeforeEach(func() {
			var err error
			tl, err = scene.FStatistic(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("writes the definitions top to bottom", func() {
			for i, name := range []string{"ss_block", "df_block", "ms_block", "f_block"} {
				e, _ := tl.Lookup(name)
				Expect(tl.Steps[i].Animations).To(Equal([]scene.Animation{scene.Write(e.ID)}))
			}
			ss := entityShapes(tl, "ss_block")
			f := entityShapes(tl, "f_block")
			Expect(ss.Center().Y).To(BeNumerically(">", f.Center().Y))
		})

		It("morphs the normal curve into a chi-squared curve", func() {
			normal, _ := tl.Lookup("normal_curve")
			chi, _ := tl.Lookup("chi_squared_curve")
			Expect(tl.Steps).To(ContainElement(HaveField("Animations", ContainElement(scene.Transform(normal.ID, chi.ID)))))
		})

		It("clears before the mean squares", func() {
			kinds := make([]string, len(tl.Steps))
			for i, s := range tl.Steps {
				kinds[i] = s.Kind()
			}
			Expect(kinds).To(ContainElement("clear"))
		})

		It("merges both curves into the ratio and the ratio into the F curve", func() {
			model, _ := tl.Lookup("ms_model_curve")
			errCurve, _ := tl.Lookup("ms_error_curve")
			ratio, _ := tl.Lookup("f_ratio")
			fCurve, _ := tl.Lookup("f_curve")

			Expect(tl.Steps).To(ContainElement(HaveField("Animations", ContainElements(
				scene.Replace(model.ID, ratio.ID),
				scene.Replace(errCurve.ID, ratio.ID),
			))))
			Expect(tl.Steps).To(ContainElement(HaveField("Animations", ContainElement(scene.Replace(ratio.ID, fCurve.ID)))))
		})

		It("ends on the F curve with its critical value", func() {
			Expect(visibleNames(tl, lastFrame(tl))).To(ConsistOf("f_caption", "f_curve", "f_critical", "f_critical_label"))
		})

		It("skips the critical value when it is off the axis", func() {
			cfg.FStat.DFError = 4
			tl, err := scene.FStatistic(cfg)
			Expect(err).NotTo(HaveOccurred())
			_, ok := tl.Lookup("f_critical")
			Expect(ok).To(BeFalse())
		})

		It("keeps every curve and axis inside the frame", func() {
			for _, df := range []int{1, 2, 5} {
				cfg.FStat.DFModel = df
				tl, err := scene.FStatistic(cfg)
				Expect(err).NotTo(HaveOccurred())
				for _, e := range tl.Entities {
					for _, p := range e.Shapes {
						if p.IsLabel() {
							continue
						}
						for _, v := range p.Points {
							Expect(v.X).To(BeNumerically("~", 0, geometry.FrameWidth/2), "df %d entity %s", df, e.Name)
							Expect(v.Y).To(BeNumerically("~", 0, geometry.FrameHeight/2), "df %d entity %s", df, e.Name)
						}
					}
				}
			}
		})

		It("rejects invalid degrees of freedom", func() {
			cfg.FStat.DFModel = 0
			_, err := scene.FStatistic(cfg)
			Expect(err).To(HaveOccurred())
		})
	})
})
