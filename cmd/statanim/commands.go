package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/export"
	"github.com/san-kum/statanim/internal/geometry"
	"github.com/san-kum/statanim/internal/scene"
	"github.com/san-kum/statanim/internal/stats"
	"github.com/san-kum/statanim/internal/storage"
	"github.com/san-kum/statanim/internal/viz"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func listScenes(cmd *cobra.Command, args []string) error {
	reg := scene.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tDESCRIPTION\tPRESETS")
	for _, name := range reg.List() {
		fmt.Fprintf(w, "%s\t%s\t%v\n", name, reg.Describe(name), config.ListPresets(name))
	}
	return w.Flush()
}

func renderScene(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := loadConfig(cmd, name, preset)
	if err != nil {
		return err
	}
	tl, err := scene.NewRegistry().Build(name, cfg)
	if err != nil {
		return err
	}

	summary, err := sceneSummary(name, cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(tl, storage.Options{
		Preset:   preset,
		SVGWidth: svgWidth,
		GIF:      gifOut,
		GIFCols:  cols,
		GIFRows:  rows,
		Summary:  summary,
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"run": runID, "scene": name}).Info("render saved")
	fmt.Printf("saved: %s\n", runID)
	fmt.Printf("steps: %d, entities: %d, duration: %.1fs\n", len(tl.Steps), len(tl.Entities), tl.Duration())
	return nil
}

// sceneSummary collects the headline numbers stored with a render.
func sceneSummary(name string, cfg *config.Config) (map[string]float64, error) {
	switch name {
	case "regression":
		line, err := cfg.RegressionLine()
		if err != nil {
			return nil, err
		}
		d, err := stats.Regression(cfg.Regression.Points, line)
		if err != nil {
			return nil, err
		}
		return map[string]float64{
			"slope":       line.Slope,
			"intercept":   line.Intercept,
			"ss_total":    d.Total,
			"ss_residual": d.Residual,
			"ss_model":    d.Model,
		}, nil
	case "anova":
		a, err := stats.OneWay(cfg.Groups())
		if err != nil {
			return nil, err
		}
		return map[string]float64{
			"ss_between": a.Between(),
			"ss_within":  a.Within(),
			"ss_total":   a.Total.SS,
			"f":          a.F,
			"p":          a.P,
		}, nil
	case "fstat":
		out := map[string]float64{
			"df_model": float64(cfg.FStat.DFModel),
			"df_error": float64(cfg.FStat.DFError),
		}
		if cfg.FStat.Alpha > 0 {
			crit, err := stats.FCritical(cfg.FStat.Alpha, cfg.FStat.DFModel, cfg.FStat.DFError)
			if err != nil {
				return nil, err
			}
			out["alpha"] = cfg.FStat.Alpha
			out["f_critical"] = crit
		}
		return out, nil
	}
	return nil, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tPRESET\tTIME\tSTEPS\tDURATION\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.1fs\t%d\n",
			run.ID,
			run.Scene,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Duration,
			run.Frames,
		)
	}
	return w.Flush()
}

func exportScene(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	tl, err := buildScene(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := export.NewDocument(tl, preset)
	if err != nil {
		return err
	}
	return export.Write(os.Stdout, f, doc)
}

func printFrame(cmd *cobra.Command, args []string) error {
	tl, err := buildScene(cmd, args[0])
	if err != nil {
		return err
	}
	frames, err := tl.Frames()
	if err != nil {
		return err
	}
	idx := step
	if idx < 0 {
		idx = len(frames) - 1
	}
	if idx >= len(frames) {
		return errors.Errorf("step %d out of range (timeline has %d steps)", idx, len(frames))
	}

	f := frames[idx]
	shapes := tl.Shapes(f)
	fmt.Printf("%s step %d/%d  t=%.1fs  %s\n", tl.Name, idx, len(frames)-1, f.End, tl.Steps[idx].Kind())
	fmt.Print(viz.RenderFrame(shapes, cols, rows))

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.FrameToSVG(shapes, svgWidthOr(1280))), 0644); err != nil {
			return errors.Wrap(err, "write svg")
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func svgWidthOr(def int) int {
	if svgWidth > 0 {
		return svgWidth
	}
	return def
}

func previewScene(cmd *cobra.Command, args []string) error {
	tl, err := buildScene(cmd, args[0])
	if err != nil {
		return err
	}
	t, err := resolveTheme()
	if err != nil {
		return err
	}
	m, err := viz.NewPreviewer(tl, t.Name)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func plotDensity(cmd *cobra.Command, args []string) error {
	pal := geometry.DefaultPalette()
	var (
		curve viz.Curve
		err   error
	)
	switch args[0] {
	case "normal":
		curve = viz.Curve{Name: "standard normal", PDF: stats.NormalPDF, Range: geometry.Range{Min: -4, Max: 4}, Color: pal.Normal}
	case "chi2":
		curve = viz.Curve{Name: fmt.Sprintf("chi-squared df=%d", df), Range: geometry.Range{Min: 0, Max: math.Max(8, float64(df)*3)}, Color: pal.ChiSquared}
		curve.PDF, err = stats.ChiSquaredDensity(df)
	case "f":
		curve = viz.Curve{Name: fmt.Sprintf("F(%d, %d)", df1, df2), Range: geometry.Range{Min: 0, Max: 5}, Color: pal.F}
		curve.PDF, err = stats.FDensity(df1, df2)
	default:
		return errors.Errorf("unknown density %q (want normal, chi2 or f)", args[0])
	}
	if err != nil {
		return err
	}

	graph, err := viz.PlotDensity(curve.PDF, curve.Range, curve.Name)
	if err != nil {
		return err
	}
	fmt.Println(graph)

	opts := viz.ChartOptions{Title: curve.Name, Width: 1024, Height: 480}
	if args[0] == "f" {
		crit, err := stats.FCritical(config.DefaultAlpha, df1, df2)
		if err != nil {
			return err
		}
		fmt.Printf("critical value (alpha = %.2f): %.4f\n", config.DefaultAlpha, crit)
		opts.Marker, opts.MarkerName, opts.MarkerColor = &crit, "critical value", pal.Critical
	}

	if pngOut == "" {
		return nil
	}
	f, err := os.Create(pngOut)
	if err != nil {
		return errors.Wrap(err, "create png")
	}
	defer f.Close()
	if err := viz.DensityChart(f, []viz.Curve{curve}, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", pngOut)
	return nil
}

func printSummary(cmd *cobra.Command, args []string) error {
	regCfg, err := loadConfig(cmd, "regression", presetFor("regression"))
	if err != nil {
		return err
	}
	line, err := regCfg.RegressionLine()
	if err != nil {
		return err
	}
	reg, err := stats.RegressionTable(regCfg.Regression.Points, line)
	if err != nil {
		return err
	}

	anovaCfg, err := loadConfig(cmd, "anova", presetFor("anova"))
	if err != nil {
		return err
	}
	a, err := stats.OneWay(anovaCfg.Groups())
	if err != nil {
		return err
	}

	t, err := resolveTheme()
	if err != nil {
		return err
	}
	styles := t.Styles()

	var buf bytes.Buffer
	if err := writeTable(&buf, reg, "model", "residual", regCfg.FStat.Alpha); err != nil {
		return err
	}
	title := fmt.Sprintf("regression  y = %.4fx + %.4f", line.Slope, line.Intercept)
	fmt.Println(viz.BoxWithTitle(title, strings.TrimRight(buf.String(), "\n"), styles))

	buf.Reset()
	if err := writeTable(&buf, a.Table, "between", "within", anovaCfg.FStat.Alpha); err != nil {
		return err
	}
	title = fmt.Sprintf("one-way anova  grand mean = %.4f", a.GrandMean)
	fmt.Println(viz.BoxWithTitle(title, strings.TrimRight(buf.String(), "\n"), styles))
	return nil
}

// resolveTheme looks up --theme, rejecting names that are not defined.
func resolveTheme() (viz.Theme, error) {
	t := viz.GetTheme(theme)
	if t.Name != theme {
		return t, errors.Errorf("unknown theme %q (have %s)", theme, strings.Join(viz.ThemeNames(), ", "))
	}
	return t, nil
}

// presetFor returns the --preset value if the scene defines it.
func presetFor(sceneName string) string {
	for _, p := range config.ListPresets(sceneName) {
		if p == preset {
			return p
		}
	}
	return ""
}

func writeTable(out io.Writer, t stats.Table, model, residual string, alpha float64) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "SOURCE\tSS\tDF\tMS\t")
	row := func(name string, s stats.Source, ms bool) {
		msCol := ""
		if ms {
			msCol = fmt.Sprintf("%.4f", s.MS)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%d\t%s\t\n", name, s.SS, s.DF, msCol)
	}
	row(model, t.Model, true)
	row(residual, t.Error, true)
	row("total", t.Total, false)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "F = %.4f  p = %.4g\n", t.F, t.P)
	if alpha > 0 && t.Model.DF > 0 && t.Error.DF > 0 {
		crit, err := stats.FCritical(alpha, t.Model.DF, t.Error.DF)
		if err != nil {
			return err
		}
		verdict := "not significant"
		if t.F > crit {
			verdict = "significant"
		}
		fmt.Fprintf(out, "F_crit(alpha = %.2f) = %.4f  %s\n", alpha, crit, verdict)
	}
	return nil
}
