package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/san-kum/statanim/internal/config"
	"github.com/san-kum/statanim/internal/dataset"
	"github.com/san-kum/statanim/internal/scene"
	"github.com/san-kum/statanim/internal/viz"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	// Timing and scene overrides
	runTime float64
	stagger float64
	jitter  float64
	dfModel int
	dfError int
	alpha   float64
	samples int
	// Output
	format   string
	step     int
	cols     int
	rows     int
	svgWidth int
	svgOut   string
	gifOut   bool
	pngOut   string
	theme    string
	// Density plots
	df  int
	df1 int
	df2 int
	// Critical value sweep
	sweepMin int
	sweepMax int
)

// main registers the statanim commands and runs the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "statanim",
		Short:         "animated walkthroughs of regression, F statistic and ANOVA",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".statanim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeBlackboard.Name, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list presentations",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "build, validate and store a presentation",
		Args:  cobra.ExactArgs(1),
		RunE:  renderScene,
	}
	addSceneFlags(renderCmd)
	renderCmd.Flags().IntVar(&svgWidth, "svg-width", 1280, "width of the per-step SVG frames (0 to skip)")
	renderCmd.Flags().BoolVar(&gifOut, "gif", false, "also write preview.gif")
	renderCmd.Flags().IntVar(&cols, "cols", 72, "gif width in Braille cells")
	renderCmd.Flags().IntVar(&rows, "rows", 20, "gif height in Braille cells")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list renders",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [scene]",
		Short: "write a presentation timeline to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportScene,
	}
	addSceneFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")

	frameCmd := &cobra.Command{
		Use:   "frame [scene]",
		Short: "print the screen after a step",
		Args:  cobra.ExactArgs(1),
		RunE:  printFrame,
	}
	addSceneFlags(frameCmd)
	frameCmd.Flags().IntVar(&step, "step", -1, "step index (-1 for the last step)")
	frameCmd.Flags().IntVar(&cols, "cols", 72, "width in Braille cells")
	frameCmd.Flags().IntVar(&rows, "rows", 20, "height in Braille cells")
	frameCmd.Flags().StringVar(&svgOut, "svg", "", "also write the frame as SVG to this path")

	previewCmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "step through a presentation in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  previewScene,
	}
	addSceneFlags(previewCmd)

	plotCmd := &cobra.Command{
		Use:       "plot [normal|chi2|f]",
		Short:     "plot a density",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"normal", "chi2", "f"},
		RunE:      plotDensity,
	}
	plotCmd.Flags().IntVar(&df, "df", 2, "chi-squared degrees of freedom")
	plotCmd.Flags().IntVar(&df1, "df1", config.DefaultDFModel, "F numerator degrees of freedom")
	plotCmd.Flags().IntVar(&df2, "df2", config.DefaultDFError, "F denominator degrees of freedom")
	plotCmd.Flags().StringVar(&pngOut, "png", "", "also write the density as a PNG chart")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "print the regression and ANOVA sum of squares tables",
		RunE:  printSummary,
	}
	addSceneFlags(summaryCmd)

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, "", "")
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "tabulate F critical values over error degrees of freedom",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&df1, "df1", config.DefaultDFModel, "F numerator degrees of freedom")
	sweepCmd.Flags().IntVar(&sweepMin, "from", 2, "smallest denominator degrees of freedom")
	sweepCmd.Flags().IntVar(&sweepMax, "to", 30, "largest denominator degrees of freedom")
	sweepCmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "significance level")

	rootCmd.AddCommand(scenesCmd, presetsCmd, renderCmd, listCmd, exportCmd, frameCmd, previewCmd, plotCmd, summaryCmd, initCmd, batchCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&runTime, "run-time", config.DefaultRunTime, "default animation run time (s)")
	cmd.Flags().Float64Var(&stagger, "stagger", config.DefaultStagger, "delay between staggered lines (s)")
	cmd.Flags().Float64Var(&jitter, "jitter", dataset.DefaultJitter, "anova x jitter")
	cmd.Flags().IntVar(&dfModel, "df-model", config.DefaultDFModel, "model degrees of freedom (fstat)")
	cmd.Flags().IntVar(&dfError, "df-error", config.DefaultDFError, "error degrees of freedom (fstat)")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "significance level for the critical value (0 to hide)")
	cmd.Flags().IntVar(&samples, "samples", 300, "density curve samples")
}

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return nil
}

// loadConfig resolves the configuration: preset, then config file, then any
// flags given on the command line.
func loadConfig(cmd *cobra.Command, sceneName, presetName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		cfg = config.GetPreset(sceneName, presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets(sceneName))
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
	}

	flags := cmd.Flags()
	if flags.Changed("run-time") {
		cfg.Timing.RunTime = runTime
	}
	if flags.Changed("stagger") {
		cfg.Timing.Stagger = stagger
	}
	if flags.Changed("jitter") {
		cfg.ANOVA.Jitter = jitter
	}
	if flags.Changed("df-model") {
		cfg.FStat.DFModel = dfModel
	}
	if flags.Changed("df-error") {
		cfg.FStat.DFError = dfError
	}
	if flags.Changed("alpha") {
		cfg.FStat.Alpha = alpha
	}
	if flags.Changed("samples") {
		cfg.FStat.Samples = samples
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"scene":  sceneName,
		"preset": presetName,
		"config": configFile,
	}).Debug("configuration resolved")
	return cfg, nil
}

func buildScene(cmd *cobra.Command, name string) (*scene.Timeline, error) {
	cfg, err := loadConfig(cmd, name, preset)
	if err != nil {
		return nil, err
	}
	return scene.NewRegistry().Build(name, cfg)
}
