package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/statanim/internal/automation"
	"github.com/san-kum/statanim/internal/scene"
	"github.com/san-kum/statanim/internal/storage"
	"github.com/spf13/cobra"
)

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, scene.NewRegistry(), st)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tRUN\tSTEPS\tDURATION")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.1fs\n", r.Step, r.Scene, r.RunID, r.Steps, r.Duration)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	results, err := automation.RunSweep(cmd.Context(), &automation.CriticalSweep{
		DFModel: df1,
		DFMin:   sweepMin,
		DFMax:   sweepMax,
		Alpha:   alpha,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "DF_ERROR\tF_CRIT(%d, df)\tTAIL\t\n", df1)
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t\n", r.DFError, r.Critical, r.Mass)
	}
	return w.Flush()
}
