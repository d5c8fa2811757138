package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wingmate/wingmate/internal/batch"
	"github.com/wingmate/wingmate/internal/campaign"
)

var benchFlags struct {
	runs int
}

var benchCmd = &cobra.Command{
	Use:   "bench <campaign>",
	Short: "Time naive vs batched reads of a campaign's personnel files",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchFlags.runs, "runs", 3, "Repetitions per strategy")
}

func runBench(cmd *cobra.Command, args []string) error {
	files, ok := newReader(newLoader()).PersonnelFiles(args[0])
	if !ok {
		return fmt.Errorf("campaign %q has no Personnel directory", args[0])
	}

	res := batch.Benchmark(files, benchFlags.runs, func() campaign.Loader {
		return newLoader()
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Files: %d  Runs: %d\n", res.Files, res.Runs)
	fmt.Fprintf(out, "Naive: %.2f ms\n", float64(res.Naive.Microseconds())/1000)
	fmt.Fprintf(out, "Batch: %.2f ms\n", float64(res.Batch.Microseconds())/1000)
	fmt.Fprintf(out, "Gain:  %.1f%%\n", res.GainPct)
	return nil
}
