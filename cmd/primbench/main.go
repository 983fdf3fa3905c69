// Package main provides the CLI entry point for primbench, which times
// primitive array operations across a sweep of sizes and records the raw
// measurements as CSV.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/weiihann/primbench/harness"
	"github.com/weiihann/primbench/metrics"
	"github.com/weiihann/primbench/report"
	"github.com/weiihann/primbench/workload"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("primbench failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "primbench",
		Short: "Time primitive array operations across input sizes",
		Long: `Primbench measures the wall-clock cost of array construction, array
access, arithmetic and conditional logic for array sizes from 10,000 to
1,000,000 in steps of 10,000, writing one CSV file per operation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newRoutinesCmd())

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		outDir          string
		routines        []string
		seed            int64
		metricsTextfile string
		manifestPath    string
		outputJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timing routines and write their CSV files",
		Long: `Sweep each routine over the fixed array sizes and write a header row
plus one row per size to the routine's CSV file in the output directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger, cmd.OutOrStdout(), runConfig{
				outDir:          outDir,
				routines:        routines,
				seed:            seed,
				metricsTextfile: metricsTextfile,
				manifestPath:    manifestPath,
				outputJSON:      outputJSON,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&outDir, "out-dir", ".",
		"Directory to write CSV files to")
	flags.StringSliceVar(&routines, "routines", harness.KnownRoutines(),
		"Routines to run: construction, access, arithmetic, logic")
	flags.Int64Var(&seed, "seed", 0,
		"Random seed (0 = use current time)")
	flags.StringVar(&metricsTextfile, "metrics-textfile", "",
		"Write Prometheus metrics for the run to this file")
	flags.StringVar(&manifestPath, "manifest", "",
		"Write a YAML run manifest to this file")
	flags.BoolVar(&outputJSON, "json", false,
		"Output the run summary as JSON instead of a table")

	return cmd
}

func newRoutinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routines",
		Short: "List the timing routines and their output files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, name := range harness.KnownRoutines() {
				r, _ := harness.Lookup(name)
				fmt.Fprintf(w, "%-13s %s\n", r.Name, r.File)
			}

			return nil
		},
	}
}

type runConfig struct {
	outDir          string
	routines        []string
	seed            int64
	metricsTextfile string
	manifestPath    string
	outputJSON      bool
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	out io.Writer,
	cfg runConfig,
) error {
	if len(cfg.routines) == 0 {
		return fmt.Errorf(
			"at least one routine must be specified via --routines",
		)
	}

	for _, name := range cfg.routines {
		if _, ok := harness.Lookup(name); !ok {
			return fmt.Errorf("%w %q", harness.ErrUnknownRoutine, name)
		}
	}

	seed := workload.ResolveSeed(cfg.seed)
	sweep := harness.DefaultSweep()
	startedAt := time.Now()

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("out_dir", cfg.outDir),
		slog.Int("step", sweep.Step),
		slog.Int("max", sweep.Max),
		slog.Int64("seed", seed),
		slog.Any("routines", cfg.routines),
	)

	collector := metrics.New()
	runner := harness.NewRunner(cfg.outDir, sweep, seed, logger, collector)

	results, runErr := runner.RunAll(ctx, cfg.routines)

	// Metrics are exported even for a failed run so the failure is visible.
	if cfg.metricsTextfile != "" {
		if err := collector.WriteTextfile(cfg.metricsTextfile); err != nil {
			logger.ErrorContext(ctx, "failed to write metrics",
				slog.String("path", cfg.metricsTextfile),
				slog.String("error", err.Error()),
			)

			if runErr == nil {
				return err
			}
		}
	}

	if runErr != nil {
		return runErr
	}

	if cfg.manifestPath != "" {
		m := report.NewManifest(startedAt, seed, sweep, results)
		if err := report.WriteManifest(cfg.manifestPath, m); err != nil {
			return err
		}

		logger.InfoContext(ctx, "manifest written",
			slog.String("path", cfg.manifestPath),
			slog.String("run_id", m.RunID),
		)
	}

	if cfg.outputJSON {
		if err := report.GenerateJSON(out, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		if err := report.Generate(out, results); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Duration("wall_time", time.Since(startedAt)),
	)

	return nil
}
