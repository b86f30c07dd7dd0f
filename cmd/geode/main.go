package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-geode/internal/config"
	"github.com/napolitain/solver-geode/internal/loader"
	"github.com/napolitain/solver-geode/internal/logging"
	"github.com/napolitain/solver-geode/internal/metrics"
	"github.com/napolitain/solver-geode/internal/solver/geode"
)

var (
	inputFile   string
	configFile  string
	quiet       bool
	showPlan    bool
	workers     int
	metricsFile string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "geode",
		Short: "Geode Production Chain Optimizer",
		Long: `A branch-and-bound solver that finds, for every blueprint, the most
geodes a single ore robot can grow into within a fixed number of minutes.`,
		Run: runSolver,
	}

	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "input.txt", "Path to blueprint file (.txt or .json)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the two metrics")
	rootCmd.Flags().BoolVarP(&showPlan, "plan", "p", false, "Show the best build order of each subset blueprint")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Blueprints evaluated in parallel (overrides config, 0 = all CPUs)")
	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file (overrides config)")

	rootCmd.AddCommand(newBlueprintsCmd())
	return rootCmd
}

func runSolver(cmd *cobra.Command, args []string) {
	if err := solve(cmd, os.Stdout); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func solve(cmd *cobra.Command, out io.Writer) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Search.Workers = workers
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.Metrics.Textfile = metricsFile
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger := logging.New(level, cfg.Logging.Format).With("run_id", uuid.NewString())

	if !quiet {
		titleColor.Fprintln(out, "\n╭───────────────────────────╮")
		titleColor.Fprintln(out, "│  Geode Production Chain   │")
		titleColor.Fprintln(out, "│  Branch-and-Bound Solver  │")
		titleColor.Fprintln(out, "╰───────────────────────────╯")
		fmt.Fprintln(out)
	}

	blueprints, err := loader.LoadBlueprints(inputFile)
	if err != nil {
		return fmt.Errorf("loading blueprints: %w", err)
	}
	logger.Info("blueprints loaded", "path", inputFile, "count", len(blueprints))

	if !quiet {
		infoColor.Fprintf(out, "📦 Loaded %d blueprints from %s\n\n", len(blueprints), inputFile)
	}

	collector := metrics.NewSolverMetricsCollector()
	if err := collector.Register(); err != nil {
		return err
	}

	solver := geode.NewSolver(cfg.Search.Options())
	solver.Workers = cfg.Search.Workers
	solver.Recorder = collector
	solver.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scenario := cfg.Scenario.Scenario()
	if !quiet {
		infoColor.Fprintln(out, "🔄 Searching...")
	}
	summary, err := solver.Summarize(ctx, blueprints, scenario)
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	if quiet {
		fmt.Fprintln(out, summary.QualitySum)
		fmt.Fprintln(out, summary.TopProduct)
	} else {
		printSummary(out, summary, scenario)
		if showPlan {
			for _, r := range summary.Subset {
				printPlan(out, r, blueprints)
			}
		}
	}

	if cfg.Metrics.Textfile != "" {
		if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
		logger.Info("metrics written", "path", cfg.Metrics.Textfile)
	}

	return nil
}
