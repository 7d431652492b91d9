package commands

import (
	"fmt"
	"os"
	"sync"

	"github.com/XiaoConstantine/sco-go/cmd/sco-cli/internal/display"
	"github.com/XiaoConstantine/sco-go/pkg/benchmarks"
	"github.com/XiaoConstantine/sco-go/pkg/config"
	"github.com/XiaoConstantine/sco-go/pkg/export"
	"github.com/XiaoConstantine/sco-go/pkg/logging"
	"github.com/XiaoConstantine/sco-go/pkg/optimizer"
	"github.com/XiaoConstantine/sco-go/pkg/runner"
	"github.com/XiaoConstantine/sco-go/pkg/store"
	"github.com/spf13/cobra"
)

func NewRunCommand() *cobra.Command {
	var configPath string
	var mapSize int

	flags := config.Default()

	cmd := &cobra.Command{
		Use:   "run [problem]",
		Short: "Run a benchmark experiment batch",
		Long: `Execute a batch of independent optimization runs against a benchmark
problem and print a statistical report: the best, worst and closest-to-mean
runs with their solutions and raw constraint values.

Settings come from an optional YAML config file; flags set on the command
line override it. Without a config file the built-in defaults apply.`,
		Example: `  # Run the default experiment (two_variable, 10 runs of 200 iterations)
  sco-cli run

  # Run the welded beam problem with a bigger population
  sco-cli run welded_beam --pop-size 200 --runs 30

  # Reproduce a batch from a config file, exporting trajectories
  sco-cli run --config experiment.yaml --csv trajectory.csv

  # Archive results into a SQLite database
  sco-cli run two_variable --store results.db`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return benchmarks.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			applyFlagOverrides(cmd, &cfg, &flags)
			if len(args) == 1 {
				cfg.Problem = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logging.SetLogger(logging.NewLogger(logging.Config{
				Severity: logging.ParseSeverity(cfg.LogLevel),
				Outputs:  []logging.Output{logging.NewConsoleOutput(true)},
			}))

			bench, err := benchmarks.Get(cfg.Problem)
			if err != nil {
				return err
			}
			return executeBatch(cmd, cfg, bench, mapSize)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML experiment config file")
	cmd.Flags().IntVar(&flags.PopulationSize, "pop-size", flags.PopulationSize, "individuals per civilization")
	cmd.Flags().IntVar(&flags.Iterations, "iterations", flags.Iterations, "iterations per run")
	cmd.Flags().IntVar(&flags.Runs, "runs", flags.Runs, "independent runs in the batch")
	cmd.Flags().Int64Var(&flags.BaseSeed, "seed", flags.BaseSeed, "base random seed (run i uses seed+i+1)")
	cmd.Flags().BoolVar(&flags.RandomSeeds, "random-seeds", false, "seed from the wall clock instead of --seed")
	cmd.Flags().IntVar(&flags.MaxParallel, "parallel", flags.MaxParallel, "max concurrent runs (0 = sequential)")
	cmd.Flags().StringVar(&flags.CSVPath, "csv", "", "write per-iteration trajectories to this CSV file")
	cmd.Flags().StringVar(&flags.StorePath, "store", "", "archive results into this SQLite database")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "DEBUG, INFO, WARN or ERROR")
	cmd.Flags().IntVar(&mapSize, "map", 0, "print an ASCII map of the final population (grid size, 0 = off)")

	return cmd
}

// applyFlagOverrides copies only the flags the user actually set on top of
// the file-loaded config, so a config file and flags can mix.
func applyFlagOverrides(cmd *cobra.Command, cfg, flags *config.ExperimentConfig) {
	if cmd.Flags().Changed("pop-size") {
		cfg.PopulationSize = flags.PopulationSize
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = flags.Iterations
	}
	if cmd.Flags().Changed("runs") {
		cfg.Runs = flags.Runs
	}
	if cmd.Flags().Changed("seed") {
		cfg.BaseSeed = flags.BaseSeed
	}
	if cmd.Flags().Changed("random-seeds") {
		cfg.RandomSeeds = flags.RandomSeeds
	}
	if cmd.Flags().Changed("parallel") {
		cfg.MaxParallel = flags.MaxParallel
	}
	if cmd.Flags().Changed("csv") {
		cfg.CSVPath = flags.CSVPath
	}
	if cmd.Flags().Changed("store") {
		cfg.StorePath = flags.StorePath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
}

func executeBatch(cmd *cobra.Command, cfg config.ExperimentConfig, bench benchmarks.Benchmark, mapSize int) error {
	runCfg := runner.Config{
		Runs:           cfg.Runs,
		Iterations:     cfg.Iterations,
		PopulationSize: cfg.PopulationSize,
		BaseSeed:       cfg.BaseSeed,
		RandomSeeds:    cfg.RandomSeeds,
		MaxParallel:    cfg.MaxParallel,
		LowerBounds:    cfg.LowerBounds,
		UpperBounds:    cfg.UpperBounds,
	}

	var observers []func(run, step int, civ *optimizer.Civilization)

	if cfg.CSVPath != "" {
		f, err := os.Create(cfg.CSVPath)
		if err != nil {
			return err
		}
		defer f.Close()
		trajectory := export.NewTrajectoryWriter(f, bench.NumVariables())
		defer trajectory.Flush()
		observers = append(observers, func(run, step int, civ *optimizer.Civilization) {
			if err := trajectory.WriteState(run, step, civ); err != nil {
				logging.GetLogger().Warn(cmd.Context(), "trajectory export failed: %v", err)
			}
		})
	}

	var finalMap string
	if mapSize > 0 && bench.NumVariables() >= 2 {
		var mapMu sync.Mutex
		lastStep := cfg.Iterations - 1
		observers = append(observers, func(run, step int, civ *optimizer.Civilization) {
			if run != 0 || step != lastStep {
				return
			}
			rendered, err := export.RenderASCIIMap(civ, mapSize)
			if err != nil {
				logging.GetLogger().Warn(cmd.Context(), "ascii map failed: %v", err)
				return
			}
			mapMu.Lock()
			finalMap = rendered
			mapMu.Unlock()
		})
	}

	if len(observers) > 0 {
		runCfg.Observer = func(run, step int, civ *optimizer.Civilization) {
			for _, obs := range observers {
				obs(run, step, civ)
			}
		}
	}

	batch, err := runner.New(runCfg)
	if err != nil {
		return err
	}
	summary, err := batch.Execute(cmd.Context(), bench)
	if err != nil {
		return err
	}

	if finalMap != "" {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), finalMap)
	}
	fmt.Fprint(cmd.OutOrStdout(), display.FormatSummary(summary, bench))

	if cfg.StorePath != "" {
		if err := archiveSummary(cmd, cfg.StorePath, summary); err != nil {
			return err
		}
	}
	return nil
}

func archiveSummary(cmd *cobra.Command, path string, summary *runner.Summary) error {
	archive, err := store.Open(path)
	if err != nil {
		return err
	}
	defer archive.Close()

	exp, err := archive.CreateExperiment(cmd.Context(), summary.Problem)
	if err != nil {
		return err
	}
	for _, res := range summary.Results {
		if _, err := archive.SaveRun(cmd.Context(), exp.ID, res.Seed, res.Best, res.Evaluations); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nArchived %d runs as experiment %s in %s\n",
		len(summary.Results), exp.ID, path)
	return nil
}
