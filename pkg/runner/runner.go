// Package runner executes batches of independent optimization runs and
// aggregates their results into a statistical report.
package runner

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/XiaoConstantine/sco-go/pkg/benchmarks"
	"github.com/XiaoConstantine/sco-go/pkg/core"
	"github.com/XiaoConstantine/sco-go/pkg/errors"
	"github.com/XiaoConstantine/sco-go/pkg/logging"
	"github.com/XiaoConstantine/sco-go/pkg/optimizer"
	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/stat"
)

// Config controls a batch of independent runs of one benchmark.
type Config struct {
	Runs           int
	Iterations     int
	PopulationSize int

	// BaseSeed seeds run i with BaseSeed + i + 1. When RandomSeeds is set
	// the base is drawn from the wall clock instead, losing reproducibility.
	BaseSeed    int64
	RandomSeeds bool

	// MaxParallel bounds concurrent runs; 0 means run sequentially.
	MaxParallel int

	// Bounds override the benchmark defaults when non-nil.
	LowerBounds []float64
	UpperBounds []float64

	// Observer, if set, is called after every iteration of every run.
	// Runs execute concurrently; observers must be safe for that.
	Observer func(run, step int, civ *optimizer.Civilization)
}

// RunResult captures the outcome of one independent run.
type RunResult struct {
	Index       int
	Seed        int64
	Best        core.Individual
	Evaluations int64
}

// Summary aggregates a batch of runs.
type Summary struct {
	Problem string

	// Results sorted by ascending best objective value.
	Results []RunResult

	Best          RunResult
	Worst         RunResult
	ClosestToMean RunResult

	MeanObjective   float64
	StdDevObjective float64
}

// Runner drives repeated, mutually isolated optimization runs. Each run owns
// its own civilization, problem decorator and seeded random stream, so runs
// parallelize without coordination.
type Runner struct {
	cfg    Config
	logger *logging.Logger
}

// New validates the batch configuration and constructs a Runner.
func New(cfg Config) (*Runner, error) {
	if cfg.Runs < 1 {
		return nil, errors.Newf(errors.InvalidInput, "runs must be at least 1, got %d", cfg.Runs)
	}
	if cfg.Iterations < 1 {
		return nil, errors.Newf(errors.InvalidInput, "iterations must be at least 1, got %d", cfg.Iterations)
	}
	if cfg.PopulationSize < 2 {
		return nil, errors.Newf(errors.InvalidInput, "population size must be at least 2, got %d", cfg.PopulationSize)
	}
	return &Runner{
		cfg:    cfg,
		logger: logging.GetLogger(),
	}, nil
}

// Execute runs the configured batch against the benchmark and returns the
// aggregated summary. Runs abort between iterations when ctx is canceled.
func (r *Runner) Execute(ctx context.Context, bench benchmarks.Benchmark) (*Summary, error) {
	lower, upper := bench.DefaultBounds()
	if r.cfg.LowerBounds != nil {
		lower = r.cfg.LowerBounds
	}
	if r.cfg.UpperBounds != nil {
		upper = r.cfg.UpperBounds
	}

	baseSeed := r.cfg.BaseSeed
	if r.cfg.RandomSeeds {
		baseSeed = time.Now().UnixNano()
	}

	results := make([]RunResult, r.cfg.Runs)

	p := pool.New().WithErrors().WithContext(ctx)
	if r.cfg.MaxParallel > 0 {
		p = p.WithMaxGoroutines(r.cfg.MaxParallel)
	} else {
		p = p.WithMaxGoroutines(1)
	}

	for run := 0; run < r.cfg.Runs; run++ {
		run := run
		p.Go(func(ctx context.Context) error {
			seed := baseSeed + int64(run) + 1
			res, err := r.executeRun(ctx, bench, run, seed, lower, upper)
			if err != nil {
				return err
			}
			results[run] = res
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return r.summarize(bench.Name(), results), nil
}

func (r *Runner) executeRun(ctx context.Context, bench benchmarks.Benchmark, run int, seed int64, lower, upper []float64) (RunResult, error) {
	problem := core.NewCountingProblem(bench)

	civ, err := optimizer.New(problem, r.cfg.PopulationSize, bench.NumVariables(), lower, upper, seed)
	if err != nil {
		return RunResult{}, err
	}
	civ.Initialize()

	runCtx := logging.WithRunID(ctx, bench.Name())
	for t := 0; t < r.cfg.Iterations; t++ {
		if err := civ.Step(logging.WithStep(runCtx, t)); err != nil {
			return RunResult{}, errors.WithFields(err, errors.Fields{"run": run, "iteration": t})
		}
		if r.cfg.Observer != nil {
			r.cfg.Observer(run, t, civ)
		}
	}

	// Positions moved after the last in-step evaluation; refresh before
	// picking the run best.
	if err := civ.EvaluatePopulation(); err != nil {
		return RunResult{}, errors.WithFields(err, errors.Fields{"run": run})
	}

	best := civ.BestSolution()
	r.logger.Info(runCtx, "run %2d: seed=%d obj=%.6f evals=%d x=%v",
		run+1, seed, best.ObjectiveValue, problem.Evaluations(), best.Variables)

	return RunResult{
		Index:       run,
		Seed:        seed,
		Best:        best,
		Evaluations: problem.Evaluations(),
	}, nil
}

func (r *Runner) summarize(problem string, results []RunResult) *Summary {
	sorted := append([]RunResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Best.ObjectiveValue < sorted[j].Best.ObjectiveValue
	})

	objectives := make([]float64, len(sorted))
	for i, res := range sorted {
		objectives[i] = res.Best.ObjectiveValue
	}
	mean := stat.Mean(objectives, nil)
	stddev := 0.0
	if len(objectives) > 1 {
		stddev = stat.StdDev(objectives, nil)
	}

	closest := sorted[0]
	for _, res := range sorted[1:] {
		if math.Abs(res.Best.ObjectiveValue-mean) < math.Abs(closest.Best.ObjectiveValue-mean) {
			closest = res
		}
	}

	return &Summary{
		Problem:         problem,
		Results:         sorted,
		Best:            sorted[0],
		Worst:           sorted[len(sorted)-1],
		ClosestToMean:   closest,
		MeanObjective:   mean,
		StdDevObjective: stddev,
	}
}
