// Package sco is a Go implementation of the society and civilization
// algorithm, a population-based metaheuristic for constrained continuous
// minimization inspired by the social structure of human civilizations.
//
// The population is clustered into societies, each society elects leaders
// by constraint-dominance ranking, and ordinary members improve by
// acquiring information from their leaders. A second tier pools all local
// leaders into a global society whose super leaders pull the local leaders
// onward, so good solutions propagate through the whole civilization.
//
// Key Components:
//
//   - Core: Fundamental abstractions like Individual, Population, Bounds
//     and the Problem interface that defines an objective plus
//     constraint-violation magnitudes.
//
//   - Optimizer: The Civilization type driving the iteration loop:
//     * Clustering: farthest-point society formation with a convergence
//       threshold derived from the hub geometry
//     * Ranking: Pareto front peeling over constraint violations
//     * Leaders: local leader election per society and super leader
//       election over the global society
//     * Migration: the three-region information acquisition operator
//       moving members toward their nearest leader
//
//   - Benchmarks: Constrained engineering design problems:
//     * two_variable: a cubic objective with two circular constraints
//     * welded_beam: the four-variable welded beam design problem
//
//   - Runner: Batch execution of independent seeded runs with bounded
//     parallelism and a statistical summary (best, worst, closest to
//     mean, mean and standard deviation).
//
//   - Export: Per-iteration CSV trajectory logs and an ASCII map of the
//     civilization for quick terminal inspection.
//
//   - Store: A SQLite archive of experiments and their per-run best
//     solutions.
//
// Simple Example:
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/XiaoConstantine/sco-go/pkg/benchmarks"
//	    "github.com/XiaoConstantine/sco-go/pkg/optimizer"
//	)
//
//	func main() {
//	    bench, _ := benchmarks.Get("two_variable")
//	    lower, upper := bench.DefaultBounds()
//
//	    civ, err := optimizer.New(bench, 100, bench.NumVariables(), lower, upper, 42)
//	    if err != nil {
//	        panic(err)
//	    }
//	    civ.Initialize()
//
//	    ctx := context.Background()
//	    for t := 0; t < 200; t++ {
//	        if err := civ.Step(ctx); err != nil {
//	            panic(err)
//	        }
//	    }
//
//	    best := civ.BestSolution()
//	    fmt.Printf("f(%v) = %.4f\n", best.Variables, best.ObjectiveValue)
//	}
//
// All runs are deterministic for a fixed seed: the civilization owns a
// single random stream and consumes it in a fixed order, so two runs with
// the same seed and population size produce bit-identical trajectories.
package sco
