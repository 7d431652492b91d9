package display

import (
	"fmt"
	"strings"

	"github.com/XiaoConstantine/sco-go/pkg/benchmarks"
	"github.com/XiaoConstantine/sco-go/pkg/core"
	"github.com/XiaoConstantine/sco-go/pkg/runner"
	"github.com/XiaoConstantine/sco-go/pkg/store"
)

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
)

// FormatBenchmarkList renders the registered benchmark problems with their
// dimensionality and default search box.
func FormatBenchmarkList() string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s%sAvailable Benchmark Problems%s\n", ColorBold, ColorBlue, ColorReset))
	output.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, name := range benchmarks.List() {
		bench, err := benchmarks.Get(name)
		if err != nil {
			continue
		}
		lower, upper := bench.DefaultBounds()

		output.WriteString(fmt.Sprintf("%s%s%s%s\n", ColorBold, ColorGreen, name, ColorReset))
		output.WriteString(fmt.Sprintf("  %sVariables:%s %d\n", ColorCyan, ColorReset, bench.NumVariables()))
		output.WriteString(fmt.Sprintf("  %sBounds:%s %v .. %v\n", ColorCyan, ColorReset, lower, upper))
		output.WriteString("\n")
	}
	return output.String()
}

// FormatSummary renders the statistical report of a batch: the best, worst
// and closest-to-mean runs with their solutions and raw constraint values.
func FormatSummary(summary *runner.Summary, bench benchmarks.Benchmark) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("\n%s%sResults for %s (%d runs)%s\n",
		ColorBold, ColorBlue, summary.Problem, len(summary.Results), ColorReset))
	output.WriteString(strings.Repeat("=", 50) + "\n")

	output.WriteString(formatRun("Best", ColorGreen, summary.Best, bench))
	output.WriteString(formatRun("Worst", ColorRed, summary.Worst, bench))
	output.WriteString(formatRun("Closest to mean", ColorYellow, summary.ClosestToMean, bench))

	output.WriteString(fmt.Sprintf("\n%sMean objective:%s %.6f\n", ColorCyan, ColorReset, summary.MeanObjective))
	output.WriteString(fmt.Sprintf("%sStd deviation:%s  %.6f\n", ColorCyan, ColorReset, summary.StdDevObjective))
	return output.String()
}

func formatRun(label, color string, res runner.RunResult, bench benchmarks.Benchmark) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("\n%s%s%s run%s (run %d, seed %d, %d evaluations)\n",
		ColorBold, color, label, ColorReset, res.Index+1, res.Seed, res.Evaluations))
	output.WriteString(fmt.Sprintf("  %sObjective:%s %.6f\n", ColorCyan, ColorReset, res.Best.ObjectiveValue))
	for j, x := range res.Best.Variables {
		output.WriteString(fmt.Sprintf("  x%d = %.6f\n", j+1, x))
	}
	if !res.Best.Feasible() {
		output.WriteString(fmt.Sprintf("  %sinfeasible:%s violations %v\n", ColorRed, ColorReset, res.Best.ConstraintViolations))
	}

	if reporter, ok := bench.(core.RawConstraintReporter); ok {
		ind := res.Best
		if raw, err := reporter.RawConstraints(&ind); err == nil {
			for k, g := range raw {
				output.WriteString(fmt.Sprintf("  g%d(x) = %.6f\n", k+1, g))
			}
		}
	}
	return output.String()
}

// FormatExperiments renders the stored experiment archive, newest first,
// with the best recorded run of each experiment.
func FormatExperiments(experiments []store.Experiment, bests map[string]store.RunRecord) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("%s%sStored Experiments%s\n", ColorBold, ColorBlue, ColorReset))
	output.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(experiments) == 0 {
		output.WriteString("No experiments recorded yet.\n")
		return output.String()
	}

	for _, exp := range experiments {
		output.WriteString(fmt.Sprintf("%s%s%s  %s(%s)%s\n",
			ColorBold, exp.Problem, ColorReset, ColorCyan, exp.CreatedAt.Format("2006-01-02 15:04:05"), ColorReset))
		output.WriteString(fmt.Sprintf("  id: %s\n", exp.ID))
		if best, ok := bests[exp.ID]; ok {
			output.WriteString(fmt.Sprintf("  best: %.6f at %v (seed %d)\n", best.Objective, best.Variables, best.Seed))
		}
		output.WriteString("\n")
	}
	return output.String()
}
