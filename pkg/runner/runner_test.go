package runner

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/XiaoConstantine/sco-go/pkg/benchmarks"
	"github.com/XiaoConstantine/sco-go/pkg/optimizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no runs", Config{Runs: 0, Iterations: 10, PopulationSize: 10}},
		{"no iterations", Config{Runs: 1, Iterations: 0, PopulationSize: 10}},
		{"population too small", Config{Runs: 1, Iterations: 10, PopulationSize: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestExecuteSummary(t *testing.T) {
	r, err := New(Config{
		Runs:           3,
		Iterations:     15,
		PopulationSize: 20,
		BaseSeed:       7,
		MaxParallel:    3,
	})
	require.NoError(t, err)

	summary, err := r.Execute(context.Background(), benchmarks.TwoVariableDesign{})
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, "two_variable", summary.Problem)

	// Results are sorted, best first.
	assert.LessOrEqual(t, summary.Best.Best.ObjectiveValue, summary.ClosestToMean.Best.ObjectiveValue)
	assert.LessOrEqual(t, summary.ClosestToMean.Best.ObjectiveValue, summary.Worst.Best.ObjectiveValue+1e-9)
	assert.GreaterOrEqual(t, summary.MeanObjective, summary.Best.Best.ObjectiveValue)
	assert.LessOrEqual(t, summary.MeanObjective, summary.Worst.Best.ObjectiveValue)

	for _, res := range summary.Results {
		assert.Positive(t, res.Evaluations, "run %d recorded no evaluations", res.Index)
		assert.NotEmpty(t, res.Best.Variables)
	}

	// Seeds derive from the base seed per run index.
	seeds := map[int64]bool{}
	for _, res := range summary.Results {
		seeds[res.Seed] = true
	}
	assert.Equal(t, map[int64]bool{8: true, 9: true, 10: true}, seeds)
}

func TestExecuteDeterministicGivenBaseSeed(t *testing.T) {
	run := func() *Summary {
		r, err := New(Config{
			Runs:           2,
			Iterations:     10,
			PopulationSize: 15,
			BaseSeed:       42,
			MaxParallel:    2,
		})
		require.NoError(t, err)
		s, err := r.Execute(context.Background(), benchmarks.TwoVariableDesign{})
		require.NoError(t, err)
		return s
	}

	a := run()
	b := run()

	require.Len(t, b.Results, len(a.Results))
	for i := range a.Results {
		assert.Equal(t, a.Results[i].Seed, b.Results[i].Seed)
		assert.Equal(t, a.Results[i].Best.ObjectiveValue, b.Results[i].Best.ObjectiveValue)
		assert.Equal(t, a.Results[i].Best.Variables, b.Results[i].Best.Variables)
	}
}

func TestExecuteObserver(t *testing.T) {
	var calls atomic.Int64
	r, err := New(Config{
		Runs:           2,
		Iterations:     5,
		PopulationSize: 10,
		BaseSeed:       1,
		MaxParallel:    2,
		Observer: func(run, step int, civ *optimizer.Civilization) {
			calls.Add(1)
		},
	})
	require.NoError(t, err)

	_, err = r.Execute(context.Background(), benchmarks.TwoVariableDesign{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), calls.Load())
}

func TestExecuteCanceledContext(t *testing.T) {
	r, err := New(Config{
		Runs:           2,
		Iterations:     50,
		PopulationSize: 10,
		BaseSeed:       1,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Execute(ctx, benchmarks.TwoVariableDesign{})
	assert.Error(t, err)
}

func TestExecuteBoundsOverride(t *testing.T) {
	r, err := New(Config{
		Runs:           1,
		Iterations:     5,
		PopulationSize: 10,
		BaseSeed:       3,
		LowerBounds:    []float64{14.0, 0.5},
		UpperBounds:    []float64{15.0, 1.5},
	})
	require.NoError(t, err)

	summary, err := r.Execute(context.Background(), benchmarks.TwoVariableDesign{})
	require.NoError(t, err)

	for j, v := range summary.Best.Best.Variables {
		assert.GreaterOrEqual(t, v, []float64{14.0, 0.5}[j])
		assert.LessOrEqual(t, v, []float64{15.0, 1.5}[j])
	}
}
