package store

import (
	"context"
	"testing"

	"github.com/XiaoConstantine/sco-go/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateExperiment(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	exp, err := s.CreateExperiment(ctx, "two_variable")
	require.NoError(t, err)
	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, "two_variable", exp.Problem)

	experiments, err := s.ListExperiments(ctx)
	require.NoError(t, err)
	require.Len(t, experiments, 1)
	assert.Equal(t, exp.ID, experiments[0].ID)
}

func TestSaveAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	exp, err := s.CreateExperiment(ctx, "welded_beam")
	require.NoError(t, err)

	bests := []core.Individual{
		{Variables: []float64{0.2, 3.5, 9.0, 0.21}, ConstraintViolations: []float64{0, 0, 0, 0, 0, 0, 0}, ObjectiveValue: 2.6},
		{Variables: []float64{0.25, 3.0, 8.8, 0.23}, ConstraintViolations: []float64{0, 0, 0, 0, 0, 0, 0}, ObjectiveValue: 2.45},
		{Variables: []float64{0.3, 4.0, 8.0, 0.30}, ConstraintViolations: []float64{0, 1.5, 0, 0, 0, 0, 0}, ObjectiveValue: 2.9},
	}
	for i, best := range bests {
		_, err := s.SaveRun(ctx, exp.ID, int64(100+i), best, int64(20000+i))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, exp.ID)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Ordered by ascending objective.
	assert.Equal(t, 2.45, runs[0].Objective)
	assert.Equal(t, 2.6, runs[1].Objective)
	assert.Equal(t, 2.9, runs[2].Objective)

	// Vectors round-trip through JSON.
	assert.Equal(t, []float64{0.25, 3.0, 8.8, 0.23}, runs[0].Variables)
	assert.Equal(t, []float64{0, 1.5, 0, 0, 0, 0, 0}, runs[2].Violations)
	assert.Equal(t, int64(101), runs[0].Seed)
}

func TestBestRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	exp, err := s.CreateExperiment(ctx, "two_variable")
	require.NoError(t, err)

	_, err = s.BestRun(ctx, exp.ID)
	assert.Error(t, err, "empty experiment has no best run")

	_, err = s.SaveRun(ctx, exp.ID, 8, core.Individual{Variables: []float64{14.1, 0.8}, ObjectiveValue: -6950}, 1000)
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, exp.ID, 9, core.Individual{Variables: []float64{14.0, 0.9}, ObjectiveValue: -6960}, 1000)
	require.NoError(t, err)

	best, err := s.BestRun(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, -6960.0, best.Objective)
	assert.Equal(t, int64(9), best.Seed)
}

func TestRunsIsolatedByExperiment(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	expA, err := s.CreateExperiment(ctx, "two_variable")
	require.NoError(t, err)
	expB, err := s.CreateExperiment(ctx, "welded_beam")
	require.NoError(t, err)

	_, err = s.SaveRun(ctx, expA.ID, 1, core.Individual{Variables: []float64{14, 1}, ObjectiveValue: -6900}, 10)
	require.NoError(t, err)

	runsB, err := s.ListRuns(ctx, expB.ID)
	require.NoError(t, err)
	assert.Empty(t, runsB)
}
