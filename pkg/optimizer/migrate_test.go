package optimizer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireInformationStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	cases := []struct {
		name               string
		indVal, leaderVal  float64
		lb, ub             float64
	}{
		{"interior values", 0.4, 0.6, 0, 1},
		{"equal values", 0.5, 0.5, 0, 1},
		{"at lower bound", 0, 0.3, 0, 1},
		{"at upper bound", 0.7, 1, 0, 1},
		{"both at lower bound", 0, 0, 0, 1},
		{"both at upper bound", 1, 1, 0, 1},
		{"leader below individual", 80, 20, 13, 100},
		{"values outside bounds", -5, 7, 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 2000; i++ {
				v := acquireInformation(rng, tc.indVal, tc.leaderVal, tc.lb, tc.ub)
				require.GreaterOrEqual(t, v, tc.lb)
				require.LessOrEqual(t, v, tc.ub)
			}
		})
	}
}

// The three regions partition [lb, ub]: below both values with probability
// 1/4, between them with probability 1/2, above both with probability 1/4.
func TestAcquireInformationRegionFrequencies(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	const n = 20000
	indVal, leaderVal := 0.4, 0.6

	var below, between, above int
	for i := 0; i < n; i++ {
		v := acquireInformation(rng, indVal, leaderVal, 0, 1)
		switch {
		case v < 0.4:
			below++
		case v <= 0.6:
			between++
		default:
			above++
		}
	}

	assert.InDelta(t, 0.25, float64(below)/n, 0.03)
	assert.InDelta(t, 0.50, float64(between)/n, 0.03)
	assert.InDelta(t, 0.25, float64(above)/n, 0.03)
}

func TestAcquireInformationDegenerateRegions(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	// Both values at the lower bound: regions one and two collapse to lb,
	// region three samples the full range.
	sawAboveLB := false
	for i := 0; i < 200; i++ {
		v := acquireInformation(rng, 0, 0, 0, 1)
		if v > 0 {
			sawAboveLB = true
		}
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
	assert.True(t, sawAboveLB, "region three must still explore upward")

	// Both values at the upper bound: only downward exploration remains.
	sawBelowUB := false
	for i := 0; i < 200; i++ {
		v := acquireInformation(rng, 1, 1, 0, 1)
		if v < 1 {
			sawBelowUB = true
		}
	}
	assert.True(t, sawBelowUB, "region one must still explore downward")
}

func TestMoveSocietyMembersLeadersHold(t *testing.T) {
	civ := newTestCiv(t, 4, 2, 21)
	setVariables(civ, [][]float64{
		{1, 1}, {2, 2}, {8, 8}, {9, 9},
	})
	civ.hubs = []int{0, 3}
	civ.assignments = []int{0, 0, 1, 1}
	civ.societyLeaders = [][]int{{0}, {3}}

	leaderA := append([]float64(nil), civ.Population()[0].Variables...)
	leaderB := append([]float64(nil), civ.Population()[3].Variables...)
	memberA := append([]float64(nil), civ.Population()[1].Variables...)

	civ.moveSocietyMembers()

	assert.Equal(t, leaderA, civ.Population()[0].Variables, "leaders must not move")
	assert.Equal(t, leaderB, civ.Population()[3].Variables, "leaders must not move")
	assert.NotEqual(t, memberA, civ.Population()[1].Variables, "members migrate")

	for _, ind := range civ.Population() {
		for j, v := range ind.Variables {
			assert.GreaterOrEqual(t, v, civ.Bounds().Lower[j])
			assert.LessOrEqual(t, v, civ.Bounds().Upper[j])
		}
	}
}

func TestMoveGlobalLeadersSuperLeadersHold(t *testing.T) {
	civ := newTestCiv(t, 4, 2, 23)
	setVariables(civ, [][]float64{
		{1, 1}, {2, 2}, {8, 8}, {9, 9},
	})
	civ.globalSociety = []int{0, 2}
	civ.superLeaders = []int{2}

	super := append([]float64(nil), civ.Population()[2].Variables...)
	mover := append([]float64(nil), civ.Population()[0].Variables...)

	civ.moveGlobalLeaders()

	assert.Equal(t, super, civ.Population()[2].Variables, "super leaders must not move")
	assert.NotEqual(t, mover, civ.Population()[0].Variables)
	// Bystanders outside the global society are untouched.
	assert.Equal(t, []float64{2, 2}, civ.Population()[1].Variables)
}

func TestNearestOfScanOrderTies(t *testing.T) {
	civ := newTestCiv(t, 3, 2, 1)
	setVariables(civ, [][]float64{
		{5, 5},
		{4, 5}, // distance 1 on the left
		{6, 5}, // distance 1 on the right
	})

	// Equidistant candidates: the first encountered wins.
	assert.Equal(t, 1, civ.nearestOf(0, []int{1, 2}))
	assert.Equal(t, 2, civ.nearestOf(0, []int{2, 1}))
	assert.Equal(t, -1, civ.nearestOf(0, nil))
}
