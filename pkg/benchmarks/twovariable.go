// Package benchmarks provides the constrained benchmark problems the
// optimizer ships with, each implementing core.Problem behind the injected
// evaluation boundary.
package benchmarks

import (
	"math"

	"github.com/XiaoConstantine/sco-go/pkg/core"
	"github.com/XiaoConstantine/sco-go/pkg/errors"
)

// Benchmark is a core.Problem with known default bounds and dimensionality.
type Benchmark interface {
	core.Problem
	NumVariables() int
	DefaultBounds() (lower, upper []float64)
}

// TwoVariableDesign is the constrained two-variable cubic benchmark:
// minimize (x1-10)^3 + (x2-20)^3 subject to
//
//	g1 = (x1-5)^2 + (x2-5)^2 - 100     >= 0
//	g2 = -(x1-6)^2 - (x2-5)^2 + 82.81  >= 0
//
// The known optimum lies near x = (14.095, 0.843) with f ~= -6961.8.
type TwoVariableDesign struct{}

func (TwoVariableDesign) Name() string { return "two_variable" }

func (TwoVariableDesign) NumVariables() int { return 2 }

func (TwoVariableDesign) DefaultBounds() (lower, upper []float64) {
	return []float64{13.0, 0.0}, []float64{100.0, 100.0}
}

func (p TwoVariableDesign) Objective(ind *core.Individual) (float64, error) {
	if len(ind.Variables) < 2 {
		return 0, errors.Newf(errors.InvalidInput, "two-variable design expects 2 variables, got %d", len(ind.Variables))
	}
	x1 := ind.Variables[0]
	x2 := ind.Variables[1]
	return math.Pow(x1-10.0, 3) + math.Pow(x2-20.0, 3), nil
}

// Violations returns |g(x)| for each violated constraint and 0 otherwise.
func (p TwoVariableDesign) Violations(ind *core.Individual) ([]float64, error) {
	raw, err := p.RawConstraints(ind)
	if err != nil {
		return nil, err
	}
	violations := make([]float64, len(raw))
	for i, g := range raw {
		if g < 0 {
			violations[i] = math.Abs(g)
		}
	}
	return violations, nil
}

// RawConstraints returns the raw g(x) values; g >= 0 means satisfied.
func (p TwoVariableDesign) RawConstraints(ind *core.Individual) ([]float64, error) {
	if len(ind.Variables) < 2 {
		return nil, errors.Newf(errors.InvalidInput, "two-variable design expects 2 variables, got %d", len(ind.Variables))
	}
	x1 := ind.Variables[0]
	x2 := ind.Variables[1]

	g1 := math.Pow(x1-5.0, 2) + math.Pow(x2-5.0, 2) - 100.0
	g2 := -math.Pow(x1-6.0, 2) - math.Pow(x2-5.0, 2) + 82.81

	return []float64{g1, g2}, nil
}
