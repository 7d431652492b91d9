package core

import (
	"github.com/XiaoConstantine/sco-go/pkg/errors"
)

// Individual represents one candidate solution in the civilization: a point
// in the n-dimensional design space together with its last evaluated
// objective value, constraint-violation magnitudes, and Pareto rank.
type Individual struct {
	// Variables holds the design variables x_1..x_n.
	Variables []float64

	// ConstraintViolations holds one non-negative magnitude per constraint.
	// Zero means the constraint is satisfied.
	ConstraintViolations []float64

	// ObjectiveValue is f(x) as of the last evaluation.
	ObjectiveValue float64

	// Rank is the constraint-dominance Pareto rank within the pool this
	// individual was last ranked in. 1 means non-dominated, 0 means unranked.
	Rank int
}

// NewIndividual creates an individual with the given number of design variables.
func NewIndividual(numVariables int) Individual {
	return Individual{
		Variables: make([]float64, numVariables),
	}
}

// Clone returns a deep copy of the individual.
func (ind Individual) Clone() Individual {
	out := ind
	out.Variables = append([]float64(nil), ind.Variables...)
	out.ConstraintViolations = append([]float64(nil), ind.ConstraintViolations...)
	return out
}

// Feasible reports whether every constraint violation is zero.
func (ind Individual) Feasible() bool {
	for _, v := range ind.ConstraintViolations {
		if v > 0 {
			return false
		}
	}
	return true
}

// Population is the ordered, fixed-size collection of individuals owned by a
// Civilization. Individuals are addressed by position for the lifetime of a run.
type Population []Individual

// Best returns the index of the individual with the minimal objective value,
// first-encountered on ties. Returns -1 for an empty population.
func (p Population) Best() int {
	best := -1
	for i := range p {
		if best < 0 || p[i].ObjectiveValue < p[best].ObjectiveValue {
			best = i
		}
	}
	return best
}

// Bounds holds the elementwise search-space limits for a population.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// NewBounds validates and constructs search-space bounds. Both slices must
// have length numVariables and satisfy lower[j] < upper[j] for every j; the
// migration operator's range sampling is undefined otherwise.
func NewBounds(numVariables int, lower, upper []float64) (Bounds, error) {
	if numVariables < 1 {
		return Bounds{}, errors.Newf(errors.InvalidInput, "number of variables must be positive, got %d", numVariables)
	}
	if len(lower) != numVariables || len(upper) != numVariables {
		return Bounds{}, errors.WithFields(
			errors.New(errors.InvalidInput, "bounds length mismatch"),
			errors.Fields{
				"num_variables": numVariables,
				"lower_len":     len(lower),
				"upper_len":     len(upper),
			},
		)
	}
	for j := range lower {
		if lower[j] >= upper[j] {
			return Bounds{}, errors.WithFields(
				errors.New(errors.InvalidInput, "degenerate bounds"),
				errors.Fields{
					"variable": j,
					"lower":    lower[j],
					"upper":    upper[j],
				},
			)
		}
	}
	return Bounds{
		Lower: append([]float64(nil), lower...),
		Upper: append([]float64(nil), upper...),
	}, nil
}

// Dim returns the number of design variables the bounds cover.
func (b Bounds) Dim() int {
	return len(b.Lower)
}

// Contains reports whether every variable of the individual lies within bounds.
func (b Bounds) Contains(ind *Individual) bool {
	if len(ind.Variables) != b.Dim() {
		return false
	}
	for j, v := range ind.Variables {
		if v < b.Lower[j] || v > b.Upper[j] {
			return false
		}
	}
	return true
}
