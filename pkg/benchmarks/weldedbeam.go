package benchmarks

import (
	"math"

	"github.com/XiaoConstantine/sco-go/pkg/core"
	"github.com/XiaoConstantine/sco-go/pkg/errors"
)

// Physical constants of the welded beam design problem.
const (
	beamLoad         = 6000.0  // P, lb
	beamLength       = 14.0    // L, in
	youngsModulus    = 30.0e6  // E, psi
	shearModulus     = 12.0e6  // G, psi
	maxShearStress   = 13600.0 // tau_max, psi
	maxBendingStress = 30000.0 // sigma_max, psi
	maxDeflection    = 0.25    // delta_max, in
)

// WeldedBeamDesign is the classic four-variable welded beam cost
// minimization: variables are weld thickness h, weld length l, bar height t
// and bar thickness b, subject to seven g(x) <= 0 constraints on shear
// stress, bending stress, geometry, cost, weld size, deflection and
// buckling load. Reference best cost is about 2.4426.
type WeldedBeamDesign struct{}

func (WeldedBeamDesign) Name() string { return "welded_beam" }

func (WeldedBeamDesign) NumVariables() int { return 4 }

func (WeldedBeamDesign) DefaultBounds() (lower, upper []float64) {
	return []float64{0.1, 0.1, 0.1, 0.1}, []float64{2.0, 10.0, 10.0, 2.0}
}

func (p WeldedBeamDesign) Objective(ind *core.Individual) (float64, error) {
	if len(ind.Variables) < 4 {
		return 0, errors.Newf(errors.InvalidInput, "welded beam design expects 4 variables, got %d", len(ind.Variables))
	}
	x1 := ind.Variables[0] // h
	x2 := ind.Variables[1] // l
	x3 := ind.Variables[2] // t
	x4 := ind.Variables[3] // b

	return 1.10471*math.Pow(x1, 2)*x2 + 0.04811*x3*x4*(14.0+x2), nil
}

// Violations returns g(x) for each violated constraint and 0 otherwise;
// in this problem g(x) <= 0 means satisfied.
func (p WeldedBeamDesign) Violations(ind *core.Individual) ([]float64, error) {
	raw, err := p.RawConstraints(ind)
	if err != nil {
		return nil, err
	}
	violations := make([]float64, len(raw))
	for i, g := range raw {
		if g > 0 {
			violations[i] = g
		}
	}
	return violations, nil
}

// RawConstraints returns the seven raw g(x) values; g <= 0 means satisfied.
func (p WeldedBeamDesign) RawConstraints(ind *core.Individual) ([]float64, error) {
	if len(ind.Variables) < 4 {
		return nil, errors.Newf(errors.InvalidInput, "welded beam design expects 4 variables, got %d", len(ind.Variables))
	}

	x1 := ind.Variables[0] // h
	x2 := ind.Variables[1] // l
	x3 := ind.Variables[2] // t
	x4 := ind.Variables[3] // b

	tauPrime := beamLoad / (math.Sqrt2 * x1 * x2)
	moment := beamLoad * (beamLength + x2/2.0)
	radius := math.Sqrt(math.Pow(x2, 2)/4.0 + math.Pow((x1+x3)/2.0, 2))
	polar := 2.0 * ((x1 * x2 / math.Sqrt2) * (math.Pow(x2, 2)/12.0 + math.Pow((x1+x3)/2.0, 2)))
	tauDoublePrime := moment * radius / polar
	tau := math.Sqrt(math.Pow(tauPrime, 2) + (2.0*tauPrime*tauDoublePrime*x2)/(2.0*radius) + math.Pow(tauDoublePrime, 2))
	sigma := (6.0 * beamLoad * beamLength) / (x4 * math.Pow(x3, 2))
	delta := (4.0 * beamLoad * math.Pow(beamLength, 3)) / (youngsModulus * x4 * math.Pow(x3, 3))
	buckTerm := math.Sqrt(youngsModulus * shearModulus * math.Pow(x3, 2) * math.Pow(x4, 6) / 36.0)
	buckling := (4.013 * buckTerm / math.Pow(beamLength, 2)) *
		(1.0 - (x3/(2.0*beamLength))*math.Sqrt(youngsModulus/(4.0*shearModulus)))

	g1 := tau - maxShearStress
	g2 := sigma - maxBendingStress
	g3 := x1 - x4
	g4 := 0.10471*math.Pow(x1, 2) + 0.04811*x3*x4*(14.0+x2) - 5.0
	g5 := 0.125 - x1
	g6 := delta - maxDeflection
	g7 := beamLoad - buckling

	return []float64{g1, g2, g3, g4, g5, g6, g7}, nil
}
