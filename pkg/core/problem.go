package core

import (
	"sync/atomic"

	"github.com/XiaoConstantine/sco-go/pkg/errors"
)

// Problem is the sole problem-specific boundary of the optimizer: an
// objective to minimize and a vector of constraint-violation magnitudes.
// Evaluation errors propagate unhandled to the caller; the optimizer does
// not sanitize injected behavior.
type Problem interface {
	// Name identifies the problem for logging and persistence.
	Name() string

	// Objective evaluates f(x) for the individual.
	Objective(ind *Individual) (float64, error)

	// Violations evaluates the constraint-violation vector for the
	// individual. Every entry must be >= 0; zero means satisfied.
	Violations(ind *Individual) ([]float64, error)
}

// RawConstraintReporter is an optional extension for problems that can
// report the raw g(x) values behind their violation magnitudes, used by
// reporting surfaces only.
type RawConstraintReporter interface {
	RawConstraints(ind *Individual) ([]float64, error)
}

// FuncProblem adapts two plain functions into a Problem.
type FuncProblem struct {
	ProblemName  string
	ObjectiveFn  func(ind *Individual) (float64, error)
	ViolationsFn func(ind *Individual) ([]float64, error)
}

func (p FuncProblem) Name() string {
	if p.ProblemName == "" {
		return "func_problem"
	}
	return p.ProblemName
}

func (p FuncProblem) Objective(ind *Individual) (float64, error) {
	if p.ObjectiveFn == nil {
		return 0, errors.New(errors.InvalidState, "FuncProblem has no objective function")
	}
	return p.ObjectiveFn(ind)
}

func (p FuncProblem) Violations(ind *Individual) ([]float64, error) {
	if p.ViolationsFn == nil {
		return nil, nil
	}
	return p.ViolationsFn(ind)
}

// CountingProblem decorates a Problem with an objective-evaluation counter,
// used by the experiment driver to report evaluation counts per run.
type CountingProblem struct {
	Inner Problem

	evaluations atomic.Int64
}

// NewCountingProblem wraps a problem with evaluation counting.
func NewCountingProblem(inner Problem) *CountingProblem {
	return &CountingProblem{Inner: inner}
}

func (p *CountingProblem) Name() string {
	return p.Inner.Name()
}

func (p *CountingProblem) Objective(ind *Individual) (float64, error) {
	p.evaluations.Add(1)
	return p.Inner.Objective(ind)
}

func (p *CountingProblem) Violations(ind *Individual) ([]float64, error) {
	return p.Inner.Violations(ind)
}

// Evaluations returns the number of objective evaluations so far.
func (p *CountingProblem) Evaluations() int64 {
	return p.evaluations.Load()
}

// Reset zeroes the evaluation counter.
func (p *CountingProblem) Reset() {
	p.evaluations.Store(0)
}
