package optimizer

import (
	"context"
	"math/rand"

	"github.com/XiaoConstantine/sco-go/pkg/core"
	"github.com/XiaoConstantine/sco-go/pkg/errors"
	"github.com/XiaoConstantine/sco-go/pkg/logging"
)

// Civilization implements the Society and Civilization Algorithm for
// constrained continuous minimization. It owns a fixed-size population,
// partitions it into societies by farthest-point clustering every iteration,
// elects local and super leaders by constraint-dominance ranking, and moves
// non-leaders toward their nearest leader with the information acquisition
// operator.
//
// All randomness is drawn from a single explicitly seeded stream in a fixed
// order (hub selection first, then per-variable migration draws), so two
// civilizations constructed with identical parameters and seed produce
// bit-identical trajectories.
type Civilization struct {
	population core.Population
	bounds     core.Bounds
	popSize    int
	numVars    int

	problem core.Problem
	rng     *rand.Rand
	logger  *logging.Logger

	// Clustering state, rebuilt from scratch by every Step.
	hubs        []int
	assignments []int

	// Leadership state, rebuilt from scratch by every Step.
	societyLeaders [][]int
	globalSociety  []int
	superLeaders   []int

	// globalRanked is set once a global ranking has run, which switches
	// BestSolution to prefer rank-1 members of the global society.
	globalRanked bool

	step int
}

// Option configures a Civilization beyond its required parameters.
type Option func(*Civilization)

// WithLogger overrides the global logger for this instance.
func WithLogger(l *logging.Logger) Option {
	return func(c *Civilization) {
		c.logger = l
	}
}

// New constructs a Civilization for the given problem. popSize is the number
// of individuals m (at least 2, clustering needs two hub seeds), numVars the
// dimensionality n, and lower/upper the elementwise variable bounds. The seed
// fully determines the run given identical parameters and problem.
func New(problem core.Problem, popSize, numVars int, lower, upper []float64, seed int64, opts ...Option) (*Civilization, error) {
	if problem == nil {
		return nil, errors.New(errors.InvalidInput, "problem must not be nil")
	}
	if popSize < 2 {
		return nil, errors.Newf(errors.InvalidInput, "population size must be at least 2, got %d", popSize)
	}
	bounds, err := core.NewBounds(numVars, lower, upper)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "invalid bounds")
	}

	c := &Civilization{
		population: make(core.Population, popSize),
		bounds:     bounds,
		popSize:    popSize,
		numVars:    numVars,
		problem:    problem,
		rng:        rand.New(rand.NewSource(seed)),
		logger:     logging.GetLogger(),
	}
	for i := range c.population {
		c.population[i] = core.NewIndividual(numVars)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Initialize scatters the population uniformly at random within bounds and
// clears all clustering and leadership state. It does not evaluate.
func (c *Civilization) Initialize() {
	for i := range c.population {
		ind := &c.population[i]
		for j := 0; j < c.numVars; j++ {
			r := c.rng.Float64()
			ind.Variables[j] = c.bounds.Lower[j] + r*(c.bounds.Upper[j]-c.bounds.Lower[j])
		}
		ind.ObjectiveValue = 0
		ind.ConstraintViolations = nil
		ind.Rank = 0
	}
	c.hubs = nil
	c.assignments = nil
	c.societyLeaders = nil
	c.globalSociety = nil
	c.superLeaders = nil
	c.globalRanked = false
	c.step = 0
}

// Step advances the civilization by one iteration:
// cluster, evaluate and rank each society, elect local leaders, migrate
// members, pool the global society, evaluate and rank it, elect super
// leaders, migrate local leaders. There is no early termination inside a
// step; how many iterations to run is the caller's concern.
func (c *Civilization) Step(ctx context.Context) error {
	if err := errors.CheckContext(ctx, "civilization step"); err != nil {
		return err
	}

	c.clusterPopulation()
	if err := c.identifyLocalLeaders(); err != nil {
		return err
	}
	c.moveSocietyMembers()

	c.formGlobalSociety()
	if err := c.identifySuperLeaders(); err != nil {
		return err
	}
	c.moveGlobalLeaders()

	c.logger.Debug(ctx, "step %d: %d societies, %d global leaders, %d super leaders",
		c.step, len(c.hubs), len(c.globalSociety), len(c.superLeaders))
	c.step++
	return nil
}

// EvaluatePopulation re-invokes the injected objective and constraint
// functions for every individual, overwriting their evaluated state.
func (c *Civilization) EvaluatePopulation() error {
	for i := range c.population {
		if err := c.evaluate(i); err != nil {
			return err
		}
	}
	return nil
}

// evaluate refreshes the objective value and violation vector of one individual.
func (c *Civilization) evaluate(i int) error {
	ind := &c.population[i]

	obj, err := c.problem.Objective(ind)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.EvaluationFailed, "objective evaluation failed"),
			errors.Fields{"individual": i},
		)
	}
	viol, err := c.problem.Violations(ind)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.EvaluationFailed, "constraint evaluation failed"),
			errors.Fields{"individual": i},
		)
	}

	ind.ObjectiveValue = obj
	ind.ConstraintViolations = viol
	return nil
}

func (c *Civilization) evaluatePool(pool []int) error {
	for _, i := range pool {
		if err := c.evaluate(i); err != nil {
			return err
		}
	}
	return nil
}

// BestSolution returns a copy of the best individual: the minimal-objective
// rank-1 member of the last global ranking when one exists, otherwise the
// overall objective minimum.
func (c *Civilization) BestSolution() core.Individual {
	if c.globalRanked {
		best := -1
		for _, i := range c.globalSociety {
			if c.population[i].Rank != 1 {
				continue
			}
			if best < 0 || c.population[i].ObjectiveValue < c.population[best].ObjectiveValue {
				best = i
			}
		}
		if best >= 0 {
			return c.population[best].Clone()
		}
	}
	if i := c.population.Best(); i >= 0 {
		return c.population[i].Clone()
	}
	return core.Individual{}
}

// Population returns the live population. Callers must treat it as read-only.
func (c *Civilization) Population() core.Population {
	return c.population
}

// Bounds returns the search-space bounds.
func (c *Civilization) Bounds() core.Bounds {
	return c.bounds
}

// Hubs returns the population indices of the current society hubs.
func (c *Civilization) Hubs() []int {
	return c.hubs
}

// Assignments maps each population index to its society index, or -1 before
// clustering has run.
func (c *Civilization) Assignments() []int {
	return c.assignments
}

// SocietyLeaders returns, per society, the population indices of its local
// leaders. Empty societies have no leaders.
func (c *Civilization) SocietyLeaders() [][]int {
	return c.societyLeaders
}

// GlobalSociety returns the pooled local-leader indices.
func (c *Civilization) GlobalSociety() []int {
	return c.globalSociety
}

// SuperLeaders returns the super-leader indices elected from the global society.
func (c *Civilization) SuperLeaders() []int {
	return c.superLeaders
}

// Step count so far.
func (c *Civilization) StepCount() int {
	return c.step
}

// societies groups population indices by their assigned society, preserving
// ascending index order within each group.
func (c *Civilization) societies() [][]int {
	groups := make([][]int, len(c.hubs))
	for i, s := range c.assignments {
		if s >= 0 && s < len(groups) {
			groups[s] = append(groups[s], i)
		}
	}
	return groups
}
