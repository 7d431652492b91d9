package optimizer

import "github.com/XiaoConstantine/sco-go/pkg/core"

// dominates reports whether a constraint-dominates b: no worse in every
// violation component and strictly better in at least one. Violation
// magnitudes are compared, not raw constraint values, so fully feasible
// individuals never dominate each other.
func dominates(a, b *core.Individual) bool {
	strictlyBetter := false
	for i := range a.ConstraintViolations {
		if a.ConstraintViolations[i] > b.ConstraintViolations[i] {
			return false
		}
		if a.ConstraintViolations[i] < b.ConstraintViolations[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// rankPool assigns constraint-dominance Pareto ranks to the pool in place by
// front peeling: rank 1 is everyone not dominated within the pool, then the
// next front among the remainder, until the pool is exhausted.
func (c *Civilization) rankPool(pool []int) {
	for _, i := range pool {
		c.population[i].Rank = 0
	}

	remaining := append([]int(nil), pool...)
	rank := 1
	for len(remaining) > 0 {
		var front, rest []int
		for _, i := range remaining {
			dominated := false
			for _, j := range remaining {
				if i == j {
					continue
				}
				if dominates(&c.population[j], &c.population[i]) {
					dominated = true
					break
				}
			}
			if dominated {
				rest = append(rest, i)
			} else {
				front = append(front, i)
			}
		}

		for _, i := range front {
			c.population[i].Rank = rank
		}
		remaining = rest
		rank++
	}
}
