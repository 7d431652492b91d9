package optimizer

import (
	"math"
	"math/rand"

	"github.com/XiaoConstantine/sco-go/pkg/core"
)

// acquireInformation draws the new value of one coordinate of a migrating
// individual using the three-region policy: with probability 0.25 sample
// below both values, with probability 0.5 between them, with probability
// 0.25 above both. Degenerate regions collapse to their boundary and the
// result is always within [lb, ub].
func acquireInformation(rng *rand.Rand, indVal, leaderVal, lb, ub float64) float64 {
	lo := math.Min(indVal, leaderVal)
	hi := math.Max(indVal, leaderVal)

	var v float64
	r := rng.Float64()
	switch {
	case r < 0.25:
		if lo <= lb {
			v = lb
		} else {
			v = lb + rng.Float64()*(lo-lb)
		}
	case r < 0.75:
		if hi <= lo {
			v = lo
		} else {
			v = lo + rng.Float64()*(hi-lo)
		}
	default:
		if ub <= hi {
			v = ub
		} else {
			v = hi + rng.Float64()*(ub-hi)
		}
	}

	return math.Max(lb, math.Min(ub, v))
}

// migrate moves the individual at index i toward the leader, drawing one
// independent region choice per coordinate.
func (c *Civilization) migrate(i, leader int) {
	ind := &c.population[i]
	lead := &c.population[leader]
	for j := 0; j < c.numVars; j++ {
		ind.Variables[j] = acquireInformation(
			c.rng,
			ind.Variables[j],
			lead.Variables[j],
			c.bounds.Lower[j],
			c.bounds.Upper[j],
		)
	}
}

// nearestOf returns the member of candidates nearest to individual i by
// Euclidean distance, first-encountered on ties. Returns -1 for an empty
// candidate list.
func (c *Civilization) nearestOf(i int, candidates []int) int {
	nearest := -1
	minDist := math.Inf(1)
	for _, cand := range candidates {
		d := core.Distance(&c.population[i], &c.population[cand])
		if d < minDist {
			minDist = d
			nearest = cand
		}
	}
	return nearest
}

// moveSocietyMembers migrates every non-leader toward the nearest leader of
// its own society. Leaders hold their positions in this phase.
func (c *Civilization) moveSocietyMembers() {
	groups := c.societies()
	for s, members := range groups {
		leaders := c.societyLeaders[s]
		if len(leaders) == 0 {
			continue
		}
		isLeader := make(map[int]bool, len(leaders))
		for _, l := range leaders {
			isLeader[l] = true
		}
		for _, i := range members {
			if isLeader[i] {
				continue
			}
			c.migrate(i, c.nearestOf(i, leaders))
		}
	}
}

// moveGlobalLeaders migrates every local leader that is not itself a super
// leader toward the nearest super leader.
func (c *Civilization) moveGlobalLeaders() {
	if len(c.superLeaders) == 0 {
		return
	}
	isSuper := make(map[int]bool, len(c.superLeaders))
	for _, l := range c.superLeaders {
		isSuper[l] = true
	}
	for _, i := range c.globalSociety {
		if isSuper[i] {
			continue
		}
		c.migrate(i, c.nearestOf(i, c.superLeaders))
	}
}
