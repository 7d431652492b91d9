package optimizer

import "github.com/XiaoConstantine/sco-go/pkg/core"

// clusterPopulation partitions the population into societies by iterative
// farthest-point hub growing:
//
//  1. one individual chosen uniformly at random becomes the first hub,
//  2. the individual farthest from it becomes the second hub,
//  3. everyone joins the nearer hub (d1 <= d2 goes to hub 0),
//  4. while the individual farthest from its assigned hub is farther than
//     half the average pairwise hub distance, it is promoted to a new hub
//     and strictly-closer individuals defect to it.
//
// All maxima use first-found tie-breaking in scan order. Terminates because
// each promotion strictly shrinks the worst assigned distance and the
// population is finite.
func (c *Civilization) clusterPopulation() {
	c.hubs = c.hubs[:0]
	c.assignments = make([]int, c.popSize)
	for i := range c.assignments {
		c.assignments[i] = -1
	}

	firstHub := c.rng.Intn(c.popSize)
	c.hubs = append(c.hubs, firstHub)

	secondHub := -1
	maxDist := -1.0
	for i := 0; i < c.popSize; i++ {
		d := core.Distance(&c.population[i], &c.population[firstHub])
		if d > maxDist {
			maxDist = d
			secondHub = i
		}
	}
	c.hubs = append(c.hubs, secondHub)

	for i := 0; i < c.popSize; i++ {
		d1 := core.Distance(&c.population[i], &c.population[c.hubs[0]])
		d2 := core.Distance(&c.population[i], &c.population[c.hubs[1]])
		if d1 <= d2 {
			c.assignments[i] = 0
		} else {
			c.assignments[i] = 1
		}
	}

	for {
		// Threshold D: half the average pairwise distance between hubs.
		totalHubDist := 0.0
		pairCount := 0
		for i := 0; i < len(c.hubs); i++ {
			for j := i + 1; j < len(c.hubs); j++ {
				totalHubDist += core.Distance(&c.population[c.hubs[i]], &c.population[c.hubs[j]])
				pairCount++
			}
		}
		avgHubDist := 0.0
		if pairCount > 0 {
			avgHubDist = totalHubDist / float64(pairCount)
		}
		threshold := avgHubDist / 2.0

		farthest := -1
		maxDistToHub := -1.0
		for i := 0; i < c.popSize; i++ {
			hub := c.hubs[c.assignments[i]]
			d := core.Distance(&c.population[i], &c.population[hub])
			if d > maxDistToHub {
				maxDistToHub = d
				farthest = i
			}
		}

		if maxDistToHub <= threshold {
			break
		}

		c.hubs = append(c.hubs, farthest)
		newSociety := len(c.hubs) - 1

		for i := 0; i < c.popSize; i++ {
			current := c.hubs[c.assignments[i]]
			distCurrent := core.Distance(&c.population[i], &c.population[current])
			distNew := core.Distance(&c.population[i], &c.population[farthest])
			if distNew < distCurrent {
				c.assignments[i] = newSociety
			}
		}
	}
}
