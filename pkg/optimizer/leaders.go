package optimizer

// selectLeaders applies the rank-then-filter rule to a ranked pool: the
// rank-1 set when it is at most half the pool, otherwise the rank-1 subset
// with objective value at or below the pool mean. Falls back to the first
// rank-1 member when the filter empties, so a non-empty pool always yields
// at least one leader.
func (c *Civilization) selectLeaders(pool []int) []int {
	if len(pool) == 0 {
		return nil
	}

	var rankOne []int
	sum := 0.0
	for _, i := range pool {
		if c.population[i].Rank == 1 {
			rankOne = append(rankOne, i)
		}
		sum += c.population[i].ObjectiveValue
	}
	avg := sum / float64(len(pool))

	if 2*len(rankOne) <= len(pool) {
		return rankOne
	}

	var leaders []int
	for _, i := range rankOne {
		if c.population[i].ObjectiveValue <= avg {
			leaders = append(leaders, i)
		}
	}
	if len(leaders) == 0 {
		leaders = rankOne[:1]
	}
	return leaders
}

// identifyLocalLeaders evaluates and ranks every society independently and
// elects its local leaders. Empty societies are skipped.
func (c *Civilization) identifyLocalLeaders() error {
	groups := c.societies()
	c.societyLeaders = make([][]int, len(groups))
	for s, members := range groups {
		if len(members) == 0 {
			continue
		}
		if err := c.evaluatePool(members); err != nil {
			return err
		}
		c.rankPool(members)
		c.societyLeaders[s] = c.selectLeaders(members)
	}
	return nil
}

// formGlobalSociety pools every society's leaders in society order.
func (c *Civilization) formGlobalSociety() {
	c.globalSociety = c.globalSociety[:0]
	for _, leaders := range c.societyLeaders {
		c.globalSociety = append(c.globalSociety, leaders...)
	}
}

// identifySuperLeaders evaluates and ranks the pooled global society and
// elects the super leaders from it.
func (c *Civilization) identifySuperLeaders() error {
	if len(c.globalSociety) == 0 {
		c.superLeaders = nil
		return nil
	}
	if err := c.evaluatePool(c.globalSociety); err != nil {
		return err
	}
	c.rankPool(c.globalSociety)
	c.superLeaders = c.selectLeaders(c.globalSociety)
	c.globalRanked = true
	return nil
}
