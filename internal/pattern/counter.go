package pattern

// stateCounter tallies state occurrences while remembering first-encounter
// order, so majority picks are deterministic for a given input ordering.
type stateCounter struct {
	counts map[string]int
	order  []string
}

func newStateCounter() *stateCounter {
	return &stateCounter{counts: make(map[string]int)}
}

func (c *stateCounter) add(state string) {
	if _, seen := c.counts[state]; !seen {
		c.order = append(c.order, state)
	}
	c.counts[state]++
}

func (c *stateCounter) total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// majority returns the most frequent state and its count. Ties go to the
// state encountered first; a later state must strictly exceed the current
// maximum to win.
func (c *stateCounter) majority() (string, int) {
	best, bestCount := "", 0
	for _, state := range c.order {
		if c.counts[state] > bestCount {
			best, bestCount = state, c.counts[state]
		}
	}
	return best, bestCount
}
