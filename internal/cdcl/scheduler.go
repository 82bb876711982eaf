package cdcl

import "sort"

// luby returns the i-th term (1-indexed) of the Luby sequence
// 1 1 2 1 1 2 4 1 1 2 1 1 2 4 8 ..., used to schedule restarts.
func luby(i int) int64 {
	for k := 1; ; k++ {
		if i == (1<<k)-1 {
			return int64(1) << (k - 1)
		}
		if i < (1<<k)-1 {
			return luby(i - (1<<(k-1) - 1))
		}
	}
}

// restartDue reports whether a restart is scheduled: the number of
// conflicts since the last restart has reached LubyU times the current
// Luby term.
func (c *Context) restartDue() bool {
	if !c.config.Switch.Restart {
		return false
	}
	threshold := int64(c.config.Scheduler.LubyU) * luby(c.lubyIndex+1)
	return c.conflictsSinceRestart >= threshold
}

// restart backjumps to the lowest decision level and advances the Luby
// index, leaving pushed assumptions intact.
func (c *Context) restart() {
	c.backjumpToLowest()
	c.conflictsSinceRestart = 0
	c.lubyIndex++
	c.TotalRestarts++
}

// reduceDue reports whether the number of addition-long clauses has grown
// enough to warrant a reduction pass.
func (c *Context) reduceDue() bool {
	return int64(c.numAdditionLongClauses()) >= c.reduceThreshold
}

// numAdditionLongClauses counts the active, non-original long clauses:
// the population reduce() prunes and reduceDue() sizes its threshold
// against.
func (c *Context) numAdditionLongClauses() int {
	n := 0
	for i := range c.longs {
		if c.longs[i].active && !c.longs[i].original {
			n++
		}
	}
	return n
}

type reduceCandidate struct {
	key  ClauseKey
	lbd  uint8
	act  float64
	lock bool
}

// reduce removes the least active half of the non-locked, non-glue,
// non-original long clauses (ranked by LBD then activity, worst first), and
// grows the threshold for the next round.
func (c *Context) reduce() {
	removable := make([]reduceCandidate, 0, len(c.longs))
	for i := range c.longs {
		cl := &c.longs[i]
		if !cl.active || cl.original || cl.lbd <= 2 {
			continue // glue clauses are never discarded
		}
		key := longKey(int32(i), cl.gen, false)
		if c.isLocked(key, cl.literals[0]) {
			continue
		}
		removable = append(removable, reduceCandidate{key: key, lbd: cl.lbd, act: cl.activity})
	}

	sort.Slice(removable, func(i, j int) bool {
		a, b := removable[i], removable[j]
		if a.lbd != b.lbd {
			return a.lbd > b.lbd
		}
		return a.act < b.act
	})

	limit := len(removable) / 2
	for i := 0; i < limit; i++ {
		c.removeLong(removable[i].key)
	}

	c.reduceThreshold += int64(c.config.Scheduler.ReductionGrowth)
}

// computeLBD returns the literal block distance of a set of literals: the
// number of distinct decision levels represented among them.
func (c *Context) computeLBD(lits []Literal) uint8 {
	seenLevels := map[int32]bool{}
	var n uint8
	for _, l := range lits {
		lvl := c.cells.level[l.Atom()]
		if !seenLevels[lvl] {
			seenLevels[lvl] = true
			n++
		}
	}
	return n
}
