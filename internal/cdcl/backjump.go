package cdcl

// backjump undoes the trail down to (and including) the decision levels
// above target, then drops queued consequences above target. target never
// goes below the "lowest decision level" floor used while assumptions are
// pushed.
func (c *Context) backjump(target int32) {
	for int32(c.decisionLevel()) > target {
		start := c.trail.popLevelStart()
		for i := len(c.trail.entries) - 1; i >= int(start); i-- {
			lit := c.trail.entries[i].lit
			a := lit.Atom()
			val := c.val.atomValue(a)
			c.val.unset(lit)
			c.cells.level[a] = -1
			c.cells.reason[a] = Source{}
			c.heur.reinsert(a, val, c.config.Switch.PhaseSaving)
		}
		c.trail.truncate(int(start))
	}
	c.queue.clearAbove(target)
}

// backjumpToLowest undoes every decision but preserves assumptions.
func (c *Context) backjumpToLowest() {
	c.backjump(c.lowestLevel)
}

// backjumpLevel computes the non-chronological backjump level of a learned
// clause: the second-highest decision level among its literals, floored at
// the lowest decision level.
func (c *Context) backjumpLevel(lits []Literal) int32 {
	if len(lits) <= 1 {
		return c.lowestLevel
	}
	top, second := int32(-1), int32(-1)
	for _, l := range lits {
		lvl := c.cells.level[l.Atom()]
		switch {
		case lvl > top:
			second = top
			top = lvl
		case lvl > second:
			second = lvl
		}
	}
	if second < c.lowestLevel {
		return c.lowestLevel
	}
	return second
}
