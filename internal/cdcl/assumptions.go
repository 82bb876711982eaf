package cdcl

// assertAssumptions asserts lits under the configured AssumptionMode. It
// returns the conflicting clause key and ok=true if a conflict arose while
// asserting (including one discovered immediately, with no clause to
// blame, when a literal directly contradicts a value already fixed at or
// below the assumption floor).
func (c *Context) assertAssumptions(lits []Literal) (ClauseKey, bool) {
	if len(lits) == 0 {
		return ClauseKey{}, false
	}
	switch c.config.AssumptionMode {
	case AssumptionFlat:
		return c.assertAssumptionsFlat(lits)
	default:
		return c.assertAssumptionsStacked(lits)
	}
}

func (c *Context) assertAssumptionsStacked(lits []Literal) (ClauseKey, bool) {
	for _, l := range lits {
		c.trail.pushLevel()
		level := int32(c.decisionLevel())
		if c.val.value(l) == LFalse {
			c.lowestLevel = level
			c.failedAssumption[l] = true
			return ClauseKey{}, true
		}
		c.enqueue(l, Source{Kind: SourceAssumption}, level, false)
		c.lowestLevel = level
		if key, conflict := c.Propagate(); conflict {
			return key, true
		}
	}
	return ClauseKey{}, false
}

func (c *Context) assertAssumptionsFlat(lits []Literal) (ClauseKey, bool) {
	c.trail.pushLevel()
	level := int32(c.decisionLevel())
	for _, l := range lits {
		if c.val.value(l) == LFalse {
			c.lowestLevel = level
			c.failedAssumption[l] = true
			return ClauseKey{}, true
		}
		c.enqueue(l, Source{Kind: SourceAssumption}, level, false)
	}
	c.lowestLevel = level
	return c.Propagate()
}

// markFailedFromLearnt records, as failed, every assumption literal whose
// negation appears in a learned (or conflict) clause produced while
// analyzing an unsatisfiable-under-assumptions conflict: such a literal is
// exactly one that conflict analysis could not resolve past, the same
// treatment as a decision.
func (c *Context) markFailedFromLearnt(learnt []Literal) {
	for _, lit := range learnt {
		trailLit := lit.Opposite()
		if c.cells.reason[trailLit.Atom()].Kind == SourceAssumption {
			c.failedAssumption[trailLit] = true
		}
	}
}

// clearAssumptions undoes every decision and pushed assumption, restoring
// the lowest decision level to 0.
func (c *Context) clearAssumptions() {
	c.backjump(0)
	c.lowestLevel = 0
	c.assumptions = nil
	c.failedAssumption = map[Literal]bool{}
}
