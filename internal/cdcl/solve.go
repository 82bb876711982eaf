package cdcl

import "time"

// Solve decides satisfiability of the clause database under the given
// assumptions. Each call clears decisions and previously pushed assumptions
// from any prior call, then asserts the new assumption list, then runs CDCL
// search to completion, a resource limit, or UNSAT.
func (c *Context) Solve(assumptions []Literal) Status {
	if c.permanentlyUnsat {
		// The empty clause was already derived (e.g. by two complementary
		// original units at AddClause time): permanently unsatisfiable,
		// independent of any assumption set.
		c.status = StatusUnsatisfiable
		return c.status
	}

	c.startTime = time.Now()
	c.clearAssumptions()
	c.assumptions = append([]Literal(nil), assumptions...)
	c.status = StatusUnknown
	c.hasWitness = false

	if !c.preprocessed {
		c.preprocessed = true
		if c.config.Switch.Preprocessing {
			c.preprocessPureLiterals()
			if key, conflict := c.Propagate(); conflict {
				_, premises := c.analyze(key)
				c.recordUnsatLearnt(premises)
				return c.status
			}
		}
	}

	if key, conflict := c.assertAssumptions(assumptions); conflict {
		c.recordAssumptionConflict(key)
		return c.status
	}

	return c.search()
}

// search runs the core CDCL loop: propagate, and on conflict analyze and
// backjump; otherwise let the scheduler fire or make a new decision.
func (c *Context) search() Status {
	for {
		if c.shouldStop() {
			c.status = StatusUnknown
			return c.status
		}

		key, conflict := c.Propagate()
		if conflict {
			c.TotalConflicts++
			c.conflictsSinceRestart++

			learnt, premises := c.analyze(key)

			if len(learnt) == 0 {
				// No decision or assumption survived resolution: the
				// conflict holds unconditionally, independent of the
				// current assumption set.
				c.recordUnsatLearnt(premises)
				return c.status
			}

			if int32(c.decisionLevel()) <= c.lowestLevel {
				// A literal pinned by the active assumption set survived
				// resolution: unsatisfiable only under these assumptions,
				// not a global property of the clause database.
				c.recordUnsatUnderAssumptions(key, learnt)
				return c.status
			}

			level := c.backjumpLevel(learnt)
			c.backjump(level)

			newKey, err := c.addLearnedClause(learnt, premises)
			if err != nil {
				c.status = StatusUnknown
				return c.status
			}
			if c.status == StatusUnsatisfiable {
				c.markFailedFromLearnt(learnt)
				return c.status
			}
			_ = newKey
			continue
		}

		if c.restartDue() {
			c.restart()
			continue
		}
		if c.reduceDue() {
			c.reduce()
			continue
		}

		if c.decide() == DecisionExhausted {
			c.status = StatusSatisfiable
			c.emitFinalizeAll()
			return c.status
		}
	}
}

// recordUnsatLearnt registers an already-analyzed conflict's premises as the
// empty clause's derivation: every unsatisfiability witness goes through
// conflict analysis first, so the witness always carries the full chain of
// original clauses UnsatCore needs, rather than the single raw clause that
// happened to conflict.
func (c *Context) recordUnsatLearnt(premises []ClauseKey) {
	c.addLearnedClause(nil, premises)
}

// recordUnsatUnderAssumptions marks this solve (only) unsatisfiable from a
// conflict that could not be resolved past a literal pinned by the active
// assumption set. Unlike recordUnsatLearnt, this never touches the clause
// database or permanentlyUnsat: the same context can still be satisfiable
// under a different (or empty) assumption set on the next Solve call.
// conflict is kept as the reported witness since the analyzed clause is
// specific to this assumption set, not an addition worth persisting.
func (c *Context) recordUnsatUnderAssumptions(conflict ClauseKey, learnt []Literal) {
	c.status = StatusUnsatisfiable
	c.hasWitness = true
	c.unsatWitness = conflict
	c.markFailedFromLearnt(learnt)
}

// recordAssumptionConflict marks the context unsatisfiable from a conflict
// raised while asserting the assumption batch itself: a pushed assumption
// directly contradicts an earlier one or an original clause, before search
// ever runs. key is the zero ClauseKey when the conflict was a direct
// contradiction with no clause to blame (assertAssumptions already marked
// the offending literal as failed in that case).
func (c *Context) recordAssumptionConflict(key ClauseKey) {
	c.status = StatusUnsatisfiable
	if key == (ClauseKey{}) {
		return
	}
	learnt, premises := c.analyze(key)
	if len(learnt) == 0 {
		c.recordUnsatLearnt(premises)
		return
	}
	c.recordUnsatUnderAssumptions(key, learnt)
}

// emitFinalizeAll reports every still-active binary and long clause,
// original or addition, to the dispatcher at the end of a satisfiable
// solve, so an attached proof consumer can close out its bookkeeping. Unit
// clauses are not reported.
func (c *Context) emitFinalizeAll() {
	if c.dispatcher == nil {
		return
	}
	for i := range c.binaries {
		cl := &c.binaries[i]
		if cl.active {
			c.emitFinalize(binaryKey(int32(i), cl.original), []Literal{cl.lits[0], cl.lits[1]})
		}
	}
	for i := range c.longs {
		cl := &c.longs[i]
		if cl.active {
			c.emitFinalize(longKey(int32(i), cl.gen, cl.original), cl.literalsCopy())
		}
	}
}
