package cdcl

// analyze builds the learned clause from a conflict by successive
// resolution, following the FirstUIP or None stopping criterion. It returns
// the learned clause's literals (with the asserted literal, if any, at
// index 0) and the set of premise clause keys consumed.
func (c *Context) analyze(conflict ClauseKey) ([]Literal, []ClauseKey) {
	currentLevel := int32(c.decisionLevel())

	c.seenStamp++
	if c.seenStamp == 0 {
		for i := range c.seenAtVar {
			c.seenAtVar[i] = 0
		}
		c.seenStamp = 1
	}

	learnt := []Literal{noLiteral} // index 0 reserved for the UIP, if any
	premises := []ClauseKey{conflict}

	pending := 0
	nextIdx := c.trail.len() - 1
	explainLit := noLiteral // noLiteral marks "explain the conflict clause itself"
	confl := conflict

	markPending := func(lits []Literal) {
		for _, q := range lits {
			a := q.Atom()
			if c.seenAtVar[a] == c.seenStamp {
				continue
			}
			c.seenAtVar[a] = c.seenStamp
			if c.cells.level[a] == currentLevel {
				pending++
				continue
			}
			learnt = append(learnt, q.Opposite())
		}
	}

	markPending(c.explain(confl, explainLit))

	uip := noLiteral
	for pending > 0 {
		var entry trailEntry
		for {
			entry = c.trail.at(nextIdx)
			nextIdx--
			if c.seenAtVar[entry.lit.Atom()] == c.seenStamp {
				break
			}
		}
		explainLit = entry.lit
		confl = entry.source.Clause
		pending--

		if c.config.StoppingCriteria == FirstUIP && pending <= 0 && currentLevel > 0 {
			uip = explainLit
			break
		}
		if !entry.source.hasClause() {
			// No reason clause to resolve against (a decision, assumption,
			// or pure-literal fixing): nothing more can be resolved away at
			// this level.
			uip = explainLit
			break
		}
		premises = append(premises, confl)
		markPending(c.explain(confl, explainLit))
		if c.config.StoppingCriteria == NoStoppingCriteria && pending <= 0 {
			uip = noLiteral
			break
		}
	}

	if uip != noLiteral {
		learnt[0] = uip.Opposite()
	} else {
		learnt = learnt[1:]
	}

	if c.config.Minimization != MinimizationNone && len(learnt) > 1 {
		learnt = c.minimize(learnt)
	}

	c.bumpAnalysisActivity(conflict, premises)
	return learnt, dedupKeys(premises)
}

// explain returns the antecedent literals of key: if l is noLiteral, the
// clause's own literals negated (the conflict case); otherwise the clause's
// literals other than l, negated (the propagation case). Clause activity
// is bumped afterwards, for every premise, by bumpAnalysisActivity.
func (c *Context) explain(key ClauseKey, l Literal) []Literal {
	lits, ok := c.ClauseLiterals(key)
	if !ok {
		return nil
	}
	out := make([]Literal, 0, len(lits))
	for _, x := range lits {
		if x == l {
			continue
		}
		out = append(out, x.Opposite())
	}
	return out
}

func (c *Context) bumpAnalysisActivity(conflict ClauseKey, premises []ClauseKey) {
	for _, k := range premises {
		c.BumpClauseActivity(k)
	}
	switch c.config.VSIDSVariant {
	case VSIDSChaff:
		lits, _ := c.ClauseLiterals(conflict)
		for _, l := range lits {
			c.heur.bump(l.Atom())
		}
	default: // VSIDSMiniSAT: every atom visited while building the resolvent
		for a := range c.seenAtVar {
			if c.seenAtVar[a] == c.seenStamp {
				c.heur.bump(Atom(a))
			}
		}
	}
	c.heur.decayActivity()
}

func dedupKeys(keys []ClauseKey) []ClauseKey {
	out := make([]ClauseKey, 0, len(keys))
	seen := make(map[ClauseKey]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// minimize applies self-subsumption minimization to the non-asserted
// literals of a learned clause, local or recursive depending on
// configuration.
func (c *Context) minimize(learnt []Literal) []Literal {
	cache := map[Atom]bool{}
	kept := learnt[:1]
	for _, l := range learnt[1:] {
		var redundant bool
		if c.config.Minimization == MinimizationRecursive {
			redundant = c.redundant(l, cache)
		} else {
			redundant = c.redundantLocal(l)
		}
		if redundant {
			c.trySelfSubsumePremise(l)
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// redundantLocal reports whether l is implied by its reason clause's other
// literals, all of which must already be in the learned clause (seen) or
// permanently fixed at level 0.
func (c *Context) redundantLocal(l Literal) bool {
	reason, lits, ok := c.reasonLiterals(l)
	if !ok {
		return false
	}
	for _, x := range lits {
		if x == reason {
			continue
		}
		if c.cells.level[x.Atom()] == 0 {
			continue
		}
		if c.seenAtVar[x.Atom()] != c.seenStamp {
			return false
		}
	}
	return true
}

// redundant is the transitive variant of redundantLocal, caching results
// per atom to avoid recomputation and treat in-progress atoms as
// non-removable (cycle guard).
func (c *Context) redundant(l Literal, cache map[Atom]bool) bool {
	trailLit := l.Opposite()
	a := trailLit.Atom()
	if v, ok := cache[a]; ok {
		return v
	}
	reason, lits, ok := c.reasonLiterals(l)
	if !ok {
		cache[a] = false
		return false
	}
	cache[a] = false // in progress: non-removable until proven (cycle guard)
	for _, x := range lits {
		if x == reason {
			continue
		}
		xa := x.Atom()
		if c.cells.level[xa] == 0 {
			continue
		}
		if c.seenAtVar[xa] == c.seenStamp {
			continue
		}
		if !c.redundant(x, cache) {
			cache[a] = false
			return false
		}
	}
	cache[a] = true
	return true
}

// reasonLiterals returns the trail literal whose opposite is l, together
// with its reason clause's literals, if l's atom was assigned by
// propagation or resolution.
func (c *Context) reasonLiterals(l Literal) (trailLit Literal, lits []Literal, ok bool) {
	trailLit = l.Opposite()
	a := trailLit.Atom()
	r := c.cells.reason[a]
	if !r.hasClause() {
		return trailLit, nil, false
	}
	lits, found := c.ClauseLiterals(r.Clause)
	if !found {
		return trailLit, nil, false
	}
	return trailLit, lits, true
}

// trySelfSubsumePremise implements on-the-fly self-subsumption: when
// minimization finds l redundant via its reason clause R, R itself can be
// strengthened by removing l's trail literal. To keep watch invariants
// simple, this only strengthens R when that literal is not currently one of
// R's two watched positions; if R is a long clause and shrinks to two
// literals, it is transferred to the binary class. Disabled while a proof
// dispatcher is attached, since subsumption steps are not proof-logged.
func (c *Context) trySelfSubsumePremise(l Literal) {
	if !c.config.Switch.Subsumption || c.dispatcher != nil {
		return
	}
	trailLit := l.Opposite()
	r := c.cells.reason[trailLit.Atom()]
	if !r.Clause.IsLong() {
		return
	}
	cl, ok := c.GetLong(r.Clause)
	if !ok {
		return
	}
	if cl.literals[0] == trailLit || cl.literals[1] == trailLit {
		return // would require rewatching; left to full reduction instead
	}
	idx := -1
	for i, x := range cl.literals {
		if x == trailLit {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	cl.literals[idx] = cl.literals[len(cl.literals)-1]
	cl.literals = cl.literals[:len(cl.literals)-1]
	if len(cl.literals) == 2 {
		c.transferToBinary(r.Clause)
	}
}
