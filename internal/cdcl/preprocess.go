package cdcl

// preprocessPureLiterals fixes every atom that occurs with only one
// polarity across the active non-unit clauses: such an atom can always be
// set to satisfy every clause it appears in without affecting any other
// clause's satisfiability. Runs once, at level 0, before the first search
// begins.
func (c *Context) preprocessPureLiterals() {
	seenPositive := make([]bool, c.cells.numAtoms())
	seenNegative := make([]bool, c.cells.numAtoms())

	mark := func(lits []Literal) {
		for _, l := range lits {
			a := l.Atom()
			if l.IsPositive() {
				seenPositive[a] = true
			} else {
				seenNegative[a] = true
			}
		}
	}

	for i := range c.binaries {
		if c.binaries[i].active {
			mark(c.binaries[i].lits[:])
		}
	}
	for i := range c.longs {
		if c.longs[i].active {
			mark(c.longs[i].literals)
		}
	}

	level := int32(c.decisionLevel())
	for a := 1; a < len(seenPositive); a++ {
		atom := Atom(a)
		if c.val.atomValue(atom) != LUnset {
			continue
		}
		pos, neg := seenPositive[a], seenNegative[a]
		if pos == neg {
			continue // not pure: occurs with both polarities, or not at all
		}
		lit := PositiveLiteral(atom)
		if !pos {
			lit = NegativeLiteral(atom)
		}
		c.enqueue(lit, Source{Kind: SourcePureLiteral}, level, false)
	}
}
