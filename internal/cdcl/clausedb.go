package cdcl

// emptyKey returns the sentinel clause key representing the empty clause: a
// unit key whose literal references the reserved, never-assigned atom 0 can
// never be satisfied, so it uniquely and uniformly identifies "the empty
// clause" among unit keys without a dedicated key kind.
func emptyKey(original bool) ClauseKey {
	return unitKey(noLiteral, original)
}

// recordEmptyClause marks the context permanently unsatisfiable and
// remembers premises under the empty-clause sentinel key, since the empty
// clause has no unitSlot/binaryClause/longClause storage of its own to
// carry them and core extraction needs them reachable.
func (c *Context) recordEmptyClause(original bool, premises []ClauseKey) ClauseKey {
	key := emptyKey(original)
	c.status = StatusUnsatisfiable
	c.hasWitness = true
	c.unsatWitness = key
	c.emptyPremises = premises
	c.permanentlyUnsat = true
	c.emitUnsat(key)
	return key
}

// canonicalize removes duplicate literals and literals permanently falsified
// at decision level 0, and reports whether the clause is a tautology or
// permanently satisfied (both make the clause a trivial no-op addition).
// Literals assigned at a level > 0 (under a decision or a pushed
// assumption) are left untouched, since that assignment may later be
// undone by a backjump.
func (c *Context) canonicalize(lits []Literal) (out []Literal, trivial bool, droppedReasons []ClauseKey) {
	seen := make(map[Literal]bool, len(lits))
	out = lits[:0]
	for _, l := range lits {
		if seen[l] {
			continue
		}
		if seen[l.Opposite()] {
			return nil, true, nil // tautology: l and !l both present
		}
		if c.val.value(l) == LTrue && c.cells.level[l.Atom()] == 0 {
			return nil, true, nil // permanently satisfied
		}
		if c.val.value(l) == LFalse && c.cells.level[l.Atom()] == 0 {
			// Permanently falsified: drop the literal, but remember why
			// (the clause that fixed it), so a clause that collapses
			// entirely can still report a real premise chain.
			if r := c.cells.reason[l.Atom()]; r.hasClause() {
				droppedReasons = append(droppedReasons, r.Clause)
			}
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, false, droppedReasons
}

// classifyForWatch scans a (already canonicalized) literal slice and
// reports the count of non-(transiently)-false literals, an index to a
// non-false literal (if any) suitable as the first watch, and the index of
// the highest-level false literal (suitable as the second watch when the
// clause is currently asserting or already falsified).
func (c *Context) classifyForWatch(lits []Literal) (nonFalseCount int, firstNonFalse int, maxLevelFalse int) {
	firstNonFalse, maxLevelFalse = -1, -1
	maxLevel := int32(-1)
	for i, l := range lits {
		if c.val.value(l) != LFalse {
			nonFalseCount++
			if firstNonFalse == -1 {
				firstNonFalse = i
			}
		} else if c.cells.level[l.Atom()] > maxLevel {
			maxLevel = c.cells.level[l.Atom()]
			maxLevelFalse = i
		}
	}
	return
}

// AddClause adds an original clause to the database. It returns the
// clause's key, or an error if the clause is falsified by the current
// assumption set or would require adding a unit after a decision.
func (c *Context) AddClause(lits []Literal) (ClauseKey, error) {
	return c.addClauseInternal(lits, true, nil)
}

// addLearnedClause adds a resolution-derived clause, recording its
// premises, and is used internally by conflict analysis.
func (c *Context) addLearnedClause(lits []Literal, premises []ClauseKey) (ClauseKey, error) {
	return c.addClauseInternal(lits, false, premises)
}

func unitSourceFor(original bool) SourceKind {
	if original {
		return SourceOriginalUnit
	}
	return SourceResolution
}

func (c *Context) addClauseInternal(rawLits []Literal, original bool, premises []ClauseKey) (ClauseKey, error) {
	buf := append([]Literal(nil), rawLits...)
	lits, trivial, droppedReasons := c.canonicalize(buf)
	if trivial {
		return ClauseKey{}, nil
	}

	switch len(lits) {
	case 0:
		allPremises := append(append([]ClauseKey(nil), premises...), droppedReasons...)
		if len(rawLits) == 1 {
			// The incoming clause was itself a single literal directly
			// contradicting an already-fixed value: give it an identity
			// of its own so it can still appear in the unsat core,
			// alongside whatever clause fixed the opposing value.
			allPremises = append(allPremises, unitKey(rawLits[0], original))
		}
		return c.recordEmptyClause(original, allPremises), nil

	case 1:
		if int32(c.decisionLevel()) > c.lowestLevel {
			return ClauseKey{}, errAddAfterDecision
		}
		lit := lits[0]
		key := unitKey(lit, original)
		switch c.val.value(lit) {
		case LFalse:
			if original && c.cells.reason[lit.Atom()].Kind == SourceAssumption {
				return ClauseKey{}, errClauseFalsifiedByAssumptions
			}
			allPremises := append(append(append([]ClauseKey(nil), premises...), droppedReasons...), key)
			if r := c.cells.reason[lit.Atom()]; r.hasClause() {
				allPremises = append(allPremises, r.Clause)
			}
			return c.recordEmptyClause(original, allPremises), nil
		case LUnset:
			c.enqueue(lit, Source{Kind: unitSourceFor(original), Clause: key}, c.lowestLevel, false)
		}
		c.units[lit.Atom()] = unitSlot{present: true, lit: lit, original: original, premises: premises}
		c.emitAddition(key, []Literal{lit}, premises)
		return key, nil

	default:
		nonFalse, firstNonFalse, maxLevelFalse := c.classifyForWatch(lits)
		if nonFalse == 0 && original && int32(c.decisionLevel()) > c.lowestLevel {
			// Every literal is false only because of decisions made during
			// the current search, not because of a pushed assumption:
			// undo those decisions and reclassify against the backjumped
			// valuation instead of reporting a conflict scoped to the
			// assumption set.
			c.backjump(c.lowestLevel)
			nonFalse, firstNonFalse, maxLevelFalse = c.classifyForWatch(lits)
		}
		var w0, w1 int
		asserting := false
		switch {
		case nonFalse >= 2:
			w0, w1 = firstNonFalse, otherNonFalseIndex(lits, c, firstNonFalse)
		case nonFalse == 1:
			w0 = firstNonFalse
			w1 = maxLevelFalse
			asserting = c.val.value(lits[w0]) == LUnset
		default: // nonFalse == 0: every literal is false under the assumption set itself
			if original {
				return ClauseKey{}, errClauseFalsifiedByAssumptions
			}
			return c.recordEmptyClause(original, append(append([]ClauseKey(nil), premises...), droppedReasons...)), nil
		}
		lits[0], lits[w0] = lits[w0], lits[0]
		if w1 == 0 {
			w1 = w0
		}
		lits[1], lits[w1] = lits[w1], lits[1]

		var lbd uint8
		if !original {
			lbd = c.computeLBD(lits)
		}

		var key ClauseKey
		if len(lits) == 2 {
			key = c.storeBinary(lits, original, premises, lbd)
		} else {
			var err error
			key, err = c.storeLong(lits, original, premises, lbd)
			if err != nil {
				return ClauseKey{}, err
			}
		}
		c.emitAddition(key, append([]Literal(nil), lits...), premises)

		if asserting {
			level := c.cells.level[lits[1].Atom()]
			c.enqueue(lits[0], propagationSource(key), level, true)
		}
		return key, nil
	}
}

// otherNonFalseIndex finds a second non-false literal distinct from skip.
func otherNonFalseIndex(lits []Literal, c *Context, skip int) int {
	for i, l := range lits {
		if i != skip && c.val.value(l) != LFalse {
			return i
		}
	}
	return skip
}

func (c *Context) storeBinary(lits []Literal, original bool, premises []ClauseKey, lbd uint8) ClauseKey {
	index := int32(len(c.binaries))
	c.binaries = append(c.binaries, binaryClause{
		lits:     [2]Literal{lits[0], lits[1]},
		active:   true,
		original: original,
		premises: premises,
		lbd:      lbd,
	})
	key := binaryKey(index, original)
	c.watch.watchBinary(lits[0].Opposite(), lits[1], key)
	c.watch.watchBinary(lits[1].Opposite(), lits[0], key)
	return key
}

// storeLong stores a long clause, reusing a tombstoned slot with a bumped
// generation token if one is free. retoken reports errSlotExhausted if that
// slot's generation counter has wrapped; such a slot is permanently retired
// rather than reused with a colliding token.
func (c *Context) storeLong(lits []Literal, original bool, premises []ClauseKey, lbd uint8) (ClauseKey, error) {
	body := append([]Literal(nil), lits...)
	cl := longClause{
		literals: body,
		watchB:   2,
		active:   true,
		original: original,
		premises: premises,
		lbd:      lbd,
	}

	var key ClauseKey
	if n := len(c.freeLongSlots); n > 0 {
		index := c.freeLongSlots[n-1]
		c.freeLongSlots = c.freeLongSlots[:n-1]
		retoked, err := longKey(index, c.longs[index].gen, false).retoken()
		if err != nil {
			return ClauseKey{}, err
		}
		cl.gen = retoked.gen
		c.longs[index] = cl
		key = longKey(index, retoked.gen, original)
	} else {
		index := int32(len(c.longs))
		c.longs = append(c.longs, cl)
		key = longKey(index, 0, original)
	}

	c.watch.watchLong(lits[0].Opposite(), key, lits[1])
	c.watch.watchLong(lits[1].Opposite(), key, lits[0])
	return key, nil
}

// GetBinary returns the binary clause for key, or ok=false if key does not
// resolve (wrong class or the slot is stale -- though binary slots are
// never reused since binary keys carry no generation token).
func (c *Context) GetBinary(key ClauseKey) (*binaryClause, bool) {
	if !key.IsBinary() || int(key.index) >= len(c.binaries) {
		return nil, false
	}
	cl := &c.binaries[key.index]
	if !cl.active {
		return nil, false
	}
	return cl, true
}

// GetLong returns the long clause for key, or ok=false if key does not
// resolve -- in particular if key's generation token is stale.
func (c *Context) GetLong(key ClauseKey) (*longClause, bool) {
	if !key.IsLong() || int(key.index) >= len(c.longs) {
		return nil, false
	}
	cl := &c.longs[key.index]
	if !cl.active || cl.gen != key.gen {
		return nil, false
	}
	return cl, true
}

// ClauseLiterals returns the literals of the clause referenced by key, for
// proof output and core extraction.
func (c *Context) ClauseLiterals(key ClauseKey) ([]Literal, bool) {
	switch {
	case key.IsUnit():
		if key.lit == noLiteral {
			return nil, true
		}
		slot := c.units[key.lit.Atom()]
		if !slot.present || slot.lit != key.lit || slot.original != key.original {
			return nil, false
		}
		return []Literal{slot.lit}, true
	case key.IsBinary():
		cl, ok := c.GetBinary(key)
		if !ok {
			return nil, false
		}
		return []Literal{cl.lits[0], cl.lits[1]}, true
	default:
		cl, ok := c.GetLong(key)
		if !ok {
			return nil, false
		}
		return cl.literalsCopy(), true
	}
}

// Premises returns the premise set recorded for an addition clause.
func (c *Context) Premises(key ClauseKey) []ClauseKey {
	switch {
	case key.IsUnit():
		if key.lit == noLiteral {
			return c.emptyPremises
		}
		slot := c.units[key.lit.Atom()]
		if !slot.present || slot.lit != key.lit || slot.original != key.original {
			return nil
		}
		return slot.premises
	case key.IsBinary():
		cl, ok := c.GetBinary(key)
		if !ok {
			return nil
		}
		return cl.premises
	case key.IsLong():
		cl, ok := c.GetLong(key)
		if !ok {
			return nil
		}
		return cl.premises
	default:
		return nil
	}
}

// removeLong deactivates and unwatches an addition-long clause, returning
// its slot to the free list for reuse with a bumped generation token.
func (c *Context) removeLong(key ClauseKey) {
	cl, ok := c.GetLong(key)
	if !ok {
		return
	}
	c.watch.unwatchLong(cl.literals[0].Opposite(), key)
	c.watch.unwatchLong(cl.literals[1].Opposite(), key)
	c.emitDeletion(key, cl.literalsCopy())
	cl.active = false
	cl.literals = nil
	c.freeLongSlots = append(c.freeLongSlots, key.index)
}

// isLocked reports whether a clause is the reason for the current value of
// its asserted literal -- such a clause must not be removed by reduce(),
// since doing so would invalidate the trail.
func (c *Context) isLocked(key ClauseKey, firstLit Literal) bool {
	a := firstLit.Atom()
	if c.val.atomValue(a) == LUnset {
		return false
	}
	r := c.cells.reason[a]
	return r.Kind == SourcePropagation && r.Clause == key
}

// BumpClauseActivity increases an addition long clause's activity,
// rescaling all addition-long activities if any exceeds the threshold.
// Binary and unit keys are ignored.
func (c *Context) BumpClauseActivity(key ClauseKey) {
	switch {
	case key.IsLong():
		cl, ok := c.GetLong(key)
		if !ok || cl.original {
			return
		}
		cl.activity += c.clauseInc
		if cl.activity > 1e100 {
			c.clauseInc *= 1e-100
			for i := range c.longs {
				if !c.longs[i].original {
					c.longs[i].activity *= 1e-100
				}
			}
		}
	}
}

func (c *Context) decayClauseActivity() {
	c.clauseInc *= c.config.ClauseDecay
}

// transferToBinary reclassifies a long clause that self-subsumption has
// reduced to two literals into the binary class, deactivating the long
// entry.
func (c *Context) transferToBinary(key ClauseKey) (ClauseKey, error) {
	cl, ok := c.GetLong(key)
	if !ok {
		return ClauseKey{}, errMissingClause
	}
	if len(cl.literals) != 2 {
		return ClauseKey{}, errMissingClause
	}
	newKey := c.storeBinary(cl.literals, cl.original, cl.premises, cl.lbd)
	c.emitAddition(newKey, []Literal{cl.literals[0], cl.literals[1]}, cl.premises)
	c.removeLong(key)
	return newKey, nil
}
