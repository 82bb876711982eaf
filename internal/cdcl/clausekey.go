package cdcl

// clauseClass discriminates the three clause storage layouts. Original vs.
// addition and, for long clauses, a generation token are carried separately
// on ClauseKey rather than as further clauseClass values.
type clauseClass uint8

const (
	classUnit clauseClass = iota
	classBinary
	classLong
)

// ClauseKey is a tagged reference to a clause in the database. Unit keys are
// value-keyed by the literal itself; binary and long keys are index-keyed
// within their class, and addition-long keys additionally carry a
// generation token so that a stale reference (one produced before the slot
// was reused) fails lookup rather than silently resolving to the wrong
// clause.
type ClauseKey struct {
	class    clauseClass
	original bool
	lit      Literal // valid only for class == classUnit
	index    int32   // valid for class != classUnit
	gen      uint16  // valid for addition-long keys only
}

// unitKey builds the key for a unit clause asserting lit.
func unitKey(lit Literal, original bool) ClauseKey {
	return ClauseKey{class: classUnit, original: original, lit: lit}
}

// binaryKey builds the key for the binary clause at the given slab index.
func binaryKey(index int32, original bool) ClauseKey {
	return ClauseKey{class: classBinary, original: original, index: index}
}

// longKey builds the key for the long clause at the given slab index and
// generation.
func longKey(index int32, gen uint16, original bool) ClauseKey {
	return ClauseKey{class: classLong, original: original, index: index, gen: gen}
}

// IsUnit, IsBinary, IsLong classify the key.
func (k ClauseKey) IsUnit() bool   { return k.class == classUnit }
func (k ClauseKey) IsBinary() bool { return k.class == classBinary }
func (k ClauseKey) IsLong() bool   { return k.class == classLong }

// IsOriginal reports whether the key refers to an original (input) clause
// rather than an addition (learned or resolution-derived) clause.
func (k ClauseKey) IsOriginal() bool { return k.original }

// isEmpty reports whether k is the empty-clause sentinel: a unit key over
// the reserved atom-0 literal. Such a key is always
// derived, never a leaf in the premise graph, regardless of the original
// flag it happens to carry (which only reflects what was being added when
// the empty clause was produced, for diagnostic purposes).
func (k ClauseKey) isEmpty() bool { return k.class == classUnit && k.lit == noLiteral }

// UnitLiteral returns the literal a unit key asserts; valid only when
// IsUnit is true. Exposed for external transcribers (internal/proof) that
// need a stable, collision-free identifier per key.
func (k ClauseKey) UnitLiteral() Literal { return k.lit }

// Index returns the slab index of a binary or long key; valid only when
// IsBinary or IsLong is true.
func (k ClauseKey) Index() int32 { return k.index }

// retoken returns the key with its generation token incremented, for reuse
// of a tombstoned addition-long slot. Only valid for addition-long keys.
func (k ClauseKey) retoken() (ClauseKey, error) {
	if k.class != classLong || k.original {
		return ClauseKey{}, errInvalidKeyRetoken
	}
	if k.gen == ^uint16(0) {
		return ClauseKey{}, errSlotExhausted
	}
	k.gen++
	return k, nil
}

func (k ClauseKey) String() string {
	tag := "Addition"
	if k.original {
		tag = "Original"
	}
	switch k.class {
	case classUnit:
		return "Unit(" + k.lit.String() + ")"
	case classBinary:
		return tag + "Binary(" + itoa(int(k.index)) + ")"
	default:
		return tag + "Long(" + itoa(int(k.index)) + "," + itoa(int(k.gen)) + ")"
	}
}

func itoa(i int) string {
	// Small, allocation-light integer formatting used only for
	// human-readable key names (ClauseKey.String).
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [12]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		p--
		buf[p] = '-'
	}
	return string(buf[p:])
}
