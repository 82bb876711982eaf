package cdcl

// atomCells holds the per-atom records that persist for the lifetime of the
// atom: decision level and assignment source. Saved phase and activity are
// tracked by heuristic instead, since they are read only from the decision
// and bump paths that already hold an *heuristic. Values themselves live in
// valuation so that BCP can index by Literal directly; everything here is
// indexed by Atom.
type atomCells struct {
	level  []int32  // decision level at which the atom was assigned, -1 if unset
	reason []Source // why the atom has its current value
}

func newAtomCells() *atomCells {
	return &atomCells{}
}

func (c *atomCells) grow() {
	c.level = append(c.level, -1)
	c.reason = append(c.reason, Source{})
}

func (c *atomCells) numAtoms() int {
	return len(c.level)
}
