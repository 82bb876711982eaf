package cdcl

import (
	"math/rand"
	"time"
)

// Status is the verdict of a solve.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusSatisfiable
	StatusUnsatisfiable
)

func (s Status) String() string {
	switch s {
	case StatusSatisfiable:
		return "SATISFIABLE"
	case StatusUnsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Context is the CDCL engine: the clause database, trail, watch lists,
// heuristic state, and scheduler, wired together in a single struct. The
// context owns exclusively every structure it touches: atoms and clauses
// are referenced only by Atom/ClauseKey, and the random source is owned
// here rather than global.
type Context struct {
	config Options

	val    *valuation
	cells  *atomCells
	trail  *trail
	queue  *consequenceQueue
	watch  *watchLists
	heur   *heuristic

	binaries      []binaryClause
	longs         []longClause
	freeLongSlots []int32
	units         []unitSlot

	clauseInc float64

	dispatcher Dispatcher

	rng *rand.Rand

	// Assumptions currently pushed for the in-progress/most recent solve.
	assumptions      []Literal
	failedAssumption map[Literal]bool
	lowestLevel      int32 // floor below which backjump never goes while assumptions are active

	status       Status
	unsatWitness ClauseKey
	hasWitness   bool
	preprocessed bool

	// permanentlyUnsat is set once the empty clause is actually derived:
	// unsatisfiability independent of any assumption set, as opposed to a
	// conflict that only arises because of the literals currently pushed as
	// assumptions, which Solve must be able to move past on the next call
	// with a different or empty assumption set.
	permanentlyUnsat bool

	// emptyPremises holds the premises of the empty clause, once derived:
	// the empty clause has no unitSlot/binaryClause/longClause storage of
	// its own (it is never watched or propagated), so its premises need a
	// dedicated home for core extraction to reach them.
	emptyPremises []ClauseKey

	// Resource limits.
	startTime time.Time

	// Search statistics.
	TotalConflicts int64
	TotalDecisions int64
	TotalRestarts  int64

	// Scheduler state.
	conflictsSinceRestart int64
	lubyIndex             int
	reduceThreshold       int64

	// Conflict-analysis state: seenAtVar/seenStamp mark the atoms visited by
	// the current analysis. tmpLearnt and tmpPremises are not used; analyze
	// allocates its own slices.
	tmpLearnt   []Literal
	tmpPremises []ClauseKey
	seenAtVar   []uint32
	seenStamp   uint32
}

// NewDefaultContext returns a Context configured with DefaultOptions.
func NewDefaultContext() *Context {
	return NewContext(DefaultOptions)
}

// NewContext returns a new, empty Context (no atoms, no clauses).
func NewContext(opts Options) *Context {
	c := &Context{
		config:           opts,
		val:              newValuation(),
		cells:            newAtomCells(),
		trail:            newTrail(),
		queue:            newConsequenceQueue(128),
		watch:            newWatchLists(),
		clauseInc:        1,
		rng:              rand.New(rand.NewSource(1)),
		failedAssumption: map[Literal]bool{},
		status:           StatusUnknown,
		reduceThreshold:  int64(opts.Scheduler.InitialReductionThreshold),
	}
	c.heur = newHeuristic(opts.VariableDecay)

	// Reserve slot/literal-pair 0 for the sentinel atom noAtom, so that real
	// atoms (numbered from 1) never collide with it in any array indexed
	// directly by Atom or by Literal.
	c.val.grow()
	c.cells.grow()
	c.watch.grow()
	c.units = append(c.units, unitSlot{})
	c.heur.reserveAtomZero()
	c.seenAtVar = append(c.seenAtVar, 0)

	return c
}

// SetDispatcher installs the proof/core event callback. Must be called
// before Solve; the core never re-enters itself from within a callback.
func (c *Context) SetDispatcher(d Dispatcher) {
	c.dispatcher = d
}

// NumAtoms returns the number of atoms declared so far.
func (c *Context) NumAtoms() int { return c.numRealAtoms() }

// numRealAtoms excludes the reserved slot for the sentinel atom noAtom.
func (c *Context) numRealAtoms() int { return c.cells.numAtoms() - 1 }

// NumAssigned returns the number of atoms currently assigned.
func (c *Context) NumAssigned() int { return c.trail.len() }

// NumLearnts returns the number of active addition (learned) binary and
// long clauses, excluding unit clauses which are tracked separately.
func (c *Context) NumLearnts() int {
	n := 0
	for _, b := range c.binaries {
		if b.active && !b.original {
			n++
		}
	}
	for _, l := range c.longs {
		if l.active && !l.original {
			n++
		}
	}
	return n
}

// NewAtom grows the context by one fresh atom and returns it. Atoms are
// created monotonically and never freed. Atom
// numbering starts at 1: cells.numAtoms() already counts the reserved
// slot for noAtom (0), so it equals the next real atom's number.
func (c *Context) NewAtom() Atom {
	a := Atom(c.cells.numAtoms())
	c.cells.grow()
	c.val.grow()
	c.watch.grow()
	c.units = append(c.units, unitSlot{})
	c.heur.addAtom(a)
	c.seenAtVar = append(c.seenAtVar, 0)
	return a
}

// decisionLevel returns the current decision level.
func (c *Context) decisionLevel() int {
	return c.trail.currentLevel()
}

func (c *Context) shouldStop() bool {
	if c.config.MaxConflicts >= 0 && c.TotalConflicts >= c.config.MaxConflicts {
		return true
	}
	if c.config.Timeout >= 0 && time.Since(c.startTime) >= c.config.Timeout {
		return true
	}
	if c.config.Terminate != nil && c.config.Terminate() {
		return true
	}
	return false
}

// value returns the current value of literal l.
func (c *Context) value(l Literal) LBool {
	return c.val.value(l)
}

// enqueue is the single entry point for extending the valuation. front
// selects PushFront vs PushBack.
func (c *Context) enqueue(l Literal, source Source, level int32, front bool) bool {
	switch c.val.value(l) {
	case LFalse:
		return false // conflict: no state change
	case LTrue:
		return true // already implied: skip
	default:
		c.val.set(l)
		a := l.Atom()
		c.cells.level[a] = level
		c.cells.reason[a] = source
		c.trail.push(l, source, level)
		if front {
			c.queue.PushFront(queueEntry{lit: l, level: level})
		} else {
			c.queue.PushBack(queueEntry{lit: l, level: level})
		}
		return true
	}
}
