package cdcl

import "github.com/rhartert/yagh"

// heuristic implements the EVSIDS decision heuristic: a max-activity heap
// over unassigned atoms plus phase saving. The heap library,
// github.com/rhartert/yagh, gives a min-heap keyed by negated activity,
// which doubles as a max-heap over activity.
type heuristic struct {
	order *yagh.IntMap[float64]

	activity   []float64
	activityInc float64
	decay       float64

	phase []LBool
}

func newHeuristic(decay float64) *heuristic {
	return &heuristic{
		order:       yagh.New[float64](0),
		activityInc: 1,
		decay:       decay,
	}
}

// reserveAtomZero grows the backing arrays by one slot for the reserved
// sentinel atom 0, without registering it in the decision heap: atom 0 must
// never be popped as a decision candidate.
func (h *heuristic) reserveAtomZero() {
	h.activity = append(h.activity, 0)
	h.phase = append(h.phase, LUnset)
	h.order.GrowBy(1)
}

// addAtom registers a new atom with the heap and an initial saved phase.
func (h *heuristic) addAtom(a Atom) {
	h.activity = append(h.activity, 0)
	h.phase = append(h.phase, LUnset)
	h.order.GrowBy(1)
	h.order.Put(int(a), -h.activity[a])
}

// reinsert returns atom a to the pool of decision candidates, recording its
// last value for phase saving.
func (h *heuristic) reinsert(a Atom, val LBool, phaseSaving bool) {
	if phaseSaving {
		h.phase[a] = val
	}
	h.order.Put(int(a), -h.activity[a])
}

// bump increases atom a's activity, rescaling all activities if any exceeds
// the threshold.
func (h *heuristic) bump(a Atom) {
	h.activity[a] += h.activityInc
	if h.order.Contains(int(a)) {
		h.order.Put(int(a), -h.activity[a])
	}
	if h.activity[a] > 1e100 {
		h.rescale()
	}
}

func (h *heuristic) rescale() {
	h.activityInc *= 1e-100
	for a := range h.activity {
		h.activity[a] *= 1e-100
		if h.order.Contains(a) {
			h.order.Put(a, -h.activity[a])
		}
	}
}

// decayActivity shrinks future bumps' relative weight by growing the increment,
// which is algebraically equivalent to decaying every activity.
func (h *heuristic) decayActivity() {
	h.activityInc /= h.decay
	if h.activityInc > 1e100 {
		h.rescale()
	}
}

// popMostActive pops the most active atom from the heap without checking
// whether it is still unassigned; callers must skip already-assigned atoms
// and, if the heap empties while candidates remain, fall back to a linear
// scan.
func (h *heuristic) popMostActive() (Atom, bool) {
	next, ok := h.order.Pop()
	if !ok {
		return 0, false
	}
	return Atom(next.Elem), true
}
