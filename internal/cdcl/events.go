package cdcl

// EventKind discriminates the proof/core event stream. Events are emitted
// synchronously, in logical order, from within the solve loop; a
// Dispatcher must not re-enter the Context.
type EventKind uint8

const (
	// EventAddition: an original or derived clause entered the database.
	EventAddition EventKind = iota
	// EventDeletion: a clause left the database (reduction or transfer).
	EventDeletion
	// EventPremise: the set of clauses consumed by resolution to produce
	// the addition that immediately follows.
	EventPremise
	// EventUnsat: the empty clause was derived.
	EventUnsat
	// EventFinalize: a clause is still active at the end of a solve.
	EventFinalize
)

// Event is a single entry in the proof/core event stream.
type Event struct {
	Kind     EventKind
	Key      ClauseKey
	Literals []Literal  // valid for Addition, Deletion, Finalize
	Premises []ClauseKey // valid for Premise
}

// Dispatcher receives the proof/core event stream. It is set once, before
// Solve, via Context.SetDispatcher. Implementations must treat Literals and
// Premises as borrowed for the duration of the call only: the Context may
// reuse the backing array on the very next event.
type Dispatcher interface {
	Dispatch(Event)
}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
type DispatcherFunc func(Event)

func (f DispatcherFunc) Dispatch(e Event) { f(e) }

func (c *Context) emit(e Event) {
	if c.dispatcher == nil {
		return
	}
	c.dispatcher.Dispatch(e)
}

func (c *Context) emitAddition(key ClauseKey, literals []Literal, premises []ClauseKey) {
	if c.dispatcher == nil {
		return
	}
	if premises != nil {
		c.emit(Event{Kind: EventPremise, Premises: premises})
	}
	c.emit(Event{Kind: EventAddition, Key: key, Literals: literals})
}

func (c *Context) emitDeletion(key ClauseKey, literals []Literal) {
	c.emit(Event{Kind: EventDeletion, Key: key, Literals: literals})
}

func (c *Context) emitUnsat(key ClauseKey) {
	c.emit(Event{Kind: EventUnsat, Key: key})
}

func (c *Context) emitFinalize(key ClauseKey, literals []Literal) {
	c.emit(Event{Kind: EventFinalize, Key: key, Literals: literals})
}
