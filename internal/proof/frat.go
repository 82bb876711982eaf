// Package proof transcribes a cdcl.Event stream into the FRAT proof format
// (a/d/f/l step lines), wired directly onto the cdcl.Dispatcher event
// mechanism.
package proof

import (
	"bufio"
	"io"
	"strconv"

	"github.com/otterlite/cdclsat/internal/cdcl"
)

// Transcriber is a cdcl.Dispatcher that writes FRAT steps to an underlying
// writer as events arrive. Steps are buffered line-by-line and flushed on
// every Dispatch call rather than deferring to an explicit flush call,
// since the Dispatcher has no natural "end of solve" hook of its own
// beyond the Finalize events.
type Transcriber struct {
	w *bufio.Writer

	// pendingPremises holds the premise set noted by the most recent
	// EventPremise, to be attached to the very next EventAddition: sized 1
	// since the core never emits Premise events that don't immediately
	// precede an Addition.
	pendingPremises []cdcl.ClauseKey
	havePremises    bool
}

// NewTranscriber returns a Transcriber writing to w. The caller owns w;
// every Dispatch flushes, and the Transcriber never closes w.
func NewTranscriber(w io.Writer) *Transcriber {
	return &Transcriber{w: bufio.NewWriter(w)}
}

// Dispatch implements cdcl.Dispatcher.
func (t *Transcriber) Dispatch(e cdcl.Event) {
	switch e.Kind {
	case cdcl.EventPremise:
		t.pendingPremises = append(t.pendingPremises[:0], e.Premises...)
		t.havePremises = true
	case cdcl.EventAddition:
		t.writeClauseStep('a', e.Key, e.Literals)
	case cdcl.EventDeletion:
		t.writeStep('d', e.Key, e.Literals, nil)
	case cdcl.EventUnsat:
		// FRAT requires the empty clause, conventionally identified "1"
		// since every other id begins with '0'.
		t.w.WriteString("a 1 0\n")
		t.w.WriteString("f 1 0\n")
	case cdcl.EventFinalize:
		t.writeStep('f', e.Key, e.Literals, nil)
	}
	t.w.Flush()
}

func (t *Transcriber) writeClauseStep(kind byte, key cdcl.ClauseKey, lits []cdcl.Literal) {
	var premises []cdcl.ClauseKey
	if t.havePremises {
		premises = t.pendingPremises
		t.havePremises = false
	}
	t.writeStep(kind, key, lits, premises)
}

func (t *Transcriber) writeStep(kind byte, key cdcl.ClauseKey, lits []cdcl.Literal, premises []cdcl.ClauseKey) {
	t.w.WriteByte(kind)
	t.w.WriteByte(' ')
	writeKeyID(t.w, key)
	t.w.WriteByte(' ')
	for _, l := range lits {
		t.w.WriteString(strconv.Itoa(l.Signed()))
		t.w.WriteByte(' ')
	}
	t.w.WriteByte('0')
	if len(premises) > 0 {
		t.w.WriteString(" l ")
		for _, p := range premises {
			writeKeyID(t.w, p)
			t.w.WriteByte(' ')
		}
		t.w.WriteByte('0')
	}
	t.w.WriteByte('\n')
}

// writeKeyID writes a prefix-disambiguated identifier for key: every kind
// of key has its own numeral prefix, so keys of different kinds never
// collide even though their underlying indices overlap. Long keys are
// identified by slot index only, without their generation token, so a
// reused addition-long slot gets the same identifier as the clause deleted
// from it before.
func writeKeyID(w *bufio.Writer, key cdcl.ClauseKey) {
	switch {
	case key.IsUnit():
		lit := key.UnitLiteral()
		if key.IsOriginal() {
			if lit.IsPositive() {
				w.WriteString("0110")
			} else {
				w.WriteString("0100")
			}
		} else {
			if lit.IsPositive() {
				w.WriteString("0210")
			} else {
				w.WriteString("0200")
			}
		}
		w.WriteString(strconv.Itoa(int(lit.Atom())))
	case key.IsBinary():
		if key.IsOriginal() {
			w.WriteString("0300")
		} else {
			w.WriteString("0400")
		}
		w.WriteString(strconv.Itoa(int(key.Index())))
	default: // long
		if key.IsOriginal() {
			w.WriteString("0500")
		} else {
			w.WriteString("0600")
		}
		w.WriteString(strconv.Itoa(int(key.Index())))
	}
}
