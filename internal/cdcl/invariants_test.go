package cdcl

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// These exercise structural invariants and a handful of boundary behaviors
// not covered by the concrete scenarios in scenarios_test.go: properties
// that should hold for any instance rather than one named worked example.

// satisfiedBy reports whether clause has at least one literal true under
// model (model is indexed per Context.Model's atom-minus-one convention).
func satisfiedBy(clause []Literal, model []bool) bool {
	for _, l := range clause {
		v := model[l.Atom()-1]
		if !l.IsPositive() {
			v = !v
		}
		if v {
			return true
		}
	}
	return false
}

func TestInvariant_ModelSatisfiesEveryClause(t *testing.T) {
	ctx := NewDefaultContext()
	a, b, c := ctx.NewAtom(), ctx.NewAtom(), ctx.NewAtom()
	clauses := [][]Literal{
		{PositiveLiteral(a), NegativeLiteral(b)},
		{NegativeLiteral(a), PositiveLiteral(c)},
		{PositiveLiteral(b), PositiveLiteral(c)},
		{NegativeLiteral(a), NegativeLiteral(b), NegativeLiteral(c)},
	}
	for _, cl := range clauses {
		if _, err := ctx.AddClause(cl); err != nil {
			t.Fatalf("AddClause(%v): %s", cl, err)
		}
	}

	if got := ctx.Solve(nil); got != StatusSatisfiable {
		t.Fatalf("Solve() = %s, want SATISFIABLE", got)
	}

	model := ctx.Model()
	var unsatisfied []int
	for i, cl := range clauses {
		if !satisfiedBy(cl, model) {
			unsatisfied = append(unsatisfied, i)
		}
	}
	if diff := cmp.Diff([]int(nil), unsatisfied); diff != "" {
		t.Errorf("clauses left unsatisfied by model %v (-want +got):\n%s", model, diff)
	}
}

func TestInvariant_TrailLevelsWithinCurrentLevelAfterBackjump(t *testing.T) {
	// A small instance that forces at least one conflict and backjump:
	// the pigeonhole-style exclusion of all 8 sign combinations over
	// {p,q,r} needs decisions before the first conflict fires.
	ctx := NewDefaultContext()
	p, q, r := ctx.NewAtom(), ctx.NewAtom(), ctx.NewAtom()
	lit := func(a Atom, positive bool) Literal {
		if positive {
			return PositiveLiteral(a)
		}
		return NegativeLiteral(a)
	}
	for pp := 0; pp < 2; pp++ {
		for qq := 0; qq < 2; qq++ {
			for rr := 0; rr < 2; rr++ {
				clause := []Literal{lit(p, pp == 0), lit(q, qq == 0), lit(r, rr == 0)}
				if _, err := ctx.AddClause(clause); err != nil {
					t.Fatalf("AddClause: %s", err)
				}
			}
		}
	}

	if got := ctx.Solve(nil); got != StatusUnsatisfiable {
		t.Fatalf("Solve() = %s, want UNSATISFIABLE", got)
	}

	// Levels recorded on the trail must never exceed the current decision
	// level: nothing left over the trail can claim a level higher than
	// where the search eventually settled, since a correct backjump
	// truncates every entry above its target level.
	finalLevel := int32(ctx.decisionLevel())
	for i := 0; i < ctx.trail.len(); i++ {
		if lvl := ctx.trail.at(i).level; lvl > finalLevel {
			t.Errorf("trail entry %d has level %d, exceeds current level %d", i, lvl, finalLevel)
		}
	}
}

func TestInvariant_EmptyFormulaIsSatisfiable(t *testing.T) {
	ctx := NewDefaultContext()
	ctx.NewAtom()
	ctx.NewAtom()

	if got := ctx.Solve(nil); got != StatusSatisfiable {
		t.Fatalf("Solve() = %s, want SATISFIABLE for a formula with no clauses", got)
	}
}

func TestInvariant_ComplementaryUnitsUnsatAtLoad(t *testing.T) {
	ctx := NewDefaultContext()
	p := ctx.NewAtom()
	if _, err := ctx.AddClause([]Literal{PositiveLiteral(p)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if _, err := ctx.AddClause([]Literal{NegativeLiteral(p)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if got := ctx.Status(); got != StatusUnsatisfiable {
		t.Fatalf("Status() = %s, want UNSATISFIABLE before Solve is ever called", got)
	}
	if got := ctx.Solve(nil); got != StatusUnsatisfiable {
		t.Fatalf("Solve() = %s, want UNSATISFIABLE to persist", got)
	}
}

func TestInvariant_TautologyDroppedAtIngest(t *testing.T) {
	ctx := NewDefaultContext()
	p, q := ctx.NewAtom(), ctx.NewAtom()
	// A real constraint that pins q false. The tautology also mentions q;
	// with it dropped, the solve must stay satisfiable, keep q false, and
	// need no learned clause.
	if _, err := ctx.AddClause([]Literal{NegativeLiteral(q)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if _, err := ctx.AddClause([]Literal{PositiveLiteral(p), NegativeLiteral(p), PositiveLiteral(q)}); err != nil {
		t.Fatalf("AddClause (tautology): %s", err)
	}

	if got := ctx.Solve(nil); got != StatusSatisfiable {
		t.Fatalf("Solve() = %s, want SATISFIABLE (the tautology adds no real constraint)", got)
	}
	if ctx.AtomValue(q) != LFalse {
		t.Errorf("AtomValue(q) = %s, want false: the tautology must not have forced q true", ctx.AtomValue(q))
	}
	if n := ctx.NumLearnts(); n != 0 {
		t.Errorf("NumLearnts() = %d, want 0 (no conflict should have been needed)", n)
	}
}

func TestInvariant_DuplicateLiteralsCollapsed(t *testing.T) {
	ctx := NewDefaultContext()
	p, q := ctx.NewAtom(), ctx.NewAtom()
	key, err := ctx.AddClause([]Literal{PositiveLiteral(p), PositiveLiteral(q), PositiveLiteral(p)})
	if err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	lits, ok := ctx.ClauseLiterals(key)
	if !ok {
		t.Fatalf("ClauseLiterals(%v) = not found, want the deduplicated clause", key)
	}

	signed := make([]int, len(lits))
	for i, l := range lits {
		signed[i] = l.Signed()
	}
	sort.Ints(signed)

	want := []int{1, 2}
	if diff := cmp.Diff(want, signed); diff != "" {
		t.Errorf("deduplicated clause literals mismatch (-want +got):\n%s", diff)
	}
}

func TestInvariant_UnsatCoreIsSubsetOfOriginalClauses(t *testing.T) {
	ctx := NewDefaultContext()
	p, q, r := ctx.NewAtom(), ctx.NewAtom(), ctx.NewAtom()
	clauses := [][]Literal{
		{PositiveLiteral(p), PositiveLiteral(q)},
		{NegativeLiteral(p), PositiveLiteral(r)},
		{NegativeLiteral(q), PositiveLiteral(r)},
		{NegativeLiteral(r)},
		{PositiveLiteral(p)},
	}
	keys := map[ClauseKey]bool{}
	for _, cl := range clauses {
		key, err := ctx.AddClause(cl)
		if err != nil {
			t.Fatalf("AddClause(%v): %s", cl, err)
		}
		keys[key] = true
	}

	if got := ctx.Solve(nil); got != StatusUnsatisfiable {
		t.Fatalf("Solve() = %s, want UNSATISFIABLE", got)
	}

	for _, k := range ctx.UnsatCore() {
		if !k.IsOriginal() {
			t.Errorf("UnsatCore() contains non-original key %v", k)
		}
		if !keys[k] {
			t.Errorf("UnsatCore() contains key %v that was never one of the added clauses", k)
		}
	}
}
