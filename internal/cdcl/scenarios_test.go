package cdcl

import "testing"

// Each test builds one concrete worked scenario directly in code, in a
// table-free "one function per case" style.

func TestScenario_singleLiteralSAT(t *testing.T) {
	ctx := NewDefaultContext()
	p := ctx.NewAtom()
	if _, err := ctx.AddClause([]Literal{PositiveLiteral(p)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}

	if got := ctx.Solve(nil); got != StatusSatisfiable {
		t.Fatalf("Solve() = %s, want SATISFIABLE", got)
	}
	if ctx.AtomValue(p) != LTrue {
		t.Errorf("AtomValue(p) = %s, want true", ctx.AtomValue(p))
	}
}

func TestScenario_minimalUNSAT(t *testing.T) {
	ctx := NewDefaultContext()
	p := ctx.NewAtom()
	if _, err := ctx.AddClause([]Literal{PositiveLiteral(p)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if _, err := ctx.AddClause([]Literal{NegativeLiteral(p)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}

	if got := ctx.Status(); got != StatusUnsatisfiable {
		t.Fatalf("Status() = %s, want UNSATISFIABLE (derived at load time)", got)
	}

	core := ctx.UnsatCore()
	if len(core) != 2 {
		t.Fatalf("UnsatCore() has %d entries, want 2: %v", len(core), core)
	}
}

func TestScenario_pigeonholeStyleSmallUNSAT(t *testing.T) {
	ctx := NewDefaultContext()
	p, q, r := ctx.NewAtom(), ctx.NewAtom(), ctx.NewAtom()

	lit := func(a Atom, positive bool) Literal {
		if positive {
			return PositiveLiteral(a)
		}
		return NegativeLiteral(a)
	}

	// Every one of the 8 possible sign combinations over {p,q,r} is
	// excluded, so no assignment can satisfy all eight clauses.
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
}

func TestScenario_chainPropagation(t *testing.T) {
	ctx := NewDefaultContext()
	p, q, r, s, tt := ctx.NewAtom(), ctx.NewAtom(), ctx.NewAtom(), ctx.NewAtom(), ctx.NewAtom()

	clauses := [][]Literal{
		{NegativeLiteral(p), PositiveLiteral(q)},
		{NegativeLiteral(q), PositiveLiteral(r)},
		{NegativeLiteral(r), PositiveLiteral(s)},
		{NegativeLiteral(s), PositiveLiteral(tt)},
		{PositiveLiteral(p)},
		{NegativeLiteral(tt)},
	}
	keys := make([]ClauseKey, 0, len(clauses))
	for _, c := range clauses {
		key, err := ctx.AddClause(c)
		if err != nil {
			t.Fatalf("AddClause: %s", err)
		}
		keys = append(keys, key)
	}

	status := ctx.Status()
	if status != StatusUnsatisfiable {
		status = ctx.Solve(nil)
	}
	if status != StatusUnsatisfiable {
		t.Fatalf("Solve() = %s, want UNSATISFIABLE", status)
	}

	core := ctx.UnsatCore()
	coreSet := map[ClauseKey]bool{}
	for _, k := range core {
		coreSet[k] = true
	}
	for i, k := range keys {
		if !coreSet[k] {
			t.Errorf("clause %d (%v) missing from unsat core %v", i, clauses[i], core)
		}
	}
}

func TestScenario_assumptionsSATAfterUNSATUnderAssumption(t *testing.T) {
	ctx := NewDefaultContext()
	p, q := ctx.NewAtom(), ctx.NewAtom()
	if _, err := ctx.AddClause([]Literal{PositiveLiteral(p), PositiveLiteral(q)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if _, err := ctx.AddClause([]Literal{NegativeLiteral(p), PositiveLiteral(q)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}

	notQ := NegativeLiteral(q)
	if got := ctx.Solve([]Literal{notQ}); got != StatusUnsatisfiable {
		t.Fatalf("Solve([¬q]) = %s, want UNSATISFIABLE", got)
	}
	failed := ctx.FailedAssumptions()
	if len(failed) != 1 || failed[0] != notQ {
		t.Errorf("FailedAssumptions() = %v, want [¬q]", failed)
	}

	if got := ctx.Solve(nil); got != StatusSatisfiable {
		t.Fatalf("Solve(nil) = %s, want SATISFIABLE", got)
	}
	if ctx.AtomValue(q) != LTrue {
		t.Errorf("AtomValue(q) = %s, want true", ctx.AtomValue(q))
	}
}

func TestScenario_enumerateAllModels(t *testing.T) {
	const n = 4
	ctx := NewDefaultContext()
	atoms := make([]Atom, n)
	for i := range atoms {
		atoms[i] = ctx.NewAtom()
	}

	count := 0
	for {
		status := ctx.Solve(nil)
		if status == StatusUnsatisfiable {
			break
		}
		if status != StatusSatisfiable {
			t.Fatalf("Solve() = %s, want SATISFIABLE or UNSATISFIABLE", status)
		}
		count++

		model := ctx.Model()
		blocking := make([]Literal, n)
		for i, v := range model {
			if v {
				blocking[i] = NegativeLiteral(atoms[i])
			} else {
				blocking[i] = PositiveLiteral(atoms[i])
			}
		}
		if _, err := ctx.AddClause(blocking); err != nil {
			t.Fatalf("AddClause(blocking): %s", err)
		}
		if count > 1<<n {
			t.Fatalf("more than 2^%d models found", n)
		}
	}

	if want := 1 << n; count != want {
		t.Errorf("enumerated %d models, want %d", count, want)
	}
}
