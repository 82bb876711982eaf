package proof

import (
	"strings"
	"testing"

	"github.com/otterlite/cdclsat/internal/cdcl"
)

func TestTranscriber_unsatSmallInstance(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	a := ctx.NewAtom()
	var buf strings.Builder
	ctx.SetDispatcher(NewTranscriber(&buf))

	ctx.AddClause([]cdcl.Literal{cdcl.PositiveLiteral(a)})
	ctx.AddClause([]cdcl.Literal{cdcl.NegativeLiteral(a)})

	if got := ctx.Status(); got != cdcl.StatusUnsatisfiable {
		t.Fatalf("Status() = %s, want UNSATISFIABLE", got)
	}

	out := buf.String()
	if !strings.Contains(out, "a 1 0\n") || !strings.Contains(out, "f 1 0\n") {
		t.Errorf("transcript missing empty-clause steps:\n%s", out)
	}
}

func TestTranscriber_additionAndFinalize(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	a := ctx.NewAtom()
	b := ctx.NewAtom()
	var buf strings.Builder
	ctx.SetDispatcher(NewTranscriber(&buf))

	ctx.AddClause([]cdcl.Literal{cdcl.PositiveLiteral(a), cdcl.PositiveLiteral(b)})
	ctx.AddClause([]cdcl.Literal{cdcl.NegativeLiteral(a), cdcl.PositiveLiteral(b)})

	if got := ctx.Solve(nil); got != cdcl.StatusSatisfiable {
		t.Fatalf("Solve() = %s, want SATISFIABLE", got)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "a 0300") && !strings.Contains(out, "\na 0300") {
		t.Errorf("transcript missing original-binary addition step:\n%s", out)
	}
	if !strings.Contains(out, "f 0300") {
		t.Errorf("transcript missing finalize step for the original binary clause:\n%s", out)
	}
}
