package dimacs

import (
	"strings"
	"testing"

	"github.com/otterlite/cdclsat/internal/cdcl"
)

func TestLoad_cnf(t *testing.T) {
	src := `c a tiny instance
p cnf 3 2
1 -2 0
2 3 0
`
	ctx := cdcl.NewDefaultContext()
	n, err := Load(strings.NewReader(src), ctx, false)
	if err != nil {
		t.Fatalf("Load(): want no error, got %s", err)
	}
	if n != 3 {
		t.Errorf("Load(): got %d atoms, want 3", n)
	}
	if ctx.NumAtoms() != 3 {
		t.Errorf("NumAtoms() = %d, want 3", ctx.NumAtoms())
	}
	if got := ctx.Solve(nil); got != cdcl.StatusSatisfiable {
		t.Errorf("Solve() = %s, want SATISFIABLE", got)
	}
}

func TestLoad_noHeader(t *testing.T) {
	src := "1 2 0\n-1 3 0\n"
	ctx := cdcl.NewDefaultContext()
	n, err := Load(strings.NewReader(src), ctx, false)
	if err != nil {
		t.Fatalf("Load(): want no error, got %s", err)
	}
	if n != 3 {
		t.Errorf("Load(): got %d atoms, want 3", n)
	}
}

func TestLoad_requireHeaderMissing(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	_, err := Load(strings.NewReader("1 2 0\n"), ctx, true)
	if err == nil {
		t.Fatalf("Load(): want error, got none")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Load(): want *ParseError, got %T", err)
	}
	if pe.Line != 1 {
		t.Errorf("ParseError.Line = %d, want 1", pe.Line)
	}
}

func TestLoad_missingTerminator(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	_, err := Load(strings.NewReader("p cnf 2 1\n1 2"), ctx, false)
	if err == nil {
		t.Fatalf("Load(): want error, got none")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("Load(): want *ParseError, got %T", err)
	}
}

func TestLoad_malformedLiteral(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	_, err := Load(strings.NewReader("p cnf 2 1\n1 x 0\n"), ctx, false)
	if err == nil {
		t.Fatalf("Load(): want error, got none")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Load(): want *ParseError, got %T", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
}

func TestLoad_literalExceedsBound(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	_, err := Load(strings.NewReader("p cnf 2 1\n1 3 0\n"), ctx, false)
	if err == nil {
		t.Fatalf("Load(): want error, got none")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("Load(): want *ParseError, got %T", err)
	}
}

func TestLoad_emptyLiteral(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	_, err := Load(strings.NewReader("p cnf 2 1\n1 -0 0\n"), ctx, false)
	if err == nil {
		t.Fatalf("Load(): want error, got none")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("Load(): want *ParseError, got %T", err)
	}
}

func TestLoad_malformedProblemLine(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	_, err := Load(strings.NewReader("p cnf\n1 2 0\n"), ctx, false)
	if err == nil {
		t.Fatalf("Load(): want error, got none")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("Load(): want *ParseError, got %T", err)
	}
}

func TestLoad_emptyStreamOK(t *testing.T) {
	ctx := cdcl.NewDefaultContext()
	n, err := Load(strings.NewReader(""), ctx, false)
	if err != nil {
		t.Fatalf("Load(): want no error, got %s", err)
	}
	if n != 0 {
		t.Errorf("Load(): got %d atoms, want 0", n)
	}
}

func TestLoad_trailingPercentEndsStream(t *testing.T) {
	src := "p cnf 2 1\n1 2 0\n%\nthis is trailer junk\n"
	ctx := cdcl.NewDefaultContext()
	_, err := Load(strings.NewReader(src), ctx, false)
	if err != nil {
		t.Fatalf("Load(): want no error, got %s", err)
	}
}

func TestLoad_noFile(t *testing.T) {
	_, err := LoadDIMACS("", false, cdcl.NewDefaultContext())
	if err == nil {
		t.Fatalf("LoadDIMACS(): want error, got none")
	}
}
