// Package parsers loads DIMACS CNF input into a cdcl.Context, wrapping the
// external github.com/rhartert/dimacs reader behind a cdcl.Context-backed
// builder.
package parsers

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/otterlite/cdclsat/internal/cdcl"
)

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file at filename and adds its atoms and
// clauses to ctx as original clauses.
func LoadDIMACS(filename string, gzipped bool, ctx *cdcl.Context) error {
	r, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &builder{ctx: ctx}
	return dimacs.ReadBuilder(r, b)
}

// builder adapts a cdcl.Context to the dimacs.Builder interface. It relies
// on cdcl.NewAtom's numbering starting at 1 and advancing monotonically, the
// same order DIMACS variable numbers already come in, so no separate
// variable-to-atom table is needed.
type builder struct {
	ctx    *cdcl.Context
	nAtoms int
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instance of type %q is not supported", problem)
	}
	for i := 0; i < nVars; i++ {
		b.ctx.NewAtom()
	}
	b.nAtoms = nVars
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]cdcl.Literal, len(tmpClause))
	for i, l := range tmpClause {
		b.growTo(abs(l))
		clause[i] = cdcl.LiteralFromSigned(l)
	}
	_, err := b.ctx.AddClause(clause)
	return err
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

// growTo declares fresh atoms up through v if the header's declared
// variable count undercounted (some generated instances do this).
func (b *builder) growTo(v int) {
	for b.nAtoms < v {
		b.ctx.NewAtom()
		b.nAtoms++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ReadAssumptions parses a single line of signed DIMACS integers (as found
// in a SAT-competition "assumption file") into literals over atoms numbered
// the same way LoadDIMACS numbered them (DIMACS variable n is always atom n).
func ReadAssumptions(filename string) ([]cdcl.Literal, error) {
	r, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &assumptionBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return b.lits, nil
}

type assumptionBuilder struct {
	lits []cdcl.Literal
}

func (b *assumptionBuilder) Problem(string, int, int) error {
	return fmt.Errorf("assumption files should not have a problem line")
}

func (b *assumptionBuilder) Comment(_ string) error { return nil }

func (b *assumptionBuilder) Clause(tmpClause []int) error {
	for _, l := range tmpClause {
		b.lits = append(b.lits, cdcl.LiteralFromSigned(l))
	}
	return nil
}
