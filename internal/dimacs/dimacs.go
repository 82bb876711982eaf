// Package dimacs reads the DIMACS CNF input grammar directly into a
// cdcl.Context, reporting a line-numbered input-error taxonomy rather than
// generic, line-less errors.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/otterlite/cdclsat/internal/cdcl"
)

// ParseError is a line-numbered input error. A free-form message per kind
// lets one type cover the whole input-error taxonomy (bad line, malformed
// problem specification, missing delimiter, and so on).
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dimacs: line %d: %s", e.Line, e.Msg)
}

func newParseError(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

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

// LoadDIMACS opens filename and loads it into ctx via Load, requiring no
// problem header: a stream of numbers without a preceding problem line is
// accepted.
func LoadDIMACS(filename string, gzipped bool, ctx *cdcl.Context) (int, error) {
	r, err := reader(filename, gzipped)
	if err != nil {
		return 0, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()
	return Load(r, ctx, false)
}

// Load reads DIMACS CNF from r into ctx: comment lines ('c'), an optional
// single 'p cnf <atoms> <clauses>' header, then whitespace-delimited signed
// integers with '0' terminating each clause; an empty or '%'-prefixed line
// ends the stream early. If requireHeader
// is set, a body with no preceding 'p' line is a ParseError ("missing
// problem header when expected"); otherwise the header is optional and
// atoms are declared lazily as literals referencing them are seen. Returns
// the number of atoms declared.
func Load(r io.Reader, ctx *cdcl.Context, requireHeader bool) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	declaredAtoms := 0
	sawHeader := false
	nAtoms := 0
	lineNo := 0

	growTo := func(v int) {
		for nAtoms < v {
			ctx.NewAtom()
			nAtoms++
		}
	}

	var clauseBuf []cdcl.Literal
	clauseStartLine := 0
	sawBodyLine := false

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '%' {
			break
		}
		if trimmed[0] == 'c' {
			continue
		}
		if trimmed[0] == 'p' {
			if sawHeader {
				return 0, newParseError(lineNo, "duplicate problem line")
			}
			if sawBodyLine {
				return 0, newParseError(lineNo, "problem line after clause body")
			}
			fields := strings.Fields(trimmed)
			if len(fields) != 4 || fields[1] != "cnf" {
				return 0, newParseError(lineNo, "malformed problem line %q", line)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return 0, newParseError(lineNo, "malformed atom count: %s", err)
			}
			if _, err := strconv.Atoi(fields[3]); err != nil {
				return 0, newParseError(lineNo, "malformed clause count: %s", err)
			}
			declaredAtoms = n
			sawHeader = true
			growTo(n)
			continue
		}

		if requireHeader && !sawHeader {
			return 0, newParseError(lineNo, "missing problem header")
		}
		sawBodyLine = true

		fields := strings.Fields(trimmed)
		for _, f := range fields {
			if f == "-0" || f == "+0" {
				return 0, newParseError(lineNo, "empty literal %q", f)
			}
			v, err := strconv.Atoi(f)
			if err != nil {
				return 0, newParseError(lineNo, "malformed literal %q", f)
			}
			if v == 0 {
				if _, err := ctx.AddClause(append([]cdcl.Literal(nil), clauseBuf...)); err != nil {
					return 0, fmt.Errorf("dimacs: line %d: %w", lineNo, err)
				}
				clauseBuf = clauseBuf[:0]
				clauseStartLine = 0
				continue
			}
			if clauseStartLine == 0 {
				clauseStartLine = lineNo
			}
			abs := v
			if abs < 0 {
				abs = -abs
			}
			if declaredAtoms > 0 && abs > declaredAtoms {
				return 0, newParseError(lineNo, "literal %d exceeds declared atom bound %d", v, declaredAtoms)
			}
			growTo(abs)
			clauseBuf = append(clauseBuf, cdcl.LiteralFromSigned(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("dimacs: line %d: %w", lineNo, err)
	}
	if len(clauseBuf) > 0 {
		return 0, newParseError(clauseStartLine, "missing 0 terminator on final clause")
	}

	if declaredAtoms > nAtoms {
		growTo(declaredAtoms)
	}
	return nAtoms, nil
}
