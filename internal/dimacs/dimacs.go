// Package dimacs loads DIMACS CNF instances into a sat.Solver and renders
// models back out in the same literal convention, so that solver output can
// round-trip through reference solvers' fixtures.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/mertk/cdclsat/sat"
)

// ClauseSink is the subset of *sat.Solver that DIMACS ingest needs, so that
// tests can substitute a recording fake instead of a real solver.
type ClauseSink interface {
	AddVariable() int
	AddClause(lits []sat.Literal) error
}

func open(path string, gzipped bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(f)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	return rc, nil
}

// Load opens the DIMACS CNF file at path (transparently gunzipping it if
// gzipped is set) and streams its header and clauses into sink.
func Load(path string, gzipped bool, sink ClauseSink) error {
	r, err := open(path, gzipped)
	if err != nil {
		return fmt.Errorf("dimacs: opening %q: %w", path, err)
	}
	defer r.Close()
	return LoadReader(r, sink)
}

// LoadReader is Load without the file-opening step: used for stdin input
// and directly in tests.
func LoadReader(r io.Reader, sink ClauseSink) error {
	return extdimacs.ReadBuilder(r, &builder{sink: sink})
}

// builder adapts a ClauseSink to the external dimacs package's Builder
// interface, translating 1-based signed DIMACS literals to the solver's
// 0-based packed sat.Literal encoding.
type builder struct {
	sink ClauseSink
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacs: unsupported problem type %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.sink.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmp []int) error {
	lits := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		if l < 0 {
			lits[i] = sat.NegativeLiteral(-l - 1)
		} else {
			lits[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.sink.AddClause(lits)
}

func (b *builder) Comment(string) error {
	return nil
}

// WriteModel writes model as a single DIMACS-style line of 1-based signed
// literals terminated by 0, e.g. model [true, false, true] becomes "1 -2 3
// 0".
func WriteModel(w io.Writer, model []bool) error {
	bw := bufio.NewWriter(w)
	for i, v := range model {
		n := i + 1
		if !v {
			n = -n
		}
		if _, err := fmt.Fprintf(bw, "%d ", n); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, "0"); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadModels parses a models fixture: one model per line, each line a
// whitespace-separated list of 1-based signed literals terminated by 0 (the
// trailing 0 is optional and ignored either way, as is a blank line).
func ReadModels(path string) ([][]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var models [][]bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		model := make([]bool, 0, len(fields))
		for _, tok := range fields {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("dimacs: parsing model literal %q: %w", tok, err)
			}
			if n == 0 {
				continue
			}
			model = append(model, n > 0)
		}
		models = append(models, model)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return models, nil
}
