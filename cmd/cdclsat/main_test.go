package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mertk/cdclsat/internal/dimacs"
	"github.com/mertk/cdclsat/sat"
)

// This test verifies end to end that the solver finds the exact set of
// models for every instance under testdataDir, against models pre-computed
// by hand for each small fixture.
//
// Each test case is a pair of files: an instance with the ".cnf" extension,
// and its expected models with the ".cnf.models" extension (one model per
// line, blank for an unsatisfiable instance).
var testdataDir = "testdata"

type testCase struct {
	instanceName string
	instanceFile string
	modelsFile   string
}

func listTestCases(dir string) ([]testCase, error) {
	var cases []testCase
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".cnf") {
			return nil
		}
		cases = append(cases, testCase{
			instanceName: d.Name(),
			instanceFile: path,
			modelsFile:   path + ".models",
		})
		return nil
	})
	return cases, err
}

// toString renders a model as a binary string, e.g. [true, false, false]
// becomes "100", so that sets of models can be compared order-independently.
func toString(model []bool) string {
	s := make([]byte, len(model))
	for i, b := range model {
		if b {
			s[i] = '1'
		} else {
			s[i] = '0'
		}
	}
	return string(s)
}

func toSet(models [][]bool) map[string]struct{} {
	set := make(map[string]struct{}, len(models))
	for _, m := range models {
		set[toString(m)] = struct{}{}
	}
	return set
}

// solveAll repeatedly solves s, blocking each model found with a clause that
// forbids it, until the instance (as augmented by the blocking clauses)
// comes back UNSAT. This is the standard way to enumerate every model of a
// formula with a single-solution solver.
func solveAll(s *sat.Solver) [][]bool {
	var models [][]bool
	for {
		model, ok := s.Solve()
		if !ok {
			return models
		}
		models = append(models, model)

		block := make([]sat.Literal, len(model))
		for i, b := range model {
			if b {
				block[i] = sat.NegativeLiteral(i)
			} else {
				block[i] = sat.PositiveLiteral(i)
			}
		}
		if err := s.AddClause(block); err != nil {
			return models
		}
	}
}

func TestSolveAll(t *testing.T) {
	cases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("listing test cases: %s", err)
	}
	if len(cases) == 0 {
		t.Fatal("no test cases found")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.instanceName, func(t *testing.T) {
			t.Parallel()

			want, err := dimacs.ReadModels(tc.modelsFile)
			if err != nil {
				t.Fatalf("reading expected models: %s", err)
			}

			s := sat.NewSolver()
			var got [][]bool
			switch err := dimacs.Load(tc.instanceFile, false, s); {
			case errors.Is(err, sat.ErrUnsat):
				// Contradiction found among unit clauses while still
				// loading: correctly UNSAT, just detected before search.
			case err != nil:
				t.Fatalf("loading instance: %s", err)
			default:
				got = solveAll(s)
			}
			if len(got) != len(want) {
				t.Errorf("got %d models, want %d", len(got), len(want))
			}
			if diff := cmp.Diff(toSet(want), toSet(got)); diff != "" {
				t.Errorf("model set mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
