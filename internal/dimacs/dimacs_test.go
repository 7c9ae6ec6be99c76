package dimacs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mertk/cdclsat/sat"
)

// instance is a recording ClauseSink used in place of a real *sat.Solver, so
// that the loader can be tested without exercising search at all.
type instance struct {
	Variables int
	Clauses   [][]sat.Literal
}

func (i *instance) AddVariable() int {
	i.Variables++
	return i.Variables - 1
}

func (i *instance) AddClause(lits []sat.Literal) error {
	clause := make([]sat.Literal, len(lits))
	copy(clause, lits)
	i.Clauses = append(i.Clauses, clause)
	return nil
}

var want = instance{
	Variables: 3,
	Clauses: [][]sat.Literal{
		{0, 2},
		{3, 4},
		{1, 5},
	},
}

func TestLoad_cnf(t *testing.T) {
	got := instance{}
	if err := Load("testdata/test_instance.cnf", false, &got); err != nil {
		t.Fatalf("Load(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_gzip(t *testing.T) {
	got := instance{}
	if err := Load("testdata/test_instance.cnf.gz", true, &got); err != nil {
		t.Fatalf("Load(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_noFile(t *testing.T) {
	got := instance{}
	if err := Load("testdata/does-not-exist.cnf", false, &got); err == nil {
		t.Errorf("Load(): want error, got none")
	}
}

func TestLoad_gzip_notGzipFile(t *testing.T) {
	got := instance{}
	if err := Load("testdata/test_instance.cnf", true, &got); err == nil {
		t.Errorf("Load(): want error, got none")
	}
}

func TestLoad_unsupportedProblemType(t *testing.T) {
	got := instance{}
	r := strings.NewReader("p wcnf 1 1\n1 0\n")
	if err := LoadReader(r, &got); err == nil {
		t.Errorf("LoadReader(): want error for an unsupported problem type, got none")
	}
}

func TestWriteModel(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModel(&buf, []bool{true, false, true}); err != nil {
		t.Fatalf("WriteModel(): want no error, got %s", err)
	}
	if got, want := buf.String(), "1 -2 3 0\n"; got != want {
		t.Errorf("WriteModel(): got %q, want %q", got, want)
	}
}

func TestReadModels(t *testing.T) {
	got, err := ReadModels("testdata/models_fixture.cnf.models")
	if err != nil {
		t.Fatalf("ReadModels(): want no error, got %s", err)
	}
	want := [][]bool{
		{true, false, true},
		{false, false, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadModels(): mismatch (-want +got):\n%s", diff)
	}
}
