// Command cdclsat reads a DIMACS CNF instance and reports whether it is
// satisfiable, printing a model when it is.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/kr/pretty"

	"github.com/mertk/cdclsat/internal/dimacs"
	"github.com/mertk/cdclsat/sat"
)

var (
	flagGzip       = flag.Bool("gz", false, "treat the input as gzip-compressed")
	flagVerbose    = flag.Bool("v", false, "print search statistics to stderr")
	flagDebug      = flag.Bool("debug", false, "pretty-print solver internals after search (development use)")
	flagCPUProfile = flag.String("cpuprofile", "", "write a CPU profile to this path")
	flagMemProfile = flag.String("memprofile", "", "write a heap profile to this path")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `cdclsat: a CDCL SAT solver.

Usage:

  cdclsat [flags] [input.cnf]

cdclsat reads a single DIMACS CNF instance and writes either "SAT" followed
by a model line, or "UNSAT". If no input file is given, it reads from
standard input.

Flags:
`)
		flag.PrintDefaults()
	}
}

func run(path string) (int, error) {
	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			return 1, err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return 1, err
		}
		defer pprof.StopCPUProfile()
	}

	s := sat.NewSolver()

	var loadErr error
	if path == "" {
		loadErr = dimacs.LoadReader(os.Stdin, s)
	} else {
		loadErr = dimacs.Load(path, *flagGzip, s)
	}
	if errors.Is(loadErr, sat.ErrUnsat) {
		// The contradiction was found while ingesting unit clauses, before
		// search ever started; report it the same way a conflict found
		// during Solve would be.
		fmt.Println("UNSAT")
		return 20, nil
	}
	if loadErr != nil {
		return 1, fmt.Errorf("reading instance: %w", loadErr)
	}

	start := time.Now()
	model, ok := s.Solve()
	elapsed := time.Since(start)

	if *flagVerbose {
		fmt.Fprintf(os.Stderr, "c variables:  %d\n", s.NumVariables())
		fmt.Fprintf(os.Stderr, "c clauses:    %d\n", s.NumConstraints())
		fmt.Fprintf(os.Stderr, "c time (sec): %f\n", elapsed.Seconds())
		fmt.Fprintf(os.Stderr, "c decisions:  %d\n", s.TotalDecisions)
		fmt.Fprintf(os.Stderr, "c conflicts:  %d\n", s.TotalConflicts)
		fmt.Fprintf(os.Stderr, "c learnts:    %d\n", s.NumLearnts())
	}
	if *flagDebug {
		pretty.Println(s)
	}

	if *flagMemProfile != "" {
		f, err := os.Create(*flagMemProfile)
		if err != nil {
			return 1, err
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return 1, err
		}
	}

	if !ok {
		fmt.Println("UNSAT")
		return 20, nil
	}

	fmt.Println("SAT")
	if err := dimacs.WriteModel(os.Stdout, model); err != nil {
		return 1, err
	}
	return 0, nil
}

func main() {
	flag.Parse()

	path := ""
	if flag.NArg() >= 1 {
		path = flag.Arg(0)
	}

	code, err := run(path)
	if err != nil {
		log.Println(err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}
