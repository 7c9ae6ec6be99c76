package sat

import "errors"

// ErrUnsat is returned by AddClause when the clause being added makes the
// formula unsatisfiable at the root level (an empty clause, or a unit
// clause contradicting an existing level-0 assignment).
var ErrUnsat = errors.New("sat: formula is unsatisfiable")

// Solver is a CDCL SAT solver. The zero value is not usable; construct one
// with NewSolver. A Solver is not safe for concurrent use.
type Solver struct {
	// Clause database. Original clauses are never removed; learnts are
	// pruned by reduceDB.
	constraints []*Clause
	learnts     []*Clause

	// watchers[l] lists every clause currently watching l.Opposite(), i.e.
	// every clause that wakes up when l is assigned true (because its
	// watched literal l.Opposite() has just become false).
	watchers [][]*Clause

	// Per-literal assignment, per-variable reason/level.
	assigns []LBool
	reason  []*Clause
	level   []int

	// Trail: an append-only log of assignments in the order they were made.
	// trailLim[k] is the trail index at which decision level k+1 begins;
	// len(trailLim) is the current decision level. qHead is the propagation
	// pointer: trail[qHead:] is exactly the set of assignments BCP has not
	// yet processed the watchers of, so no separate propagation queue is
	// needed.
	trail    []Literal
	trailLim []int
	qHead    int

	unsat bool
	order *varOrder
	seen  resetSet

	// Reused scratch buffers to avoid reallocating on every conflict.
	tmpWatchers []*Clause
	tmpLearnt   []Literal

	// Search statistics, surfaced for the CLI's -v flag.
	TotalConflicts int64
	TotalDecisions int64
	TotalLearnts   int64
}

// NewSolver returns an empty solver, ready to accept AddVariable/AddClause
// calls.
func NewSolver() *Solver {
	return &Solver{order: newVarOrder()}
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int {
	return len(s.assigns) / 2
}

// NumAssigns returns the number of variables currently assigned.
func (s *Solver) NumAssigns() int {
	return len(s.trail)
}

// NumConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

// NumLearnts returns the number of learnt clauses currently in the
// database.
func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}

// VarValue returns the current value of variable v.
func (s *Solver) VarValue(v int) LBool {
	return s.assigns[PositiveLiteral(v)]
}

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	return s.assigns[l]
}

func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// AddVariable appends a fresh, unassigned variable and returns its index.
func (s *Solver) AddVariable() int {
	v := s.NumVariables()
	s.watchers = append(s.watchers, nil, nil)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.level = append(s.level, -1)
	s.reason = append(s.reason, nil)
	s.seen.expand()
	s.order.addVar(v)
	return v
}

// watch registers c to be re-examined whenever trigger is assigned true.
func (s *Solver) watch(c *Clause, trigger Literal) {
	s.watchers[trigger] = append(s.watchers[trigger], c)
}

// unwatch removes c from the watch list of watched.Opposite(). This is O(n)
// in the length of that list; it is only used when a clause is deleted
// outright (Clause.remove), never on the BCP hot path.
func (s *Solver) unwatch(c *Clause, watched Literal) {
	trigger := watched.Opposite()
	list := s.watchers[trigger]
	j := 0
	for i := range list {
		if list[i] != c {
			list[j] = list[i]
			j++
		}
	}
	s.watchers[trigger] = list[:j]
}

// enqueue records l as true (with the given reason, nil for a decision) at
// the current decision level. It reports false if l's variable was already
// assigned the opposite value (a conflict), true otherwise (including when
// l was already assigned true).
func (s *Solver) enqueue(l Literal, reason *Clause) bool {
	switch s.assigns[l] {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		s.assigns[l] = True
		s.assigns[l.Opposite()] = False
		s.level[v] = s.decisionLevel()
		s.reason[v] = reason
		s.trail = append(s.trail, l)
		return true
	}
}

// Propagate runs BCP to a fixpoint, following the two-watched-literal
// scheme: for each newly assigned literal, only clauses watching its
// negation are re-examined. It returns the falsified clause on conflict, or
// nil once the queue (trail[qHead:]) is empty.
func (s *Solver) Propagate() *Clause {
	for s.qHead < len(s.trail) {
		l := s.trail[s.qHead]
		s.qHead++

		s.tmpWatchers = append(s.tmpWatchers[:0], s.watchers[l]...)
		s.watchers[l] = s.watchers[l][:0]

		for i, c := range s.tmpWatchers {
			if c.propagate(s, l) {
				continue
			}
			// c is falsified: restore the watchers this clause's siblings
			// haven't been given a chance to re-register yet, then stop
			// BCP at the current trail position so a later call resumes
			// cleanly instead of reprocessing half-examined watchers.
			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			s.qHead = len(s.trail)
			return c
		}
	}
	return nil
}

// assume pushes a new decision level and enqueues l as a decision (reason
// nil).
func (s *Solver) assume(l Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	return s.enqueue(l, nil)
}

// undoOne pops and clears the most recent trail entry.
func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	v := l.VarID()
	s.order.reinsert(v)
	s.assigns[l] = Unknown
	s.assigns[l.Opposite()] = Unknown
	s.reason[v] = nil
	s.level[v] = -1
	s.trail = s.trail[:len(s.trail)-1]
}

// cancel unwinds the trail back to the start of the current decision level.
func (s *Solver) cancel() {
	target := s.trailLim[len(s.trailLim)-1]
	for len(s.trail) > target {
		s.undoOne()
	}
	s.trailLim = s.trailLim[:len(s.trailLim)-1]
}

// cancelUntil unwinds the trail to decision level, leaving every assignment
// made at or below that level intact. Watch lists are untouched: the
// two-watched-literal invariant tolerates unassignment without repair,
// since falsification only ever grows the set of non-false watched
// literals.
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		s.cancel()
	}
	s.qHead = len(s.trail)
}

// AddClause ingests an original clause: deduplicating, dropping tautologies,
// enqueuing units directly on the trail, and otherwise storing it watched by
// its first two literals. It returns ErrUnsat if the clause (combined with
// prior root-level assignments) makes the formula unsatisfiable; AddClause
// must then not be called again except to observe ErrUnsat once more. It
// must only be called at decision level 0.
func (s *Solver) AddClause(lits []Literal) error {
	if s.unsat {
		return ErrUnsat
	}

	tmp := append([]Literal(nil), lits...)
	c, ok := newClause(s, tmp, false)
	if !ok {
		s.unsat = true
		return ErrUnsat
	}
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	return nil
}

// record installs a clause learnt by conflict analysis and enqueues its
// asserting literal (lits[0]) with the clause as reason. Unit learnt
// clauses are not stored (per the data model, clauses of length 1 live only
// on the trail); reduceDB runs whenever the learnt count exceeds the
// original clause count.
func (s *Solver) record(lits []Literal) {
	c, _ := newClause(s, lits, true)
	s.enqueue(lits[0], c)
	if c != nil {
		s.learnts = append(s.learnts, c)
		s.TotalLearnts++
		if len(s.learnts) > len(s.constraints) {
			s.reduceDB()
		}
	}
}

// saveModel reads off the current total assignment. Solve calls it only once
// every variable is assigned; a variable still Unknown would read as false.
func (s *Solver) saveModel() []bool {
	model := make([]bool, s.NumVariables())
	for v := range model {
		model[v] = s.VarValue(v) == True
	}
	return model
}

// Solve runs search to completion: propagate, analyze conflicts and
// backjump, or branch on the next decision. It returns a total assignment
// and true on SAT, or (nil, false) on UNSAT. After returning a model it
// unwinds to the root level, so a caller may add clauses (for instance one
// blocking that model, as TestSolveAll_enumeratesEveryModel does) and call
// Solve again.
func (s *Solver) Solve() ([]bool, bool) {
	if s.unsat {
		return nil, false
	}

	for {
		if conflict := s.Propagate(); conflict != nil {
			s.TotalConflicts++

			if s.decisionLevel() == 0 {
				s.unsat = true
				return nil, false
			}

			learnt, backjumpLevel := s.analyze(conflict)
			s.cancelUntil(backjumpLevel)
			s.record(learnt)
			continue
		}

		if s.NumAssigns() == s.NumVariables() {
			model := s.saveModel()
			// Return to the root level so that a caller can inspect the
			// model, add further clauses (e.g. to block it and enumerate
			// the next one), and call Solve again.
			s.cancelUntil(0)
			return model, true
		}

		v, _ := s.order.next(s)
		s.TotalDecisions++
		s.assume(NegativeLiteral(v))
	}
}
