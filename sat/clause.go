package sat

import "strings"

// Clause is an ordered, duplicate-free, non-tautological sequence of two or
// more literals. The first two slots are the watched literals, maintained so
// that at every quiescent moment at least one of them is non-false; BCP only
// ever inspects a clause when one of its watched literals has just become
// false. Original clauses are never removed; learnt clauses are destroyed
// only by the database reducer.
type Clause struct {
	literals []Literal
	learnt   bool
}

// newClause builds a clause from lits, which it may reorder in place; a
// stored clause keeps its own copy of the literals in a pooled slice. It
// reports (nil, true) for a clause that is trivially satisfied and need not
// be stored (a tautology, or one already true given a unit fact it enqueued),
// (nil, false) for a contradiction (an empty clause, or a unit conflicting
// with an existing assignment), and (c, true) for a clause worth keeping.
//
// learnt clauses are assumed already deduplicated, non-tautological, and
// ordered with the asserting literal at index 0 by the caller (see analyze),
// so the simplification pass below only runs for original clauses.
func newClause(s *Solver, lits []Literal, learnt bool) (*Clause, bool) {
	size := len(lits)

	if !learnt {
		seen := make(map[Literal]struct{}, size)
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[lits[i].Opposite()]; ok {
				return nil, true // tautology: x and !x both present
			}
			if _, ok := seen[lits[i]]; ok {
				size--
				lits[i], lits[size] = lits[size], lits[i]
				continue
			}
			seen[lits[i]] = struct{}{}

			switch s.LitValue(lits[i]) {
			case True:
				return nil, true // already satisfied
			case False:
				size--
				lits[i], lits[size] = lits[size], lits[i]
			}
		}
		lits = lits[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(lits[0], nil)
	default:
		c := &Clause{learnt: learnt}
		c.literals = allocLiterals(size)
		c.literals = append(c.literals, lits...)

		if learnt {
			// Move the literal with the second-highest level into slot 1 so
			// that the watch invariant holds immediately: the backjump
			// target is that level, at which point both watched literals
			// are non-false.
			maxLevel, at := -1, 1
			for i := 1; i < len(c.literals); i++ {
				if lvl := s.level[c.literals[i].VarID()]; lvl > maxLevel {
					maxLevel, at = lvl, i
				}
			}
			c.literals[1], c.literals[at] = c.literals[at], c.literals[1]
		}

		s.watch(c, c.literals[0].Opposite())
		s.watch(c, c.literals[1].Opposite())
		return c, true
	}
}

// locked reports whether c is currently serving as the reason some variable
// was assigned, and must therefore survive database reduction.
func (c *Clause) locked(s *Solver) bool {
	return s.reason[c.literals[0].VarID()] == c
}

// remove detaches c from the watch lists and returns its backing storage to
// the pool. The caller is responsible for also removing c from whichever of
// s.constraints/s.learnts owns it.
func (c *Clause) remove(s *Solver) {
	s.unwatch(c, c.literals[0])
	s.unwatch(c, c.literals[1])
	freeLiterals(c.literals)
	c.literals = nil
}

// propagate is invoked from BCP on s.watchers[l], the list of clauses
// watching the literal that has just become false (i.e. watching l.Opposite,
// which has just been assigned l's trigger). s.watchers[l] has already been
// drained by the caller, so propagate is responsible for re-registering c in
// whichever watch list it ends up in: the same one (via s.watch(c, l)) if it
// keeps watching l.Opposite, or a newly found literal's bucket if it moved.
// It reports false only when c is now genuinely falsified; c has then
// already been re-registered under l, and restoring the watchers not yet
// visited is left to the caller.
func (c *Clause) propagate(s *Solver, l Literal) bool {
	opp := l.Opposite() // the watched literal that just became false
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], opp
	}

	if s.LitValue(c.literals[0]) == True {
		s.watch(c, l) // still satisfied via literals[0]; keep this watch
		return true
	}

	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], opp
			s.watch(c, c.literals[1].Opposite())
			return true
		}
	}

	// literals[0] is forced if still free, or c is falsified if already
	// false; either way the watch on l.Opposite stays where it is.
	s.watch(c, l)
	return s.enqueue(c.literals[0], c)
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
