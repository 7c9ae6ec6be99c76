package sat

import "sort"

// reduceDB prunes the learnt-clause database down to half of the original
// clause count, preferring to keep short clauses: it sorts learnts by
// length (most recently learnt first among equal lengths, by reversing
// before a stable ascending sort), then discards from the long end inward
// until the target size is reached. A clause currently serving as some
// variable's reason is never discarded, since deleting it would corrupt the
// implication graph that conflict analysis relies on.
func (s *Solver) reduceDB() {
	threshold := len(s.constraints)
	target := threshold / 2

	for i, j := 0, len(s.learnts)-1; i < j; i, j = i+1, j-1 {
		s.learnts[i], s.learnts[j] = s.learnts[j], s.learnts[i]
	}
	sort.SliceStable(s.learnts, func(i, j int) bool {
		return len(s.learnts[i].literals) < len(s.learnts[j].literals)
	})

	survivors := make([]*Clause, 0, len(s.learnts))
	removeBudget := len(s.learnts) - target

	for i := len(s.learnts) - 1; i >= 0; i-- {
		c := s.learnts[i]
		if removeBudget > 0 && !c.locked(s) {
			c.remove(s)
			removeBudget--
			continue
		}
		survivors = append(survivors, c)
	}

	// survivors were appended from the long end toward the short end;
	// reverse back to ascending-length order.
	for i, j := 0, len(survivors)-1; i < j; i, j = i+1, j-1 {
		survivors[i], survivors[j] = survivors[j], survivors[i]
	}
	s.learnts = survivors
}
