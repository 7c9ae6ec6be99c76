package sat

// analyze performs first-UIP conflict analysis over the implication graph,
// which is never materialized explicitly: a variable's reason clause plus
// the trail order are enough to walk predecessors backward. Given a clause
// conflict falsified at the current decision level, it returns a learnt
// clause (entailed by the original clauses, with its asserting literal at
// index 0) and the level to backjump to.
//
// The walk maintains a seen set of already-processed variables and a count
// of how many of them are still unresolved at the conflict's decision
// level. Each resolution step consumes one clause (the conflict, then each
// successive reason) and replaces one level-d literal with its own
// antecedents, until exactly one level-d literal remains: the first UIP.
func (s *Solver) analyze(conflict *Clause) ([]Literal, int) {
	s.seen.clear()
	unresolved := 0
	backjumpLevel := 0

	// Index 0 is reserved for the asserting literal, filled in once the
	// first UIP is found.
	learnt := append(s.tmpLearnt[:0], 0)

	level := s.decisionLevel()
	c := conflict
	trailIdx := len(s.trail) - 1
	skipFirst := false
	var pivot Literal

	for {
		lits := c.literals
		if skipFirst {
			lits = lits[1:]
		}
		for _, q := range lits {
			v := q.VarID()
			if s.seen.contains(v) {
				continue
			}
			s.seen.add(v)

			switch lvl := s.level[v]; {
			case lvl == level:
				unresolved++
			case lvl > 0:
				learnt = append(learnt, q)
				if lvl > backjumpLevel {
					backjumpLevel = lvl
				}
				// Level-0 literals are unconditionally true and omitted:
				// they can never be falsified, so they carry no
				// information for the learnt clause.
			}
		}

		// Walk the trail backward to the next literal whose variable has
		// been seen; its reason is the next clause to resolve against.
		for {
			pivot = s.trail[trailIdx]
			trailIdx--
			if s.seen.contains(pivot.VarID()) {
				break
			}
		}
		c = s.reason[pivot.VarID()]
		skipFirst = true

		unresolved--
		if unresolved == 0 {
			break
		}
	}

	// pivot is the first UIP: the unique literal at the conflict level that
	// lies on every path from the decision to the conflict. The learnt
	// clause must force the opposite value once backjumping makes it free
	// again.
	learnt[0] = pivot.Opposite()
	s.tmpLearnt = learnt // retain the (possibly grown) backing array for reuse

	return learnt, backjumpLevel
}
