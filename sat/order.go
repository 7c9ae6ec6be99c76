package sat

import "github.com/rhartert/yagh"

// varOrder tracks which variables are candidates for the next decision.
// Branching is the fixed, deterministic rule of picking the lowest-indexed
// unassigned variable: rather than rescanning all variables on every
// decision (an O(n) rescan per decision, O(n^2) over a whole search),
// candidate indices are kept in a binary min-heap keyed by the index itself,
// so the next candidate pops out in O(log n) and unassigning a variable (on
// backjump) reinserts it in O(log n).
type varOrder struct {
	pending *yagh.IntMap[int]
}

// newVarOrder returns an empty varOrder.
func newVarOrder() *varOrder {
	return &varOrder{pending: yagh.New[int](0)}
}

// addVar registers a freshly declared variable as a decision candidate.
func (vo *varOrder) addVar(v int) {
	vo.pending.GrowBy(1)
	vo.pending.Put(v, v)
}

// reinsert makes v a decision candidate again, called when v becomes
// unassigned by a backjump.
func (vo *varOrder) reinsert(v int) {
	vo.pending.Put(v, v)
}

// next pops the lowest-indexed variable still believed unassigned. A
// variable can be assigned without being removed from the heap (assignment
// happens far more often than we rebuild the heap), so next skips and drops
// entries that turn out to already be assigned.
func (vo *varOrder) next(s *Solver) (int, bool) {
	for {
		elem, ok := vo.pending.Pop()
		if !ok {
			return 0, false
		}
		if s.VarValue(elem.Elem) != Unknown {
			continue
		}
		return elem.Elem, true
	}
}
