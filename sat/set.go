package sat

// resetSet is a set of variable indices in [0, N) that supports clearing the
// whole set in constant time by bumping a generation counter instead of
// zeroing the backing slice.
type resetSet struct {
	addedAt   []uint32
	timestamp uint32
}

// contains reports whether v is currently in the set.
func (rs *resetSet) contains(v int) bool {
	return rs.addedAt[v] == rs.timestamp
}

// add inserts v into the set.
func (rs *resetSet) add(v int) {
	rs.addedAt[v] = rs.timestamp
}

// clear empties the set by bumping the generation counter; addedAt is only
// rewritten when the counter wraps around.
func (rs *resetSet) clear() {
	rs.timestamp++
	if rs.timestamp == 0 { // wrapped around
		rs.timestamp = 1
		for i := range rs.addedAt {
			rs.addedAt[i] = 0
		}
	}
}

// expand grows the set's capacity by one element, called when a new variable
// is declared.
func (rs *resetSet) expand() {
	rs.addedAt = append(rs.addedAt, 0)
}
