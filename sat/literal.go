// Package sat implements a CDCL (Conflict-Driven Clause Learning) decision
// procedure for Boolean satisfiability: given a formula in Conjunctive Normal
// Form, it decides whether some assignment of the formula's variables
// satisfies every clause and, if so, produces one.
package sat

import "fmt"

// Literal represents a Boolean variable or its negation. A literal packs the
// variable index and its sign into a single machine word: PositiveLiteral(v)
// and NegativeLiteral(v) differ only in their low bit, so Opposite is a
// constant-time XOR and the literal can be used directly as an index into
// per-literal tables (assignment, watch lists) without any further encoding.
type Literal int

// PositiveLiteral returns the literal asserting that variable v is true.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the literal asserting that variable v is false.
func NegativeLiteral(v int) Literal {
	return Literal(v*2 + 1)
}

// VarID returns the index of the variable l refers to.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive reports whether l asserts its variable's value directly, as
// opposed to its negation.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
