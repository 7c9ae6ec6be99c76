package sat

import (
	"math/bits"
	"sync"
)

// Clause construction and deletion churns constantly during search: every
// conflict allocates a fresh learnt clause and every database reduction
// frees some of them. Rather than let each allocation go through the
// runtime allocator, literal slices are drawn from a small set of
// capacity-bucketed sync.Pools, the same scheme the teacher repo ships as
// its clausepool build variant, applied here unconditionally.
const nClausePools = 6

// A slice of capacity c belongs to clausePools[floor(log2 c)] (pool 0 for
// c < 2), except that the last pool takes every capacity of
// 2^(nClausePools-1) and above. A pool's New makes slices of capacity
// 2^(i+1); allocLiterals falls back to a fresh allocation when the slice it
// gets from a pool is too small.
var clausePools [nClausePools]sync.Pool

func init() {
	for i := 0; i < nClausePools; i++ {
		capa := 1 << (i + 1)
		clausePools[i].New = func() any {
			s := make([]Literal, 0, capa)
			return &s
		}
	}
}

func clausePoolID(capa int) int {
	last := 1 << nClausePools
	if capa >= last {
		return nClausePools - 1
	}
	id := bits.Len(uint(capa)) - 1
	if capa < (1 << id) {
		id--
	}
	if id < 0 {
		id = 0
	}
	return id
}

// allocLiterals returns an empty slice with at least the requested capacity,
// drawn from the pool if one of sufficient size is available.
func allocLiterals(capa int) []Literal {
	id := clausePoolID(capa)
	ref := clausePools[id].Get().(*[]Literal)
	s := (*ref)[:0]
	if cap(s) < capa {
		return make([]Literal, 0, capa)
	}
	return s
}

// freeLiterals returns a clause's backing slice to the pool for reuse. The
// slice must not be read or written after this call.
func freeLiterals(s []Literal) {
	id := clausePoolID(cap(s))
	s = s[:0]
	clausePools[id].Put(&s)
}
