package provider

import (
	"sort"

	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// Clustered maps gen_id to a value by dividing the sequence into
// floor-rounded blocks proportional to a probability's CDF over an
// orderable discrete domain; block k emits the k-th domain value, and the
// last block absorbs any rounding remainder (spec.md §4.2). Arity 0,
// always invertible.
type Clustered[C record.Record, T comparable] struct {
	domain     []T
	boundaries []uint64 // len(domain)+1; boundaries[0]=0, boundaries[len(domain)]=cardinality
}

// NewClustered builds a Clustered provider: domain holds the ordered
// distinct values, weights their probability mass (need not be pre-sorted
// into a cumulative form; NewClustered does that), and cardinality the
// sequence length to divide into blocks.
func NewClustered[C record.Record, T comparable](cardinality uint64, domain []T, weights []float64) Clustered[C, T] {
	boundaries := make([]uint64, len(domain)+1)
	var cum float64
	for i, w := range weights {
		cum += w
		boundaries[i+1] = uint64(float64(cardinality) * cum)
	}
	// Floor rounding can leave the running boundary short of cardinality
	// even after the last weight; the final block absorbs the remainder.
	boundaries[len(domain)] = cardinality
	return Clustered[C, T]{domain: append([]T(nil), domain...), boundaries: boundaries}
}

func (c Clustered[C, T]) Arity() uint16    { return 0 }
func (c Clustered[C, T]) Invertible() bool { return true }

func (c Clustered[C, T]) blockFor(p uint64) int {
	// Rightmost boundary index i such that boundaries[i] <= p.
	i := sort.Search(len(c.boundaries), func(i int) bool { return c.boundaries[i] > p }) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(c.domain) {
		i = len(c.domain) - 1
	}
	return i
}

func (c Clustered[C, T]) Apply(ctx C, prng rng.Stream) T {
	return c.ApplyAt(ctx.GenID())
}

// ApplyAt is the pure, context-free form of Apply: exposed so a composing
// provider (NestedClustered) can evaluate an inner Clustered at a position
// relative to the outer bucket rather than the full context record's
// gen_id.
func (c Clustered[C, T]) ApplyAt(p uint64) T {
	return c.domain[c.blockFor(p)]
}

func (c Clustered[C, T]) ValueRange(t T, ctx C) (Interval, bool) {
	for i, v := range c.domain {
		if v == t {
			return Interval{Begin: c.boundaries[i], End: c.boundaries[i+1]}, true
		}
	}
	return Interval{}, true
}
