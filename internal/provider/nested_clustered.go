package provider

import (
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// NestedClustered composes two Clustered providers into a two-level
// assignment: an outer clustered value picks a bucket of the sequence, an
// inner Clustered, built fresh per outer value over that bucket's own
// size, picks within it — e.g. a "country" bucket followed by a
// "state/province" pick inside that country's block. Arity 0, invertible:
// value_range intersects the outer and inner ranges, matching
// SetterChain.Filter's own intersection of per-setter constraints.
type NestedClustered[C record.Record, O, I comparable] struct {
	Outer Clustered[C, O]
	// Inner builds the sub-clustering for one outer value, sized to that
	// outer bucket (bucketSize = outer.ValueRange(outer).End - .Begin) so
	// its own boundaries run [0, bucketSize) rather than the full
	// sequence cardinality.
	Inner func(outer O, bucketSize uint64) Clustered[C, I]
}

type NestedValue[O, I any] struct {
	Outer O
	Inner I
}

func (n NestedClustered[C, O, I]) Arity() uint16    { return 0 }
func (n NestedClustered[C, O, I]) Invertible() bool { return true }

func (n NestedClustered[C, O, I]) Apply(ctx C, prng rng.Stream) NestedValue[O, I] {
	outer := n.Outer.Apply(ctx, prng)
	outerRange, _ := n.Outer.ValueRange(outer, ctx)
	inner := n.Inner(outer, outerRange.End-outerRange.Begin)
	local := ctx.GenID() - outerRange.Begin
	return NestedValue[O, I]{Outer: outer, Inner: inner.ApplyAt(local)}
}

func (n NestedClustered[C, O, I]) ValueRange(t NestedValue[O, I], ctx C) (Interval, bool) {
	outerRange, ok := n.Outer.ValueRange(t.Outer, ctx)
	if !ok || outerRange.Empty() {
		return Interval{}, true
	}
	inner := n.Inner(t.Outer, outerRange.End-outerRange.Begin)
	localRange, ok := inner.ValueRange(t.Inner, ctx)
	if !ok {
		return Interval{}, true
	}
	// localRange is relative to the inner Clustered's own [0, bucketSize)
	// cardinality; shift it into the outer bucket's absolute positions.
	abs := Interval{Begin: outerRange.Begin + localRange.Begin, End: outerRange.Begin + localRange.End}
	return abs.Intersect(outerRange), true
}
