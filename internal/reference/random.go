package reference

import (
	"errors"
	"math"

	"github.com/lattice-data/seqgen/internal/generr"
	"github.com/lattice-data/seqgen/internal/provider"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
	"github.com/lattice-data/seqgen/internal/setter"
)

// Random resolves a child's parent by predicate lookup: it builds an
// EqualityPredicate from BuildPredicate(child), asks Parent's sequence for
// the matching position range, and picks a position uniformly at random
// within it using one PRNG draw (spec.md §4.7). If the picked parent is
// itself invalid, it retries once inside the range the InvalidRecord
// exception reported; a second failure is fatal (spec.md §9, Open Question
// ii: "the spec permits at most one retry, else fatal, rather than
// guessing intent").
type Random[C record.Record, P record.Record] struct {
	Parent         *Inspector[P]
	BuildPredicate func(child C) *setter.EqualityPredicate[P]
}

func (r *Random[C, P]) Arity() uint16    { return 1 }
func (r *Random[C, P]) Invertible() bool { return false }

func (r *Random[C, P]) Resolve(child C, prng rng.Stream) (uint64, error) {
	pred := r.BuildPredicate(child)
	rng0 := r.Parent.Filter(pred)
	if rng0.Empty() {
		return 0, generr.NewInvariantViolation("random reference provider found no matching parent range")
	}

	u := prng.Next()
	pos := pickUniform(rng0, u)

	_, err := r.Parent.At(pos)
	if err == nil {
		return pos, nil
	}

	var invalid *generr.InvalidRecord
	if !errors.As(err, &invalid) {
		return 0, err
	}

	// At most one retry, re-drawing within the interval InvalidRecord
	// reported rather than the original full range.
	retryRange := provider.Interval{Begin: invalid.NextValidGenID, End: rng0.End}
	if retryRange.Empty() {
		return 0, generr.NewInvariantViolation("random reference provider exhausted retry range")
	}
	pos2 := pickUniform(retryRange, u)
	if _, err2 := r.Parent.At(pos2); err2 != nil {
		return 0, generr.NewInvariantViolation("random reference provider: parent invalid after one retry")
	}
	return pos2, nil
}

// ReferenceRange is undefined for Random (spec.md §4.2: non-invertible).
func (r *Random[C, P]) ReferenceRange(parentID uint64) (provider.Interval, bool) {
	return provider.Interval{}, false
}

func pickUniform(iv provider.Interval, u float64) uint64 {
	span := iv.End - iv.Begin
	offset := uint64(math.Floor(u * float64(span)))
	if offset >= span {
		offset = span - 1
	}
	return iv.Begin + offset
}
