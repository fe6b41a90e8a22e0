package setter

import (
	"github.com/lattice-data/seqgen/internal/provider"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// Setter ties one field of record type R to a provider and runs it forward
// or answers reverse-filtering questions about it (spec.md §4.4).
type Setter[R record.Record] interface {
	Arity() uint16
	Invertible() bool

	// Apply draws/computes the field's value and writes it into r.
	Apply(r R, prng rng.Stream) error

	// ValueRange delegates to the underlying provider for the value r
	// currently holds; only meaningful when Invertible().
	ValueRange(r R) (provider.Interval, bool)

	// FilterRange intersects current with the range implied by pred, if
	// pred binds this setter's field and the setter is invertible;
	// otherwise returns current unchanged (spec.md §4.5: "non-invertible
	// setters ignore the predicate on the field they would set").
	FilterRange(pred *EqualityPredicate[R], current provider.Interval) provider.Interval
}

// FieldSetter calls a ValueProvider and writes the result into field FID
// (spec.md §4.4).
type FieldSetter[R record.Record, V any] struct {
	FID      record.FieldID
	VP       provider.ValueProvider[R, V]
	GetField func(r R) V
	SetField func(r R, v V)
}

func (f FieldSetter[R, V]) Arity() uint16    { return f.VP.Arity() }
func (f FieldSetter[R, V]) Invertible() bool { return f.VP.Invertible() }

func (f FieldSetter[R, V]) Apply(r R, prng rng.Stream) error {
	f.SetField(r, f.VP.Apply(r, prng))
	return nil
}

func (f FieldSetter[R, V]) ValueRange(r R) (provider.Interval, bool) {
	if !f.VP.Invertible() {
		return provider.Interval{}, false
	}
	return f.VP.ValueRange(f.GetField(r), r)
}

func (f FieldSetter[R, V]) FilterRange(pred *EqualityPredicate[R], current provider.Interval) provider.Interval {
	if !f.VP.Invertible() {
		return current
	}
	bound, ok := pred.Get(f.FID)
	if !ok {
		return current
	}
	v, ok := bound.(V)
	if !ok {
		return current
	}
	// value_range is evaluated with a nil context: every ValueProvider
	// that reports Invertible()==true in this package computes its range
	// purely from the target value and its own construction-time
	// parameters, never from the context record (Const and Clustered
	// both ignore ctx; non-invertible providers never reach here).
	var zero R
	iv, ok := f.VP.ValueRange(v, zero)
	if !ok {
		return current
	}
	return current.Intersect(iv)
}

// ReferenceProvider is the narrow surface ReferenceSetter needs from a
// reference provider (spec.md §4.7). Declared here rather than imported
// from internal/reference so reference can depend on setter (for Chain and
// SequenceInspector) without setter depending back on reference.
type ReferenceProvider[R record.Record] interface {
	Arity() uint16
	Invertible() bool

	// Resolve returns the parent's gen_id for child r. err is non-nil
	// either because r's position has no valid parent slot — in which
	// case errors.As(err, *generr.InvalidRecord) succeeds — or because
	// fetching the parent itself failed fatally.
	Resolve(r R, prng rng.Stream) (parentGenID uint64, err error)

	// ReferenceRange returns the child position range that maps to the
	// given parent gen_id (spec.md §4.7: "reference_range(parent_id)").
	ReferenceRange(parentGenID uint64) (provider.Interval, bool)
}

// ReferenceSetter calls a ReferenceProvider to obtain a parent record and
// writes the reference into field FID (spec.md §4.4).
type ReferenceSetter[R record.Record, P record.Record] struct {
	FID       record.FieldID
	RP        ReferenceProvider[R]
	GetParent func(r R) record.Ref[P]
	SetParent func(r R, v record.Ref[P])
}

func (s ReferenceSetter[R, P]) Arity() uint16    { return s.RP.Arity() }
func (s ReferenceSetter[R, P]) Invertible() bool { return s.RP.Invertible() }

func (s ReferenceSetter[R, P]) Apply(r R, prng rng.Stream) error {
	parentGenID, err := s.RP.Resolve(r, prng)
	if err != nil {
		return err
	}
	s.SetParent(r, record.Ref[P]{ParentGenID: parentGenID})
	return nil
}

func (s ReferenceSetter[R, P]) ValueRange(r R) (provider.Interval, bool) {
	if !s.RP.Invertible() {
		return provider.Interval{}, false
	}
	return s.RP.ReferenceRange(s.GetParent(r).ParentGenID)
}

func (s ReferenceSetter[R, P]) FilterRange(pred *EqualityPredicate[R], current provider.Interval) provider.Interval {
	if !s.RP.Invertible() {
		return current
	}
	bound, ok := pred.Get(s.FID)
	if !ok {
		return current
	}
	parentGenID, ok := bound.(uint64)
	if !ok {
		return current
	}
	iv, ok := s.RP.ReferenceRange(parentGenID)
	if !ok {
		return current
	}
	return current.Intersect(iv)
}
