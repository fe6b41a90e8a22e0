package provider

import (
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// ValueProvider draws or computes a field value of type T from context
// record C (spec.md §4.2).
type ValueProvider[C record.Record, T any] interface {
	// Arity is the number of PRNG draws consumed by one Apply call, fixed
	// for the lifetime of the provider so a disabled Setter can skip the
	// same number of draws instead of calling Apply.
	Arity() uint16

	Invertible() bool

	Apply(ctx C, prng rng.Stream) T

	// ValueRange returns the set of positions in ctx's sequence for which
	// Apply would produce t, and whether the provider could compute one.
	// Callers must not call this unless Invertible() is true.
	ValueRange(t T, ctx C) (Interval, bool)
}

// Const always returns Value; invertible with the full sequence range when
// t equals Value, empty otherwise (spec.md §4.2).
type Const[C record.Record, T comparable] struct {
	Value       T
	Cardinality uint64
}

func (c Const[C, T]) Arity() uint16    { return 0 }
func (c Const[C, T]) Invertible() bool { return true }

func (c Const[C, T]) Apply(ctx C, prng rng.Stream) T { return c.Value }

func (c Const[C, T]) ValueRange(t T, ctx C) (Interval, bool) {
	if t != c.Value {
		return Interval{}, true
	}
	return Full(c.Cardinality), true
}

// ContextField returns the value of a named field of the context record
// (spec.md §4.2). Never invertible: the field it reads is not the field
// being set, so there is no formula mapping a target value back to a
// position range.
type ContextField[C record.Record, T any] struct {
	Get func(ctx C) T
}

func (f ContextField[C, T]) Arity() uint16    { return 0 }
func (f ContextField[C, T]) Invertible() bool { return false }

func (f ContextField[C, T]) Apply(ctx C, prng rng.Stream) T { return f.Get(ctx) }

func (f ContextField[C, T]) ValueRange(t T, ctx C) (Interval, bool) {
	return Interval{}, false
}

// Callback delegates to a user function for arity and value computation;
// always non-invertible (spec.md §4.2).
type Callback[C record.Record, T any] struct {
	DeclaredArity uint16
	Fn            func(ctx C, prng rng.Stream) T
}

func (c Callback[C, T]) Arity() uint16    { return c.DeclaredArity }
func (c Callback[C, T]) Invertible() bool { return false }

func (c Callback[C, T]) Apply(ctx C, prng rng.Stream) T { return c.Fn(ctx, prng) }

func (c Callback[C, T]) ValueRange(t T, ctx C) (Interval, bool) {
	return Interval{}, false
}
