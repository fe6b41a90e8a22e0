package provider

import (
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// RangeProvider supplies a semi-open Interval (spec.md §4.3).
type RangeProvider[C record.Record] interface {
	Arity() uint16
	Apply(ctx C, prng rng.Stream) Interval
}

// ConstRange always returns the same interval. Arity 0.
type ConstRange[C record.Record] struct {
	Value Interval
}

func (c ConstRange[C]) Arity() uint16 { return 0 }

func (c ConstRange[C]) Apply(ctx C, prng rng.Stream) Interval { return c.Value }

// ContextFieldRange returns setter.value_range(ctx) for some invertible
// Setter (spec.md §4.3). Expressed as a function field rather than a
// concrete Setter type to avoid a provider<->setter import cycle: the
// setter package constructs ContextFieldRange from its own ValueRange
// method when wiring a chain.
type ContextFieldRange[C record.Record] struct {
	ValueRangeFn func(ctx C) Interval
}

func (c ContextFieldRange[C]) Arity() uint16 { return 0 }

func (c ContextFieldRange[C]) Apply(ctx C, prng rng.Stream) Interval {
	return c.ValueRangeFn(ctx)
}
