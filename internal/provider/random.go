package provider

import (
	"github.com/lattice-data/seqgen/internal/prob"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// Random draws one PRNG value and maps it through a probability function
// (spec.md §4.2: "Random from probability Φ, arity 1").
//
// The spec allows Φ.invcdf on a combined histogram to define value_range as
// "the contiguous block of positions ... covering t". That inversion holds
// for Clustered (position determines value by construction), but a per-call
// PRNG draw is not a monotonic function of gen_id, so no finite formula maps
// a target value back to a contiguous position range here. Random is
// therefore always reported non-invertible; SetterChain.filter already
// defines the fallback for that case (spec.md §4.5: "non-invertible setters
// ignore the predicate on the field they would set"), so filtering degrades
// gracefully rather than silently returning a wrong range. See DESIGN.md,
// "Open Question decisions" (iv), for the full rationale.
type Random[C record.Record, T any] struct {
	draw func(u float64) T
}

// NewRandomContinuous builds a Random provider sampling a parametric
// continuous distribution.
func NewRandomContinuous[C record.Record, T any](dist prob.Continuous, toT func(float64) T) Random[C, T] {
	return Random[C, T]{draw: func(u float64) T { return toT(dist.Sample(u)) }}
}

// NewRandomCombined builds a Random provider sampling a combined discrete
// histogram.
func NewRandomCombined[C record.Record, T any](hist prob.Combined, toT func(prob.Sample) T) Random[C, T] {
	return Random[C, T]{draw: func(u float64) T { return toT(hist.Sample(u)) }}
}

func (r Random[C, T]) Arity() uint16    { return 1 }
func (r Random[C, T]) Invertible() bool { return false }

func (r Random[C, T]) Apply(ctx C, prng rng.Stream) T { return r.draw(prng.Next()) }

func (r Random[C, T]) ValueRange(t T, ctx C) (Interval, bool) { return Interval{}, false }

// ConditionalRandom selects a sub-probability by the value of a fixed
// context field, then samples it (spec.md §4.2). Arity 1, never invertible
// for the same reason as Random.
type ConditionalRandom[C record.Record, T any] struct {
	cond      prob.Conditional
	condField func(ctx C) float64
	toT       func(prob.Sample) T
}

func NewConditionalRandom[C record.Record, T any](cond prob.Conditional, condField func(C) float64, toT func(prob.Sample) T) ConditionalRandom[C, T] {
	return ConditionalRandom[C, T]{cond: cond, condField: condField, toT: toT}
}

func (c ConditionalRandom[C, T]) Arity() uint16    { return 1 }
func (c ConditionalRandom[C, T]) Invertible() bool { return false }

func (c ConditionalRandom[C, T]) Apply(ctx C, prng rng.Stream) T {
	y := c.condField(ctx)
	u := prng.Next()
	s, ok := c.cond.Sample(u, y)
	if !ok {
		var zero T
		return zero
	}
	return c.toT(s)
}

func (c ConditionalRandom[C, T]) ValueRange(t T, ctx C) (Interval, bool) {
	return Interval{}, false
}
