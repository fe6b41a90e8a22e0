package provider

import (
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// ElementWise produces a homogeneous vector field: a length drawn from an
// inner size provider, filled by repeatedly calling an inner element
// provider. Arity is constant at MaxN*ElemArity+SizeArity regardless of the
// drawn length — unused slots are explicitly skipped on the PRNG so every
// call consumes the same number of draws (spec.md §4.2).
type ElementWise[C record.Record, T any] struct {
	MaxN  int
	Size  ValueProvider[C, int]
	Elem  ValueProvider[C, T]
	arity uint16
}

func NewElementWise[C record.Record, T any](maxN int, size ValueProvider[C, int], elem ValueProvider[C, T]) ElementWise[C, T] {
	return ElementWise[C, T]{
		MaxN:  maxN,
		Size:  size,
		Elem:  elem,
		arity: size.Arity() + uint16(maxN)*elem.Arity(),
	}
}

func (e ElementWise[C, T]) Arity() uint16    { return e.arity }
func (e ElementWise[C, T]) Invertible() bool { return false }

func (e ElementWise[C, T]) Apply(ctx C, prng rng.Stream) record.Vector[T] {
	n := e.Size.Apply(ctx, prng)
	if n < 0 {
		n = 0
	}
	if n > e.MaxN {
		n = e.MaxN
	}
	out := make(record.Vector[T], 0, n)
	for i := 0; i < e.MaxN; i++ {
		if i < n {
			out = append(out, e.Elem.Apply(ctx, prng))
		} else {
			prng.Skip(uint64(e.Elem.Arity()))
		}
	}
	return out
}

func (e ElementWise[C, T]) ValueRange(t record.Vector[T], ctx C) (Interval, bool) {
	return Interval{}, false
}
