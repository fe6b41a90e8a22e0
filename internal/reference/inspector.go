package reference

import (
	"github.com/lattice-data/seqgen/internal/provider"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
	"github.com/lattice-data/seqgen/internal/setter"
)

// Inspector implements SequenceInspector (spec.md §4.8): the handle
// reference providers and the stage driver use to evaluate an arbitrary
// position of a record type's virtual sequence on demand. It holds a
// record factory, a dedicated PRNG copy, and a Chain in ModeRandom — not
// safe for concurrent use; every reference provider and every iterator
// task that needs to inspect a foreign sequence holds its own Inspector
// built from the same shared, immutable Chain definition.
type Inspector[R record.Record] struct {
	factory record.Factory[R]
	prng    rng.Stream
	chain   *setter.Chain[R]
}

// NewInspector builds an Inspector. prng is cloned internally so the
// caller's copy is left untouched — spec.md §4.8 calls for "a dedicated
// PRNG copy".
func NewInspector[R record.Record](factory record.Factory[R], prng rng.Stream, chain *setter.Chain[R]) *Inspector[R] {
	return &Inspector[R]{factory: factory, prng: prng.Clone(), chain: chain}
}

// At returns chain(factory().with_gen_id(p)) (spec.md §4.8).
func (insp *Inspector[R]) At(p uint64) (R, error) {
	r := insp.factory()
	r.SetGenID(p)
	if err := insp.chain.Run(r, insp.prng); err != nil {
		var zero R
		return zero, err
	}
	return r, nil
}

// Filter delegates to the chain (spec.md §4.8).
func (insp *Inspector[R]) Filter(pred *setter.EqualityPredicate[R]) provider.Interval {
	return insp.chain.Filter(pred)
}

// Cardinality returns the sequence's total length.
func (insp *Inspector[R]) Cardinality() uint64 {
	return insp.chain.Cardinality
}
