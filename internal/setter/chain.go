package setter

import (
	"github.com/lattice-data/seqgen/internal/generr"
	"github.com/lattice-data/seqgen/internal/provider"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// Mode selects how a Chain seeks the PRNG before running its setters
// (spec.md §4.5, plus the supplemented ModeStatic).
type Mode int

const (
	// ModeRandom seeks the PRNG to the record's chunk before the first
	// setter, so the chain is replayable from any position
	// (SequenceInspector.at, reference resolution).
	ModeRandom Mode = iota
	// ModeSequential assumes the caller already advanced the PRNG in
	// gen_id order (the stage iterator's at_chunk/next_chunk loop) and
	// does not reseek.
	ModeSequential
	// ModeStatic never draws from the PRNG; every enabled setter's
	// provider must have arity 0. Used for record types whose entire
	// chain is clustered/constant/context-derived (original_source
	// StaticSetGenerator / DeterministicSetGenerator). stage.RunIterator
	// accepts only ModeSequential chains, so a ModeStatic chain is run
	// through Chain.Run directly.
	ModeStatic
)

// Chain is an ordered list of Setters for record type R (spec.md §4.5). Not
// shared between threads: each iterator task holds its own Chain instance
// built from shared immutable providers.
type Chain[R record.Record] struct {
	Mode        Mode
	Cardinality uint64
	setters     []chainEntry[R]
}

type chainEntry[R record.Record] struct {
	setter  Setter[R]
	enabled bool
}

func NewChain[R record.Record](mode Mode, cardinality uint64) *Chain[R] {
	return &Chain[R]{Mode: mode, Cardinality: cardinality}
}

// Add appends a setter to the chain, enabled by default.
func (c *Chain[R]) Add(s Setter[R]) *Chain[R] {
	c.setters = append(c.setters, chainEntry[R]{setter: s, enabled: true})
	return c
}

// Disable turns off the setter at index i without removing it, so forward
// evaluation skips its draws via Skip(arity) instead of calling Apply
// (spec.md §4.5).
func (c *Chain[R]) Disable(i int) { c.setters[i].enabled = false }

// Run evaluates the chain forward for record r (spec.md §4.5). In
// ModeRandom it seeks prng to r's chunk first; in ModeSequential it trusts
// the caller already positioned prng; in ModeStatic it never touches prng.
func (c *Chain[R]) Run(r R, prng rng.Stream) error {
	if c.Mode == ModeRandom {
		prng.AtChunk(r.GenID())
	}
	for _, e := range c.setters {
		if !e.enabled {
			if c.Mode != ModeStatic && e.setter.Arity() > 0 {
				prng.Skip(uint64(e.setter.Arity()))
			}
			continue
		}
		if err := e.setter.Apply(r, prng); err != nil {
			return err
		}
	}
	return nil
}

// Filter performs reverse evaluation: the set of positions whose forward
// evaluation would match pred (spec.md §4.5).
func (c *Chain[R]) Filter(pred *EqualityPredicate[R]) provider.Interval {
	current := provider.Full(c.Cardinality)
	for _, e := range c.setters {
		current = e.setter.FilterRange(pred, current)
		if current.Empty() {
			return current
		}
	}
	return current
}

// AssertStaticArityZero validates the ModeStatic invariant that every
// enabled setter has arity 0, returning InvariantViolation otherwise.
func (c *Chain[R]) AssertStaticArityZero() error {
	if c.Mode != ModeStatic {
		return nil
	}
	for _, e := range c.setters {
		if e.enabled && e.setter.Arity() != 0 {
			return generr.NewInvariantViolation("static chain setter has nonzero arity")
		}
	}
	return nil
}
