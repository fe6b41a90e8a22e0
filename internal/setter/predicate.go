// Package setter ties record fields to providers (spec.md §4.4-§4.5): a
// Setter couples one field to a ValueProvider or reference provider, and a
// Chain runs an ordered list of Setters forward (to build a record) or
// backward (to filter a sequence range by an EqualityPredicate).
package setter

import (
	"github.com/lattice-data/seqgen/internal/generr"
	"github.com/lattice-data/seqgen/internal/record"
)

// EqualityPredicate is a fixed-shape value holder for record type R with a
// bound-fields bitmap; bind fails if the field is already bound (spec.md
// §4.9). It is the sole input to Chain.Filter and to reference-provider
// predicates.
type EqualityPredicate[R record.Record] struct {
	bound map[record.FieldID]any
}

func NewEqualityPredicate[R record.Record]() *EqualityPredicate[R] {
	return &EqualityPredicate[R]{bound: make(map[record.FieldID]any)}
}

// Bind records that fid must equal v. Returns InvariantViolation if fid is
// already bound (spec.md §4.9: "bind<fid>(v) fails if already bound").
func (p *EqualityPredicate[R]) Bind(fid record.FieldID, v any) error {
	if _, ok := p.bound[fid]; ok {
		return generr.NewInvariantViolation("predicate field bound twice")
	}
	p.bound[fid] = v
	return nil
}

// Get returns the value bound to fid, if any.
func (p *EqualityPredicate[R]) Get(fid record.FieldID) (any, bool) {
	v, ok := p.bound[fid]
	return v, ok
}

// IsBound reports whether fid has been bound.
func (p *EqualityPredicate[R]) IsBound(fid record.FieldID) bool {
	_, ok := p.bound[fid]
	return ok
}
