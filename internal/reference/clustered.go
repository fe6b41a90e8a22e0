// Package reference implements the two reference-provider flavours that
// resolve a child record's parent (spec.md §4.7): Clustered, which derives
// the parent deterministically from position, and Random, which looks the
// parent up by an EqualityPredicate over a child-carried key.
package reference

import (
	"github.com/lattice-data/seqgen/internal/generr"
	"github.com/lattice-data/seqgen/internal/provider"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// Clustered derives a child's parent from position: parent_id = p /
// MaxChildren, slot = p mod MaxChildren. The parent record is cached by
// last parent_id, a single slot per provider instance (spec.md §9 "this
// spec prescribes a single-slot cache" — the Open Question about
// replacement policy is resolved that way). If slot >= children_count(parent)
// the position has no valid child, so Resolve raises InvalidRecord (spec.md
// §4.6-§4.7).
type Clustered[C record.Record, P record.Record] struct {
	MaxChildren   uint64
	ChildrenCount provider.ValueProvider[P, int]
	Parent        *Inspector[P]
	// SetSlot optionally records which child slot of the parent this
	// child occupies; nil if the record type has no such field.
	SetSlot func(child C, slot uint64)

	cachedParentID uint64
	cachedParent   P
	cacheValid     bool
}

func (c *Clustered[C, P]) Arity() uint16    { return 0 }
func (c *Clustered[C, P]) Invertible() bool { return true }

func (c *Clustered[C, P]) Resolve(child C, prng rng.Stream) (uint64, error) {
	p := child.GenID()
	parentID := p / c.MaxChildren
	slot := p % c.MaxChildren

	if !c.cacheValid || c.cachedParentID != parentID {
		parent, err := c.Parent.At(parentID)
		if err != nil {
			return 0, err
		}
		c.cachedParent = parent
		c.cachedParentID = parentID
		c.cacheValid = true
	}

	n := uint64(c.ChildrenCount.Apply(c.cachedParent, nil))
	if slot >= n {
		return 0, generr.NewInvalidRecord(p, c.MaxChildren, n)
	}
	if c.SetSlot != nil {
		c.SetSlot(child, slot)
	}
	return c.cachedParent.GenID(), nil
}

// ReferenceRange returns [parentID*MaxChildren, (parentID+1)*MaxChildren)
// (spec.md §4.7).
func (c *Clustered[C, P]) ReferenceRange(parentID uint64) (provider.Interval, bool) {
	return provider.Interval{Begin: parentID * c.MaxChildren, End: (parentID + 1) * c.MaxChildren}, true
}
