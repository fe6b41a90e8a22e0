package config

import (
	"math"

	"github.com/lattice-data/seqgen/internal/generr"
)

// Cardinality resolves a record type's total sequence length from its
// Partitioning model (spec.md §3): fixed is independent of the scaling
// factor; linear rounds scaling_factor*base_cardinality; nested derives
// from a parent type's already-resolved cardinality (resolved must already
// contain parentType's value).
func (c *Config) Cardinality(typeName string, resolved map[string]uint64) (uint64, error) {
	p, ok := c.Partitioning[typeName]
	if !ok {
		return 0, generr.NewConfigError("partitioning."+typeName, "no partitioning configured")
	}
	switch p.Model {
	case ModelFixed:
		return p.Cardinality, nil
	case ModelLinear:
		return uint64(math.Round(c.ScalingFactor * float64(p.BaseCardinality))), nil
	case ModelNested:
		parent, ok := resolved[p.ParentType]
		if !ok {
			return 0, generr.NewConfigError("partitioning."+typeName, "parent type "+p.ParentType+" not yet resolved")
		}
		return parent, nil
	default:
		return 0, generr.NewConfigError("partitioning."+typeName, "unknown partitioning model")
	}
}

// NodeSlice splits [0, cardinality) into NodeCount contiguous, evenly sized
// slices (the last absorbing any remainder) and returns the slice owned by
// this node (spec.md §3; scenario 5, spec.md §8: a two-node partition of
// cardinality 1000 gives node 0 [0,500) and node 1 [500,1000)).
//
// NodeSlice does not look at the partitioning model. A fixed-model type is
// owned entirely by node 0 (spec.md §3), so demo.BuildStages gives such a
// type the whole range on node 0 and an empty range on every other node
// instead of calling NodeSlice for it.
func (c *Config) NodeSlice(cardinality uint64) (begin, end uint64) {
	per := cardinality / uint64(c.NodeCount)
	begin = uint64(c.NodeID) * per
	end = begin + per
	if c.NodeID == c.NodeCount-1 {
		end = cardinality
	}
	return begin, end
}
