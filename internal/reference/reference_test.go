package reference

import (
	"errors"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/lattice-data/seqgen/internal/generr"
	"github.com/lattice-data/seqgen/internal/provider"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
	"github.com/lattice-data/seqgen/internal/setter"
	"github.com/stretchr/testify/require"
)

type typeA struct {
	record.Base
	Key int
}

type typeB struct {
	record.Base
	Parent record.Ref[*typeA]
	Slot   uint64
}

const fieldKey record.FieldID = 0

func parentChain(cardinality uint64) *setter.Chain[*typeA] {
	chain := setter.NewChain[*typeA](setter.ModeRandom, cardinality)
	chain.Add(setter.FieldSetter[*typeA, int]{
		FID:      fieldKey,
		VP:       provider.Const[*typeA, int]{Value: 7, Cardinality: cardinality},
		GetField: func(r *typeA) int { return r.Key },
		SetField: func(r *typeA, v int) { r.Key = v },
	})
	return chain
}

// Scenario 2 (spec.md §8): B cardinality 100, max_children 10, children_count
// constant 7: B[0..6].parent = A[0], B[7..9] raise InvalidRecord, next valid
// position is 10.
func TestClusteredResolveScenario2(t *testing.T) {
	factory := func() *typeA { return &typeA{} }
	insp := NewInspector[*typeA](factory, rng.New(rng.KindHash, []uint64{1}), parentChain(1000))

	cr := &Clustered[*typeB, *typeA]{
		MaxChildren:   10,
		ChildrenCount: provider.Const[*typeA, int]{Value: 7},
		Parent:        insp,
	}

	for p := uint64(0); p <= 6; p++ {
		child := &typeB{}
		child.SetGenID(p)
		parentGenID, err := cr.Resolve(child, nil)
		require.NoError(t, err)
		require.Equal(t, uint64(0), parentGenID)
	}

	for p := uint64(7); p <= 9; p++ {
		child := &typeB{}
		child.SetGenID(p)
		_, err := cr.Resolve(child, nil)
		require.Error(t, err)
		var invalid *generr.InvalidRecord
		require.True(t, errors.As(err, &invalid))
		require.Equal(t, uint64(10), invalid.NextValidGenID)
	}
}

// TestClusteredReferenceRangeBlocksTileChildSequence checks, with a roaring
// bitmap per parent, that ReferenceRange's fixed-width blocks tile the whole
// child gen_id space exactly once each — no gap and no overlap between the
// block owned by parent k and the block owned by parent k+1.
func TestClusteredReferenceRangeBlocksTileChildSequence(t *testing.T) {
	cr := &Clustered[*typeB, *typeA]{MaxChildren: 10}

	union := roaring.New()
	for parentGenID := uint64(0); parentGenID < 50; parentGenID++ {
		iv, ok := cr.ReferenceRange(parentGenID)
		require.True(t, ok)
		require.Equal(t, uint64(10), iv.End-iv.Begin)

		block := roaring.New()
		block.AddRange(uint64(iv.Begin), uint64(iv.End))
		require.True(t, roaring.AndCardinality(union, block) == 0, "parent %d's block overlaps an earlier one", parentGenID)
		union.Or(block)
	}
	require.Equal(t, uint64(500), union.GetCardinality())
}

func TestClusteredReferenceRange(t *testing.T) {
	cr := &Clustered[*typeB, *typeA]{MaxChildren: 10}
	iv, ok := cr.ReferenceRange(3)
	require.True(t, ok)
	require.Equal(t, provider.Interval{Begin: 30, End: 40}, iv)
}

// Scenario 4 (spec.md §8): child field key=7, parent invertible chain maps
// key=7 to [100,110); provider returns a parent whose gen_id is drawn
// uniformly in [100,110) from one PRNG call.
func TestRandomResolveScenario4(t *testing.T) {
	factory := func() *typeA { return &typeA{} }
	insp := NewInspector[*typeA](factory, rng.New(rng.KindHash, []uint64{1}), parentChainWithRange(1000))

	rp := &Random[*typeB, *typeA]{
		Parent: insp,
		BuildPredicate: func(child *typeB) *setter.EqualityPredicate[*typeA] {
			pred := setter.NewEqualityPredicate[*typeA]()
			_ = pred.Bind(fieldKey, 7)
			return pred
		},
	}
	require.Equal(t, uint16(1), rp.Arity())

	s := rng.New(rng.KindHash, []uint64{1})
	child := &typeB{}
	child.SetGenID(0)
	parentGenID, err := rp.Resolve(child, s)
	require.NoError(t, err)
	require.GreaterOrEqual(t, parentGenID, uint64(100))
	require.Less(t, parentGenID, uint64(110))
}

// parentChainWithRange builds a parent chain where key=7 maps to positions
// [100,110) via a Clustered provider and every other block to a distinct
// key value, so the chain is invertible.
func parentChainWithRange(cardinality uint64) *setter.Chain[*typeA] {
	domain := []int{1, 7, 2}
	weights := []float64{0.1, 0.01, 0.89}
	clustered := provider.NewClustered[*typeA](cardinality, domain, weights)
	chain := setter.NewChain[*typeA](setter.ModeRandom, cardinality)
	chain.Add(setter.FieldSetter[*typeA, int]{
		FID:      fieldKey,
		VP:       clustered,
		GetField: func(r *typeA) int { return r.Key },
		SetField: func(r *typeA, v int) { r.Key = v },
	})
	return chain
}
