package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lattice-data/seqgen/internal/config"
	"github.com/lattice-data/seqgen/internal/output"
	"github.com/lattice-data/seqgen/internal/stage"
)

func testConfig() *config.Config {
	return &config.Config{
		ScalingFactor: 1.0,
		NodeID:        0,
		NodeCount:     1,
		OutputType:    config.OutputVoid,
		MasterSeed:    []uint64{42, 43, 44, 45, 46, 47},
		Partitioning: map[string]config.Partitioning{
			"A": {Model: config.ModelFixed, Cardinality: 1000},
			"B": {Model: config.ModelFixed, Cardinality: 100},
		},
	}
}

// Scenarios 1 and 2 (spec.md §8) run end to end: type A's 1000 positions
// all emit, type B's 100 positions emit only the 7-of-every-10 that are
// valid under max_children=10, children_count=7.
func TestBuildStagesRunsScenario1And2EndToEnd(t *testing.T) {
	ds, err := BuildStages(testConfig())
	require.NoError(t, err)

	require.NoError(t, stage.RunStages(context.Background(), 2, ds.Stages))
	require.NoError(t, ds.Close())

	voidA, ok := ds.Sinks[0].(*output.VoidCollector)
	require.True(t, ok)
	require.Equal(t, uint64(1000), voidA.Count())

	voidB, ok := ds.Sinks[1].(*output.VoidCollector)
	require.True(t, ok)
	require.Equal(t, uint64(70), voidB.Count(), "10 blocks of 10, 7 valid children each")
}
