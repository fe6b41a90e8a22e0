package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
# comment
application.scaling-factor = 1.0
application.node-id = 0
application.node-count = 1
application.output-base = /tmp/out
application.output-type = file
application.job-id = job1
application.config-dir = /etc/seqgen
common.master.seed = 42,43,44,45,46,47
partitioning.A.cardinality = 1000
partitioning.B.base-cardinality = 100
`

func TestLoadParsesRecognizedKeys(t *testing.T) {
	cfg, err := Load("cfg.properties", strings.NewReader(sampleConfig))
	require.NoError(t, err)
	require.Equal(t, 1.0, cfg.ScalingFactor)
	require.Equal(t, 0, cfg.NodeID)
	require.Equal(t, 1, cfg.NodeCount)
	require.Equal(t, OutputFile, cfg.OutputType)
	require.Equal(t, []uint64{42, 43, 44, 45, 46, 47}, cfg.MasterSeed)
	require.Equal(t, uint64(1000), cfg.Partitioning["A"].Cardinality)
	require.Equal(t, uint64(100), cfg.Partitioning["B"].BaseCardinality)
}

func TestLoadRejectsScalingFactorBelowOne(t *testing.T) {
	src := strings.Replace(sampleConfig, "application.scaling-factor = 1.0", "application.scaling-factor = 0.5", 1)
	_, err := Load("cfg.properties", strings.NewReader(src))
	require.Error(t, err)
}

func TestLoadRejectsUnknownOutputType(t *testing.T) {
	src := strings.Replace(sampleConfig, "application.output-type = file", "application.output-type = carrier-pigeon", 1)
	_, err := Load("cfg.properties", strings.NewReader(src))
	require.Error(t, err)
}

func TestCardinalityModels(t *testing.T) {
	cfg, err := Load("cfg.properties", strings.NewReader(sampleConfig))
	require.NoError(t, err)

	fixed, err := cfg.Cardinality("A", nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), fixed)

	cfg.ScalingFactor = 2.0
	linear, err := cfg.Cardinality("B", nil)
	require.NoError(t, err)
	require.Equal(t, uint64(200), linear)
}

// Scenario 5 (spec.md §8): two-node partition of cardinality 1000: node 0
// emits [0, 500), node 1 emits [500, 1000).
func TestNodeSliceScenario5(t *testing.T) {
	cfg := &Config{NodeCount: 2, NodeID: 0}
	begin, end := cfg.NodeSlice(1000)
	require.Equal(t, uint64(0), begin)
	require.Equal(t, uint64(500), end)

	cfg2 := &Config{NodeCount: 2, NodeID: 1}
	begin2, end2 := cfg2.NodeSlice(1000)
	require.Equal(t, uint64(500), begin2)
	require.Equal(t, uint64(1000), end2)
}
