package generr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario 2 (spec.md §8): max_children=10, children_count constant 7:
// positions 7,8,9 are invalid; next valid position is 10.
func TestNewInvalidRecordNextValidGenID(t *testing.T) {
	ir := NewInvalidRecord(7, 10, 7)
	require.Equal(t, uint64(10), ir.NextValidGenID)

	ir = NewInvalidRecord(8, 10, 7)
	require.Equal(t, uint64(10), ir.NextValidGenID)

	ir = NewInvalidRecord(9, 10, 7)
	require.Equal(t, uint64(10), ir.NextValidGenID)
}

func TestConfigErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	e := &ConfigError{Key: "k", Reason: "bad", Err: inner}
	require.ErrorIs(t, e, inner)
}

func TestGenerationAbortedUnwrapsFirstError(t *testing.T) {
	first := NewInvariantViolation("normalisation failed")
	e := &GenerationAborted{Stage: "load", First: first}
	require.ErrorIs(t, e, first)
}
