package stage

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lattice-data/seqgen/internal/generr"
)

func TestRunStageAwaitsAllTasks(t *testing.T) {
	var ran atomic.Int32
	tasks := make([]Task, 5)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}
	}
	err := RunStage(context.Background(), "stage-1", 2, tasks...)
	require.NoError(t, err)
	require.Equal(t, int32(5), ran.Load())
}

func TestRunStageWrapsFirstErrorInGenerationAborted(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return boom },
	}
	err := RunStage(context.Background(), "stage-x", 2, tasks...)
	require.Error(t, err)
	var aborted *generr.GenerationAborted
	require.ErrorAs(t, err, &aborted)
	require.Equal(t, "stage-x", aborted.Stage)
	require.ErrorIs(t, err, boom)
}

func TestRunStagesStopsAtFirstFailingStage(t *testing.T) {
	boom := errors.New("boom")
	var secondStageRan atomic.Bool
	stages := []NamedStage{
		{Name: "A", Tasks: []Task{func(ctx context.Context) error { return boom }}},
		{Name: "B", Tasks: []Task{func(ctx context.Context) error { secondStageRan.Store(true); return nil }}},
	}
	err := RunStages(context.Background(), 2, stages)
	require.Error(t, err)
	require.False(t, secondStageRan.Load())
}

func TestRunStageRespectsConcurrencyBound(t *testing.T) {
	var active atomic.Int32
	var maxActive atomic.Int32
	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error {
			n := active.Add(1)
			defer active.Add(-1)
			for {
				cur := maxActive.Load()
				if n <= cur || maxActive.CompareAndSwap(cur, n) {
					break
				}
			}
			return nil
		}
	}
	require.NoError(t, RunStage(context.Background(), "bounded", 3, tasks...))
	require.LessOrEqual(t, maxActive.Load(), int32(3))
}
