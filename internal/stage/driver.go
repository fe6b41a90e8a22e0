package stage

import (
	"context"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lattice-data/seqgen/internal/generr"
)

// Task is one record type's iterator work for a stage (spec.md §4.11: "one
// iterator task per record type per stage").
type Task func(ctx context.Context) error

// NamedStage groups the tasks that belong to one generation stage.
type NamedStage struct {
	Name  string
	Tasks []Task
}

// RunStage runs tasks concurrently through a bounded worker pool (spec.md
// §5: "a small bounded worker pool runs one iterator task per record type
// per stage in parallel OS threads"), awaits all of them, and returns the
// first error any task reports wrapped in GenerationAborted. maxWorkers <=
// 0 defaults to runtime.NumCPU().
//
// Grounded on solidcoredata-dca's errgroup.WithContext/group.Go/group.Wait
// RunAll; the semaphore channel bounding concurrency is the teacher's
// buffered-channel idiom (internal/disruptor/batcher.go) applied to
// scheduling instead of batching.
func RunStage(ctx context.Context, stageName string, maxWorkers int, tasks ...Task) error {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	log.Printf("Starting stage %q with %d task(s), %d worker(s)", stageName, len(tasks), maxWorkers)

	group, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxWorkers)

	for _, task := range tasks {
		task := task
		sem <- struct{}{}
		group.Go(func() error {
			defer func() { <-sem }()
			return task(gctx)
		})
	}

	if err := group.Wait(); err != nil {
		log.Printf("ERROR: stage %q aborted: %v", stageName, err)
		return &generr.GenerationAborted{Stage: stageName, First: err}
	}
	log.Printf("Stage %q complete", stageName)
	return nil
}

// RunStages runs each stage in order (spec.md §5 "the stage driver awaits
// completion of all tasks before starting the next stage, giving
// cross-stage happens-before"), stopping at the first stage that fails.
func RunStages(ctx context.Context, maxWorkers int, stages []NamedStage) error {
	for _, st := range stages {
		if err := RunStage(ctx, st.Name, maxWorkers, st.Tasks...); err != nil {
			return err
		}
	}
	return nil
}
