// Package stage implements the iterator loop that drives a single record
// type's SetterChain across a partition range and schedules the per-type
// tasks that make up one generation stage (spec.md §4.11, §5).
package stage

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/lattice-data/seqgen/internal/generr"
	"github.com/lattice-data/seqgen/internal/output"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
	"github.com/lattice-data/seqgen/internal/setter"
)

// ProgressEvery is how many successfully emitted records pass between
// progress-counter updates and abort-flag polls (spec.md §4.11 "Update
// progress counter every 1000 records"; §5 "checks a shared abort flag at
// progress-update boundaries").
const ProgressEvery = 1000

// Progress is a lock-free, monotonically increasing counter one iterator
// task publishes and a separate reporting goroutine samples (spec.md §5).
type Progress struct {
	done atomic.Uint64
}

func (p *Progress) set(n uint64) { p.done.Store(n) }

// Get returns the number of records emitted so far.
func (p *Progress) Get() uint64 { return p.done.Load() }

// Encoder turns a materialised record into the bytes an OutputCollector
// writes (spec.md §6 "binary mode").
type Encoder[R record.Record] func(R) []byte

// RunIterator evaluates record type R's chain across [begin, end)
// (spec.md §4.11): for each position, build a fresh record at gen_id = p,
// seek prng to that chunk, run the chain, emit the result, and advance to
// the next chunk. A chain.Run that raises InvalidRecord jumps p to
// NextValidGenID and re-seeks instead of emitting or aborting (spec.md
// §4.6). Any other error aborts the task and is returned to the caller,
// which the stage Driver turns into the stage's first fatal error
// (spec.md §5, §7).
//
// chain must be in setter.ModeSequential: RunIterator owns prng
// positioning via AtChunk/NextChunk itself, in gen_id order, exactly as
// the sequential contract assumes.
func RunIterator[R record.Record](
	ctx context.Context,
	factory record.Factory[R],
	chain *setter.Chain[R],
	prng rng.Stream,
	begin, end uint64,
	encode Encoder[R],
	sink output.OutputCollector,
	progress *Progress,
) error {
	if chain.Mode != setter.ModeSequential {
		return generr.NewInvariantViolation("RunIterator requires a chain in ModeSequential")
	}

	sinceUpdate := 0
	for p := begin; p < end; {
		prng.AtChunk(p)

		r := factory()
		r.SetGenID(p)

		err := chain.Run(r, prng)
		var invalid *generr.InvalidRecord
		if errors.As(err, &invalid) {
			progress.set(invalid.NextValidGenID - begin)
			p = invalid.NextValidGenID
			continue
		}
		if err != nil {
			return err
		}

		if err := sink.Collect(encode(r)); err != nil {
			return err
		}

		p++
		prng.NextChunk()

		sinceUpdate++
		if sinceUpdate >= ProgressEvery {
			progress.set(p - begin)
			sinceUpdate = 0
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	}
	progress.set(end - begin)
	return nil
}
