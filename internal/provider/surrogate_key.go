package provider

import (
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/rng"
)

// SurrogateKey derives an opaque but still-deterministic external-facing ID
// from gen_id by bit-interleaving its low 32 bits with a fixed per-type
// salt — for record types that want an ID distinct from the raw sequence
// position (e.g. an account number). Arity 0; invertible, since
// interleaving with a fixed salt is a bijection between the low 32 bits of
// gen_id and the resulting key.
type SurrogateKey[C record.Record] struct {
	Salt uint32
}

func (s SurrogateKey[C]) Arity() uint16    { return 0 }
func (s SurrogateKey[C]) Invertible() bool { return true }

func (s SurrogateKey[C]) Apply(ctx C, prng rng.Stream) uint64 {
	return interleave32(uint32(ctx.GenID()), s.Salt)
}

func (s SurrogateKey[C]) ValueRange(t uint64, ctx C) (Interval, bool) {
	genID, salt := deinterleave32(t)
	if salt != s.Salt {
		return Interval{}, true
	}
	return Interval{Begin: uint64(genID), End: uint64(genID) + 1}, true
}

// interleave32 places a's bits at even positions and b's bits at odd
// positions of the result, a Morton/Z-order style interleave.
func interleave32(a, b uint32) uint64 {
	var out uint64
	for i := 0; i < 32; i++ {
		out |= uint64((a>>i)&1) << uint(2*i)
		out |= uint64((b>>i)&1) << uint(2*i+1)
	}
	return out
}

func deinterleave32(x uint64) (a, b uint32) {
	for i := 0; i < 32; i++ {
		a |= uint32((x>>uint(2*i))&1) << uint(i)
		b |= uint32((x>>uint(2*i+1))&1) << uint(i)
	}
	return
}
