package rng

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hashStream is the "hash" HRNG implementation: a single 64-bit state,
// advanced by integer offsets per level, transformed through a fixed
// bijective avalanche before being exposed as a double (spec.md §4.1).
//
// The avalanche is xxhash's finalizer applied to the 8-byte encoding of the
// state: Sum64 of a fixed-size buffer is exactly "a single 64-bit state
// transformed by a fixed bijective avalanche" the spec calls for, and it is
// a real dependency already present in the corpus (rate-limiter/gateway),
// not a hand-rolled mixer.
type hashStream struct {
	baseSeed     uint64
	substreamIdx uint64
	chunkIdx     uint64
	elementIdx   uint64
}

func newHashStream(seed uint64) Stream {
	return &hashStream{baseSeed: seed}
}

func avalanche64(state uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], state)
	return xxhash.Sum64(buf[:])
}

func (s *hashStream) state() uint64 {
	// Additive offsets per level; wraparound on uint64 is harmless here
	// because the avalanche step below destroys any arithmetic structure
	// the addition would otherwise leave behind.
	return s.baseSeed +
		s.substreamIdx*SubstreamOffsetValue +
		s.chunkIdx*ChunkOffset +
		s.elementIdx*ElementOffset
}

func (s *hashStream) draw() float64 {
	h := avalanche64(s.state())
	// 53 significant bits fit exactly in a float64 mantissa.
	return float64(h>>11) / float64(uint64(1)<<53)
}

func (s *hashStream) Next() float64 {
	v := s.draw()
	s.elementIdx += ElementOffset
	return v
}

func (s *hashStream) AtChunk(p uint64) {
	s.chunkIdx = p
	s.elementIdx = 0
}

func (s *hashStream) NextChunk() {
	s.chunkIdx++
	s.elementIdx = 0
}

func (s *hashStream) ResetChunk() {
	s.elementIdx = 0
}

func (s *hashStream) NextSubstream() {
	s.substreamIdx++
	s.chunkIdx = 0
	s.elementIdx = 0
}

func (s *hashStream) ResetSubstream() {
	s.chunkIdx = 0
	s.elementIdx = 0
}

func (s *hashStream) Skip(k uint64) {
	s.elementIdx += k * ElementOffset
}

func (s *hashStream) Seed(seed uint64) {
	s.substreamIdx = seed
	s.chunkIdx = seed
	s.elementIdx = seed
}

func (s *hashStream) SeedValue() uint64 {
	return s.elementIdx
}

func (s *hashStream) Clone() Stream {
	cp := *s
	return &cp
}
