package rng

// compoundStream is the "compound inversive" HRNG implementation: six
// eicgStreams, each over a distinct prime near 2^31, whose fractional
// outputs are summed modulo 1 (spec.md §4.1). Because every eicgStream
// evaluates an explicit formula of the position rather than iterating a
// recursion, every Stream operation below is O(1).
type compoundStream struct {
	streams [6]eicgStream

	baseSeed     uint64
	substreamIdx uint64
	chunkIdx     uint64
	elementIdx   uint64
}

func newCompoundStream(seed uint64) Stream {
	var s compoundStream
	s.baseSeed = seed
	for i := 0; i < 6; i++ {
		// Fold the seed into each stream's additive constant so distinct
		// seeds produce independent-looking sequences without disturbing
		// the modulus/multiplier that define the stream's period.
		c := (sixAdditives[i] + seed) % sixPrimes[i]
		s.streams[i] = newEICGStream(sixPrimes[i], sixMultipliers[i], c)
	}
	return &s
}

func (s *compoundStream) draw() float64 {
	var sum float64
	for i := range s.streams {
		sum += s.streams[i].fraction(s.substreamIdx, s.chunkIdx, s.elementIdx)
	}
	_, frac := splitFrac(sum)
	return frac
}

func splitFrac(x float64) (int64, float64) {
	ip := float64(int64(x))
	return int64(ip), x - ip
}

func (s *compoundStream) Next() float64 {
	v := s.draw()
	s.elementIdx += ElementOffset
	return v
}

func (s *compoundStream) AtChunk(p uint64) {
	s.chunkIdx = p
	s.elementIdx = 0
}

func (s *compoundStream) NextChunk() {
	s.chunkIdx++
	s.elementIdx = 0
}

func (s *compoundStream) ResetChunk() {
	s.elementIdx = 0
}

func (s *compoundStream) NextSubstream() {
	s.substreamIdx++
	s.chunkIdx = 0
	s.elementIdx = 0
}

func (s *compoundStream) ResetSubstream() {
	s.chunkIdx = 0
	s.elementIdx = 0
}

func (s *compoundStream) Skip(k uint64) {
	s.elementIdx += k * ElementOffset
}

func (s *compoundStream) Seed(seed uint64) {
	s.substreamIdx = seed
	s.chunkIdx = seed
	s.elementIdx = seed
}

func (s *compoundStream) SeedValue() uint64 {
	return s.elementIdx
}

func (s *compoundStream) Clone() Stream {
	cp := *s
	return &cp
}
