package rng

import "math/big"

// eicgStream is one explicit inversive congruential stream: for an index n
// it computes x_n = a * inverse(n + c) mod p directly, with no recursive
// state — exactly what makes at_chunk/skip/seek O(1): the caller never
// replays intermediate positions, it evaluates the explicit formula at the
// requested index.
//
// inverse(0) is defined as 0, the standard ICG convention for the rare
// position where n+c is a multiple of p.
type eicgStream struct {
	p, a, c uint64
	pBig    *big.Int
}

func newEICGStream(p, a, c uint64) eicgStream {
	return eicgStream{p: p, a: a, c: c, pBig: new(big.Int).SetUint64(p)}
}

// valueAt returns x_n in [0, p) for the index built from the three position
// levels, each first reduced mod p so the multiplication below never
// overflows uint64 regardless of how large chunkIdx (a gen_id) grows.
func (s eicgStream) valueAt(substreamIdx, chunkIdx, elementIdx uint64) uint64 {
	p := s.p
	substreamTerm := mulmod(substreamIdx%p, substreamStride%p, p)
	chunkTerm := mulmod(chunkIdx%p, chunkStride%p, p)
	n := (substreamTerm + chunkTerm + elementIdx%p) % p

	arg := (n + s.c) % p
	if arg == 0 {
		return 0
	}
	inv := modInverse(arg, p, s.pBig)
	return mulmod(s.a%p, inv, p)
}

// fraction returns valueAt as a double in [0, 1).
func (s eicgStream) fraction(substreamIdx, chunkIdx, elementIdx uint64) float64 {
	return float64(s.valueAt(substreamIdx, chunkIdx, elementIdx)) / float64(s.p)
}

func mulmod(a, b, m uint64) uint64 {
	return new(big.Int).Mod(
		new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b)),
		new(big.Int).SetUint64(m),
	).Uint64()
}

func modInverse(x, p uint64, pBig *big.Int) uint64 {
	xBig := new(big.Int).SetUint64(x % p)
	inv := new(big.Int).ModInverse(xBig, pBig)
	if inv == nil {
		return 0
	}
	return inv.Uint64()
}

// Strides used to fold the three position levels into each stream's index
// space before reduction mod p. Distinct from zero and from each other so
// that varying any one level alone changes every stream's output.
const (
	substreamStride uint64 = 4_294967291 // largest prime below 2^32
	chunkStride     uint64 = 1 << 30
)

// sixPrimes are six distinct primes near 2^31, each driving one inversive
// stream; sixMultipliers/sixAdditives are arbitrary nonzero constants below
// each prime, chosen distinct per spec.md §4.1 ("six extended inversive
// congruential streams over six distinct primes near 2^31").
var sixPrimes = [6]uint64{
	2147483647, // 2^31 - 1 (Mersenne prime)
	2147483629,
	2147483587,
	2147483579,
	2147483563,
	2147483549,
}

var sixMultipliers = [6]uint64{
	16807, 48271, 69621, 630360016, 742938285, 16555,
}

var sixAdditives = [6]uint64{
	1, 7919, 104729, 1299709, 15485863, 179424673,
}
