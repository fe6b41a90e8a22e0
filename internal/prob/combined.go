package prob

import "sort"

// ExactValue is one exact-value/probability pair in a combined histogram.
type ExactValue struct {
	Value float64
	Prob  float64
}

// Bucket is one non-overlapping [Min, Max) bucket and its probability mass.
type Bucket struct {
	Min, Max float64
	Prob     float64
}

// segment is one domain-ordered slice of probability mass, either a single
// exact value (zero width) or a bucket interval. Combined keeps exact values
// and buckets merged into one sorted slice so cdf/invcdf can binary-search a
// single cumulative array instead of searching two arrays and merging
// results by hand (spec.md §4.10: "binary-search into values and buckets").
type segment struct {
	start, end float64
	isBucket   bool
	prob       float64
}

// Combined is the combined discrete histogram (spec.md §4.10): exact values,
// buckets, and an explicit null mass, normalised to 1 at construction.
type Combined struct {
	segments []segment
	cumAt    []float64 // cumAt[i] = total non-null mass strictly before segments[i]; cumAt[len] = 1-nullProb
	nullProb float64
}

// NewCombined builds a Combined histogram from exact values, buckets, and a
// null probability, renormalising proportionally across the non-null mass
// if the totals deviate from 1 by more than Epsilon.
func NewCombined(exact []ExactValue, buckets []Bucket, nullProb float64) Combined {
	segs := make([]segment, 0, len(exact)+len(buckets))
	for _, e := range exact {
		segs = append(segs, segment{start: e.Value, end: e.Value, prob: e.Prob})
	}
	for _, b := range buckets {
		segs = append(segs, segment{start: b.Min, end: b.Max, isBucket: true, prob: b.Prob})
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].start < segs[j].start })

	var nonNull float64
	for _, s := range segs {
		nonNull += s.prob
	}
	total := nonNull + nullProb
	if total != 0 && absf(total-1) > Epsilon && nonNull > 0 {
		scale := (1 - nullProb) / nonNull
		for i := range segs {
			segs[i].prob *= scale
		}
	}

	cumAt := make([]float64, len(segs)+1)
	for i, s := range segs {
		cumAt[i+1] = cumAt[i] + s.prob
	}

	return Combined{segments: segs, cumAt: cumAt, nullProb: nullProb}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// NullProb returns the configured null probability mass.
func (c Combined) NullProb() float64 { return c.nullProb }

// NonNullMass returns the total probability mass excluding null, i.e. 1-nullProb.
func (c Combined) NonNullMass() float64 {
	if len(c.cumAt) == 0 {
		return 0
	}
	return c.cumAt[len(c.cumAt)-1]
}

// CDF returns the cumulative non-null probability at or below x.
func (c Combined) CDF(x float64) float64 {
	if len(c.segments) == 0 {
		return 0
	}
	// Rightmost segment whose start <= x.
	i := sort.Search(len(c.segments), func(i int) bool { return c.segments[i].start > x }) - 1
	if i < 0 {
		return 0
	}
	s := c.segments[i]
	if !s.isBucket || x >= s.end {
		return c.cumAt[i+1]
	}
	if s.end == s.start {
		return c.cumAt[i+1]
	}
	frac := (x - s.start) / (s.end - s.start)
	return c.cumAt[i] + s.prob*frac
}

// InvCDF returns the domain value whose cumulative probability is u, or the
// null sentinel if u falls in [1-nullProb, 1).
func (c Combined) InvCDF(u float64) Sample {
	nonNull := c.NonNullMass()
	if u >= nonNull {
		return Sample{IsNull: true}
	}
	if len(c.segments) == 0 {
		return Sample{IsNull: true}
	}
	// Rightmost boundary i such that cumAt[i] <= u.
	i := sort.Search(len(c.cumAt), func(i int) bool { return c.cumAt[i] > u }) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(c.segments) {
		i = len(c.segments) - 1
	}
	s := c.segments[i]
	if !s.isBucket {
		return Sample{Value: s.start}
	}
	if s.prob <= 0 {
		return Sample{Value: s.start}
	}
	frac := (u - c.cumAt[i]) / s.prob
	return Sample{Value: s.start + frac*(s.end-s.start)}
}

// Sample is an alias for InvCDF (spec.md §4.10: "sample(u) = invcdf(u)").
func (c Combined) Sample(u float64) Sample { return c.InvCDF(u) }

// PDF returns the density at x for a bucket-covered point, or +Inf mass
// represented as the point probability for an exact value; 0 elsewhere.
// Rarely used directly — cdf/invcdf drive providers — but kept for interface
// symmetry with Continuous.
func (c Combined) PDF(x float64) float64 {
	i := sort.Search(len(c.segments), func(i int) bool { return c.segments[i].start > x }) - 1
	if i < 0 || i >= len(c.segments) {
		return 0
	}
	s := c.segments[i]
	if !s.isBucket {
		if s.start == x {
			return s.prob
		}
		return 0
	}
	if x < s.start || x >= s.end || s.end == s.start {
		return 0
	}
	return s.prob / (s.end - s.start)
}
