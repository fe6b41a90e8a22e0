package prob

import "sort"

// CondBucket pairs a condition-domain bucket [Min, Max) with the combined
// histogram to sample when a context field's value falls inside it.
type CondBucket struct {
	Min, Max float64
	Inner    Combined
}

// Conditional is the conditional combined probability (spec.md §4.10): a
// partitioning of the condition domain into buckets, each holding an
// independent Combined histogram.
type Conditional struct {
	buckets []CondBucket
}

// NewConditional builds a Conditional from buckets sorted by Min ascending;
// the caller (histfile loader) is responsible for ensuring they are
// non-overlapping, same as Combined's own buckets.
func NewConditional(buckets []CondBucket) Conditional {
	sorted := append([]CondBucket(nil), buckets...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })
	return Conditional{buckets: sorted}
}

// bucketFor returns the inner histogram whose condition range contains y, or
// false if y falls outside every configured condition bucket.
func (c Conditional) bucketFor(y float64) (Combined, bool) {
	i := sort.Search(len(c.buckets), func(i int) bool { return c.buckets[i].Max > y })
	if i >= len(c.buckets) {
		return Combined{}, false
	}
	b := c.buckets[i]
	if y < b.Min || y >= b.Max {
		return Combined{}, false
	}
	return b.Inner, true
}

// CDF looks up the inner histogram by condition y and evaluates it at x.
func (c Conditional) CDF(x, y float64) (float64, bool) {
	inner, ok := c.bucketFor(y)
	if !ok {
		return 0, false
	}
	return inner.CDF(x), true
}

// Sample looks up the inner histogram by condition y and samples it with u.
func (c Conditional) Sample(u, y float64) (Sample, bool) {
	inner, ok := c.bucketFor(y)
	if !ok {
		return Sample{}, false
	}
	return inner.Sample(u), true
}
