package prob

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Scenario 3 (spec.md §8): exact value 5 -> 0.25, bucket [10,20) -> 0.5,
// bucket [20,30) -> 0.25, null 0.
func TestCombinedScenario3(t *testing.T) {
	c := NewCombined(
		[]ExactValue{{Value: 5, Prob: 0.25}},
		[]Bucket{{Min: 10, Max: 20, Prob: 0.5}, {Min: 20, Max: 30, Prob: 0.25}},
		0,
	)

	require.Equal(t, 5.0, c.Sample(0.0).Value)
	require.Equal(t, 15.0, c.Sample(0.5).Value)
	// Near the top of the final bucket's mass; the spec's "≈29" is the
	// floor of this interpolated value, not an exact target.
	require.InDelta(t, 29.996, c.Sample(0.9999).Value, 1e-6)
}

func TestCombinedNullSentinelBeyondNonNullMass(t *testing.T) {
	c := NewCombined([]ExactValue{{Value: 1, Prob: 0.5}}, nil, 0.5)
	require.True(t, c.Sample(0.5).IsNull)
	require.True(t, c.Sample(0.99).IsNull)
	require.False(t, c.Sample(0.49).IsNull)
}

func TestCombinedRenormalizesWhenOffByMoreThanEpsilon(t *testing.T) {
	// exact+bucket sums to 0.8, null 0 -> total 0.8, off by more than eps.
	c := NewCombined(
		[]ExactValue{{Value: 1, Prob: 0.4}},
		[]Bucket{{Min: 2, Max: 3, Prob: 0.4}},
		0,
	)
	require.InDelta(t, 1.0, c.NonNullMass(), 1e-9)
}

func TestCombinedCDFMonotoneNonDecreasing(t *testing.T) {
	c := NewCombined(
		[]ExactValue{{Value: 5, Prob: 0.25}},
		[]Bucket{{Min: 10, Max: 20, Prob: 0.5}, {Min: 20, Max: 30, Prob: 0.25}},
		0,
	)
	xs := []float64{-1, 0, 5, 5.0001, 9, 10, 15, 19.999, 20, 25, 29.999, 30, 100}
	prev := -1.0
	for _, x := range xs {
		v := c.CDF(x)
		require.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestParetoCDFInvCDFRoundTrip(t *testing.T) {
	d := Pareto{Xm: 1, Alpha: 2}
	for _, u := range []float64{0.1, 0.5, 0.9} {
		x := d.InvCDF(u)
		require.InDelta(t, u, d.CDF(x), 1e-9)
	}
}

func TestNormalInvCDFSymmetricAroundMean(t *testing.T) {
	n := Normal{Mu: 10, Sigma: 2}
	require.InDelta(t, 10.0, n.InvCDF(0.5), 1e-6)
	lo := n.InvCDF(0.1)
	hi := n.InvCDF(0.9)
	require.InDelta(t, 20.0, lo+hi, 1e-6)
}

func TestTruncatedClipsToSubInterval(t *testing.T) {
	inner := Uniform{Min: 0, Max: 100}
	tr := NewTruncated(inner, 20, 40)
	require.InDelta(t, 20.0, tr.InvCDF(0), 1e-9)
	require.InDelta(t, 40.0, tr.InvCDF(1), 1e-9)
	require.InDelta(t, 30.0, tr.InvCDF(0.5), 1e-9)
}

// Scenario 6 (spec.md §8): 3 condition buckets; context field 17 lands in
// bucket #2 ([10,20) here); sample(0.5) equals bucket #2's inner invcdf(0.5).
func TestConditionalDelegatesToBucketContainingY(t *testing.T) {
	inner2 := NewCombined(nil, []Bucket{{Min: 0, Max: 100, Prob: 1}}, 0)
	cond := NewConditional([]CondBucket{
		{Min: 0, Max: 10, Inner: NewCombined(nil, []Bucket{{Min: 0, Max: 1, Prob: 1}}, 0)},
		{Min: 10, Max: 20, Inner: inner2},
		{Min: 20, Max: 30, Inner: NewCombined(nil, []Bucket{{Min: 0, Max: 1, Prob: 1}}, 0)},
	})

	got, ok := cond.Sample(0.5, 17)
	require.True(t, ok)
	want := inner2.Sample(0.5)
	require.Equal(t, want, got)
}

// TestCombinedPropertiesHoldForArbitraryHistograms checks spec.md §8's three
// combined-histogram invariants over randomly generated bucket layouts:
// normalised mass sums to 1 within Epsilon, CDF is monotone non-decreasing,
// and invcdf(cdf(x)) >= x at every bucket's left boundary.
func TestCombinedPropertiesHoldForArbitraryHistograms(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(t, "n")
		nullProb := rapid.Float64Range(0, 0.3).Draw(t, "nullProb")

		start := 0.0
		buckets := make([]Bucket, n)
		for i := 0; i < n; i++ {
			width := rapid.Float64Range(1, 10).Draw(t, fmt.Sprintf("width%d", i))
			prob := rapid.Float64Range(0.01, 1).Draw(t, fmt.Sprintf("prob%d", i))
			buckets[i] = Bucket{Min: start, Max: start + width, Prob: prob}
			start += width
		}

		c := NewCombined(nil, buckets, nullProb)

		require.InDelta(t, 1.0, c.NonNullMass()+c.NullProb(), 1e-9)

		prev := -1.0
		step := (start + 10) / 37
		for x := -5.0; x <= start+5; x += step {
			v := c.CDF(x)
			require.GreaterOrEqual(t, v, prev-1e-12)
			prev = v
		}

		for _, b := range buckets {
			u := c.CDF(b.Min)
			got := c.InvCDF(u)
			if !got.IsNull {
				require.GreaterOrEqual(t, got.Value, b.Min-1e-9)
			}
		}
	})
}

func TestConditionalMissReportsNotOK(t *testing.T) {
	cond := NewConditional([]CondBucket{{Min: 0, Max: 10, Inner: NewCombined(nil, nil, 1)}})
	_, ok := cond.Sample(0.1, 500)
	require.False(t, ok)
}
