// Package prob implements the three probability-function families used to
// drive value providers (spec.md §4.10): parametric continuous
// distributions, combined discrete histograms, and conditional combined
// histograms. All three are immutable once constructed. The parametric
// distributions share the Continuous interface; Combined exposes PDF, CDF,
// InvCDF and Sample returning a Sample; Conditional exposes only CDF and
// Sample, each keyed by the condition value, and has no PDF or InvCDF.
//
// Combined and Conditional operate over a float64-valued ordinal domain
// rather than a generic T: callers that need another domain type map it
// to/from a float64 ordinal themselves at the provider boundary (the toT
// functions of provider.NewRandomCombined and NewConditionalRandom); this
// package has no enum or Date conversion of its own.
package prob

// Epsilon is the renormalisation tolerance for combined histograms
// (spec.md §4.10: "if the sum ... deviates from 1 by more than ε = 10⁻⁶").
const Epsilon = 1e-6

// Continuous is satisfied by every parametric distribution.
type Continuous interface {
	PDF(x float64) float64
	CDF(x float64) float64
	InvCDF(u float64) float64
	Sample(u float64) float64
}

// Sample is the result of drawing from a discrete (combined or conditional
// combined) histogram: either an ordinal value, or the explicit null
// sentinel the spec requires histograms to carry.
type Sample struct {
	Value  float64
	IsNull bool
}
