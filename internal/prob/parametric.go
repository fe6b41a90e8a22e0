package prob

import "math"

// Uniform is the continuous uniform distribution on [Min, Max).
type Uniform struct {
	Min, Max float64
}

func (u Uniform) PDF(x float64) float64 {
	if x < u.Min || x >= u.Max {
		return 0
	}
	return 1 / (u.Max - u.Min)
}

func (u Uniform) CDF(x float64) float64 {
	switch {
	case x < u.Min:
		return 0
	case x >= u.Max:
		return 1
	default:
		return (x - u.Min) / (u.Max - u.Min)
	}
}

func (u Uniform) InvCDF(p float64) float64 {
	return u.Min + p*(u.Max-u.Min)
}

func (u Uniform) Sample(p float64) float64 { return u.InvCDF(p) }

// Normal is the Gaussian distribution with mean Mu and standard deviation
// Sigma.
type Normal struct {
	Mu, Sigma float64
}

func (n Normal) PDF(x float64) float64 {
	z := (x - n.Mu) / n.Sigma
	return math.Exp(-0.5*z*z) / (n.Sigma * math.Sqrt(2*math.Pi))
}

func (n Normal) CDF(x float64) float64 {
	return 0.5 * math.Erfc(-(x-n.Mu)/(n.Sigma*math.Sqrt2))
}

func (n Normal) InvCDF(p float64) float64 {
	return n.Mu + n.Sigma*normInvCDF(p)
}

func (n Normal) Sample(p float64) float64 { return n.InvCDF(p) }

// Pareto is the Type-I Pareto distribution with scale Xm (minimum value)
// and shape Alpha.
type Pareto struct {
	Xm, Alpha float64
}

func (d Pareto) PDF(x float64) float64 {
	if x < d.Xm {
		return 0
	}
	return d.Alpha * math.Pow(d.Xm, d.Alpha) / math.Pow(x, d.Alpha+1)
}

func (d Pareto) CDF(x float64) float64 {
	if x < d.Xm {
		return 0
	}
	return 1 - math.Pow(d.Xm/x, d.Alpha)
}

func (d Pareto) InvCDF(p float64) float64 {
	return d.Xm / math.Pow(1-p, 1/d.Alpha)
}

func (d Pareto) Sample(p float64) float64 { return d.InvCDF(p) }

// Truncated restricts an inner Continuous distribution to [Low, High),
// re-parameterising cdf/invcdf by clipping to the allowed sub-interval
// (spec.md §4.10: "truncated variants re-parameterise by clipping CDF to
// the allowed sub-interval").
type Truncated struct {
	Inner      Continuous
	Low, High  float64
	cdfLow     float64
	cdfSpan    float64
	normalized bool
}

// NewTruncated precomputes the inner CDF at the truncation bounds so every
// subsequent CDF/InvCDF call is an O(1) affine remap.
func NewTruncated(inner Continuous, low, high float64) Truncated {
	cl := inner.CDF(low)
	ch := inner.CDF(high)
	return Truncated{Inner: inner, Low: low, High: high, cdfLow: cl, cdfSpan: ch - cl, normalized: true}
}

func (t Truncated) PDF(x float64) float64 {
	if x < t.Low || x >= t.High || t.cdfSpan <= 0 {
		return 0
	}
	return t.Inner.PDF(x) / t.cdfSpan
}

func (t Truncated) CDF(x float64) float64 {
	switch {
	case x < t.Low:
		return 0
	case x >= t.High:
		return 1
	case t.cdfSpan <= 0:
		return 0
	default:
		return (t.Inner.CDF(x) - t.cdfLow) / t.cdfSpan
	}
}

func (t Truncated) InvCDF(p float64) float64 {
	return t.Inner.InvCDF(t.cdfLow + p*t.cdfSpan)
}

func (t Truncated) Sample(p float64) float64 { return t.InvCDF(p) }
