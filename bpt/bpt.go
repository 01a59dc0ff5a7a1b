package bpt

import (
	"math"

	"github.com/cwbudde/algo-spectro/fit"
)

// Class is the BPT classification outcome.
type Class int

const (
	// StarForming lies below the Kauffmann demarcation.
	StarForming Class = iota
	// Composite lies between the Kauffmann and Kewley curves.
	Composite
	// Seyfert lies above the Kewley curve and above the Schawinski line.
	Seyfert
	// LINER lies above the Kewley curve but below the Schawinski line.
	LINER
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case StarForming:
		return "star-forming"
	case Composite:
		return "composite"
	case Seyfert:
		return "AGN (Seyfert)"
	case LINER:
		return "LINER"
	default:
		return "unknown"
	}
}

// Kauffmann03 evaluates the Kauffmann et al. (2003) star-forming/AGN
// demarcation at x = log([NII]/Halpha). The curve has a pole at x = 0.05;
// no clamping is applied there, the result is +-Inf.
func Kauffmann03(x float64) float64 {
	return 0.61/(x-0.05) + 1.3
}

// Kewley01 evaluates the Kewley et al. (2001) theoretical maximum-starburst
// curve at x = log([NII]/Halpha). Pole at x = 0.47, unclamped.
func Kewley01(x float64) float64 {
	return 0.61/(x-0.47) + 1.19
}

// Schawinski07 evaluates the Schawinski et al. (2007) Seyfert/LINER
// demarcation at x = log([NII]/Halpha).
func Schawinski07(x float64) float64 {
	return 1.89*x + 0.76
}

// Classify places a point on the primary BPT diagram. The precedence is
// order-sensitive: a point can lie above the Kewley curve and on either
// side of the Schawinski line, and the first matching branch wins.
func Classify(niiHa, oiiiHb float64) Class {
	switch {
	case oiiiHb < Kauffmann03(niiHa):
		return StarForming
	case oiiiHb < Kewley01(niiHa):
		return Composite
	case oiiiHb > Schawinski07(niiHa):
		return Seyfert
	default:
		return LINER
	}
}

// Ratio is one diagnostic log10 flux ratio with its propagated error.
// Valid is false when a required line is missing, failed, or non-positive.
type Ratio struct {
	Value float64
	Err   float64
	Valid bool
}

// Ratios collects the standard BPT diagnostic ratios. SIIHa uses the summed
// [SII]6716+6731 doublet flux.
type Ratios struct {
	NIIHa  Ratio
	OIIIHb Ratio
	SIIHa  Ratio
	OIHa   Ratio
}

// ComputeRatios derives the diagnostic ratios from fitted line results.
// Each ratio requires success and positive flux on both legs; missing
// inputs leave the corresponding ratio invalid rather than zero.
func ComputeRatios(results map[string]fit.Result) Ratios {
	var out Ratios

	ha, haOK := usable(results, "Halpha")
	hb, hbOK := usable(results, "Hbeta")

	if nii, ok := usable(results, "NII_6583"); ok && haOK {
		out.NIIHa = logRatio(nii.Flux, nii.FluxErr, ha.Flux, ha.FluxErr)
	}

	if oiii, ok := usable(results, "OIII_5007"); ok && hbOK {
		out.OIIIHb = logRatio(oiii.Flux, oiii.FluxErr, hb.Flux, hb.FluxErr)
	}

	s1, s1OK := usable(results, "SII_6716")
	s2, s2OK := usable(results, "SII_6731")

	if s1OK && s2OK && haOK {
		total := s1.Flux + s2.Flux
		totalErr := math.Hypot(s1.FluxErr, s2.FluxErr)
		out.SIIHa = logRatio(total, totalErr, ha.Flux, ha.FluxErr)
	}

	if oi, ok := usable(results, "OI_6300"); ok && haOK {
		out.OIHa = logRatio(oi.Flux, oi.FluxErr, ha.Flux, ha.FluxErr)
	}

	return out
}

// Classify applies the primary-diagram classification. ok is false when
// either required ratio is unavailable.
func (r Ratios) Classify() (Class, bool) {
	if !r.NIIHa.Valid || !r.OIIIHb.Valid {
		return 0, false
	}

	return Classify(r.NIIHa.Value, r.OIIIHb.Value), true
}

// logRatio computes log10(a/b) with first-order error propagation for
// independent positive quantities: err = (1/ln10) * sqrt((ea/a)^2+(eb/b)^2).
func logRatio(a, aErr, b, bErr float64) Ratio {
	if a <= 0 || b <= 0 {
		return Ratio{}
	}

	ra := aErr / a
	rb := bErr / b

	return Ratio{
		Value: math.Log10(a / b),
		Err:   math.Sqrt(ra*ra+rb*rb) / math.Ln10,
		Valid: true,
	}
}

func usable(results map[string]fit.Result, name string) (fit.Result, bool) {
	r, ok := results[name]
	if !ok || !r.Success || r.Flux <= 0 {
		return fit.Result{}, false
	}

	return r, true
}
