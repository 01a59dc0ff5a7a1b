package props

import (
	"math"

	"github.com/cwbudde/algo-spectro/fit"
)

// MetallicityCalibration selects the strong-line abundance calibration.
type MetallicityCalibration int

const (
	// PP04O3N2 is the Pettini & Pagel (2004) O3N2 index, needing
	// [OIII]5007, Hbeta, [NII]6583, and Halpha.
	PP04O3N2 MetallicityCalibration = iota
	// PP04N2 is the Pettini & Pagel (2004) N2 index, needing only
	// [NII]6583 and Halpha.
	PP04N2
)

// String returns the calibration name.
func (c MetallicityCalibration) String() string {
	switch c {
	case PP04O3N2:
		return "pp04_o3n2"
	case PP04N2:
		return "pp04_n2"
	default:
		return "unknown"
	}
}

// Metallicity is a gas-phase oxygen abundance, expressed as 12+log(O/H).
type Metallicity struct {
	OH          float64
	Err         float64
	Calibration MetallicityCalibration
}

// EstimateMetallicity derives the gas-phase metallicity from fitted line
// fluxes. The two calibration paths are mutually exclusive; a missing or
// failed required line yields ok=false, never a default abundance.
func EstimateMetallicity(results map[string]fit.Result, calib MetallicityCalibration) (Metallicity, bool) {
	switch calib {
	case PP04O3N2:
		return metallicityO3N2(results)
	case PP04N2:
		return metallicityN2(results)
	default:
		return Metallicity{}, false
	}
}

func metallicityO3N2(results map[string]fit.Result) (Metallicity, bool) {
	oiii, ok1 := usableLine(results, "OIII_5007")
	hb, ok2 := usableLine(results, "Hbeta")
	nii, ok3 := usableLine(results, "NII_6583")
	ha, ok4 := usableLine(results, "Halpha")

	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Metallicity{}, false
	}

	o3n2 := math.Log10((oiii.Flux / hb.Flux) / (nii.Flux / ha.Flux))

	// 12+log(O/H) = 8.73 - 0.32 * O3N2.
	oh := 8.73 - 0.32*o3n2

	indexErr := logErr(relErr(oiii), relErr(hb), relErr(nii), relErr(ha))

	return Metallicity{
		OH:          oh,
		Err:         0.32 * indexErr,
		Calibration: PP04O3N2,
	}, true
}

func metallicityN2(results map[string]fit.Result) (Metallicity, bool) {
	nii, ok1 := usableLine(results, "NII_6583")
	ha, ok2 := usableLine(results, "Halpha")

	if !ok1 || !ok2 {
		return Metallicity{}, false
	}

	n2 := math.Log10(nii.Flux / ha.Flux)

	// 12+log(O/H) = 8.90 + 0.57 * N2.
	oh := 8.90 + 0.57*n2

	indexErr := logErr(relErr(nii), relErr(ha))

	return Metallicity{
		OH:          oh,
		Err:         0.57 * indexErr,
		Calibration: PP04N2,
	}, true
}

// logErr propagates independent relative errors into a log10 quantity.
func logErr(relErrs ...float64) float64 {
	var sum float64
	for _, r := range relErrs {
		sum += r * r
	}

	return math.Sqrt(sum) / math.Ln10
}

func relErr(r fit.Result) float64 {
	if r.Flux <= 0 {
		return 0
	}

	return r.FluxErr / r.Flux
}

func usableLine(results map[string]fit.Result, name string) (fit.Result, bool) {
	r, ok := results[name]
	if !ok || !r.Success || r.Flux <= 0 {
		return fit.Result{}, false
	}

	return r, true
}
