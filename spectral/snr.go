package spectral

import (
	"math"
	"sort"

	tstats "github.com/cwbudde/algo-dsp/stats/time"
)

// SNR estimates the signal-to-noise ratio of a flux array.
//
// With inverse variances available the noise is the square root of the
// median per-sample variance and the signal is the median flux. Without
// them, the noise falls back to the flux standard deviation. Returns 0 when
// no noise estimate is possible.
func SNR(flux, ivar []float64) float64 {
	if len(flux) == 0 {
		return 0
	}

	signal := median(flux)

	if len(ivar) == len(flux) && len(ivar) > 0 {
		variances := make([]float64, 0, len(ivar))

		for _, iv := range ivar {
			if iv <= 0 || math.IsNaN(iv) || math.IsInf(iv, 0) {
				continue
			}

			variances = append(variances, 1.0/(iv+1e-10))
		}

		if len(variances) > 0 {
			noise := math.Sqrt(median(variances))
			if noise > 0 {
				return signal / noise
			}

			return 0
		}
	}

	_, variance, _, _ := tstats.Moments(flux)

	noise := math.Sqrt(variance)
	if noise <= 0 {
		return 0
	}

	return signal / noise
}

// SNRRange estimates the signal-to-noise ratio restricted to a wavelength
// interval [lo, hi]. Samples outside the interval are ignored; ivar may be
// nil.
func SNRRange(wavelength, flux, ivar []float64, lo, hi float64) float64 {
	if len(wavelength) != len(flux) || len(wavelength) == 0 {
		return 0
	}

	selFlux := make([]float64, 0, len(flux))

	var selIvar []float64
	if len(ivar) == len(flux) {
		selIvar = make([]float64, 0, len(flux))
	}

	for i, w := range wavelength {
		if w < lo || w > hi {
			continue
		}

		selFlux = append(selFlux, flux[i])
		if selIvar != nil {
			selIvar = append(selIvar, ivar[i])
		}
	}

	return SNR(selFlux, selIvar)
}

// median returns the sample median; input is not modified.
func median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	tmp := make([]float64, len(data))
	copy(tmp, data)
	sort.Float64s(tmp)

	mid := len(tmp) / 2
	if len(tmp)%2 == 1 {
		return tmp[mid]
	}

	return 0.5 * (tmp[mid-1] + tmp[mid])
}

// percentile returns the p-th percentile (0..100) by linear interpolation.
func percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}

	tmp := make([]float64, len(data))
	copy(tmp, data)
	sort.Float64s(tmp)

	if p <= 0 {
		return tmp[0]
	}

	if p >= 100 {
		return tmp[len(tmp)-1]
	}

	pos := p / 100 * float64(len(tmp)-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)

	if lo+1 >= len(tmp) {
		return tmp[lo]
	}

	return tmp[lo] + frac*(tmp[lo+1]-tmp[lo])
}
