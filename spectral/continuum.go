package spectral

import (
	"math"

	tstats "github.com/cwbudde/algo-dsp/stats/time"

	"github.com/cwbudde/algo-spectro/internal/linalg"
)

// ContinuumMethod selects the continuum estimator.
type ContinuumMethod int

const (
	// ContinuumMedian uses the global flux median.
	ContinuumMedian ContinuumMethod = iota
	// ContinuumPercentile uses a low flux percentile, which resists bias
	// from strong emission lines.
	ContinuumPercentile
	// ContinuumPolynomial fits a sigma-clipped low-order polynomial.
	ContinuumPolynomial
)

// ContinuumConfig holds continuum estimation parameters. Zero values select
// defaults: median method, 25th percentile, cubic polynomial, 2-sigma clip
// over 3 iterations.
type ContinuumConfig struct {
	Method         ContinuumMethod
	Percentile     float64
	Degree         int
	ClipSigma      float64
	ClipIterations int

	// Windows optionally restricts the estimate to explicit line-free
	// wavelength intervals [lo, hi]; when set, the median of the selected
	// samples is used regardless of Method.
	Windows [][2]float64
}

func normalizeContinuumConfig(cfg ContinuumConfig) ContinuumConfig {
	if cfg.Percentile <= 0 || cfg.Percentile >= 100 {
		cfg.Percentile = 25
	}

	if cfg.Degree <= 0 {
		cfg.Degree = 3
	}

	if cfg.ClipSigma <= 0 {
		cfg.ClipSigma = 2
	}

	if cfg.ClipIterations <= 0 {
		cfg.ClipIterations = 3
	}

	return cfg
}

// Continuum estimates the continuum level at every sample of the spectrum.
// The result has the same length as flux.
func Continuum(wavelength, flux []float64, cfg ContinuumConfig) ([]float64, error) {
	if len(wavelength) != len(flux) {
		return nil, ErrLengthMismatch
	}

	if len(flux) == 0 {
		return nil, ErrEmptyInput
	}

	cfg = normalizeContinuumConfig(cfg)

	if len(cfg.Windows) > 0 {
		return continuumFromWindows(wavelength, flux, cfg.Windows), nil
	}

	switch cfg.Method {
	case ContinuumPercentile:
		return constant(len(flux), percentile(flux, cfg.Percentile)), nil
	case ContinuumPolynomial:
		return continuumPolynomial(wavelength, flux, cfg)
	default:
		return constant(len(flux), median(flux)), nil
	}
}

func continuumFromWindows(wavelength, flux []float64, windows [][2]float64) []float64 {
	selected := make([]float64, 0, len(flux))

	for i, w := range wavelength {
		for _, win := range windows {
			if w >= win[0] && w <= win[1] {
				selected = append(selected, flux[i])
				break
			}
		}
	}

	if len(selected) == 0 {
		selected = flux
	}

	return constant(len(flux), median(selected))
}

// continuumPolynomial fits a low-order polynomial with iterative sigma
// clipping: samples well above the fit (emission lines) are replaced by the
// fit before refitting, pulling the curve onto the continuum.
func continuumPolynomial(wavelength, flux []float64, cfg ContinuumConfig) ([]float64, error) {
	n := len(flux)

	degree := cfg.Degree
	if degree >= n {
		degree = n - 1
	}

	// Center and scale the abscissa to keep the Vandermonde system well
	// conditioned for Angstrom-scale inputs.
	var mean float64
	for _, w := range wavelength {
		mean += w
	}

	mean /= float64(n)

	scale := math.Max(math.Abs(wavelength[n-1]-wavelength[0]), 1)

	x := make([]float64, n)
	for i, w := range wavelength {
		x[i] = (w - mean) / scale
	}

	working := make([]float64, n)
	copy(working, flux)

	fitted := make([]float64, n)
	resid := make([]float64, n)

	for iter := 0; iter < cfg.ClipIterations; iter++ {
		coeffs, err := linalg.PolyFit(x, working, degree)
		if err != nil {
			return nil, err
		}

		for i := range fitted {
			fitted[i] = linalg.PolyEval(coeffs, x[i])
			resid[i] = flux[i] - fitted[i]
		}

		_, variance, _, _ := tstats.Moments(resid)

		sigma := math.Sqrt(variance)
		for i := range working {
			if resid[i] < cfg.ClipSigma*sigma {
				working[i] = flux[i]
			} else {
				working[i] = fitted[i]
			}
		}
	}

	return fitted, nil
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}
