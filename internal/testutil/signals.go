package testutil

import (
	"math"
	"math/rand"
)

// WavelengthGrid generates a uniformly spaced wavelength grid in Angstroms.
func WavelengthGrid(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + step*float64(i)
	}

	return out
}

// GaussianLine adds a Gaussian emission line of the given peak amplitude,
// center, and sigma to flux, evaluated on the wavelength grid. flux is
// modified in place and returned.
func GaussianLine(wavelength, flux []float64, amplitude, center, sigma float64) []float64 {
	for i, w := range wavelength {
		t := (w - center) / sigma
		flux[i] += amplitude * math.Exp(-0.5*t*t)
	}

	return flux
}

// FlatContinuum returns a constant-flux spectrum of the given level.
func FlatContinuum(level float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = level
	}

	return out
}

// SlopedContinuum returns a linear continuum slope*wavelength + intercept.
func SlopedContinuum(wavelength []float64, slope, intercept float64) []float64 {
	out := make([]float64, len(wavelength))
	for i, w := range wavelength {
		out[i] = slope*w + intercept
	}

	return out
}

// AddNoise adds seeded Gaussian noise of the given standard deviation to
// flux in place and returns it.
func AddNoise(flux []float64, seed int64, sigma float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	for i := range flux {
		flux[i] += rng.NormFloat64() * sigma
	}

	return flux
}

// ConstantIvar returns an inverse-variance array for uniform noise of the
// given standard deviation. A non-positive sigma yields zero entries,
// which consumers treat as unusable points.
func ConstantIvar(sigma float64, length int) []float64 {
	out := make([]float64, length)

	iv := 0.0
	if sigma > 0 {
		iv = 1 / (sigma * sigma)
	}

	for i := range out {
		out[i] = iv
	}

	return out
}
