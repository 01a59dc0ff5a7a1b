package spectral

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch reports parallel arrays of different lengths.
var ErrLengthMismatch = errors.New("spectral: array length mismatch")

// ErrEmptyInput reports an empty spectrum.
var ErrEmptyInput = errors.New("spectral: empty input")

// Spectrum bundles the parallel sample arrays of one observed spectrum.
//
// Ivar holds per-sample inverse variances; zero or non-finite entries mark
// unusable points. Ivar may be nil, in which case consumers treat the
// spectrum as unweighted. Z is the systemic redshift, >= 0.
type Spectrum struct {
	Wavelength []float64
	Flux       []float64
	Ivar       []float64
	Z          float64
}

// Validate checks the parallel-array contract. A violation is a programmer
// error on the caller's side, reported as an error rather than recovered.
func (s Spectrum) Validate() error {
	n := len(s.Wavelength)
	if n == 0 {
		return ErrEmptyInput
	}

	if len(s.Flux) != n {
		return fmt.Errorf("%w: wavelength %d, flux %d", ErrLengthMismatch, n, len(s.Flux))
	}

	if s.Ivar != nil && len(s.Ivar) != n {
		return fmt.Errorf("%w: wavelength %d, ivar %d", ErrLengthMismatch, n, len(s.Ivar))
	}

	return nil
}

// ToRest converts observed-frame wavelength and flux to the rest frame,
// applying the (1+z) flux-density correction. Inputs are not modified.
func ToRest(wavelength, flux []float64, z float64) (wave, f []float64) {
	wave = make([]float64, len(wavelength))
	f = make([]float64, len(flux))

	inv := 1.0 / (1 + z)
	for i, w := range wavelength {
		wave[i] = w * inv
	}

	for i, v := range flux {
		f[i] = v * (1 + z)
	}

	return wave, f
}

// ToObserved converts rest-frame wavelength and flux to the observed frame.
// It is the inverse of [ToRest].
func ToObserved(wavelength, flux []float64, z float64) (wave, f []float64) {
	wave = make([]float64, len(wavelength))
	f = make([]float64, len(flux))

	for i, w := range wavelength {
		wave[i] = w * (1 + z)
	}

	inv := 1.0 / (1 + z)
	for i, v := range flux {
		f[i] = v * inv
	}

	return wave, f
}
