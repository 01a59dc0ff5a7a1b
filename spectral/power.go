package spectral

import (
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-dsp/dsp/spectrum"
	"github.com/cwbudde/algo-dsp/dsp/window"
)

// PowerSpectrum returns the one-sided power spectrum of the mean-subtracted,
// Hann-windowed flux array. The output has fftSize/2+1 bins, where fftSize
// is the next power of two at or above len(flux). Returns nil for inputs
// shorter than 2 samples or on FFT failure.
func PowerSpectrum(flux []float64) []float64 {
	if len(flux) < 2 {
		return nil
	}

	fftSize := nextPowerOf2(len(flux))

	coeffs := window.Generate(window.TypeHann, len(flux))

	var mean float64
	for _, v := range flux {
		mean += v
	}

	mean /= float64(len(flux))

	inData := make([]complex128, fftSize)

	for i, v := range flux {
		w := 1.0
		if len(coeffs) == len(flux) {
			w = coeffs[i]
		}

		inData[i] = complex((v-mean)*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil
	}

	out := make([]complex128, fftSize)

	if err := plan.Forward(out, inData); err != nil {
		return nil
	}

	return spectrum.Power(out[:fftSize/2+1])
}

// NoiseRMS estimates the per-sample white-noise RMS of flux from the upper
// quarter of its power spectrum, where astrophysical structure (continuum
// shape, broad lines) has died off and the flat noise floor dominates.
// Returns 0 when no estimate is possible.
func NoiseRMS(flux []float64) float64 {
	power := PowerSpectrum(flux)
	if len(power) < 8 {
		return 0
	}

	coeffs := window.Generate(window.TypeHann, len(flux))

	var sumW2 float64
	for _, w := range coeffs {
		sumW2 += w * w
	}

	if sumW2 <= 0 {
		return 0
	}

	// For white noise, E[|Y_k|^2] = sigma^2 * sum(w^2) in every bin.
	start := 3 * len(power) / 4

	var sum float64
	var count int

	for _, p := range power[start:] {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}

		sum += p
		count++
	}

	if count == 0 {
		return 0
	}

	return math.Sqrt(sum / float64(count) / sumW2)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
