package spectral

import (
	"sort"

	"github.com/cwbudde/algo-dsp/dsp/conv"

	"github.com/cwbudde/algo-spectro/internal/linalg"
)

// Boxcar smooths flux with a moving average of the given window length.
// Even windows are rounded down to the next odd length. The output has the
// same length as the input; edges see a zero-padded kernel overlap.
func Boxcar(flux []float64, window int) ([]float64, error) {
	if len(flux) == 0 {
		return nil, ErrEmptyInput
	}

	window = oddWindow(window, len(flux))
	if window <= 1 {
		out := make([]float64, len(flux))
		copy(out, flux)

		return out, nil
	}

	kernel := make([]float64, window)
	for i := range kernel {
		kernel[i] = 1.0 / float64(window)
	}

	return conv.ConvolveMode(flux, kernel, conv.ModeSame)
}

// MedianFilter applies a running median of the given window length.
// Edges are zero-padded, matching the usual median-filter convention.
func MedianFilter(flux []float64, window int) ([]float64, error) {
	if len(flux) == 0 {
		return nil, ErrEmptyInput
	}

	window = oddWindow(window, len(flux))

	out := make([]float64, len(flux))
	if window <= 1 {
		copy(out, flux)
		return out, nil
	}

	half := window / 2
	buf := make([]float64, 0, window)

	for i := range flux {
		buf = buf[:0]

		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= len(flux) {
				buf = append(buf, 0)
			} else {
				buf = append(buf, flux[j])
			}
		}

		sort.Float64s(buf)
		out[i] = buf[len(buf)/2]
	}

	return out, nil
}

// SavitzkyGolay smooths flux with a Savitzky-Golay filter of the given
// window length and polynomial order. The interior uses the closed-form
// convolution weights; the first and last half-windows are filled from a
// direct polynomial fit over the edge window, so the output never shortens.
func SavitzkyGolay(flux []float64, window, polyorder int) ([]float64, error) {
	if len(flux) == 0 {
		return nil, ErrEmptyInput
	}

	window = oddWindow(window, len(flux))

	if polyorder < 0 {
		polyorder = 0
	}

	if polyorder >= window {
		polyorder = window - 1
	}

	if window <= 1 || len(flux) < window {
		out := make([]float64, len(flux))
		copy(out, flux)

		return out, nil
	}

	weights, err := savgolWeights(window, polyorder)
	if err != nil {
		return nil, err
	}

	half := window / 2
	out := make([]float64, len(flux))

	for i := half; i < len(flux)-half; i++ {
		var sum float64
		for k, w := range weights {
			sum += w * flux[i-half+k]
		}

		out[i] = sum
	}

	// Edge handling: fit one polynomial per edge window and evaluate it at
	// the uncovered positions.
	x := make([]float64, window)
	for i := range x {
		x[i] = float64(i)
	}

	head, err := linalg.PolyFit(x, flux[:window], polyorder)
	if err != nil {
		return nil, err
	}

	tail, err := linalg.PolyFit(x, flux[len(flux)-window:], polyorder)
	if err != nil {
		return nil, err
	}

	for i := 0; i < half; i++ {
		out[i] = linalg.PolyEval(head, float64(i))
		out[len(flux)-1-i] = linalg.PolyEval(tail, float64(window-1-i))
	}

	return out, nil
}

// savgolWeights returns the central smoothing weights for one window.
// The weight vector is the top row of (V^T V)^-1 V^T for the Vandermonde
// matrix over positions -half..half.
func savgolWeights(window, polyorder int) ([]float64, error) {
	terms := polyorder + 1
	half := window / 2

	moments := make([][]float64, terms)
	for i := range moments {
		moments[i] = make([]float64, terms)
	}

	for j := -half; j <= half; j++ {
		p := 1.0
		powers := make([]float64, 2*terms-1)

		for i := range powers {
			powers[i] = p
			p *= float64(j)
		}

		for a := 0; a < terms; a++ {
			for b := 0; b < terms; b++ {
				moments[a][b] += powers[a+b]
			}
		}
	}

	inv, err := linalg.Invert(moments)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, window)

	for idx := 0; idx < window; idx++ {
		j := float64(idx - half)

		p := 1.0
		for k := 0; k < terms; k++ {
			weights[idx] += inv[0][k] * p
			p *= j
		}
	}

	return weights, nil
}

// oddWindow clamps a window length to [1, n] and makes it odd.
func oddWindow(window, n int) int {
	if window < 1 {
		window = 1
	}

	if window > n {
		window = n
	}

	if window%2 == 0 {
		window--
	}

	if window < 1 {
		window = 1
	}

	return window
}
