package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectro/internal/testutil"
)

func TestContinuumMedian(t *testing.T) {
	wave := testutil.WavelengthGrid(4000, 1, 101)

	flux := make([]float64, 101)
	for i := range flux {
		flux[i] = float64(i)
	}

	out, err := Continuum(wave, flux, ContinuumConfig{})
	if err != nil {
		t.Fatalf("continuum failed: %v", err)
	}

	for i, v := range out {
		if v != 50 {
			t.Fatalf("sample %d = %v, want median 50", i, v)
		}
	}
}

func TestContinuumPercentile(t *testing.T) {
	wave := testutil.WavelengthGrid(4000, 1, 101)

	flux := make([]float64, 101)
	for i := range flux {
		flux[i] = float64(i)
	}

	out, err := Continuum(wave, flux, ContinuumConfig{Method: ContinuumPercentile, Percentile: 25})
	if err != nil {
		t.Fatalf("continuum failed: %v", err)
	}

	testutil.RequireNear(t, out[0], 25, 1e-9)
}

func TestContinuumPolynomialLinear(t *testing.T) {
	wave := testutil.WavelengthGrid(4000, 2, 300)
	flux := testutil.SlopedContinuum(wave, 0.001, 3)

	out, err := Continuum(wave, flux, ContinuumConfig{Method: ContinuumPolynomial})
	if err != nil {
		t.Fatalf("continuum failed: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, flux, 1e-6)
}

func TestContinuumPolynomialClipsEmissionLine(t *testing.T) {
	wave := testutil.WavelengthGrid(4000, 1, 400)
	flux := testutil.FlatContinuum(5, len(wave))
	flux = testutil.GaussianLine(wave, flux, 50, 4200, 4)

	out, err := Continuum(wave, flux, ContinuumConfig{Method: ContinuumPolynomial})
	if err != nil {
		t.Fatalf("continuum failed: %v", err)
	}

	// The clipped fit must land near the continuum under the line, not on
	// the line peak.
	var peak int
	for i, w := range wave {
		if w == 4200 {
			peak = i
		}
	}

	if math.Abs(out[peak]-5) > 2 {
		t.Fatalf("continuum under line = %v, want ~5", out[peak])
	}
}

func TestContinuumWindows(t *testing.T) {
	wave := testutil.WavelengthGrid(4000, 1, 200)
	flux := testutil.FlatContinuum(5, len(wave))
	flux = testutil.GaussianLine(wave, flux, 100, 4100, 3)

	cfg := ContinuumConfig{
		Windows: [][2]float64{{4000, 4050}, {4150, 4199}},
	}

	out, err := Continuum(wave, flux, cfg)
	if err != nil {
		t.Fatalf("continuum failed: %v", err)
	}

	// Line-free windows see the bare continuum level.
	testutil.RequireNear(t, out[0], 5, 1e-6)
}

func TestContinuumErrors(t *testing.T) {
	if _, err := Continuum([]float64{1, 2}, []float64{1}, ContinuumConfig{}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	if _, err := Continuum(nil, nil, ContinuumConfig{}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}
