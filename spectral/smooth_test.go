package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectro/internal/testutil"
)

func TestBoxcarConstantInterior(t *testing.T) {
	flux := testutil.FlatContinuum(2.5, 50)

	out, err := Boxcar(flux, 5)
	if err != nil {
		t.Fatalf("boxcar failed: %v", err)
	}

	if len(out) != len(flux) {
		t.Fatalf("length changed: %d -> %d", len(flux), len(out))
	}

	// Zero padding only touches the outer half-window.
	for i := 2; i < len(out)-2; i++ {
		if math.Abs(out[i]-2.5) > 1e-12 {
			t.Fatalf("interior sample %d = %v, want 2.5", i, out[i])
		}
	}
}

func TestBoxcarWindowOne(t *testing.T) {
	flux := []float64{1, 2, 3}

	out, err := Boxcar(flux, 1)
	if err != nil {
		t.Fatalf("boxcar failed: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, flux, 0)
}

func TestBoxcarEmpty(t *testing.T) {
	if _, err := Boxcar(nil, 3); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestMedianFilterKnownValues(t *testing.T) {
	flux := []float64{1, 2, 3, 4, 100}

	out, err := MedianFilter(flux, 3)
	if err != nil {
		t.Fatalf("median filter failed: %v", err)
	}

	// Zero padding: the last sample sees {4, 100, 0}.
	want := []float64{1, 2, 3, 4, 4}
	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestMedianFilterRemovesSpike(t *testing.T) {
	flux := testutil.FlatContinuum(3, 21)
	flux[10] = 500

	out, err := MedianFilter(flux, 5)
	if err != nil {
		t.Fatalf("median filter failed: %v", err)
	}

	if out[10] != 3 {
		t.Fatalf("spike survived: out[10] = %v, want 3", out[10])
	}
}

func TestSavitzkyGolayPreservesPolynomial(t *testing.T) {
	// A Savitzky-Golay filter of order p reproduces polynomials of degree
	// <= p exactly, interior and edges alike.
	flux := make([]float64, 40)
	for i := range flux {
		x := float64(i)
		flux[i] = 2 + 0.3*x - 0.01*x*x
	}

	out, err := SavitzkyGolay(flux, 7, 2)
	if err != nil {
		t.Fatalf("savgol failed: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, flux, 1e-8)
}

func TestSavitzkyGolaySmoothsNoise(t *testing.T) {
	flux := testutil.FlatContinuum(10, 200)
	flux = testutil.AddNoise(flux, 31, 0.5)

	out, err := SavitzkyGolay(flux, 11, 2)
	if err != nil {
		t.Fatalf("savgol failed: %v", err)
	}

	var before, after float64
	for i := range flux {
		before += (flux[i] - 10) * (flux[i] - 10)
		after += (out[i] - 10) * (out[i] - 10)
	}

	if after >= before {
		t.Fatalf("smoothing did not reduce scatter: %v -> %v", before, after)
	}
}

func TestSavitzkyGolayShortInput(t *testing.T) {
	flux := []float64{1, 2, 3}

	out, err := SavitzkyGolay(flux, 11, 3)
	if err != nil {
		t.Fatalf("savgol failed: %v", err)
	}

	if len(out) != 3 {
		t.Fatalf("length changed: got %d", len(out))
	}
}

func TestOddWindow(t *testing.T) {
	cases := []struct {
		window, n, want int
	}{
		{5, 100, 5},
		{6, 100, 5},
		{0, 100, 1},
		{-3, 100, 1},
		{15, 10, 9},
		{2, 1, 1},
	}

	for _, tc := range cases {
		if got := oddWindow(tc.window, tc.n); got != tc.want {
			t.Fatalf("oddWindow(%d, %d) = %d, want %d", tc.window, tc.n, got, tc.want)
		}
	}
}
