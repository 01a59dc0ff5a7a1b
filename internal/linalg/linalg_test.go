package linalg

import (
	"errors"
	"math"
	"testing"
)

func TestSolveKnownSystem(t *testing.T) {
	a := [][]float64{
		{2, 1, -1},
		{-3, -1, 2},
		{-2, 1, 2},
	}
	b := []float64{8, -11, -3}

	x, err := Solve(a, b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	want := []float64{2, 3, -1}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
}

func TestSolveSingular(t *testing.T) {
	a := [][]float64{
		{1, 2},
		{2, 4},
	}

	if _, err := Solve(a, []float64{1, 2}); !errors.Is(err, ErrSingular) {
		t.Fatalf("expected ErrSingular, got %v", err)
	}
}

func TestSolveDimensionMismatch(t *testing.T) {
	if _, err := Solve([][]float64{{1, 2}}, []float64{1}); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected ErrDimension, got %v", err)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	a := [][]float64{
		{4, 1, 0},
		{1, 3, 1},
		{0, 1, 2},
	}

	inv, err := Invert(a)
	if err != nil {
		t.Fatalf("invert failed: %v", err)
	}

	// A * inv(A) must be identity.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i][k] * inv[k][j]
			}

			want := 0.0
			if i == j {
				want = 1.0
			}

			if math.Abs(sum-want) > 1e-12 {
				t.Fatalf("(A*invA)[%d][%d] = %v, want %v", i, j, sum, want)
			}
		}
	}
}

func TestPolyFitExactQuadratic(t *testing.T) {
	x := []float64{-2, -1, 0, 1, 2, 3}

	y := make([]float64, len(x))
	for i, xv := range x {
		y[i] = 1.5 - 0.5*xv + 0.25*xv*xv
	}

	coeffs, err := PolyFit(x, y, 2)
	if err != nil {
		t.Fatalf("polyfit failed: %v", err)
	}

	want := []float64{1.5, -0.5, 0.25}
	for i := range want {
		if math.Abs(coeffs[i]-want[i]) > 1e-10 {
			t.Fatalf("coeff[%d] = %v, want %v", i, coeffs[i], want[i])
		}
	}

	for _, xv := range []float64{-1.5, 0.5, 2.5} {
		want := 1.5 - 0.5*xv + 0.25*xv*xv
		if got := PolyEval(coeffs, xv); math.Abs(got-want) > 1e-10 {
			t.Fatalf("eval(%v) = %v, want %v", xv, got, want)
		}
	}
}

func TestPolyFitUnderdetermined(t *testing.T) {
	if _, err := PolyFit([]float64{1, 2}, []float64{1, 2}, 3); !errors.Is(err, ErrDimension) {
		t.Fatalf("expected ErrDimension, got %v", err)
	}
}
