// Package linalg provides small dense linear-algebra kernels for the fitting
// and smoothing code. Matrices are row-major [][]float64 and are assumed tiny
// (a handful of parameters), so plain Gaussian elimination with partial
// pivoting is both adequate and robust.
package linalg

import (
	"errors"
	"math"
)

// ErrSingular reports a numerically singular system.
var ErrSingular = errors.New("linalg: singular matrix")

// ErrDimension reports inconsistent matrix/vector dimensions.
var ErrDimension = errors.New("linalg: dimension mismatch")

// Solve solves A x = b via Gaussian elimination with partial pivoting.
// A and b are not modified.
func Solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, ErrDimension
	}

	// Working copy: augmented matrix.
	m := make([][]float64, n)
	for i := range m {
		if len(a[i]) != n {
			return nil, ErrDimension
		}

		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		// Partial pivot.
		pivot := col
		pivotAbs := math.Abs(m[col][col])

		for row := col + 1; row < n; row++ {
			if abs := math.Abs(m[row][col]); abs > pivotAbs {
				pivot = row
				pivotAbs = abs
			}
		}

		if pivotAbs == 0 || math.IsNaN(pivotAbs) {
			return nil, ErrSingular
		}

		m[col], m[pivot] = m[pivot], m[col]

		for row := col + 1; row < n; row++ {
			f := m[row][col] / m[col][col]
			if f == 0 {
				continue
			}

			for k := col; k <= n; k++ {
				m[row][k] -= f * m[col][k]
			}
		}
	}

	// Back substitution.
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := m[i][n]
		for k := i + 1; k < n; k++ {
			sum -= m[i][k] * x[k]
		}

		x[i] = sum / m[i][i]
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return nil, ErrSingular
		}
	}

	return x, nil
}

// Invert returns the inverse of A by solving against unit vectors.
// Intended for small symmetric normal matrices; A is not modified.
func Invert(a [][]float64) ([][]float64, error) {
	n := len(a)
	if n == 0 {
		return nil, ErrDimension
	}

	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = make([]float64, n)
	}

	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}

		e[col] = 1

		x, err := Solve(a, e)
		if err != nil {
			return nil, err
		}

		for row := 0; row < n; row++ {
			inv[row][col] = x[row]
		}
	}

	return inv, nil
}

// PolyFit fits a polynomial of the given degree to (x, y) by unweighted least
// squares, returning coefficients in ascending power order.
func PolyFit(x, y []float64, degree int) ([]float64, error) {
	if len(x) != len(y) {
		return nil, ErrDimension
	}

	terms := degree + 1
	if degree < 0 || len(x) < terms {
		return nil, ErrDimension
	}

	// Normal equations: (V^T V) c = V^T y with Vandermonde V.
	ata := make([][]float64, terms)
	for i := range ata {
		ata[i] = make([]float64, terms)
	}

	aty := make([]float64, terms)

	powers := make([]float64, 2*terms-1)

	for k, xv := range x {
		p := 1.0
		for i := range powers {
			powers[i] = p
			p *= xv
		}

		for i := 0; i < terms; i++ {
			aty[i] += powers[i] * y[k]
			for j := 0; j < terms; j++ {
				ata[i][j] += powers[i+j]
			}
		}
	}

	return Solve(ata, aty)
}

// PolyEval evaluates a polynomial with ascending-power coefficients at x.
func PolyEval(coeffs []float64, x float64) float64 {
	var out float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		out = out*x + coeffs[i]
	}

	return out
}
