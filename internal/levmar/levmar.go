package levmar

import (
	"errors"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectro/internal/linalg"
)

// ModelFunc evaluates the model at sample position x for parameters p.
// It must not modify p.
type ModelFunc func(p []float64, x float64) float64

// Problem describes one weighted least-squares problem.
//
// Weights multiply the residuals (typically sqrt of the inverse variance);
// nil means uniform weights. Lower and Upper are per-parameter box bounds;
// nil means unbounded, individual entries may be +-Inf.
type Problem struct {
	X       []float64
	Y       []float64
	Weights []float64
	Model   ModelFunc
	Lower   []float64
	Upper   []float64
}

// Options holds solver tuning parameters. Zero values select defaults.
type Options struct {
	MaxIterations int     // default 200
	FuncTol       float64 // relative chi-square change for convergence, default 1e-10
	Lambda0       float64 // initial damping, default 1e-3
}

// Result holds the solver outcome. Params is always populated with the best
// parameters seen, even when Converged is false.
type Result struct {
	Params           []float64
	ParamErrs        []float64
	Covariance       [][]float64
	ChiSquare        float64
	ReducedChiSquare float64
	Iterations       int
	Converged        bool
}

// ErrBadProblem reports a structurally invalid problem (mismatched lengths,
// missing model, more parameters than samples).
var ErrBadProblem = errors.New("levmar: invalid problem")

const (
	defaultMaxIterations = 200
	defaultFuncTol       = 1e-10
	defaultLambda0       = 1e-3

	lambdaUp   = 10.0
	lambdaDown = 3.0
	lambdaMax  = 1e12

	// Forward-difference step scale, about sqrt(machine epsilon).
	diffStep = 1.5e-8
)

func normalizeOptions(opts Options) Options {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaultMaxIterations
	}

	if opts.FuncTol <= 0 {
		opts.FuncTol = defaultFuncTol
	}

	if opts.Lambda0 <= 0 {
		opts.Lambda0 = defaultLambda0
	}

	return opts
}

// Solve runs bounded Levenberg-Marquardt starting from init.
func Solve(prob Problem, init []float64, opts Options) (Result, error) {
	n := len(prob.X)
	m := len(init)

	switch {
	case prob.Model == nil,
		n == 0 || m == 0,
		len(prob.Y) != n,
		prob.Weights != nil && len(prob.Weights) != n,
		prob.Lower != nil && len(prob.Lower) != m,
		prob.Upper != nil && len(prob.Upper) != m,
		n < m:
		return Result{}, ErrBadProblem
	}

	opts = normalizeOptions(opts)

	params := make([]float64, m)
	copy(params, init)
	clampParams(params, prob.Lower, prob.Upper)

	resid := make([]float64, n)
	trialResid := make([]float64, n)
	trial := make([]float64, m)
	jac := makeMatrix(n, m)

	chi2 := residuals(prob, params, resid)
	if !isFinite(chi2) {
		return Result{Params: params, ChiSquare: chi2}, nil
	}

	lambda := opts.Lambda0
	converged := false
	iterations := 0

	for iter := 0; iter < opts.MaxIterations; iter++ {
		iterations = iter + 1

		jacobian(prob, params, resid, jac)

		jtj, jtr := normalEquations(jac, resid)

		accepted := false

		for attempt := 0; attempt < 20 && lambda <= lambdaMax; attempt++ {
			delta, err := solveDamped(jtj, jtr, lambda)
			if err != nil {
				lambda *= lambdaUp
				continue
			}

			for j := range trial {
				trial[j] = params[j] + delta[j]
			}

			clampParams(trial, prob.Lower, prob.Upper)

			trialChi2 := residuals(prob, trial, trialResid)

			// A step that changes chi-square by less than the tolerance in
			// either direction means we are already at the optimum.
			if isFinite(trialChi2) && math.Abs(trialChi2-chi2) <= opts.FuncTol*(chi2+1e-300) {
				converged = true
				accepted = true

				break
			}

			if !isFinite(trialChi2) || trialChi2 >= chi2 {
				lambda *= lambdaUp
				continue
			}

			improvement := chi2 - trialChi2
			copy(params, trial)
			resid, trialResid = trialResid, resid
			chi2 = trialChi2
			lambda = math.Max(lambda/lambdaDown, 1e-12)
			accepted = true

			if improvement <= opts.FuncTol*(chi2+1e-300) {
				converged = true
			}

			break
		}

		if !accepted {
			// No downhill step found at any damping. If the damping is
			// still in range we are pinned at a local optimum; otherwise
			// the iteration diverged.
			converged = lambda <= lambdaMax

			break
		}

		if converged {
			break
		}
	}

	res := Result{
		Params:     params,
		ChiSquare:  chi2,
		Iterations: iterations,
		Converged:  converged,
	}

	if n > m {
		res.ReducedChiSquare = chi2 / float64(n-m)
	}

	fillCovariance(&res, prob, params, resid, jac)

	return res, nil
}

// fillCovariance computes the covariance of the final parameters. A singular
// or non-positive-definite normal matrix marks the result as not converged.
func fillCovariance(res *Result, prob Problem, params, resid []float64, jac [][]float64) {
	m := len(params)

	jacobian(prob, params, resid, jac)

	jtj, _ := normalEquations(jac, resid)

	cov, err := linalg.Invert(jtj)
	if err != nil {
		res.Converged = false
		return
	}

	// Scale by reduced chi-square, matching the common absolute-weights
	// convention for stderr reporting.
	scale := res.ReducedChiSquare
	if scale <= 0 {
		scale = 1
	}

	errs := make([]float64, m)

	for i := range cov {
		for j := range cov[i] {
			cov[i][j] *= scale
		}

		d := cov[i][i]
		if d < 0 || math.IsNaN(d) {
			res.Converged = false
			return
		}

		errs[i] = math.Sqrt(d)
	}

	res.Covariance = cov
	res.ParamErrs = errs
}

// residuals fills dst with weighted residuals and returns chi-square.
func residuals(prob Problem, params, dst []float64) float64 {
	for i, x := range prob.X {
		dst[i] = prob.Y[i] - prob.Model(params, x)
	}

	if prob.Weights != nil {
		vecmath.MulBlockInPlace(dst, prob.Weights)
	}

	var chi2 float64
	for _, r := range dst {
		chi2 += r * r
	}

	return chi2
}

// jacobian fills jac with the weighted forward-difference Jacobian of the
// residual vector. resid holds the current weighted residuals.
func jacobian(prob Problem, params, resid []float64, jac [][]float64) {
	n := len(prob.X)
	m := len(params)

	perturbed := make([]float64, m)
	copy(perturbed, params)

	col := make([]float64, n)

	for j := 0; j < m; j++ {
		h := diffStep * math.Max(math.Abs(params[j]), 1.0)

		// Step away from an active upper bound.
		if prob.Upper != nil && params[j]+h > prob.Upper[j] {
			h = -h
		}

		perturbed[j] = params[j] + h

		for i, x := range prob.X {
			col[i] = prob.Y[i] - prob.Model(perturbed, x)
		}

		if prob.Weights != nil {
			vecmath.MulBlockInPlace(col, prob.Weights)
		}

		// d(residual)/dp; note residual = y - f, so the model derivative
		// carries the opposite sign.
		inv := 1.0 / h
		for i := 0; i < n; i++ {
			jac[i][j] = (col[i] - resid[i]) * inv
		}

		perturbed[j] = params[j]
	}
}

// normalEquations builds J^T J and -J^T r for the damped step.
func normalEquations(jac [][]float64, resid []float64) ([][]float64, []float64) {
	n := len(jac)
	if n == 0 {
		return nil, nil
	}

	m := len(jac[0])

	jtj := makeMatrix(m, m)
	jtr := make([]float64, m)

	for i := 0; i < n; i++ {
		row := jac[i]
		r := resid[i]

		for j := 0; j < m; j++ {
			jtr[j] -= row[j] * r

			for k := j; k < m; k++ {
				jtj[j][k] += row[j] * row[k]
			}
		}
	}

	for j := 0; j < m; j++ {
		for k := 0; k < j; k++ {
			jtj[j][k] = jtj[k][j]
		}
	}

	return jtj, jtr
}

// solveDamped solves (J^T J + lambda*diag(J^T J)) delta = -J^T r.
func solveDamped(jtj [][]float64, jtr []float64, lambda float64) ([]float64, error) {
	m := len(jtr)

	damped := makeMatrix(m, m)
	for i := 0; i < m; i++ {
		copy(damped[i], jtj[i])

		d := jtj[i][i]
		if d == 0 {
			d = 1e-12
		}

		damped[i][i] = d * (1 + lambda)
	}

	return linalg.Solve(damped, jtr)
}

func clampParams(p, lower, upper []float64) {
	for j := range p {
		if lower != nil && p[j] < lower[j] {
			p[j] = lower[j]
		}

		if upper != nil && p[j] > upper[j] {
			p[j] = upper[j]
		}
	}
}

func makeMatrix(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	m := make([][]float64, rows)

	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols]
	}

	return m
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
