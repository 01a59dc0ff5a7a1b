// Package levmar implements bounded Levenberg-Marquardt weighted least
// squares for small dense problems (a handful of parameters, tens to
// hundreds of samples), as needed for spectral profile fitting.
//
// The Jacobian is evaluated by forward differences, the normal equations are
// solved directly, and box constraints are enforced by projecting each trial
// step back into the feasible region. Parameter uncertainties come from the
// inverse of the weighted normal matrix scaled by the reduced chi-square.
//
// Numerical failure (divergence, singular covariance) is reported through
// Result.Converged, not through the error return; errors are reserved for
// malformed problems.
package levmar
