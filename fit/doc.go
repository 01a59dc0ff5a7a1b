// Package fit measures emission lines in optical spectra. Each line is
// modelled as a single peak profile (Gaussian by default, Lorentzian and
// pseudo-Voigt as alternatives) on top of a linear local continuum, fitted
// by bounded weighted nonlinear least squares within a window around the
// redshifted line position.
//
// Fits never fail loudly: windows with too few samples, solver divergence,
// and singular covariance all produce a Result with Success=false and
// zeroed measurements. Callers must check Success before trusting the
// numeric fields. Errors are returned only for contract violations such as
// mismatched input arrays.
//
// # Usage
//
//	s := spectral.Spectrum{Wavelength: w, Flux: f, Ivar: iv, Z: 0.021}
//
//	res, err := fit.Line(s, "Halpha")
//	if err != nil {
//	    // malformed spectrum or unknown line name
//	}
//	if res.Success {
//	    fmt.Println(res.Flux, res.FluxErr, res.SNR)
//	}
//
// Fitting several lines shares nothing between fits, so the multi-line
// entry point can fan out across workers:
//
//	cfg := fit.Config{Workers: 4}
//	all, _ := fit.NewFitter(cfg).FitLines(s, "Halpha", "Hbeta", "OIII_5007", "NII_6583")
package fit
