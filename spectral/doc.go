// Package spectral provides spectrum-level utilities shared by the line
// fitter and its callers: smoothing, signal-to-noise estimation, continuum
// estimation, noise-floor measurement, and rest/observed frame conversion.
//
// A spectrum is three parallel arrays (wavelength, flux, inverse variance)
// plus a redshift. Wavelengths are in Angstroms and strictly increasing;
// flux units are caller-defined and must only be self-consistent within one
// spectrum.
//
// # Usage
//
//	s := spectral.Spectrum{Wavelength: w, Flux: f, Ivar: iv, Z: 0.03}
//	if err := s.Validate(); err != nil {
//	    // programmer error: mismatched arrays
//	}
//	smoothed, _ := spectral.SavitzkyGolay(s.Flux, 11, 3)
//	snr := spectral.SNR(s.Flux, s.Ivar)
package spectral
