// Package props derives physical properties of galaxies from fitted
// emission-line fluxes and photometry: star-formation rate from the Halpha
// luminosity, gas-phase metallicity from strong-line calibrations, stellar
// mass from optical colors, and a coarse morphology estimate from Petrosian
// radii.
//
// Every estimator is independent and optional: when a required input is
// missing (a failed line fit, a non-positive flux) the estimator reports
// ok=false instead of a default value. These are quick literature
// calibrations, not replacements for full SED fitting, and no dust
// extinction correction is applied.
//
// Distances assume a flat Lambda-CDM cosmology with H0 = 70 km/s/Mpc and
// Omega_m = 0.3; objects at z = 0 are placed at 10 pc.
package props
