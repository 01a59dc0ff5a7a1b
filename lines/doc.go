// Package lines provides the built-in spectral line registry: rest-frame
// vacuum wavelengths, display priorities, and plot colors for the emission
// and absorption lines commonly measured in galaxy and AGN spectra.
//
// The registry is assembled once at package initialization and is immutable
// afterwards. Wavelengths follow the SDSS vacuum wavelength tables, in
// Angstroms.
//
// # Usage
//
//	line, ok := lines.Lookup("Halpha")
//	if ok {
//	    obs := line.RestWavelength * (1 + z)
//	    // ...
//	}
//
// Iteration helpers return lines ordered by rest wavelength, so callers that
// fit or annotate "all known lines" do so in a deterministic order:
//
//	for _, l := range lines.EmissionLines() {
//	    // ...
//	}
package lines
