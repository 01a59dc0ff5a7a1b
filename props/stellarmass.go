package props

import "math"

// MassCalibration selects the color-based stellar-mass relation.
type MassCalibration int

const (
	// Taylor11 is the Taylor et al. (2011) SDSS color-mass relation.
	Taylor11 MassCalibration = iota
	// Bell03 is the simplified Bell et al. (2003) mass-to-light relation.
	Bell03
)

// String returns the calibration name.
func (c MassCalibration) String() string {
	switch c {
	case Taylor11:
		return "taylor11"
	case Bell03:
		return "bell03"
	default:
		return "unknown"
	}
}

// Absolute r-band magnitude of the Sun, used by the Bell relation.
const sunAbsMagR = 4.64

// StellarMass is a log10 stellar mass in solar masses.
type StellarMass struct {
	LogMass     float64
	Calibration MassCalibration
}

// EstimateStellarMass derives a stellar mass from observed g and r
// magnitudes and the redshift (for the distance modulus). These are quick
// color-based estimates; ok is false for non-finite magnitudes or an
// unknown calibration.
func EstimateStellarMass(gMag, rMag, z float64, calib MassCalibration) (StellarMass, bool) {
	if math.IsNaN(gMag) || math.IsInf(gMag, 0) || math.IsNaN(rMag) || math.IsInf(rMag, 0) {
		return StellarMass{}, false
	}

	absR := rMag - DistanceModulus(z)
	gr := gMag - rMag

	var logMass float64

	switch calib {
	case Taylor11:
		// log(M*/Msun) = -0.406 + 1.097(g-r) - 0.4*M_r - 0.0158(g-r)^2.
		logMass = -0.406 + 1.097*gr - 0.4*absR - 0.0158*gr*gr
	case Bell03:
		// log(M/L) = -0.4 + 1.0(g-r), with L from M_r against the Sun.
		logML := -0.4 + 1.0*gr
		logL := -0.4 * (absR - sunAbsMagR)
		logMass = logML + logL
	default:
		return StellarMass{}, false
	}

	return StellarMass{LogMass: logMass, Calibration: calib}, true
}
