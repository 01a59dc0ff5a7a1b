package props

import "math"

// SFRCalibration selects the Halpha-to-SFR conversion constant.
type SFRCalibration int

const (
	// Kennicutt98 is the Kennicutt (1998) calibration, Salpeter IMF.
	Kennicutt98 SFRCalibration = iota
	// Kennicutt12 is the Kennicutt & Evans (2012) update, Kroupa IMF.
	Kennicutt12
)

// String returns the calibration name.
func (c SFRCalibration) String() string {
	switch c {
	case Kennicutt98:
		return "kennicutt98"
	case Kennicutt12:
		return "kennicutt12"
	default:
		return "unknown"
	}
}

// conversion returns the SFR per unit Halpha luminosity in
// (Msun/yr)/(erg/s), and whether the calibration is known.
func (c SFRCalibration) conversion() (float64, bool) {
	switch c {
	case Kennicutt98:
		return 7.9e-42, true
	case Kennicutt12:
		return 5.5e-42, true
	default:
		return 0, false
	}
}

// SFR is a star-formation rate estimate in Msun/yr, with the Halpha
// luminosity (erg/s) it was derived from.
type SFR struct {
	Value       float64
	Err         float64
	Luminosity  float64
	Calibration SFRCalibration
}

// EstimateSFR converts an Halpha flux (erg/s/cm^2) into a star-formation
// rate. The flux error, when positive, propagates linearly. No dust
// extinction correction is applied, which biases the result low for dusty
// systems. ok is false for non-positive or non-finite flux and for unknown
// calibrations.
func EstimateSFR(haFlux, haFluxErr, z float64, calib SFRCalibration) (SFR, bool) {
	if haFlux <= 0 || math.IsNaN(haFlux) || math.IsInf(haFlux, 0) {
		return SFR{}, false
	}

	k, ok := calib.conversion()
	if !ok {
		return SFR{}, false
	}

	d := LuminosityDistanceCm(z)
	luminosity := haFlux * 4 * math.Pi * d * d

	sfr := k * luminosity

	var sfrErr float64
	if haFluxErr > 0 {
		sfrErr = sfr * (haFluxErr / haFlux)
	}

	return SFR{
		Value:       sfr,
		Err:         sfrErr,
		Luminosity:  luminosity,
		Calibration: calib,
	}, true
}
