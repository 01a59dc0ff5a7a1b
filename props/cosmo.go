package props

import "math"

// Flat Lambda-CDM parameters used throughout.
const (
	hubbleConstant = 70.0 // km/s/Mpc
	omegaMatter    = 0.3
	speedOfLight   = 299792.458 // km/s

	cmPerMpc = 3.0856775814913673e24
	// Fiducial distance for z <= 0 objects: 10 pc, in Mpc.
	localDistanceMpc = 1e-5

	// Simpson integration panels for the comoving distance (must be even).
	distanceSteps = 1024
)

// LuminosityDistance returns the luminosity distance in Mpc for a flat
// Lambda-CDM cosmology (H0 = 70, Omega_m = 0.3). For z <= 0 it returns the
// 10 pc fiducial distance.
func LuminosityDistance(z float64) float64 {
	if z <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return localDistanceMpc
	}

	hubbleDistance := speedOfLight / hubbleConstant

	// Comoving distance via composite Simpson over 1/E(z').
	h := z / distanceSteps
	sum := invE(0) + invE(z)

	for i := 1; i < distanceSteps; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}

		sum += w * invE(float64(i)*h)
	}

	comoving := hubbleDistance * sum * h / 3

	return (1 + z) * comoving
}

// LuminosityDistanceCm returns the luminosity distance in centimeters.
func LuminosityDistanceCm(z float64) float64 {
	return LuminosityDistance(z) * cmPerMpc
}

// DistanceModulus returns m - M for the given redshift; 0 for z <= 0.
func DistanceModulus(z float64) float64 {
	if z <= 0 {
		return 0
	}

	dpc := LuminosityDistance(z) * 1e6

	return 5*math.Log10(dpc) - 5
}

// invE is 1/E(z) = 1/sqrt(Om*(1+z)^3 + (1-Om)) for a flat cosmology.
func invE(z float64) float64 {
	zp1 := 1 + z
	return 1 / math.Sqrt(omegaMatter*zp1*zp1*zp1+(1-omegaMatter))
}
