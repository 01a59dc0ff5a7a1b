package fit

import "math"

// Profile selects the peak shape of the line model.
type Profile int

const (
	// ProfileGaussian is the default peak shape.
	ProfileGaussian Profile = iota
	// ProfileLorentzian models pressure-broadened wings.
	ProfileLorentzian
	// ProfileVoigt is a pseudo-Voigt blend with an independent Lorentzian
	// width parameter.
	ProfileVoigt
)

// String returns the profile name.
func (p Profile) String() string {
	switch p {
	case ProfileGaussian:
		return "gaussian"
	case ProfileLorentzian:
		return "lorentzian"
	case ProfileVoigt:
		return "voigt"
	default:
		return "unknown"
	}
}

// Parameter vector layout. Gaussian and Lorentzian models use the first
// five entries; the Voigt model inserts gamma before the continuum terms.
const (
	pAmplitude = iota
	pCenter
	pSigma
	pGamma // voigt only
)

// paramCount returns the model parameter count for a profile.
func (p Profile) paramCount() int {
	if p == ProfileVoigt {
		return 6
	}

	return 5
}

// continuumIndex returns the index of the continuum slope parameter; the
// intercept follows immediately after.
func (p Profile) continuumIndex() int {
	if p == ProfileVoigt {
		return 4
	}

	return 3
}

// twoSqrt2Ln2 converts a Gaussian sigma to FWHM.
const twoSqrt2Ln2 = 2.3548200450309493

// eval computes the peak-plus-linear-continuum model at wavelength x.
func (p Profile) eval(params []float64, x float64) float64 {
	ci := p.continuumIndex()
	continuum := params[ci]*x + params[ci+1]

	amp := params[pAmplitude]
	center := params[pCenter]
	sigma := params[pSigma]

	switch p {
	case ProfileLorentzian:
		t := (x - center) / sigma
		return amp/(1+t*t) + continuum
	case ProfileVoigt:
		return amp*pseudoVoigt(x-center, sigma, params[pGamma]) + continuum
	default:
		t := (x - center) / sigma
		return amp*math.Exp(-0.5*t*t) + continuum
	}
}

// pseudoVoigt evaluates a unit-height pseudo-Voigt profile at offset dx,
// using the Thompson-Cox-Hastings single-width approximation: the Gaussian
// and Lorentzian widths combine into one effective FWHM and a mixing
// fraction eta.
func pseudoVoigt(dx, sigma, gamma float64) float64 {
	fg := twoSqrt2Ln2 * sigma
	fl := 2 * gamma

	fg2 := fg * fg
	fg4 := fg2 * fg2
	fl2 := fl * fl
	fl4 := fl2 * fl2

	f5 := fg4*fg +
		2.69269*fg4*fl +
		2.42843*fg2*fg*fl2 +
		4.47163*fg2*fl2*fl +
		0.07842*fg*fl4 +
		fl4*fl

	f := math.Pow(f5, 0.2)
	if f <= 0 || math.IsNaN(f) {
		return 0
	}

	r := fl / f
	eta := r * (1.36603 + r*(-0.47719+r*0.11116))

	sigmaEff := f / twoSqrt2Ln2
	gammaEff := f / 2

	tg := dx / sigmaEff
	tl := dx / gammaEff

	return eta/(1+tl*tl) + (1-eta)*math.Exp(-0.5*tg*tg)
}

// integratedFlux returns the area under the fitted peak. The Gaussian form
// is A*sigma*sqrt(2*pi); the Lorentzian form is A*sigma*pi. The pseudo-Voigt
// area is approximated by the Gaussian form, consistent with its peak-height
// amplitude convention.
func (p Profile) integratedFlux(amplitude, sigma float64) float64 {
	if p == ProfileLorentzian {
		return amplitude * sigma * math.Pi
	}

	return amplitude * sigma * math.Sqrt(2*math.Pi)
}
