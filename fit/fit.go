package fit

import (
	"errors"
	"math"

	tstats "github.com/cwbudde/algo-dsp/stats/time"

	"github.com/cwbudde/algo-spectro/internal/levmar"
	"github.com/cwbudde/algo-spectro/lines"
	"github.com/cwbudde/algo-spectro/spectral"
)

// SpeedOfLight is the velocity conversion constant in km/s.
const SpeedOfLight = 299792.458

const (
	defaultWindow      = 20.0
	defaultCenterShift = 10.0
	defaultSigmaMin    = 0.5
	defaultSigmaMax    = 15.0
	defaultSigmaGuess  = 3.0
	defaultGammaMin    = 0.1
	defaultMinSamples  = 5
	defaultSlopeBound  = 1e-2

	// Floor for zero or non-finite fit weights. Keeping the sample with a
	// negligible weight preserves alignment with the wavelength array.
	weightFloor = 1e-10
)

// ErrUnknownLine reports a line name missing from the registry.
var ErrUnknownLine = errors.New("fit: unknown line")

// Config holds line fitting parameters. Zero values select defaults.
//
// The amplitude is always constrained non-negative: the fitter is
// emission-line oriented, and absorption registry entries are fitted with
// the same constraint rather than a flipped sign.
type Config struct {
	// Window is the fit half-window around the observed line center, in
	// Angstroms. Default 20.
	Window float64
	// CenterShift bounds the fitted center to the expected position plus or
	// minus this many Angstroms, keeping the fit off neighboring lines.
	// Default 10.
	CenterShift float64
	// SigmaMin and SigmaMax bound the Gaussian width in Angstroms.
	// Defaults 0.5 and 15.
	SigmaMin float64
	SigmaMax float64
	// MinSamples is the minimum number of in-window samples required to
	// attempt a fit. Default 5.
	MinSamples int
	// MaxIterations caps the solver. Default 200.
	MaxIterations int
	// Workers sets the fan-out width for multi-line fitting; values below 2
	// fit sequentially.
	Workers int
	// Profile selects the peak shape. Default ProfileGaussian.
	Profile Profile
}

// Result holds the measurements of one fitted line. Center is in observed-
// frame Angstroms, Flux in the spectrum's flux units times Angstroms,
// EW in Angstroms (negative for emission), Velocity in km/s relative to the
// systemic redshift.
//
// When Success is false, all measurement fields are zero except Center
// (the expected observed position) and Continuum (the window's median flux,
// when a window existed).
type Result struct {
	Line string

	Center    float64
	CenterErr float64

	Amplitude    float64
	AmplitudeErr float64

	Sigma    float64
	SigmaErr float64

	Flux    float64
	FluxErr float64

	EW    float64
	EWErr float64

	SNR float64

	Velocity    float64
	VelocityErr float64

	Continuum float64

	Success bool
}

func normalizeConfig(cfg Config) Config {
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}

	if cfg.CenterShift <= 0 {
		cfg.CenterShift = defaultCenterShift
	}

	if cfg.SigmaMin <= 0 {
		cfg.SigmaMin = defaultSigmaMin
	}

	if cfg.SigmaMax <= cfg.SigmaMin {
		cfg.SigmaMax = defaultSigmaMax
	}

	if cfg.MinSamples < 2 {
		cfg.MinSamples = defaultMinSamples
	}

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 200
	}

	return cfg
}

// Fitter fits spectral lines with a fixed configuration. The zero-value
// Config is usable; a Fitter is safe for concurrent use.
type Fitter struct {
	cfg Config
}

// NewFitter creates a Fitter, applying defaults for zero-valued fields.
func NewFitter(cfg Config) *Fitter {
	return &Fitter{cfg: normalizeConfig(cfg)}
}

// Line fits a single named registry line with default configuration.
func Line(s spectral.Spectrum, name string) (Result, error) {
	return NewFitter(Config{}).FitLine(s, name)
}

// LineAt fits a single feature at an arbitrary rest wavelength with default
// configuration. name labels the result and need not be a registry entry.
func LineAt(s spectral.Spectrum, restWavelength float64, name string) (Result, error) {
	return NewFitter(Config{}).FitAt(s, restWavelength, name)
}

// FitLine fits a single line resolved through the registry.
func (f *Fitter) FitLine(s spectral.Spectrum, name string) (Result, error) {
	l, ok := lines.Lookup(name)
	if !ok {
		return Result{}, ErrUnknownLine
	}

	return f.FitAt(s, l.RestWavelength, name)
}

// FitAt fits a single feature at the given rest wavelength. The returned
// error reports only contract violations (malformed spectrum); every
// numeric failure is expressed through Result.Success.
func (f *Fitter) FitAt(s spectral.Spectrum, restWavelength float64, name string) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	obs := restWavelength * (1 + s.Z)

	lo, hi := windowBounds(s.Wavelength, obs-f.cfg.Window, obs+f.cfg.Window)
	n := hi - lo

	if n < f.cfg.MinSamples {
		return failure(name, obs, 0), nil
	}

	wave := s.Wavelength[lo:hi]

	flux, weights, med := sanitizeWindow(s, lo, hi)

	prof := f.cfg.Profile

	init, lower, upper := f.setup(prof, obs, flux, med)

	sol, err := levmar.Solve(levmar.Problem{
		X:       wave,
		Y:       flux,
		Weights: weights,
		Model:   prof.eval,
		Lower:   lower,
		Upper:   upper,
	}, init, levmar.Options{MaxIterations: f.cfg.MaxIterations})
	if err != nil || !sol.Converged {
		return failure(name, obs, med), nil
	}

	return f.measure(name, obs, prof, wave, flux, sol), nil
}

// setup builds the initial guess and box bounds for one fit window.
func (f *Fitter) setup(prof Profile, obs float64, flux []float64, med float64) (init, lower, upper []float64) {
	maxFlux := flux[0]
	for _, v := range flux[1:] {
		if v > maxFlux {
			maxFlux = v
		}
	}

	ampGuess := maxFlux - med
	if ampGuess < 0 || math.IsNaN(ampGuess) {
		ampGuess = 0
	}

	m := prof.paramCount()
	init = make([]float64, m)
	lower = make([]float64, m)
	upper = make([]float64, m)

	init[pAmplitude] = ampGuess
	lower[pAmplitude] = 0
	upper[pAmplitude] = math.Inf(1)

	init[pCenter] = obs
	lower[pCenter] = obs - f.cfg.CenterShift
	upper[pCenter] = obs + f.cfg.CenterShift

	init[pSigma] = defaultSigmaGuess
	lower[pSigma] = f.cfg.SigmaMin
	upper[pSigma] = f.cfg.SigmaMax

	if prof == ProfileVoigt {
		init[pGamma] = defaultSigmaGuess
		lower[pGamma] = defaultGammaMin
		upper[pGamma] = f.cfg.SigmaMax
	}

	ci := prof.continuumIndex()

	// Slope first, intercept second.
	init[ci] = 0
	lower[ci] = -defaultSlopeBound
	upper[ci] = defaultSlopeBound

	intercept := med
	if intercept < 0 || math.IsNaN(intercept) {
		intercept = 0
	}

	init[ci+1] = intercept
	lower[ci+1] = 0
	upper[ci+1] = math.Inf(1)

	return init, lower, upper
}

// measure derives the reported physical quantities from a converged
// solution.
func (f *Fitter) measure(name string, obs float64, prof Profile, wave, flux []float64, sol levmar.Result) Result {
	p := sol.Params
	perr := sol.ParamErrs

	amplitude := p[pAmplitude]
	center := p[pCenter]
	sigma := p[pSigma]

	ci := prof.continuumIndex()
	continuum := p[ci]*center + p[ci+1]

	integrated := prof.integratedFlux(amplitude, sigma)

	var fluxErr float64
	if amplitude > 0 && sigma > 0 {
		ra := perr[pAmplitude] / amplitude
		rs := perr[pSigma] / sigma
		fluxErr = integrated * math.Sqrt(ra*ra+rs*rs)
	}

	var ew, ewErr float64
	if continuum > 0 {
		// Negative sign convention for emission.
		ew = -integrated / continuum
	}

	if integrated > 0 {
		ewErr = math.Abs(ew) * (fluxErr / integrated)
	}

	resid := make([]float64, len(wave))
	for i, x := range wave {
		resid[i] = flux[i] - prof.eval(p, x)
	}

	_, variance, _, _ := tstats.Moments(resid)

	var snr float64
	if std := math.Sqrt(variance); std > 0 {
		snr = amplitude / std
	}

	velocity := SpeedOfLight * (center - obs) / obs
	velocityErr := SpeedOfLight * perr[pCenter] / obs

	return Result{
		Line:         name,
		Center:       center,
		CenterErr:    perr[pCenter],
		Amplitude:    amplitude,
		AmplitudeErr: perr[pAmplitude],
		Sigma:        sigma,
		SigmaErr:     perr[pSigma],
		Flux:         integrated,
		FluxErr:      fluxErr,
		EW:           ew,
		EWErr:        ewErr,
		SNR:          snr,
		Velocity:     velocity,
		VelocityErr:  velocityErr,
		Continuum:    continuum,
		Success:      true,
	}
}

// failure builds the deterministic failed-fit result: expected center,
// best-effort continuum, everything else zero.
func failure(name string, obs, continuum float64) Result {
	return Result{
		Line:      name,
		Center:    obs,
		Continuum: continuum,
	}
}

// windowBounds returns the half-open index range of samples with wavelength
// in (lo, hi). Wavelengths are strictly increasing, so a linear scan from
// both ends is avoided with binary search.
func windowBounds(wavelength []float64, lo, hi float64) (int, int) {
	start := searchGreater(wavelength, lo)
	end := searchGreaterEq(wavelength, hi)

	if end < start {
		end = start
	}

	return start, end
}

// searchGreater returns the first index with wavelength[i] > v.
func searchGreater(w []float64, v float64) int {
	lo, hi := 0, len(w)
	for lo < hi {
		mid := (lo + hi) / 2
		if w[mid] > v {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo
}

// searchGreaterEq returns the first index with wavelength[i] >= v.
func searchGreaterEq(w []float64, v float64) int {
	lo, hi := 0, len(w)
	for lo < hi {
		mid := (lo + hi) / 2
		if w[mid] >= v {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo
}

// sanitizeWindow copies the window flux and builds fit weights sqrt(ivar).
// Zero and non-finite inverse variances are floored so the sample still
// participates (negligibly) instead of breaking array alignment, and
// non-finite flux samples are likewise kept: their weight is floored and
// their value replaced with the window median so they cannot poison the
// residuals. The returned weights slice is nil when every weight is uniform.
func sanitizeWindow(s spectral.Spectrum, lo, hi int) (flux, weights []float64, med float64) {
	n := hi - lo

	flux = make([]float64, n)
	copy(flux, s.Flux[lo:hi])

	med = windowMedian(flux)

	if s.Ivar != nil {
		weights = make([]float64, n)

		for i := range weights {
			iv := s.Ivar[lo+i]
			if iv <= 0 || math.IsNaN(iv) || math.IsInf(iv, 0) {
				weights[i] = weightFloor
				continue
			}

			w := math.Sqrt(iv)
			if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				w = weightFloor
			}

			weights[i] = w
		}
	}

	for i, v := range flux {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			continue
		}

		flux[i] = med

		if weights == nil {
			weights = make([]float64, n)
			for j := range weights {
				weights[j] = 1
			}
		}

		weights[i] = weightFloor
	}

	return flux, weights, med
}

// windowMedian returns the median of the window flux, ignoring non-finite
// samples; used for the continuum guess and the failed-fit continuum.
func windowMedian(flux []float64) float64 {
	finite := make([]float64, 0, len(flux))

	for _, v := range flux {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		finite = append(finite, v)
	}

	if len(finite) == 0 {
		return 0
	}

	return medianInPlace(finite)
}

func medianInPlace(data []float64) float64 {
	// Insertion sort: windows are tens of samples.
	for i := 1; i < len(data); i++ {
		for j := i; j > 0 && data[j] < data[j-1]; j-- {
			data[j], data[j-1] = data[j-1], data[j]
		}
	}

	mid := len(data) / 2
	if len(data)%2 == 1 {
		return data[mid]
	}

	return 0.5 * (data[mid-1] + data[mid])
}
