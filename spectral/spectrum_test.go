package spectral

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-spectro/internal/testutil"
)

func TestValidate(t *testing.T) {
	good := Spectrum{
		Wavelength: []float64{1, 2, 3},
		Flux:       []float64{1, 2, 3},
		Ivar:       []float64{1, 1, 1},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid spectrum rejected: %v", err)
	}

	noIvar := Spectrum{
		Wavelength: []float64{1, 2},
		Flux:       []float64{1, 2},
	}
	if err := noIvar.Validate(); err != nil {
		t.Fatalf("nil ivar rejected: %v", err)
	}

	if err := (Spectrum{}).Validate(); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	short := Spectrum{Wavelength: []float64{1, 2}, Flux: []float64{1}}
	if err := short.Validate(); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	badIvar := Spectrum{
		Wavelength: []float64{1, 2},
		Flux:       []float64{1, 2},
		Ivar:       []float64{1},
	}
	if err := badIvar.Validate(); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	const z = 0.05

	wave := testutil.WavelengthGrid(4000, 1.5, 100)
	flux := testutil.SlopedContinuum(wave, 0.002, 1)

	restWave, restFlux := ToRest(wave, flux, z)

	// Blueshift and flux-density correction.
	testutil.RequireNear(t, restWave[0], 4000/1.05, 1e-9)
	testutil.RequireNear(t, restFlux[0], flux[0]*1.05, 1e-9)

	backWave, backFlux := ToObserved(restWave, restFlux, z)

	testutil.RequireSliceNearlyEqual(t, backWave, wave, 1e-9)
	testutil.RequireSliceNearlyEqual(t, backFlux, flux, 1e-9)
}

func TestToRestLeavesInputs(t *testing.T) {
	wave := []float64{5000}
	flux := []float64{2}

	ToRest(wave, flux, 0.1)

	if wave[0] != 5000 || flux[0] != 2 {
		t.Fatalf("inputs modified: %v %v", wave, flux)
	}
}
