package fit_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectro/fit"
	"github.com/cwbudde/algo-spectro/spectral"
)

func ExampleLine() {
	// A noiseless Gaussian Halpha line on a flat continuum.
	n := 501
	wave := make([]float64, n)
	flux := make([]float64, n)

	for i := range wave {
		wave[i] = 6400 + float64(i)
		t := (wave[i] - 6564.61) / 3.0
		flux[i] = 5.0*math.Exp(-0.5*t*t) + 10.0
	}

	s := spectral.Spectrum{Wavelength: wave, Flux: flux}

	res, err := fit.Line(s, "Halpha")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("success=%v center=%.1f sigma=%.1f\n", res.Success, res.Center, res.Sigma)

	// Output:
	// success=true center=6564.6 sigma=3.0
}
