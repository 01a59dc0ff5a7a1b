package fit

import (
	"testing"

	"github.com/cwbudde/algo-spectro/lines"
)

func TestFitLinesSkipsUnknownNames(t *testing.T) {
	s := synthSpectrum(0, 5.0, 3.0, 10.0, 0.05, 3)

	results, err := Lines(s, "Halpha", "NotALine", "NII_6583")
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	if _, ok := results["NotALine"]; ok {
		t.Fatal("unknown name must be skipped, not reported")
	}

	if _, ok := results["Halpha"]; !ok {
		t.Fatal("missing Halpha result")
	}

	if _, ok := results["NII_6583"]; !ok {
		t.Fatal("missing NII_6583 result")
	}
}

func TestFitLinesDefaultsToEmissionRegistry(t *testing.T) {
	s := synthSpectrum(0, 5.0, 3.0, 10.0, 0.05, 3)

	results, err := Lines(s)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	names := lines.EmissionNames()
	if len(results) != len(names) {
		t.Fatalf("got %d results, want one per emission line (%d)", len(results), len(names))
	}

	for _, name := range names {
		if _, ok := results[name]; !ok {
			t.Fatalf("missing result for %s", name)
		}
	}
}

func TestFitLinesParallelMatchesSequential(t *testing.T) {
	s := synthSpectrum(0, 5.0, 3.0, 10.0, 0.05, 17)

	names := []string{"Halpha", "Hbeta", "OIII_5007", "NII_6583", "SII_6716", "SII_6731"}

	seq, err := NewFitter(Config{Workers: 1}).FitLines(s, names...)
	if err != nil {
		t.Fatalf("sequential fit failed: %v", err)
	}

	par, err := NewFitter(Config{Workers: 4}).FitLines(s, names...)
	if err != nil {
		t.Fatalf("parallel fit failed: %v", err)
	}

	if len(seq) != len(par) {
		t.Fatalf("result counts differ: %d vs %d", len(seq), len(par))
	}

	// Fits share no state, so the fan-out must be bit-identical.
	for name, want := range seq {
		if got := par[name]; got != want {
			t.Fatalf("%s: parallel result %+v differs from sequential %+v", name, got, want)
		}
	}
}
