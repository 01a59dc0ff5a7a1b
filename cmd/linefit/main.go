// Command linefit fits emission lines in a spectrum file and prints the
// measurements, diagnostic line ratios, and BPT classification.
//
// Usage:
//
//	linefit [flags] spectrum-file
//
// The spectrum file holds one sample per row: wavelength flux [ivar],
// whitespace or comma separated; lines starting with '#' are skipped.
//
// Examples:
//
//	linefit -z 0.021 spectrum.txt
//	linefit -z 0.021 -lines Halpha,Hbeta,OIII_5007,NII_6583 spectrum.txt
//	linefit -z 0.021 -profile lorentzian -window 25 spectrum.txt
//	linefit -z 0.021 -csv spectrum.txt > results.csv
//	linefit -list
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectro/bpt"
	"github.com/cwbudde/algo-spectro/fit"
	"github.com/cwbudde/algo-spectro/lines"
	"github.com/cwbudde/algo-spectro/spectral"
)

func main() {
	z := flag.Float64("z", 0, "systemic redshift")
	lineList := flag.String("lines", "", "comma-separated line names (default: all emission lines)")
	window := flag.Float64("window", 0, "fit half-window in Angstroms (default 20)")
	profile := flag.String("profile", "gaussian", "peak profile: gaussian, lorentzian, voigt")
	workers := flag.Int("workers", 1, "parallel fit workers")
	csvOut := flag.Bool("csv", false, "emit CSV instead of a table")
	list := flag.Bool("list", false, "list registry lines and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: linefit [flags] spectrum-file\n\n")
		fmt.Fprintf(os.Stderr, "Fits emission lines and prints measurements and BPT classification.\n")
		fmt.Fprintf(os.Stderr, "The file holds one sample per row: wavelength flux [ivar].\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		printRegistry()
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	prof, ok := parseProfile(*profile)
	if !ok {
		fmt.Fprintf(os.Stderr, "linefit: unknown profile %q\n", *profile)
		os.Exit(2)
	}

	spec, err := readSpectrum(flag.Arg(0), *z)
	if err != nil {
		fmt.Fprintf(os.Stderr, "linefit: %v\n", err)
		os.Exit(1)
	}

	var names []string
	if *lineList != "" {
		for _, name := range strings.Split(*lineList, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	fitter := fit.NewFitter(fit.Config{
		Window:  *window,
		Workers: *workers,
		Profile: prof,
	})

	results, err := fitter.FitLines(spec, names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "linefit: %v\n", err)
		os.Exit(1)
	}

	ordered := orderedNames(names)

	if *csvOut {
		if err := writeCSV(os.Stdout, ordered, results); err != nil {
			fmt.Fprintf(os.Stderr, "linefit: %v\n", err)
			os.Exit(1)
		}

		return
	}

	printTable(ordered, results)
	printDiagnostics(results)
}

func parseProfile(name string) (fit.Profile, bool) {
	switch strings.ToLower(name) {
	case "gaussian":
		return fit.ProfileGaussian, true
	case "lorentzian":
		return fit.ProfileLorentzian, true
	case "voigt":
		return fit.ProfileVoigt, true
	default:
		return 0, false
	}
}

// readSpectrum parses a wavelength/flux[/ivar] sample file.
func readSpectrum(path string, z float64) (spectral.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return spectral.Spectrum{}, err
	}
	defer f.Close()

	var spec spectral.Spectrum
	spec.Z = z

	hasIvar := false
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})

		vals := make([]float64, 0, 3)

		for _, field := range fields {
			if field == "" {
				continue
			}

			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return spectral.Spectrum{}, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}

			vals = append(vals, v)
		}

		if len(vals) < 2 {
			return spectral.Spectrum{}, fmt.Errorf("%s:%d: need at least wavelength and flux", path, lineNo)
		}

		spec.Wavelength = append(spec.Wavelength, vals[0])
		spec.Flux = append(spec.Flux, vals[1])

		if len(vals) >= 3 {
			hasIvar = true
			spec.Ivar = append(spec.Ivar, vals[2])
		} else {
			spec.Ivar = append(spec.Ivar, 0)
		}
	}

	if err := scanner.Err(); err != nil {
		return spectral.Spectrum{}, err
	}

	if !hasIvar {
		spec.Ivar = nil
	}

	return spec, spec.Validate()
}

// orderedNames returns the display order: the requested order, or the
// registry's wavelength order when no explicit list was given.
func orderedNames(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}

	return lines.EmissionNames()
}

func printTable(ordered []string, results map[string]fit.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "line\tcenter [A]\tflux\tflux err\tEW [A]\tsigma [A]\tS/N\tv [km/s]\tok")

	for _, name := range ordered {
		r, ok := results[name]
		if !ok {
			continue
		}

		if !r.Success {
			fmt.Fprintf(w, "%s\t%.2f\t-\t-\t-\t-\t-\t-\tno\n", r.Line, r.Center)
			continue
		}

		fmt.Fprintf(w, "%s\t%.2f\t%.4g\t%.2g\t%.2f\t%.2f\t%.1f\t%.1f\tyes\n",
			r.Line, r.Center, r.Flux, r.FluxErr, r.EW, r.Sigma, r.SNR, r.Velocity)
	}

	w.Flush()
}

func printDiagnostics(results map[string]fit.Result) {
	ratios := bpt.ComputeRatios(results)

	printed := false

	printRatio := func(name string, r bpt.Ratio) {
		if !r.Valid {
			return
		}

		if !printed {
			fmt.Println()
			printed = true
		}

		fmt.Printf("%s = %.3f +- %.3f\n", name, r.Value, r.Err)
	}

	printRatio("log([NII]/Ha)", ratios.NIIHa)
	printRatio("log([OIII]/Hb)", ratios.OIIIHb)
	printRatio("log([SII]/Ha)", ratios.SIIHa)
	printRatio("log([OI]/Ha)", ratios.OIHa)

	if class, ok := ratios.Classify(); ok {
		fmt.Printf("BPT classification: %s\n", class)
	}
}

// writeCSV emits one flat record of scalar fields per line, fitted or not.
func writeCSV(out *os.File, ordered []string, results map[string]fit.Result) error {
	w := csv.NewWriter(out)

	header := []string{
		"line", "center", "center_err", "amplitude", "amplitude_err",
		"sigma", "sigma_err", "flux", "flux_err", "ew", "ew_err",
		"snr", "velocity", "velocity_err", "continuum", "success",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	g := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	for _, name := range ordered {
		r, ok := results[name]
		if !ok {
			continue
		}

		record := []string{
			r.Line, g(r.Center), g(r.CenterErr), g(r.Amplitude), g(r.AmplitudeErr),
			g(r.Sigma), g(r.SigmaErr), g(r.Flux), g(r.FluxErr), g(r.EW), g(r.EWErr),
			g(r.SNR), g(r.Velocity), g(r.VelocityErr), g(r.Continuum),
			strconv.FormatBool(r.Success),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func printRegistry() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "name\trest [A]\tkind\tpriority\tcolor")

	for _, l := range lines.All() {
		fmt.Fprintf(w, "%s\t%.3f\t%s\t%d\t%s\n",
			l.Name, l.RestWavelength, l.Kind, l.Priority, l.Color)
	}

	w.Flush()
}
