package fit

import (
	"sync"

	"github.com/cwbudde/algo-spectro/lines"
	"github.com/cwbudde/algo-spectro/spectral"
)

// Lines fits the named registry lines with default configuration.
// With no names it fits every registry emission line.
func Lines(s spectral.Spectrum, names ...string) (map[string]Result, error) {
	return NewFitter(Config{}).FitLines(s, names...)
}

// FitLines fits each requested line independently and returns the results
// keyed by line name. Names missing from the registry are silently skipped.
// With no names it fits every registry emission line, ordered by rest
// wavelength.
//
// Fits share no state, so Config.Workers > 1 fans the work out across
// goroutines; results are identical to the sequential path.
func (f *Fitter) FitLines(s spectral.Spectrum, names ...string) (map[string]Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		names = lines.EmissionNames()
	}

	type task struct {
		name string
		rest float64
	}

	tasks := make([]task, 0, len(names))

	for _, name := range names {
		l, ok := lines.Lookup(name)
		if !ok {
			continue
		}

		tasks = append(tasks, task{name: name, rest: l.RestWavelength})
	}

	results := make([]Result, len(tasks))

	if f.cfg.Workers > 1 && len(tasks) > 1 {
		var wg sync.WaitGroup

		sem := make(chan struct{}, f.cfg.Workers)

		for i, tk := range tasks {
			wg.Add(1)

			go func(i int, tk task) {
				defer wg.Done()

				sem <- struct{}{}
				defer func() { <-sem }()

				// Spectrum already validated; FitAt cannot error here.
				results[i], _ = f.FitAt(s, tk.rest, tk.name)
			}(i, tk)
		}

		wg.Wait()
	} else {
		for i, tk := range tasks {
			results[i], _ = f.FitAt(s, tk.rest, tk.name)
		}
	}

	out := make(map[string]Result, len(tasks))
	for i, tk := range tasks {
		out[tk.name] = results[i]
	}

	return out, nil
}
