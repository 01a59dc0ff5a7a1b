// Package bpt computes Baldwin-Phillips-Terlevich diagnostic line ratios
// and classifies the ionization source of a galaxy or AGN.
//
// The primary diagram plots log([OIII]5007/Hbeta) against
// log([NII]6583/Halpha) and is partitioned by three empirical demarcation
// curves: Kauffmann et al. (2003), Kewley et al. (2001), and Schawinski et
// al. (2007). Classification precedence is fixed: star-forming, then
// composite, then Seyfert, then LINER.
//
// Ratios are only computed when both lines were fitted successfully with
// positive flux; absence is expressed through Ratio.Valid rather than
// sentinel values.
//
//	all, _ := fit.Lines(s, "Halpha", "Hbeta", "OIII_5007", "NII_6583")
//	r := bpt.ComputeRatios(all)
//	if class, ok := r.Classify(); ok {
//	    fmt.Println(class) // e.g. "star-forming"
//	}
package bpt
