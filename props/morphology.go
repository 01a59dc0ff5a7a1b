package props

import "math"

// MorphologyClass is a coarse morphological type estimate.
type MorphologyClass int

const (
	// LateType indicates a disk-dominated (exponential) light profile.
	LateType MorphologyClass = iota
	// Intermediate sits between the disk and bulge regimes.
	Intermediate
	// EarlyType indicates a bulge-dominated (de Vaucouleurs) profile.
	EarlyType
)

// String returns the class name.
func (c MorphologyClass) String() string {
	switch c {
	case LateType:
		return "late-type/disk"
	case Intermediate:
		return "intermediate"
	case EarlyType:
		return "early-type/bulge"
	default:
		return "unknown"
	}
}

// Morphology is a rough structural estimate from Petrosian radii.
// Concentration is R90/R50; SersicIndex is a coarse bracket estimate
// (1 for disks, 4 for bulges), not a fit.
type Morphology struct {
	Concentration   float64
	SersicIndex     float64
	EffectiveRadius float64
	Class           MorphologyClass
}

// EstimateMorphology estimates concentration and a bracket Sersic index
// from the Petrosian 50% and 90% light radii (arcsec). Concentration is
// roughly 2.5 for pure disks and 3.5-4 for classical bulges. ok is false
// for non-positive radii.
func EstimateMorphology(petroR50, petroR90 float64) (Morphology, bool) {
	if petroR50 <= 0 || petroR90 <= 0 || math.IsNaN(petroR50) || math.IsNaN(petroR90) {
		return Morphology{}, false
	}

	c := petroR90 / petroR50

	m := Morphology{
		Concentration:   c,
		EffectiveRadius: petroR50,
	}

	switch {
	case c < 2.3:
		m.SersicIndex = 1.0
		m.Class = LateType
	case c > 3.5:
		m.SersicIndex = 4.0
		m.Class = EarlyType
	default:
		m.SersicIndex = 2.0
		m.Class = Intermediate
	}

	return m, true
}
