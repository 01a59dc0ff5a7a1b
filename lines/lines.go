package lines

import "sort"

// Kind distinguishes emission from absorption features.
type Kind int

const (
	// Emission marks lines expected in emission (positive amplitude).
	Emission Kind = iota
	// Absorption marks lines expected in absorption.
	Absorption
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Emission:
		return "emission"
	case Absorption:
		return "absorption"
	default:
		return "unknown"
	}
}

// Line is one registry entry. RestWavelength is the rest-frame vacuum
// wavelength in Angstroms. Priority orders display importance (higher is more
// important, derived from SDSS line weights). Color is a display hint in
// #RRGGBB form; it may be empty for lines without an assigned color.
type Line struct {
	Name           string
	RestWavelength float64
	Priority       int
	Color          string
	Kind           Kind
}

// catalog lists every known line. Order here is not significant; the public
// accessors sort by rest wavelength.
var catalog = []Line{
	// UV lines (relevant for high-z quasars).
	{"OVI_1034", 1033.82, 3, "#FFFFE0", Emission},
	{"Lyalpha", 1215.24, 10, "#E6E6FA", Emission},
	{"NV_1241", 1240.81, 7, "#DB7093", Emission},
	{"OI_1306", 1305.53, 2, "#F0E68C", Emission},
	{"CII_1335", 1335.31, 2, "#40E0D0", Emission},
	{"SiIV_1398", 1397.61, 4, "#4169E1", Emission},
	{"SiIV_OIV_1400", 1399.8, 4, "#4682B4", Emission},
	{"CIV_1549", 1549.48, 9, "#00CED1", Emission},
	{"HeII_1640", 1640.4, 5, "#FFC0CB", Emission},
	{"OIII_1666", 1665.85, 2, "#FFA07A", Emission},
	{"AlIII_1857", 1857.4, 2, "#B0C4DE", Emission},
	{"CIII_1909", 1908.734, 8, "#00FFFF", Emission},
	{"CII_2326", 2326.0, 2, "#48D1CC", Emission},
	{"NeIV_2439", 2439.5, 3, "#FF6347", Emission},
	{"MgII_2799", 2799.117, 9, "#20B2AA", Emission},
	// Optical lines.
	{"NeV_3346", 3346.79, 3, "#FF4500", Emission},
	{"NeVI_3427", 3426.85, 3, "#DC143C", Emission},
	{"OII_3727", 3727.092, 8, "#00FF00", Emission},
	{"OII_3729", 3729.875, 5, "#32CD32", Emission},
	{"HeI_3889", 3889.0, 3, "#FFB6C1", Emission},
	{"SII_4072", 4072.3, 2, "#BA55D3", Emission},
	{"Hdelta", 4102.89, 5, "#87CEEB", Emission},
	{"Hgamma", 4341.68, 6, "#00BFFF", Emission},
	{"OIII_4363", 4364.436, 4, "#FFA500", Emission},
	{"Hbeta", 4862.68, 9, "#0000FF", Emission},
	{"OIII_4933", 4932.603, 3, "#FF7F00", Emission},
	{"OIII_4959", 4960.295, 7, "#FF8C00", Emission},
	{"OIII_5007", 5008.24, 9, "#FF6600", Emission},
	{"OI_6300", 6302.046, 4, "#FFD700", Emission},
	{"OI_6365", 6365.536, 3, "#DAA520", Emission},
	{"NI_6529", 6529.03, 2, "#FF69B4", Emission},
	{"NII_6548", 6549.86, 6, "#FF1493", Emission},
	{"Halpha", 6564.61, 10, "#FF0000", Emission},
	{"NII_6583", 6585.27, 8, "#FF00FF", Emission},
	{"SII_6716", 6718.29, 6, "#8B008B", Emission},
	{"SII_6731", 6732.67, 6, "#9932CC", Emission},
	// Absorption lines (stellar features in galaxy spectra).
	{"CaII_K", 3934.777, 6, "", Absorption},
	{"CaII_H", 3969.588, 6, "", Absorption},
	{"G_band", 4305.61, 5, "", Absorption},
	{"Mg_5177", 5176.7, 5, "", Absorption},
	{"Na_D", 5895.6, 7, "", Absorption},
	{"CaII_8500", 8500.36, 4, "", Absorption},
	{"CaII_8544", 8544.44, 4, "", Absorption},
	{"CaII_8664", 8664.52, 4, "", Absorption},
}

var (
	byName     map[string]Line
	emission   []Line
	absorption []Line
)

func init() {
	byName = make(map[string]Line, len(catalog))
	for _, l := range catalog {
		byName[l.Name] = l
		switch l.Kind {
		case Emission:
			emission = append(emission, l)
		case Absorption:
			absorption = append(absorption, l)
		}
	}

	sort.Slice(emission, func(i, j int) bool {
		return emission[i].RestWavelength < emission[j].RestWavelength
	})
	sort.Slice(absorption, func(i, j int) bool {
		return absorption[i].RestWavelength < absorption[j].RestWavelength
	})
}

// Lookup returns the registry entry for name.
func Lookup(name string) (Line, bool) {
	l, ok := byName[name]
	return l, ok
}

// EmissionLines returns all emission lines ordered by rest wavelength.
// The returned slice is a copy and safe to modify.
func EmissionLines() []Line {
	out := make([]Line, len(emission))
	copy(out, emission)

	return out
}

// AbsorptionLines returns all absorption lines ordered by rest wavelength.
// The returned slice is a copy and safe to modify.
func AbsorptionLines() []Line {
	out := make([]Line, len(absorption))
	copy(out, absorption)

	return out
}

// All returns every registry entry, emission first, each group ordered by
// rest wavelength.
func All() []Line {
	out := make([]Line, 0, len(emission)+len(absorption))
	out = append(out, emission...)
	out = append(out, absorption...)

	return out
}

// EmissionNames returns the emission line names ordered by rest wavelength.
func EmissionNames() []string {
	out := make([]string, len(emission))
	for i, l := range emission {
		out[i] = l.Name
	}

	return out
}
