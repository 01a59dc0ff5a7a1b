package lines

import "testing"

func TestLookup(t *testing.T) {
	l, ok := Lookup("Halpha")
	if !ok {
		t.Fatal("Halpha missing from registry")
	}

	if l.RestWavelength != 6564.61 {
		t.Fatalf("Halpha rest wavelength = %v, want 6564.61", l.RestWavelength)
	}

	if l.Priority != 10 || l.Color != "#FF0000" || l.Kind != Emission {
		t.Fatalf("unexpected Halpha entry: %+v", l)
	}

	if _, ok := Lookup("NotALine"); ok {
		t.Fatal("unknown name must not resolve")
	}
}

func TestAbsorptionEntries(t *testing.T) {
	l, ok := Lookup("CaII_K")
	if !ok {
		t.Fatal("CaII_K missing from registry")
	}

	if l.Kind != Absorption {
		t.Fatalf("CaII_K kind = %v, want absorption", l.Kind)
	}

	for _, a := range AbsorptionLines() {
		if a.Kind != Absorption {
			t.Fatalf("%s listed as absorption but has kind %v", a.Name, a.Kind)
		}
	}
}

func TestWavelengthOrdering(t *testing.T) {
	for _, group := range [][]Line{EmissionLines(), AbsorptionLines()} {
		for i := 1; i < len(group); i++ {
			if group[i].RestWavelength < group[i-1].RestWavelength {
				t.Fatalf("%s (%v) out of order after %s (%v)",
					group[i].Name, group[i].RestWavelength,
					group[i-1].Name, group[i-1].RestWavelength)
			}
		}
	}
}

func TestAllCoversBothKinds(t *testing.T) {
	all := All()

	if len(all) != len(EmissionLines())+len(AbsorptionLines()) {
		t.Fatalf("All() has %d entries, want %d emission + %d absorption",
			len(all), len(EmissionLines()), len(AbsorptionLines()))
	}

	for _, l := range all {
		got, ok := Lookup(l.Name)
		if !ok || got != l {
			t.Fatalf("%s not resolvable through Lookup", l.Name)
		}
	}
}

func TestEmissionNamesMatchEmissionLines(t *testing.T) {
	names := EmissionNames()
	em := EmissionLines()

	if len(names) != len(em) {
		t.Fatalf("got %d names, want %d", len(names), len(em))
	}

	for i, name := range names {
		if name != em[i].Name {
			t.Fatalf("names[%d] = %s, want %s", i, name, em[i].Name)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	em := EmissionLines()
	em[0].Name = "mutated"

	if EmissionLines()[0].Name == "mutated" {
		t.Fatal("registry state leaked through EmissionLines()")
	}

	names := EmissionNames()
	names[0] = "mutated"

	if EmissionNames()[0] == "mutated" {
		t.Fatal("registry state leaked through EmissionNames()")
	}
}

func TestKindString(t *testing.T) {
	if Emission.String() != "emission" || Absorption.String() != "absorption" {
		t.Fatalf("unexpected kind names: %v, %v", Emission, Absorption)
	}

	if Kind(99).String() != "unknown" {
		t.Fatalf("out-of-range kind = %v, want unknown", Kind(99))
	}
}
