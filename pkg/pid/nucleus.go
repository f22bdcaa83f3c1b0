package pid

// nucleusBase is the leading "10" of the ±10LZZZAAAI layout.
const nucleusBase = 1_000_000_000

// NucleusID builds the code of a nucleus with mass number a, atomic number
// z, strange-quark (hyperon) content lambda and isomer level iso.
func NucleusID(a, z, lambda, iso int) ID {
	return ID(nucleusBase + lambda*extraBitsBase + z*10_000 + a*10 + iso)
}

func (id ID) nuclearLayout() bool {
	return int(id.Abs())/powersOfTen[9] == 1 && id.Digit(N9) == 0
}

// A returns the mass number. The proton counts as hydrogen (A = 1).
// Codes outside the nuclear layout return 0.
func (id ID) A() int {
	if id.Abs() == 2212 {
		return 1
	}
	if !id.nuclearLayout() {
		return 0
	}
	return (int(id.Abs()) / 10) % 1000
}

// Z returns the atomic number. The proton counts as hydrogen (Z = 1).
func (id ID) Z() int {
	if id.Abs() == 2212 {
		return 1
	}
	if !id.nuclearLayout() {
		return 0
	}
	return (int(id.Abs()) / 10_000) % 1000
}

// Lambda returns the number of strange quarks in a hypernucleus.
func (id ID) Lambda() int {
	if !id.IsNucleus() {
		return 0
	}
	return id.Digit(N8)
}

// IsomerLevel returns the excitation level I of a nucleus.
func (id ID) IsomerLevel() int {
	if !id.IsNucleus() {
		return 0
	}
	return id.Digit(NJ)
}
