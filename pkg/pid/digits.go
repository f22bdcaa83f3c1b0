package pid

import "strconv"

// ID is a canonical particle identifier. The antiparticle of a particle
// carries the negated code, except for self-conjugate particles.
type ID int

// Location names a digit position within an identifier.
type Location int

// Digit positions, least significant first.
const (
	NJ Location = iota + 1
	NQ3
	NQ2
	NQ1
	NL
	NR
	N
	N8
	N9
	N10
)

// extraBitsBase is the divisor above which a code is composite numbering.
const extraBitsBase = 10_000_000

var locationNames = [...]string{"", "nj", "nq3", "nq2", "nq1", "nl", "nr", "n", "n8", "n9", "n10"}

// String returns the conventional short name of the digit position.
func (l Location) String() string {
	if l < NJ || l > N10 {
		return "unknown"
	}
	return locationNames[l]
}

var powersOfTen = [...]int{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000, 1_000_000_000}

// Abs returns the sign-stripped code.
func (id ID) Abs() ID {
	if id < 0 {
		return -id
	}
	return id
}

// Digit returns the digit at loc. Positions beyond the significant length
// of the code, or outside the known layout, read as 0.
func (id ID) Digit(loc Location) int {
	if loc < NJ || loc > N10 {
		return 0
	}
	return int(id.Abs()) / powersOfTen[loc-1] % 10
}

// ExtraBits returns everything above the seventh digit.
func (id ID) ExtraBits() int {
	return int(id.Abs()) / extraBitsBase
}

// FundamentalID strips excitation digits and returns the base flavor code
// (1..100) for quarks, leptons, bosons and their SUSY or excited partners.
// Hadrons, nuclei and other composites return 0.
func (id ID) FundamentalID() int {
	if id.Digit(N10) == 1 && id.Digit(N9) == 0 {
		return 0
	}
	a := int(id.Abs())
	if id.Digit(NQ2) == 0 && id.Digit(NQ1) == 0 {
		return a % 10_000
	}
	if a <= 102 {
		return a
	}
	return 0
}

// String returns the decimal code.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}
