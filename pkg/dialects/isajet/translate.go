package isajet

import "github.com/leapstack-labs/pdt/pkg/dialect"

// isajetToPDG covers the common Isajet codes. Negative codes translate
// through their absolute value; anything missing translates to 0 unless a
// translation table is configured.
var isajetToPDG = map[int]int{
	// quarks and gauge bosons
	1: 2, 2: 1, 3: 3, 4: 4, 5: 5, 6: 6,
	9: 21, 10: 22, 80: 24, 90: 23, 81: 25,
	// leptons
	11: 12, 12: 11, 13: 14, 14: 13, 15: 16, 16: 15,
	// pseudoscalar mesons
	110: 111, 120: 211, 220: 221, 130: 321, 230: 311, 330: 331,
	140: -421, 240: -411, 340: -431, 440: 441,
	150: 521, 250: 511, 350: 531, 450: 541, 550: 551,
	20: 310, -20: 130,
	// vector mesons
	111: 113, 121: 213, 221: 223, 131: 323, 231: 313, 331: 333,
	141: -423, 241: -413, 341: -433, 441: 443,
	151: 523, 251: 513, 351: 533, 551: 553,
	// baryons
	1120: 2212, 1220: 2112, 2130: 3122,
	1130: 3222, 1230: 3212, 2230: 3112,
	1330: 3322, 2330: 3312,
	1140: 4222, 1240: 4212, 2240: 4112, 2140: 4122,
	1111: 2224, 1121: 2214, 1221: 2114, 2221: 1114,
	1131: 3224, 1231: 3214, 2231: 3114,
	1331: 3324, 2331: 3314, 3331: 3334,
}

// DefaultTranslator returns the built-in Isajet to canonical table.
func DefaultTranslator() *dialect.Map {
	return dialect.NewMap(isajetToPDG, nil)
}

// quarkToPDG maps Isajet quark flavors (1=u, 2=d) to canonical codes.
func quarkToPDG(fl int) int {
	switch abs := max(fl, -fl); abs {
	case 1, 2:
		q := 3 - abs
		if fl < 0 {
			return -q
		}
		return q
	}
	return fl
}
