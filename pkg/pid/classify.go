package pid

// IsMeson reports whether the code has a meson signature (nq1 == 0 with
// non-zero nq2, nq3 and nj) or is one of the special meson codes.
// Quark-antiquark states of a single flavor have no distinct antiparticle,
// so their negative codes are not mesons.
func (id ID) IsMeson() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	a := id.Abs()
	if a <= 100 {
		return false
	}
	if fid := id.FundamentalID(); fid > 0 && fid <= 100 {
		return false
	}
	if id.IsRhadron() {
		return false
	}
	switch a {
	case 130, 310, 210:
		return true
	case 150, 350, 510, 530:
		// EvtGen specials
		return true
	}
	switch id {
	case 110, 990, 9990:
		// reggeon, pomeron
		return true
	}
	if id.Digit(NJ) > 0 && id.Digit(NQ3) > 0 && id.Digit(NQ2) > 0 && id.Digit(NQ1) == 0 {
		return !(id.Digit(NQ3) == id.Digit(NQ2) && id < 0)
	}
	return false
}

// IsBaryon reports whether the code has a three-quark signature.
func (id ID) IsBaryon() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	a := id.Abs()
	if a <= 100 {
		return false
	}
	if fid := id.FundamentalID(); fid > 0 && fid <= 100 {
		return false
	}
	if id.IsRhadron() || id.IsPentaquark() {
		return false
	}
	if a == 2110 || a == 2210 {
		return true
	}
	return id.Digit(NJ) > 0 && id.Digit(NQ3) > 0 && id.Digit(NQ2) > 0 && id.Digit(NQ1) > 0
}

// IsDiQuark reports whether the code has a diquark signature (nq3 == 0).
func (id ID) IsDiQuark() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	if id.Abs() <= 100 {
		return false
	}
	if fid := id.FundamentalID(); fid > 0 && fid <= 100 {
		return false
	}
	return id.Digit(NJ) > 0 && id.Digit(NQ3) == 0 && id.Digit(NQ2) > 0 && id.Digit(NQ1) > 0
}

// IsHadron reports whether the code is a meson, baryon, pentaquark or
// R-hadron.
func (id ID) IsHadron() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	return id.IsMeson() || id.IsBaryon() || id.IsPentaquark() || id.IsRhadron()
}

// IsLepton reports whether the fundamental part of the code is a lepton
// (11..18). SUSY partners of leptons also satisfy this.
func (id ID) IsLepton() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	fid := id.FundamentalID()
	return fid >= 11 && fid <= 18
}

// IsNucleus reports whether the code uses the ±10LZZZAAAI nuclear layout
// with A >= Z. The proton is classified as a baryon; A and Z still treat it
// as a hydrogen nucleus.
func (id ID) IsNucleus() bool {
	a := int(id.Abs())
	if a/powersOfTen[9] != 1 || id.Digit(N9) != 0 {
		return false
	}
	return (a/10)%1000 >= (a/10_000)%1000
}

// IsSUSY reports whether the code is a fundamental SUSY partner (n = 1 or 2,
// nr = 0, with a valid fundamental part).
func (id ID) IsSUSY() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	if n := id.Digit(N); n != 1 && n != 2 {
		return false
	}
	if id.Digit(NR) != 0 {
		return false
	}
	return id.FundamentalID() != 0
}

// IsRhadron reports whether the code is an R-hadron: 10abcdj, 100abcj or
// 1000abj, where abcd/abc/ab is an ordinary hadron code.
func (id ID) IsRhadron() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	if id.Digit(N) != 1 || id.Digit(NR) != 0 {
		return false
	}
	if id.IsSUSY() {
		return false
	}
	return id.Digit(NQ2) != 0 && id.Digit(NQ3) != 0 && id.Digit(NJ) != 0
}

// IsPentaquark reports whether the code has the 9abcdej layout with the
// quark digits in non-increasing order.
func (id ID) IsPentaquark() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	if id.Digit(N) != 9 {
		return false
	}
	if nr := id.Digit(NR); nr == 9 || nr == 0 {
		return false
	}
	if id.Digit(NJ) == 9 || id.Digit(NL) == 0 {
		return false
	}
	if id.Digit(NQ1) == 0 || id.Digit(NQ2) == 0 || id.Digit(NQ3) == 0 || id.Digit(NJ) == 0 {
		return false
	}
	if id.Digit(NQ2) > id.Digit(NQ1) {
		return false
	}
	if id.Digit(NQ1) > id.Digit(NL) {
		return false
	}
	return id.Digit(NL) <= id.Digit(NR)
}

// IsQBall reports whether the code is an ad-hoc exotic-charge state
// 100xxxx0, where xxxx is the charge in tenths.
func (id ID) IsQBall() bool {
	if id.ExtraBits() != 1 {
		return false
	}
	if id.Digit(N) != 0 || id.Digit(NR) != 0 {
		return false
	}
	if (int(id.Abs())/10)%10_000 == 0 {
		return false
	}
	return id.Digit(NJ) == 0
}

// IsDyon reports whether the code is a magnetic monopole or dyon, 411xyz0
// (magnetic and electric charge signs agree) or 412xyz0 (they disagree).
func (id ID) IsDyon() bool {
	if id.ExtraBits() > 0 {
		return false
	}
	if id.Digit(N) != 4 || id.Digit(NR) != 1 {
		return false
	}
	if nl := id.Digit(NL); nl != 1 && nl != 2 {
		return false
	}
	if id.Digit(NQ3) == 0 {
		return false
	}
	return id.Digit(NJ) == 0
}

// selfConjugateFundamentals lists fundamental codes without a distinct
// antiparticle: gluon, photon, Z, h, the Z' states, H0, A0 and graviton.
var selfConjugateFundamentals = map[int]bool{
	21: true, 22: true, 23: true, 25: true,
	32: true, 33: true, 35: true, 36: true, 39: true,
}

// IsSelfConjugate reports whether the particle is its own antiparticle.
// The sign of the code is ignored.
func (id ID) IsSelfConjugate() bool {
	a := id.Abs()
	if a == 0 || a.ExtraBits() > 0 {
		return false
	}
	switch a {
	case 130, 310, 110, 990, 9990:
		return true
	}
	if a.IsDyon() || a.IsRhadron() || a.IsPentaquark() {
		return false
	}
	if a.IsMeson() {
		return a.Digit(NQ1) == 0 && a.Digit(NQ2) == a.Digit(NQ3)
	}
	if fid := a.FundamentalID(); fid > 0 {
		return selfConjugateFundamentals[fid]
	}
	return false
}

// IsValid reports whether the code matches a recognized classification
// pattern or a fundamental range. Negative codes of self-conjugate
// particles are invalid.
func (id ID) IsValid() bool {
	if id.ExtraBits() > 0 {
		return id.IsNucleus() || id.IsQBall()
	}
	if id.IsSUSY() || id.IsRhadron() || id.IsDyon() {
		return true
	}
	if id.IsMeson() || id.IsBaryon() || id.IsDiQuark() {
		return true
	}
	if id.FundamentalID() > 0 {
		return id > 0 || !id.IsSelfConjugate()
	}
	return id.IsPentaquark()
}
