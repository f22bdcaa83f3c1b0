package pid

// fundamentalCharge holds three times the electric charge of the
// fundamental codes 1..100, indexed by code-1.
var fundamentalCharge = [100]int{
	-1, 2, -1, 2, -1, 2, -1, 2, 0, 0,
	-3, 0, -3, 0, -3, 0, -3, 0, 0, 0,
	0, 0, 0, 3, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 3, 0, 0, 3, 0, 0, 0,
	0, -1, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 6, 3, 6, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func quarkCharge(q int) int {
	if q <= 0 || q > len(fundamentalCharge) {
		return 0
	}
	return fundamentalCharge[q-1]
}

// mesonCharge combines a quark and an antiquark digit. For down-type nq2
// the antiquark is nq2, otherwise nq3.
func mesonCharge(q2, q3 int) int {
	if q2%2 == 1 {
		return quarkCharge(q3) - quarkCharge(q2)
	}
	return quarkCharge(q2) - quarkCharge(q3)
}

// ThreeCharge returns the electric charge in units of e/3.
func (id ID) ThreeCharge() int {
	q1, q2, q3, ql := id.Digit(NQ1), id.Digit(NQ2), id.Digit(NQ3), id.Digit(NL)
	a := int(id.Abs())
	fid := id.FundamentalID()

	var charge int
	switch {
	case a == 0:
		return 0
	case id.IsQBall():
		charge = 3 * ((a / 10) % 10_000)
	case id.IsNucleus():
		charge = 3 * id.Z()
	case id.ExtraBits() > 0:
		return 0
	case id.IsDyon():
		charge = 3 * ((a / 10) % 1000)
		if ql == 2 {
			charge = -charge
		}
	case fid > 0 && fid <= 100:
		charge = quarkCharge(fid)
		switch a {
		case 1000017, 1000018, 1000034, 1000052, 1000053, 1000054:
			charge = 0
		case 5100061, 5100062:
			charge = 6
		}
	case id.Digit(NJ) == 0:
		// K_L, K_S and other codes without spin information
		return 0
	case id.IsMeson():
		charge = mesonCharge(q2, q3)
	case id.IsRhadron():
		switch {
		case q1 == 0 || q1 == 9:
			charge = mesonCharge(q2, q3)
		case ql == 0:
			charge = quarkCharge(q3) + quarkCharge(q2) + quarkCharge(q1)
		case id.Digit(NR) == 0:
			charge = quarkCharge(q3) + quarkCharge(q2) + quarkCharge(q1) + quarkCharge(ql)
		}
	case id.IsDiQuark():
		charge = quarkCharge(q2) + quarkCharge(q1)
	case id.IsBaryon():
		charge = quarkCharge(q3) + quarkCharge(q2) + quarkCharge(q1)
	case id.IsPentaquark():
		charge = quarkCharge(id.Digit(NR)) + quarkCharge(ql) + quarkCharge(q1) + quarkCharge(q2) - quarkCharge(q3)
	default:
		return 0
	}
	if id < 0 {
		return -charge
	}
	return charge
}

// Charge returns the electric charge in units of e.
func (id ID) Charge() float64 {
	return float64(id.ThreeCharge()) / 3.0
}

// JSpin returns 2J+1. Known fundamentals get their physical value; other
// fundamentals and composite numbering return 0.
func (id ID) JSpin() int {
	if fid := id.FundamentalID(); fid > 0 {
		switch {
		case fid < 7:
			return 2
		case fid == 9:
			return 3
		case fid > 10 && fid < 17:
			return 2
		case fid > 20 && fid < 25:
			return 3
		}
		return 0
	}
	if id.ExtraBits() > 0 {
		return 0
	}
	return id.Digit(NJ)
}

// mesonSpins returns the orbital angular momentum L and spin S of a meson
// from its nl digit and 2J+1.
func (id ID) mesonSpins() (l, s int) {
	if !id.IsMeson() || id.Digit(N) == 9 {
		return 0, 0
	}
	js := id.Digit(NJ)
	j := (js - 1) / 2
	switch nl := id.Digit(NL); {
	case nl == 0 && js == 1:
		return 0, 0
	case nl == 0 && js >= 3:
		return j - 1, 1
	case nl == 1 && js == 1:
		return 1, 1
	case nl == 1 && js >= 3:
		return j, 0
	case nl == 2 && js >= 3:
		return j, 1
	case nl == 3 && js >= 3:
		return j + 1, 1
	}
	return 0, 0
}

// LSpin returns the orbital angular momentum L of a meson, 0 otherwise.
func (id ID) LSpin() int {
	l, _ := id.mesonSpins()
	return l
}

// SSpin returns the quark spin S of a meson, 0 otherwise.
func (id ID) SSpin() int {
	_, s := id.mesonSpins()
	return s
}
