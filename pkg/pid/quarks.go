package pid

// Quark flavor digits.
const (
	Down    = 1
	Up      = 2
	Strange = 3
	Charm   = 4
	Bottom  = 5
	Top     = 6
)

// HasQuark reports whether the code contains quark flavor q (Down..Top)
// or its antiquark.
func (id ID) HasQuark(q int) bool { return id.hasQuark(q) }

func (id ID) hasQuark(q int) bool {
	if id.ExtraBits() > 0 || id.FundamentalID() > 0 || id.IsDyon() {
		return false
	}
	if id.IsRhadron() {
		// the digit next to the leading zero run is the squark or gluino
		iz := 7
		for i := 6; i > 1; i-- {
			d := id.Digit(Location(i))
			switch {
			case d == 0:
				iz = i
			case i == iz-1:
			case d == q:
				return true
			}
		}
		return false
	}
	if id.Digit(NQ3) == q || id.Digit(NQ2) == q || id.Digit(NQ1) == q {
		return true
	}
	if id.IsPentaquark() {
		return id.Digit(NL) == q || id.Digit(NR) == q
	}
	return false
}

// HasUp reports whether the code contains an up quark or antiquark.
func (id ID) HasUp() bool { return id.hasQuark(Up) }

// HasDown reports whether the code contains a down quark or antiquark.
func (id ID) HasDown() bool { return id.hasQuark(Down) }

// HasStrange reports whether the code contains a strange quark or antiquark.
func (id ID) HasStrange() bool { return id.hasQuark(Strange) }

// HasCharm reports whether the code contains a charm quark or antiquark.
func (id ID) HasCharm() bool { return id.hasQuark(Charm) }

// HasBottom reports whether the code contains a bottom quark or antiquark.
func (id ID) HasBottom() bool { return id.hasQuark(Bottom) }

// HasTop reports whether the code contains a top quark or antiquark.
func (id ID) HasTop() bool { return id.hasQuark(Top) }

// Quarks returns the ordered valence content of a meson, baryon or
// diquark as signed quark codes; antiquarks are negative. Mesons list the
// quark first. Other codes return nil.
func (id ID) Quarks() []ID {
	sign := ID(1)
	if id < 0 {
		sign = -1
	}
	q1, q2, q3 := ID(id.Digit(NQ1)), ID(id.Digit(NQ2)), ID(id.Digit(NQ3))
	switch {
	case id.IsMeson():
		if q2 == 0 || q3 == 0 {
			return nil
		}
		if q2%2 == 1 {
			return []ID{sign * q3, -sign * q2}
		}
		return []ID{sign * q2, -sign * q3}
	case id.IsBaryon():
		if q1 == 0 || q2 == 0 || q3 == 0 {
			return nil
		}
		return []ID{sign * q1, sign * q2, sign * q3}
	case id.IsDiQuark():
		return []ID{sign * q1, sign * q2}
	}
	return nil
}
