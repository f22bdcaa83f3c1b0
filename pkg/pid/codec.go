package pid

// Kind is the classification of an identifier.
type Kind int

// Kinds, in the precedence order used by Classify.
const (
	KindInvalid Kind = iota
	KindNucleus
	KindQBall
	KindDyon
	KindSUSY
	KindRhadron
	KindPentaquark
	KindMeson
	KindBaryon
	KindDiQuark
	KindLepton
	KindFundamental
)

var kindNames = [...]string{
	"invalid", "nucleus", "qball", "dyon", "susy", "rhadron",
	"pentaquark", "meson", "baryon", "diquark", "lepton", "fundamental",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Classify returns the kind of the code. SUSY partners of leptons report
// KindSUSY.
func (id ID) Classify() Kind {
	switch {
	case !id.IsValid():
		return KindInvalid
	case id.IsNucleus():
		return KindNucleus
	case id.IsQBall():
		return KindQBall
	case id.IsDyon():
		return KindDyon
	case id.IsSUSY():
		return KindSUSY
	case id.IsRhadron():
		return KindRhadron
	case id.IsPentaquark():
		return KindPentaquark
	case id.IsMeson():
		return KindMeson
	case id.IsBaryon():
		return KindBaryon
	case id.IsDiQuark():
		return KindDiQuark
	case id.IsLepton():
		return KindLepton
	}
	return KindFundamental
}

// Decoded is the named-digit view of an identifier plus the quantum
// numbers derived from it. Only the digit fields, Extra and Negative take
// part in Encode.
type Decoded struct {
	Negative bool
	Extra    int
	N        int
	NR       int
	NL       int
	NQ1      int
	NQ2      int
	NQ3      int
	NJ       int

	Kind        Kind
	ThreeCharge int
	JSpin       int
	LSpin       int
	SSpin       int
	Fundamental int

	// Nuclear layout, zero unless Kind is KindNucleus.
	A      int
	Z      int
	Lambda int
}

// Decode splits id into digit fields and derived quantities. Derived
// fields are only meaningful when Kind is not KindInvalid.
func Decode(id ID) Decoded {
	d := Decoded{
		Negative: id < 0,
		Extra:    id.ExtraBits(),
		N:        id.Digit(N),
		NR:       id.Digit(NR),
		NL:       id.Digit(NL),
		NQ1:      id.Digit(NQ1),
		NQ2:      id.Digit(NQ2),
		NQ3:      id.Digit(NQ3),
		NJ:       id.Digit(NJ),
		Kind:     id.Classify(),
	}
	if d.Kind == KindInvalid {
		return d
	}
	d.ThreeCharge = id.ThreeCharge()
	d.JSpin = id.JSpin()
	d.LSpin = id.LSpin()
	d.SSpin = id.SSpin()
	d.Fundamental = id.FundamentalID()
	if d.Kind == KindNucleus {
		d.A, d.Z, d.Lambda = id.A(), id.Z(), id.Lambda()
	}
	return d
}

// Encode rebuilds the identifier from the digit fields of d.
func Encode(d Decoded) ID {
	v := d.Extra*extraBitsBase +
		d.N*powersOfTen[6] +
		d.NR*powersOfTen[5] +
		d.NL*powersOfTen[4] +
		d.NQ1*powersOfTen[3] +
		d.NQ2*powersOfTen[2] +
		d.NQ3*powersOfTen[1] +
		d.NJ
	if d.Negative {
		return ID(-v)
	}
	return ID(v)
}
