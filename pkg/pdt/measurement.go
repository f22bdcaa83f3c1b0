package pdt

import "github.com/leapstack-labs/pdt/pkg/pid"

// HbarC is ħc in GeV·mm. Lifetimes are expressed as c·τ in mm.
const HbarC = 1.973269804e-13

// lifetimeEpsilon is the smallest width or lifetime treated as non-zero.
const lifetimeEpsilon = 1.0e-20

// Measurement is a value with its uncertainty.
type Measurement struct {
	Value float64 `json:"value" yaml:"value"`
	Sigma float64 `json:"sigma,omitempty" yaml:"sigma,omitempty"`
}

// WidthFromLifetime converts c·τ (mm) into a total width (GeV).
// Non-positive lifetimes mean "stable or unknown" and give 0.
func WidthFromLifetime(ctau float64) float64 {
	if ctau < lifetimeEpsilon {
		return 0
	}
	return HbarC / ctau
}

// LifetimeFromWidth converts a total width (GeV) into c·τ (mm).
func LifetimeFromWidth(width float64) float64 {
	if width < lifetimeEpsilon {
		return 0
	}
	return HbarC / width
}

// SpinState holds total spin J, spin S and orbital angular momentum L.
type SpinState struct {
	Total     float64 `json:"j" yaml:"j"`
	Spin      float64 `json:"s" yaml:"s"`
	OrbAngMom float64 `json:"l" yaml:"l"`
}

// SpinFromID derives the spin state implied by the codec.
func SpinFromID(id pid.ID) SpinState {
	var s SpinState
	if js := id.JSpin(); js > 0 {
		s.Total = float64(js-1) / 2
	}
	s.Spin = float64(id.SSpin())
	s.OrbAngMom = float64(id.LSpin())
	return s
}

// Resonance describes mass, width and the allowed width window.
type Resonance struct {
	Mass        Measurement
	Width       Measurement
	LowerCutoff float64
	UpperCutoff float64
}

// Lifetime returns c·τ in mm derived from the width. The uncertainty is
// propagated linearly.
func (r Resonance) Lifetime() Measurement {
	lt := LifetimeFromWidth(r.Width.Value)
	if lt == 0 {
		return Measurement{}
	}
	return Measurement{Value: lt, Sigma: lt * r.Width.Sigma / r.Width.Value}
}

// widthFromLifetime is the inverse of Lifetime.
func widthFromLifetime(lt Measurement) Measurement {
	w := WidthFromLifetime(lt.Value)
	if w == 0 {
		return Measurement{}
	}
	return Measurement{Value: w, Sigma: w * lt.Sigma / lt.Value}
}
