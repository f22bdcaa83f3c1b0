package pid

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// NameDictionary maps identifiers to display names.
type NameDictionary interface {
	Name(id ID) (string, bool)
}

// MapDictionary is a NameDictionary backed by a map. Antiparticle names
// not present in the map are derived from the particle name.
type MapDictionary map[ID]string

// Name implements NameDictionary.
func (m MapDictionary) Name(id ID) (string, bool) {
	if n, ok := m[id]; ok {
		return n, true
	}
	if id >= 0 {
		return "", false
	}
	n, ok := m[-id]
	if !ok {
		return "", false
	}
	if id.IsSelfConjugate() {
		return n, true
	}
	return AntiName(-id, n), true
}

// AntiName derives the antiparticle name from the particle name: charged
// leptons, mesons and bosons flip the trailing charge, everything else
// gets a "~" before it.
func AntiName(id ID, name string) string {
	base, chg := splitCharge(name)
	flipped := flipCharge(chg)
	charged := chg != "" && chg != "0"
	if charged && (id.IsLepton() || id.IsMeson() || id.FundamentalID() > 20) {
		return base + flipped
	}
	return base + "~" + flipped
}

func splitCharge(name string) (base, chg string) {
	trimmed := strings.TrimRight(name, "+-")
	if trimmed != name {
		return trimmed, name[len(trimmed):]
	}
	if strings.HasSuffix(name, "0") && len(name) > 1 {
		return name[:len(name)-1], "0"
	}
	return name, ""
}

func flipCharge(chg string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '+':
			return '-'
		case '-':
			return '+'
		}
		return r
	}, chg)
}

var builtinNames = MapDictionary{
	1: "d", 2: "u", 3: "s", 4: "c", 5: "b", 6: "t",
	11: "e-", 12: "nu_e", 13: "mu-", 14: "nu_mu", 15: "tau-", 16: "nu_tau",
	21: "g", 22: "gamma", 23: "Z0", 24: "W+", 25: "h0",
	111: "pi0", 211: "pi+", 113: "rho0", 213: "rho+", 221: "eta", 223: "omega",
	331: "eta'", 333: "phi", 130: "K_L0", 310: "K_S0", 311: "K0", 321: "K+",
	313: "K*0", 323: "K*+", 411: "D+", 421: "D0", 431: "D_s+", 443: "J/psi",
	511: "B0", 521: "B+", 531: "B_s0", 553: "Upsilon",
	2112: "n0", 2212: "p+", 3122: "Lambda0", 3222: "Sigma+", 3212: "Sigma0",
	3112: "Sigma-", 3322: "Xi0", 3312: "Xi-", 3334: "Omega-",
	2224: "Delta++", 4122: "Lambda_c+", 5122: "Lambda_b0",
	1000022: "~chi_10", 1000021: "~g", 1000011: "~e_L-",
	1000010020: "deuteron", 1000010030: "triton", 1000020030: "He3", 1000020040: "alpha",
}

var (
	namesMu sync.RWMutex
	names   NameDictionary = builtinNames
)

// SetNameDictionary replaces the dictionary used by ParticleName. Passing
// nil restores the built-in dictionary.
func SetNameDictionary(d NameDictionary) {
	namesMu.Lock()
	defer namesMu.Unlock()
	if d == nil {
		d = builtinNames
	}
	names = d
}

// ParticleName returns the display name of id. Unknown nuclei get an
// A/Z based name; any other unknown code is returned as its number.
func ParticleName(id ID) string {
	namesMu.RLock()
	d := names
	namesMu.RUnlock()
	if n, ok := d.Name(id); ok {
		return n
	}
	if id.IsNucleus() {
		prefix := ""
		if id < 0 {
			prefix = "anti-"
		}
		return fmt.Sprintf("%snucleus(A=%d,Z=%d)", prefix, id.A(), id.Z())
	}
	return strconv.Itoa(int(id))
}

// Name returns ParticleName(id).
func (id ID) Name() string {
	return ParticleName(id)
}
