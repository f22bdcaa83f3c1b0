package pdt

import (
	"slices"

	"github.com/leapstack-labs/pdt/pkg/pid"
)

// DecayProduct is one daughter of a decay channel. ID is 0 when the
// daughter is only known by name (for example an alias).
type DecayProduct struct {
	ID   pid.ID `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// DecayChannel is one decay mode. The core does not interpret it.
type DecayChannel struct {
	BranchingFraction float64        `json:"branching_fraction" yaml:"branching_fraction"`
	Products          []DecayProduct `json:"products" yaml:"products"`
	Model             string         `json:"model,omitempty" yaml:"model,omitempty"`
	Params            []string       `json:"params,omitempty" yaml:"params,omitempty"`
}

func (d DecayChannel) clone() DecayChannel {
	d.Products = slices.Clone(d.Products)
	d.Params = slices.Clone(d.Params)
	return d
}

func cloneDecays(in []DecayChannel) []DecayChannel {
	if len(in) == 0 {
		return nil
	}
	out := make([]DecayChannel, len(in))
	for i, d := range in {
		out[i] = d.clone()
	}
	return out
}

// TempParticle is a staging record. Adapters fill its fields across one or
// more passes before the builder publishes it.
type TempParticle struct {
	ID         pid.ID
	Name       string
	Source     string
	OriginalID int

	Charge float64
	Color  float64
	Spin   SpinState

	Mass        Measurement
	Width       Measurement
	LowerCutoff float64
	UpperCutoff float64

	Constituents []pid.ID
	Decays       []DecayChannel
}

// NewTempParticle returns a staging record with the codec-implied defaults
// for id: name, charge, spin, color and quark content.
func NewTempParticle(id pid.ID) *TempParticle {
	tp := &TempParticle{ID: id, OriginalID: int(id)}
	if id == 0 {
		return tp
	}
	tp.Name = pid.ParticleName(id)
	tp.Charge = id.Charge()
	tp.Spin = SpinFromID(id)
	tp.Color = colorFromID(id)
	tp.Constituents = constituentsFromID(id)
	return tp
}

// SetLifetime sets the total width from c·τ in mm.
func (tp *TempParticle) SetLifetime(ctau Measurement) {
	tp.Width = widthFromLifetime(ctau)
}

// Lifetime returns c·τ in mm derived from the total width.
func (tp *TempParticle) Lifetime() Measurement {
	return tp.resonance().Lifetime()
}

func (tp *TempParticle) resonance() Resonance {
	return Resonance{
		Mass:        tp.Mass,
		Width:       tp.Width,
		LowerCutoff: tp.LowerCutoff,
		UpperCutoff: tp.UpperCutoff,
	}
}

// Clone returns a deep copy.
func (tp *TempParticle) Clone() *TempParticle {
	c := *tp
	c.Constituents = slices.Clone(tp.Constituents)
	c.Decays = cloneDecays(tp.Decays)
	return &c
}

// colorFromID gives 1 for colour triplets and 2 for octets.
func colorFromID(id pid.ID) float64 {
	switch fid := id.FundamentalID(); {
	case fid >= 1 && fid <= 8:
		return 1
	case fid == 21:
		return 2
	case id.IsDiQuark():
		return 1
	}
	return 0
}

func constituentsFromID(id pid.ID) []pid.ID {
	return id.Quarks()
}

// Particle is a published, read-only record.
type Particle struct {
	id           pid.ID
	name         string
	source       string
	originalID   int
	charge       float64
	color        float64
	spin         SpinState
	resonance    Resonance
	constituents []pid.ID
	decays       []DecayChannel
}

func newParticle(tp *TempParticle) *Particle {
	return &Particle{
		id:           tp.ID,
		name:         tp.Name,
		source:       tp.Source,
		originalID:   tp.OriginalID,
		charge:       tp.Charge,
		color:        tp.Color,
		spin:         tp.Spin,
		resonance:    tp.resonance(),
		constituents: slices.Clone(tp.Constituents),
		decays:       cloneDecays(tp.Decays),
	}
}

// ID returns the PDG identifier.
func (p *Particle) ID() pid.ID { return p.id }

// Name returns the display name.
func (p *Particle) Name() string { return p.name }

// Source names the dialect or resolver that defined the record.
func (p *Particle) Source() string { return p.source }

// OriginalID returns the identifier in the source dialect's numbering.
func (p *Particle) OriginalID() int { return p.originalID }

// Charge returns the electric charge in units of e.
func (p *Particle) Charge() float64 { return p.charge }

// Color returns the color charge.
func (p *Particle) Color() float64 { return p.color }

// Spin returns total, spin and orbital angular momentum.
func (p *Particle) Spin() SpinState { return p.spin }

// Mass returns the mass in GeV.
func (p *Particle) Mass() Measurement { return p.resonance.Mass }

// TotalWidth returns the total width in GeV.
func (p *Particle) TotalWidth() Measurement { return p.resonance.Width }

// LowerCutoff is how far below the mass a generator may sample, in GeV.
func (p *Particle) LowerCutoff() float64 { return p.resonance.LowerCutoff }

// UpperCutoff is how far above the mass a generator may sample, in GeV.
func (p *Particle) UpperCutoff() float64 { return p.resonance.UpperCutoff }

// Resonance returns mass, width and mass cutoffs together.
func (p *Particle) Resonance() Resonance { return p.resonance }

// Lifetime returns c·τ in mm derived from the total width. It is zero for
// a record without a width.
func (p *Particle) Lifetime() Measurement { return p.resonance.Lifetime() }

// Constituents returns a copy of the ordered constituent list.
func (p *Particle) Constituents() []pid.ID { return slices.Clone(p.constituents) }

// NumConstituents returns the number of constituents.
func (p *Particle) NumConstituents() int { return len(p.constituents) }

// Decays returns a copy of the decay table.
func (p *Particle) Decays() []DecayChannel { return cloneDecays(p.decays) }

// IsStable reports whether the particle has neither a width nor decays.
func (p *Particle) IsStable() bool {
	return p.resonance.Width.Value <= 0 && len(p.decays) == 0
}

// Classification predicates delegate to the identifier.

// IsMeson reports whether the identifier encodes a meson.
func (p *Particle) IsMeson() bool { return p.id.IsMeson() }

// IsBaryon reports whether the identifier encodes a baryon.
func (p *Particle) IsBaryon() bool { return p.id.IsBaryon() }

// IsDiQuark reports whether the identifier encodes a diquark.
func (p *Particle) IsDiQuark() bool { return p.id.IsDiQuark() }

// IsHadron reports whether the particle is a meson or a baryon.
func (p *Particle) IsHadron() bool { return p.id.IsHadron() }

// IsLepton reports whether the particle is a charged lepton or neutrino.
func (p *Particle) IsLepton() bool { return p.id.IsLepton() }

// IsNucleus reports whether the identifier uses the 10LZZZAAAI nucleus form.
func (p *Particle) IsNucleus() bool { return p.id.IsNucleus() }

// IsSUSY reports whether the particle is a supersymmetric partner.
func (p *Particle) IsSUSY() bool { return p.id.IsSUSY() }

// IsRhadron reports whether the particle is an R-hadron.
func (p *Particle) IsRhadron() bool { return p.id.IsRhadron() }

// IsPentaquark reports whether the identifier encodes a pentaquark.
func (p *Particle) IsPentaquark() bool { return p.id.IsPentaquark() }

// IsQBall reports whether the identifier encodes a Q-ball.
func (p *Particle) IsQBall() bool { return p.id.IsQBall() }

// IsDyon reports whether the identifier encodes a dyon.
func (p *Particle) IsDyon() bool { return p.id.IsDyon() }

// Quark content. Stored constituents take precedence over the identifier.

// HasUp reports whether the particle contains an up quark.
func (p *Particle) HasUp() bool { return p.hasQuark(pid.Up) }

// HasDown reports whether the particle contains a down quark.
func (p *Particle) HasDown() bool { return p.hasQuark(pid.Down) }

// HasStrange reports whether the particle contains a strange quark.
func (p *Particle) HasStrange() bool { return p.hasQuark(pid.Strange) }

// HasCharm reports whether the particle contains a charm quark.
func (p *Particle) HasCharm() bool { return p.hasQuark(pid.Charm) }

// HasBottom reports whether the particle contains a bottom quark.
func (p *Particle) HasBottom() bool { return p.hasQuark(pid.Bottom) }

// HasTop reports whether the particle contains a top quark.
func (p *Particle) HasTop() bool { return p.hasQuark(pid.Top) }

// hasQuark checks the stored constituents first and falls back to the
// codec when none were supplied.
func (p *Particle) hasQuark(q int) bool {
	if len(p.constituents) == 0 {
		return p.id.HasQuark(q)
	}
	for _, c := range p.constituents {
		if int(c.Abs()) == q || c.HasQuark(q) {
			return true
		}
	}
	return false
}

// ParticleRecord is the serialisable form of a Particle.
type ParticleRecord struct {
	ID           pid.ID         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Source       string         `json:"source,omitempty" yaml:"source,omitempty"`
	OriginalID   int            `json:"original_id,omitempty" yaml:"original_id,omitempty"`
	Charge       float64        `json:"charge" yaml:"charge"`
	Color        float64        `json:"color,omitempty" yaml:"color,omitempty"`
	Spin         SpinState      `json:"spin" yaml:"spin"`
	Mass         Measurement    `json:"mass" yaml:"mass"`
	Width        Measurement    `json:"width" yaml:"width"`
	LowerCutoff  float64        `json:"lower_cutoff,omitempty" yaml:"lower_cutoff,omitempty"`
	UpperCutoff  float64        `json:"upper_cutoff,omitempty" yaml:"upper_cutoff,omitempty"`
	Lifetime     float64        `json:"lifetime,omitempty" yaml:"lifetime,omitempty"`
	Constituents []pid.ID       `json:"constituents,omitempty" yaml:"constituents,omitempty"`
	Decays       []DecayChannel `json:"decays,omitempty" yaml:"decays,omitempty"`
}

// Record returns the serialisable form of p.
func (p *Particle) Record() ParticleRecord {
	return ParticleRecord{
		ID:           p.id,
		Name:         p.name,
		Source:       p.source,
		OriginalID:   p.originalID,
		Charge:       p.charge,
		Color:        p.color,
		Spin:         p.spin,
		Mass:         p.resonance.Mass,
		Width:        p.resonance.Width,
		LowerCutoff:  p.resonance.LowerCutoff,
		UpperCutoff:  p.resonance.UpperCutoff,
		Lifetime:     p.Lifetime().Value,
		Constituents: p.Constituents(),
		Decays:       p.Decays(),
	}
}
