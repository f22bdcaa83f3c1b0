package evtgen

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// decay consumes a Decay NAME ... Enddecay block. The block is read to its
// terminator even when NAME is unknown, so its lines are never mistaken for
// top-level statements.
func (p *parser) decay(line string, fields []string) {
	if len(fields) < 2 {
		p.malformed(line, fmt.Errorf("Decay needs a name"))
		p.skipBlock()
		return
	}
	name := fields[1]

	var target *[]pdt.DecayChannel
	switch {
	case p.b.HasParticleName(name):
		target = &p.b.ParticleByName(name).Decays
	case p.b.HasAlias(name):
		ad, _ := p.b.Alias(name)
		target = &ad.Decays
	default:
		p.b.Diagnose(pdt.DiagUndefinedReference, "decay of undefined particle",
			"dialect", Name, "line", p.lr.Line(), "name", name)
	}

	start := p.lr.Line()
	for p.lr.Next() {
		text := p.lr.Text()
		if dialect.IsBlank(text) || dialect.HasCommentPrefix(text, "*", "#", ";") {
			continue
		}
		f := strings.Fields(text)
		switch f[0] {
		case "Enddecay":
			return
		case "Decay":
			continue
		}
		if target == nil {
			continue
		}
		ch, err := p.channel(text)
		if err != nil {
			p.malformed(text, err)
			continue
		}
		*target = append(*target, ch)
	}
	p.b.Diagnose(pdt.DiagMalformedLine, "decay block without Enddecay",
		"dialect", Name, "line", start, "name", name)
}

func (p *parser) skipBlock() {
	for p.lr.Next() {
		f := strings.Fields(p.lr.Text())
		if len(f) > 0 && f[0] == "Enddecay" {
			return
		}
	}
}

// channel parses "BR daughter... MODEL params...;". Daughters are the
// leading names known as particles or aliases; the first unknown word starts
// the model.
func (p *parser) channel(text string) (pdt.DecayChannel, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	fields := strings.Fields(strings.ReplaceAll(text, ";", " "))
	if len(fields) == 0 {
		return pdt.DecayChannel{}, fmt.Errorf("empty decay line")
	}
	br, err := dialect.ParseFloat(fields[0])
	if err != nil {
		return pdt.DecayChannel{}, fmt.Errorf("branching fraction: %w", err)
	}

	ch := pdt.DecayChannel{BranchingFraction: br}
	rest := fields[1:]
	i := 0
	for ; i < len(rest); i++ {
		prod, ok := p.product(rest[i])
		if !ok {
			break
		}
		ch.Products = append(ch.Products, prod)
	}
	if i < len(rest) {
		ch.Model = rest[i]
		if i+1 < len(rest) {
			ch.Params = append([]string(nil), rest[i+1:]...)
		}
	}
	if len(ch.Products) == 0 {
		return pdt.DecayChannel{}, fmt.Errorf("no known daughters")
	}
	return ch, nil
}

func (p *parser) product(name string) (pdt.DecayProduct, bool) {
	if p.b.HasParticleName(name) {
		return pdt.DecayProduct{ID: p.b.ParticleByName(name).ID, Name: name}, true
	}
	if ad, ok := p.b.Alias(name); ok {
		return pdt.DecayProduct{ID: ad.ID, Name: name}, true
	}
	return pdt.DecayProduct{}, false
}

// cdecay: CDecay NAME gives NAME the charge conjugate of its partner's
// decay table.
func (p *parser) cdecay(line string, fields []string) {
	if len(fields) < 2 {
		p.malformed(line, fmt.Errorf("CDecay needs a name"))
		return
	}
	name := fields[1]

	target, ok := p.decaysOf(name)
	if !ok {
		p.b.Diagnose(pdt.DiagUndefinedReference, "CDecay of undefined particle",
			"dialect", Name, "line", p.lr.Line(), "name", name)
		return
	}
	partner := p.conjugateName(name)
	source, ok := p.decaysOf(partner)
	if partner == "" || !ok {
		p.b.Diagnose(pdt.DiagUndefinedReference, "CDecay without a charge conjugate partner",
			"dialect", Name, "line", p.lr.Line(), "name", name, "partner", partner)
		return
	}

	for _, ch := range *source {
		conj := pdt.DecayChannel{
			BranchingFraction: ch.BranchingFraction,
			Model:             ch.Model,
			Params:            append([]string(nil), ch.Params...),
			Products:          make([]pdt.DecayProduct, len(ch.Products)),
		}
		for i, d := range ch.Products {
			conj.Products[i] = p.conjugateProduct(d)
		}
		*target = append(*target, conj)
	}
}

func (p *parser) decaysOf(name string) (*[]pdt.DecayChannel, bool) {
	if p.b.HasParticleName(name) {
		return &p.b.ParticleByName(name).Decays, true
	}
	if ad, ok := p.b.Alias(name); ok {
		return &ad.Decays, true
	}
	return nil, false
}

// conjugateName finds the charge conjugate of a particle or alias name.
// It returns "" when there is none.
func (p *parser) conjugateName(name string) string {
	if ad, ok := p.b.Alias(name); ok {
		if ad.ChargeConj != "" {
			return ad.ChargeConj
		}
		for _, other := range p.b.Aliases() {
			if other.ChargeConj == name {
				return other.Alias
			}
		}
		return ""
	}
	if !p.b.HasParticleName(name) {
		return ""
	}
	id := p.b.ParticleByName(name).ID
	if id == 0 {
		return ""
	}
	if id.IsSelfConjugate() {
		return name
	}
	if p.b.HasParticle(-id) {
		return p.b.Particle(-id).Name
	}
	return ""
}

func (p *parser) conjugateProduct(d pdt.DecayProduct) pdt.DecayProduct {
	out := pdt.DecayProduct{ID: conjugateID(d.ID), Name: d.Name}
	if n := p.conjugateName(d.Name); n != "" {
		out.Name = n
	}
	return out
}

func conjugateID(id pid.ID) pid.ID {
	if id == 0 || id.IsSelfConjugate() {
		return id
	}
	return -id
}
