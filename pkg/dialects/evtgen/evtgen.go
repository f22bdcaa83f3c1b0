// Package evtgen reads the EvtGen particle table (evt.pdl) and decay file
// (DECAY.DEC) formats.
//
// Both files share one line grammar, so the same adapter ingests either:
//
//	add  p Particle  pi+   211  0.13957  0.0  0.0  3  0  7.8045  211
//	Alias      MyB0   B0
//	ChargeConj MyB0   Myanti-B0
//	Define     dm     0.507e12
//	Decay MyB0
//	0.5   K+  pi-          PHSP;
//	Enddecay
//	CDecay Myanti-B0
package evtgen

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
)

// Name is the registered dialect name.
const Name = "evtgen"

// Source is the source tag stored on every record this dialect defines.
const Source = "EvtGen"

func init() {
	dialect.Register(dialect.Registration{
		Name:        Name,
		Description: "EvtGen evt.pdl particle table and DECAY.DEC decay file",
		Factory:     func(cfg dialect.Config) dialect.Adapter { return New(cfg) },
	})
}

// Adapter ingests EvtGen streams.
type Adapter struct {
	translator dialect.Translator
	logger     *slog.Logger
}

// New creates an EvtGen adapter. EvtGen codes are canonical by default.
func New(cfg dialect.Config) *Adapter {
	return &Adapter{
		translator: cfg.TranslatorOr(dialect.Identity{}),
		logger:     cfg.LoggerOrDiscard(),
	}
}

// Name implements dialect.Adapter.
func (a *Adapter) Name() string { return Name }

// Add implements dialect.Adapter.
func (a *Adapter) Add(r io.Reader, b *pdt.Builder) error {
	if b.Closed() {
		return pdt.ErrBuilderClosed
	}
	p := &parser{adapter: a, b: b, lr: dialect.NewLineReader(r)}
	for p.lr.Next() {
		p.line(p.lr.Text())
	}
	if err := p.lr.Err(); err != nil {
		return fmt.Errorf("evtgen: line %d: %w", p.lr.Line(), err)
	}
	a.logger.Debug("evtgen stream done",
		"lines", p.lr.Line(), "particles", b.Size(), "aliases", b.AliasCount())
	return nil
}

type parser struct {
	adapter *Adapter
	b       *pdt.Builder
	lr      *dialect.LineReader
}

func isComment(line string) bool {
	return dialect.HasCommentPrefix(line, "*", "#")
}

func (p *parser) malformed(line string, err error) {
	dialect.Malformed(p.b, Name, p.lr.Line(), line, err)
}

func (p *parser) line(line string) {
	if dialect.IsBlank(line) || isComment(line) {
		return
	}
	fields := strings.Fields(dialect.StripComment(line, "#"))
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "add":
		p.add(line, fields)
	case "Alias":
		p.alias(line, fields)
	case "ChargeConj":
		p.chargeConj(line, fields)
	case "Define":
		p.define(line, fields)
	case "Particle":
		p.particle(line, fields)
	case "Decay":
		p.decay(line, fields)
	case "CDecay":
		p.cdecay(line, fields)
	default:
		// JetSetPar, yesPhotos, ModelAlias, SetLineshapePW, sets, End and
		// anything newer carry nothing the table needs.
	}
}

// add: add p Particle NAME ID MASS WIDTH WCUT 3Q 2J CTAU [LUNDKC]
func (p *parser) add(line string, fields []string) {
	if len(fields) < 11 {
		p.malformed(line, fmt.Errorf("add needs 11 fields, got %d", len(fields)))
		return
	}
	name := fields[3]
	eid, err := dialect.ParseInt(fields[4])
	if err != nil {
		p.malformed(line, err)
		return
	}
	nums, err := dialect.ParseFloats(fields[5:8])
	if err != nil {
		p.malformed(line, err)
		return
	}
	mass, width, wcut := nums[0], nums[1], nums[2]
	chg, err := dialect.ParseInt(fields[8])
	if err != nil {
		p.malformed(line, err)
		return
	}
	spin, err := dialect.ParseInt(fields[9])
	if err != nil {
		p.malformed(line, err)
		return
	}
	ctau, err := dialect.ParseFloat(fields[10])
	if err != nil {
		p.malformed(line, err)
		return
	}

	id := p.adapter.translator.Translate(eid)
	if id == 0 {
		p.b.Diagnose(pdt.DiagInvalidIdentifier, "no canonical identifier for particle",
			"dialect", Name, "line", p.lr.Line(), "name", name, "native", eid)
		return
	}

	tp := p.b.Particle(id)
	tp.Name = name
	tp.Source = Source
	tp.OriginalID = eid
	tp.Charge = float64(chg) / 3
	tp.Spin.Total = float64(spin) / 2
	tp.Mass = pdt.Measurement{Value: mass}
	tp.UpperCutoff = wcut
	if width > 0 {
		tp.Width = pdt.Measurement{Value: width}
	} else {
		tp.SetLifetime(pdt.Measurement{Value: ctau})
	}
	p.b.AddParticle(tp)
}

// alias: Alias ALIAS PARTICLE
func (p *parser) alias(line string, fields []string) {
	if len(fields) < 3 {
		p.malformed(line, fmt.Errorf("alias needs a name and a particle"))
		return
	}
	ad := pdt.AliasData{Alias: fields[1], Particle: fields[2]}
	if p.b.HasParticleName(ad.Particle) {
		ad.ID = p.b.ParticleByName(ad.Particle).ID
	} else {
		p.b.Diagnose(pdt.DiagUndefinedReference, "alias of undefined particle",
			"dialect", Name, "line", p.lr.Line(), "alias", ad.Alias, "particle", ad.Particle)
	}
	if old, ok := p.b.Alias(ad.Alias); ok {
		ad.ChargeConj = old.ChargeConj
	}
	p.b.AddAlias(ad)
}

// chargeConj: ChargeConj ALIAS CONJUGATE
func (p *parser) chargeConj(line string, fields []string) {
	if len(fields) < 3 {
		p.malformed(line, fmt.Errorf("ChargeConj needs two names"))
		return
	}
	ad, ok := p.b.Alias(fields[1])
	if !ok {
		p.b.Diagnose(pdt.DiagUndefinedReference, "ChargeConj of a name that is not an alias",
			"dialect", Name, "line", p.lr.Line(), "name", fields[1])
		return
	}
	ad.ChargeConj = fields[2]
}

// define: Define NAME VALUE
func (p *parser) define(line string, fields []string) {
	if len(fields) < 3 {
		p.malformed(line, fmt.Errorf("Define needs a name and a value"))
		return
	}
	v, err := dialect.ParseFloat(fields[2])
	if err != nil {
		p.malformed(line, err)
		return
	}
	p.b.SetDefinition(fields[1], v)
}

// particle: Particle NAME MASS [WIDTH], the DECAY.DEC mass override.
func (p *parser) particle(line string, fields []string) {
	if len(fields) < 3 {
		p.malformed(line, fmt.Errorf("Particle needs a name and a mass"))
		return
	}
	if !p.b.HasParticleName(fields[1]) {
		p.b.Diagnose(pdt.DiagUndefinedReference, "mass override for undefined particle",
			"dialect", Name, "line", p.lr.Line(), "name", fields[1])
		return
	}
	nums, err := dialect.ParseFloats(fields[2:min(len(fields), 4)])
	if err != nil {
		p.malformed(line, err)
		return
	}
	tp := p.b.ParticleByName(fields[1])
	tp.Mass.Value = nums[0]
	if len(nums) > 1 {
		tp.Width.Value = nums[1]
	}
}
