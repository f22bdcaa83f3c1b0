// Package particletable reads the generic whitespace particle table:
//
//	// ID     NAME   3Q  MASS       WIDTH       LOWCUT HIGHCUT 2J [MASSERR WIDTHERR]
//	   211    pi+    3   0.13957039 2.5284E-17  0      0       0   1.8E-7
//
// Antiparticles are listed explicitly; nothing is generated for them.
package particletable

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
)

// Name is the registered dialect name.
const Name = "particletable"

// Source is the source tag stored on every record this package defines.
const Source = "ParticleTable"

const (
	minFields = 8
	maxFields = 10
)

func init() {
	dialect.Register(dialect.Registration{
		Name:        Name,
		Description: "generic whitespace-separated particle table",
		Factory:     func(cfg dialect.Config) dialect.Adapter { return New(cfg) },
	})
}

// Adapter ingests generic particle tables.
type Adapter struct {
	translator dialect.Translator
	logger     *slog.Logger
}

// New creates an adapter. Codes are taken as canonical unless cfg carries a
// translator.
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
	lr := dialect.NewLineReader(r)
	for lr.Next() {
		line := lr.Text()
		if err := a.addLine(line, b); err != nil {
			dialect.Malformed(b, Name, lr.Line(), line, err)
		}
	}
	if err := lr.Err(); err != nil {
		return fmt.Errorf("particletable: line %d: %w", lr.Line(), err)
	}
	a.logger.Debug("particle table stream done", "lines", lr.Line(), "particles", b.Size())
	return nil
}

func (a *Adapter) addLine(line string, b *pdt.Builder) error {
	fields := strings.Fields(dialect.StripComment(line, "//"))
	if len(fields) == 0 {
		return nil
	}
	if len(fields) < minFields || len(fields) > maxFields {
		return fmt.Errorf("want %d to %d fields, got %d", minFields, maxFields, len(fields))
	}

	native, err := dialect.ParseInt(fields[0])
	if err != nil {
		return fmt.Errorf("particle code %q: %w", fields[0], err)
	}
	name := fields[1]
	threeQ, err := dialect.ParseInt(fields[2])
	if err != nil {
		return fmt.Errorf("charge: %w", err)
	}
	v, err := dialect.ParseFloats(fields[3:7])
	if err != nil {
		return err
	}
	mass, width, lowCut, highCut := v[0], v[1], v[2], v[3]
	twoJ, err := dialect.ParseInt(fields[7])
	if err != nil {
		return fmt.Errorf("spin: %w", err)
	}
	errs, err := dialect.ParseFloats(fields[minFields:])
	if err != nil {
		return fmt.Errorf("uncertainties: %w", err)
	}

	id := a.translator.Translate(native)
	if id == 0 {
		b.Diagnose(pdt.DiagInvalidIdentifier, "no canonical identifier for particle",
			"dialect", Name, "native", native, "name", name)
		return nil
	}

	tp := b.Particle(id)
	tp.Name = name
	tp.Source = Source
	tp.OriginalID = native
	tp.Charge = float64(threeQ) / 3
	tp.Mass = pdt.Measurement{Value: mass}
	tp.Width = pdt.Measurement{Value: width}
	tp.LowerCutoff = lowCut
	tp.UpperCutoff = highCut
	tp.Spin.Total = float64(twoJ) / 2
	if len(errs) > 0 {
		tp.Mass.Sigma = errs[0]
	}
	if len(errs) > 1 {
		tp.Width.Sigma = errs[1]
	}
	b.AddParticle(tp)
	return nil
}
