// Package isajet reads the fixed-column Isajet particle table
// (isaparticles.dat) and its decay table (isadecay.dat).
//
// Particle lines keep the code in the first eleven columns and the name in
// the next ten; the rest are whitespace separated:
//
//	120 PI+        .13957      1.00    1    2    0    0    3
//
// mass, charge, three Isajet quark flavors, spin and the Isajet index.
package isajet

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// Name is the registered name of the particle table dialect.
const Name = "isajet"

// Source is the source tag stored on every record this package defines.
const Source = "Isajet"

const (
	colID      = 0
	colIDEnd   = 11
	colName    = 11
	colNameEnd = 21
	colRest    = 21
)

func init() {
	dialect.Register(dialect.Registration{
		Name:        Name,
		Description: "Isajet fixed-column particle table",
		Factory:     func(cfg dialect.Config) dialect.Adapter { return New(cfg) },
		Translator:  DefaultTranslator(),
	})
	dialect.Register(dialect.Registration{
		Name:        DecayName,
		Description: "Isajet fixed-column decay table",
		Factory:     func(cfg dialect.Config) dialect.Adapter { return NewDecay(cfg) },
		Translator:  DefaultTranslator(),
	})
}

// Adapter ingests Isajet particle tables.
type Adapter struct {
	translator dialect.Translator
	logger     *slog.Logger
}

// New creates an Isajet particle adapter using the built-in translation
// table unless cfg provides one.
func New(cfg dialect.Config) *Adapter {
	return &Adapter{
		translator: cfg.TranslatorOr(DefaultTranslator()),
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
		return fmt.Errorf("isajet: line %d: %w", lr.Line(), err)
	}
	a.logger.Debug("isajet stream done", "lines", lr.Line(), "particles", b.Size())
	return nil
}

type particleLine struct {
	isaid  int
	name   string
	mass   float64
	charge float64
	flavor [3]int
	spin   int
	index  int
}

// parseParticleLine returns ok=false for lines that hold no particle.
func parseParticleLine(line string) (pl particleLine, ok bool, err error) {
	idCol := dialect.Column(line, colID, colIDEnd)
	if len(line) <= colRest || idCol == "" {
		return pl, false, nil
	}
	if pl.isaid, err = dialect.ParseInt(idCol); err != nil {
		return pl, false, fmt.Errorf("particle code %q: %w", idCol, err)
	}
	if pl.isaid == 0 {
		return pl, false, nil
	}
	pl.name = dialect.Column(line, colName, colNameEnd)
	if i := strings.IndexByte(pl.name, ' '); i >= 0 {
		pl.name = pl.name[:i]
	}

	fields := strings.Fields(line[colRest:])
	if len(fields) < 7 {
		return pl, false, fmt.Errorf("need 7 values after the name, got %d", len(fields))
	}
	if pl.mass, err = dialect.ParseFloat(fields[0]); err != nil {
		return pl, false, fmt.Errorf("mass: %w", err)
	}
	if pl.charge, err = dialect.ParseFloat(fields[1]); err != nil {
		return pl, false, fmt.Errorf("charge: %w", err)
	}
	ints := []*int{&pl.flavor[0], &pl.flavor[1], &pl.flavor[2], &pl.spin, &pl.index}
	for i, p := range ints {
		if *p, err = dialect.ParseInt(fields[2+i]); err != nil {
			return pl, false, fmt.Errorf("field %d: %w", 3+i, err)
		}
	}
	return pl, true, nil
}

func (a *Adapter) addLine(line string, b *pdt.Builder) error {
	pl, ok, err := parseParticleLine(line)
	if err != nil || !ok {
		return err
	}
	id := a.translator.Translate(pl.isaid)
	if id == 0 {
		b.Diagnose(pdt.DiagInvalidIdentifier, "no canonical identifier for particle",
			"dialect", Name, "native", pl.isaid, "name", pl.name)
		return nil
	}

	tp := b.Particle(id)
	tp.Name = pl.name
	tp.Source = Source
	tp.OriginalID = pl.isaid
	tp.Charge = pl.charge
	tp.Mass = pdt.Measurement{Value: pl.mass}
	tp.Spin.Spin = float64(pl.spin)
	if q := constituents(pl.flavor); len(q) > 0 {
		tp.Constituents = q
	}
	b.AddParticle(tp)
	return nil
}

func constituents(fl [3]int) []pid.ID {
	var out []pid.ID
	for _, f := range fl {
		if f != 0 {
			out = append(out, pid.ID(quarkToPDG(f)))
		}
	}
	return out
}
