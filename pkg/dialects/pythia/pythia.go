// Package pythia reads Pythia 6 particle data tables as written by PYUPDA.
//
// A particle line carries the code and properties in fixed columns; the
// decay lines that follow it are indented by ten blanks and attach to the
// most recent particle:
//
//	211  pi+               pi-                 3  0  1     0.13957     0.00000     0.00000   7.80450E+03  0  1
//	         1    0    0.999877       -13        14         0         0         0
package pythia

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// Name is the registered dialect name.
const Name = "pythia"

// Source is the source tag stored on every record this dialect defines.
const Source = "Pythia"

// Particle line columns, 0-based and end-exclusive.
const (
	colKF       = 0
	colKFEnd    = 10
	colName     = 12
	colNameEnd  = 28
	colAnti     = 30
	colAntiEnd  = 46
	colCharge   = 46
	colColour   = 49
	colHasAnti  = 52
	colMass     = 55
	colWidth    = 67
	colCut      = 79
	colLifetime = 91
	colMWid     = 104
)

// Decay line columns.
const (
	colOnOff    = 10
	colME       = 15
	colBR       = 20
	colProducts = 32
	productSize = 10
	maxProducts = 5
)

func init() {
	dialect.Register(dialect.Registration{
		Name:        Name,
		Description: "Pythia 6 PYUPDA particle and decay table",
		Factory:     func(cfg dialect.Config) dialect.Adapter { return New(cfg) },
	})
}

// Adapter ingests Pythia tables.
type Adapter struct {
	translator dialect.Translator
	logger     *slog.Logger
}

// New creates a Pythia adapter. Pythia KF codes are canonical by default.
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
	var last *pdt.TempParticle
	orphaned := false // decay lines of a skipped particle
	for lr.Next() {
		line := lr.Text()
		if dialect.IsBlank(line) {
			continue
		}
		if dialect.Column(line, colKF, colKFEnd) == "" {
			if last == nil {
				if !orphaned {
					dialect.Malformed(b, Name, lr.Line(), line, fmt.Errorf("decay line before any particle"))
				}
				continue
			}
			ch, err := a.parseDecay(line, b)
			if err != nil {
				dialect.Malformed(b, Name, lr.Line(), line, err)
				continue
			}
			last.Decays = append(last.Decays, ch)
			continue
		}

		tp, err := a.parseParticle(line, b)
		if err != nil {
			dialect.Malformed(b, Name, lr.Line(), line, err)
		}
		last, orphaned = tp, tp == nil
	}
	if err := lr.Err(); err != nil {
		return fmt.Errorf("pythia: line %d: %w", lr.Line(), err)
	}
	a.logger.Debug("pythia stream done", "lines", lr.Line(), "particles", b.Size())
	return nil
}

type particleLine struct {
	kf       int
	name     string
	antiName string
	charge3  int
	colour   int
	hasAnti  int
	mass     float64
	width    float64
	cut      float64
	ctau     float64
}

func parseParticleLine(line string) (particleLine, error) {
	var pl particleLine
	if len(line) < colLifetime {
		return pl, fmt.Errorf("particle line too short")
	}
	var err error
	if pl.kf, err = dialect.ParseInt(dialect.Column(line, colKF, colKFEnd)); err != nil {
		return pl, fmt.Errorf("KF code: %w", err)
	}
	pl.name = dialect.Column(line, colName, colNameEnd)
	pl.antiName = dialect.Column(line, colAnti, colAntiEnd)

	ints := []*int{&pl.charge3, &pl.colour, &pl.hasAnti}
	for i, p := range ints {
		start := colCharge + 3*i
		if *p, err = dialect.ParseInt(dialect.Column(line, start, start+3)); err != nil {
			return pl, fmt.Errorf("KCHG(%d): %w", i+1, err)
		}
	}

	floats := []struct {
		dst        *float64
		start, end int
		what       string
	}{
		{&pl.mass, colMass, colWidth, "mass"},
		{&pl.width, colWidth, colCut, "width"},
		{&pl.cut, colCut, colLifetime, "mass cut"},
		{&pl.ctau, colLifetime, colMWid, "lifetime"},
	}
	for _, f := range floats {
		if *f.dst, err = dialect.ParseFloat(dialect.Column(line, f.start, f.end)); err != nil {
			return pl, fmt.Errorf("%s: %w", f.what, err)
		}
	}
	return pl, nil
}

func (a *Adapter) parseParticle(line string, b *pdt.Builder) (*pdt.TempParticle, error) {
	pl, err := parseParticleLine(line)
	if err != nil {
		return nil, err
	}
	id := a.translator.Translate(pl.kf)
	if id == 0 {
		b.Diagnose(pdt.DiagInvalidIdentifier, "no canonical identifier for particle",
			"dialect", Name, "native", pl.kf, "name", pl.name)
		return nil, nil
	}

	tp := b.Particle(id)
	tp.Name = pl.name
	tp.Source = Source
	tp.OriginalID = pl.kf
	tp.Charge = float64(pl.charge3) / 3
	tp.Color = float64(pl.colour)
	tp.Mass = pdt.Measurement{Value: pl.mass}
	tp.LowerCutoff = pl.cut
	tp.UpperCutoff = pl.cut
	if pl.width > 0 {
		tp.Width = pdt.Measurement{Value: pl.width}
	} else {
		tp.SetLifetime(pdt.Measurement{Value: pl.ctau})
	}
	tp = b.AddParticle(tp)

	if pl.hasAnti == 1 && !id.IsSelfConjugate() {
		name := pl.antiName
		if name == "" {
			name = pid.AntiName(id, pl.name)
		}
		b.AntiParticle(-id, name)
	}
	return tp, nil
}

func (a *Adapter) parseDecay(line string, b *pdt.Builder) (pdt.DecayChannel, error) {
	var ch pdt.DecayChannel
	onOff, err := dialect.ParseInt(dialect.Column(line, colOnOff, colME))
	if err != nil {
		return ch, fmt.Errorf("MDME(1): %w", err)
	}
	me, err := dialect.ParseInt(dialect.Column(line, colME, colBR))
	if err != nil {
		return ch, fmt.Errorf("MDME(2): %w", err)
	}
	if ch.BranchingFraction, err = dialect.ParseFloat(dialect.Column(line, colBR, colProducts)); err != nil {
		return ch, fmt.Errorf("BRAT: %w", err)
	}
	ch.Model = strconv.Itoa(me)
	ch.Params = []string{strconv.Itoa(onOff)}

	for i := range maxProducts {
		start := colProducts + i*productSize
		s := dialect.Column(line, start, start+productSize)
		if s == "" {
			break
		}
		kf, err := dialect.ParseInt(s)
		if err != nil {
			return ch, fmt.Errorf("KFDP(%d): %w", i+1, err)
		}
		if kf == 0 {
			continue
		}
		id := a.translator.Translate(kf)
		ch.Products = append(ch.Products, pdt.DecayProduct{ID: id, Name: productName(b, id)})
	}
	return ch, nil
}

func productName(b *pdt.Builder, id pid.ID) string {
	if b.HasParticle(id) {
		return b.Particle(id).Name
	}
	return pid.ParticleName(id)
}
