// Package pdg reads the PDG mass and width table (mass_width_YYYY.mcd).
//
// Lines are fixed-column: a record type in column 1 (M for mass, W for
// width), up to four particle codes of eight columns each, the value, its
// positive and negative errors, and finally the particle name followed by
// one charge per code:
//
//	M     211                          1.3957018E-01  +3.5E-07 -3.5E-07 pi                   +
//	M     111                          1.349766E-01   +6.0E-07 -6.0E-07 pi                   0
package pdg

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// Name is the registered dialect name.
const Name = "pdg"

// Source is the source tag stored on every record this dialect defines.
const Source = "PDG"

// Column layout, 0-based and end-exclusive.
const (
	colType     = 0
	colIDs      = 1
	idWidth     = 8
	maxIDs      = 4
	colValue    = 33
	colValueEnd = 51
	colPlus     = 52
	colPlusEnd  = 60
	colMinus    = 61
	colMinusEnd = 69
	colName     = 70
)

func init() {
	dialect.Register(dialect.Registration{
		Name:        Name,
		Description: "PDG fixed-column mass and width table",
		Factory:     func(cfg dialect.Config) dialect.Adapter { return New(cfg) },
	})
}

// Adapter ingests PDG mass/width tables.
type Adapter struct {
	translator dialect.Translator
	logger     *slog.Logger
}

// New creates a PDG adapter. PDG codes are canonical by default.
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
		if len(line) == 0 {
			continue
		}
		switch line[colType] {
		case 'M', 'W':
			if err := a.addLine(line, b); err != nil {
				dialect.Malformed(b, Name, lr.Line(), line, err)
			}
		}
	}
	if err := lr.Err(); err != nil {
		return fmt.Errorf("pdg: line %d: %w", lr.Line(), err)
	}
	a.logger.Debug("pdg stream done", "lines", lr.Line(), "particles", b.Size())
	return nil
}

type entry struct {
	ids     []int
	value   pdt.Measurement
	name    string
	charges []string
	values  []float64
}

func parseLine(line string) (entry, error) {
	var e entry
	if len(line) <= colValue {
		return e, fmt.Errorf("line too short")
	}
	for i := range maxIDs {
		start := colIDs + i*idWidth
		s := dialect.Column(line, start, start+idWidth)
		if s == "" {
			continue
		}
		id, err := dialect.ParseInt(s)
		if err != nil {
			return e, fmt.Errorf("particle code %q: %w", s, err)
		}
		e.ids = append(e.ids, id)
	}
	if len(e.ids) == 0 {
		return e, fmt.Errorf("no particle codes")
	}

	v, err := dialect.ParseFloat(dialect.Column(line, colValue, colValueEnd))
	if err != nil {
		return e, fmt.Errorf("value: %w", err)
	}
	e.value.Value = v
	e.value.Sigma = errorColumn(line, colPlus, colPlusEnd)/2 + errorColumn(line, colMinus, colMinusEnd)/2

	fields := strings.Fields(dialect.Column(line, colName, -1))
	if len(fields) > 0 {
		e.name = fields[0]
	}
	if len(fields) > 1 {
		e.charges = strings.Split(fields[1], ",")
		for _, c := range e.charges {
			q, err := parseCharge(c)
			if err != nil {
				return e, err
			}
			e.values = append(e.values, q)
		}
	}
	return e, nil
}

// errorColumn returns the magnitude of an error column, 0 when absent.
func errorColumn(line string, start, end int) float64 {
	v, err := dialect.ParseFloat(dialect.Column(line, start, end))
	if err != nil {
		return 0
	}
	return math.Abs(v)
}

func (a *Adapter) addLine(line string, b *pdt.Builder) error {
	e, err := parseLine(line)
	if err != nil {
		return err
	}
	isMass := line[colType] == 'M'

	for i, native := range e.ids {
		id := a.translator.Translate(native)
		if id == 0 {
			b.Diagnose(pdt.DiagInvalidIdentifier, "no canonical identifier for particle",
				"dialect", Name, "native", native, "name", e.name)
			continue
		}

		tp := b.Particle(id)
		tp.Source = Source
		tp.OriginalID = native
		if i < len(e.charges) {
			tp.Charge = e.values[i]
			tp.Name = particleName(e.name, e.charges[i])
		} else if e.name != "" {
			tp.Name = e.name
		}
		if isMass {
			tp.Mass = e.value
		} else {
			tp.Width = e.value
		}
		b.AddParticle(tp)

		if !id.IsSelfConjugate() {
			b.AntiParticle(-id, pid.AntiName(id, tp.Name))
		}
	}
	return nil
}

// particleName appends integer charges to the base name. Fractional quark
// charges are not part of the name.
func particleName(base, charge string) string {
	if strings.Contains(charge, "/") {
		return base
	}
	return base + charge
}

// parseCharge understands "+", "++", "0", "-", "--" and fractions like
// "-1/3" or "+2/3".
func parseCharge(s string) (float64, error) {
	switch s {
	case "0":
		return 0, nil
	case "+", "-", "++", "--":
		n := float64(len(s))
		if s[0] == '-' {
			n = -n
		}
		return n, nil
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, fmt.Errorf("charge %q", s)
	}
	n, err := dialect.ParseInt(num)
	if err != nil {
		return 0, fmt.Errorf("charge %q: %w", s, err)
	}
	d, err := dialect.ParseInt(den)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("charge %q", s)
	}
	return float64(n) / float64(d), nil
}
