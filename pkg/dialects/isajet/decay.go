package isajet

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// DecayName is the registered name of the decay table dialect.
const DecayName = "isajet-decay"

// Decay line columns: parent, matrix element, branching ratio and up to
// five daughters.
//
//	110    0     .98800      10      10       0       0       0
const (
	colParent     = 0
	colParentEnd  = 10
	colME         = 10
	colBR         = 15
	colDaughters  = 26
	daughterWidth = 8
	maxDaughters  = 5
)

// DecayAdapter ingests Isajet decay tables. Parents are created on demand,
// so the decay table may be read before or after the particle table.
type DecayAdapter struct {
	translator dialect.Translator
	logger     *slog.Logger
}

// NewDecay creates an Isajet decay adapter.
func NewDecay(cfg dialect.Config) *DecayAdapter {
	return &DecayAdapter{
		translator: cfg.TranslatorOr(DefaultTranslator()),
		logger:     cfg.LoggerOrDiscard(),
	}
}

// Name implements dialect.Adapter.
func (a *DecayAdapter) Name() string { return DecayName }

// Add implements dialect.Adapter.
func (a *DecayAdapter) Add(r io.Reader, b *pdt.Builder) error {
	if b.Closed() {
		return pdt.ErrBuilderClosed
	}
	lr := dialect.NewLineReader(r)
	channels := 0
	for lr.Next() {
		line := lr.Text()
		ok, err := a.addLine(line, b)
		if err != nil {
			dialect.Malformed(b, DecayName, lr.Line(), line, err)
			continue
		}
		if ok {
			channels++
		}
	}
	if err := lr.Err(); err != nil {
		return fmt.Errorf("isajet decay: line %d: %w", lr.Line(), err)
	}
	a.logger.Debug("isajet decay stream done", "lines", lr.Line(), "channels", channels)
	return nil
}

func (a *DecayAdapter) addLine(line string, b *pdt.Builder) (bool, error) {
	parentCol := dialect.Column(line, colParent, colParentEnd)
	if len(line) <= colDaughters || parentCol == "" {
		return false, nil
	}
	parent, err := dialect.ParseInt(parentCol)
	if err != nil {
		return false, fmt.Errorf("parent %q: %w", parentCol, err)
	}
	me, err := dialect.ParseInt(dialect.Column(line, colME, colBR))
	if err != nil {
		return false, fmt.Errorf("matrix element: %w", err)
	}
	br, err := dialect.ParseFloat(dialect.Column(line, colBR, colDaughters))
	if err != nil {
		return false, fmt.Errorf("branching ratio: %w", err)
	}

	ch := pdt.DecayChannel{BranchingFraction: br, Model: strconv.Itoa(me)}
	for i := range maxDaughters {
		start := colDaughters + i*daughterWidth
		s := dialect.Column(line, start, start+daughterWidth)
		if s == "" {
			break
		}
		d, err := dialect.ParseInt(s)
		if err != nil {
			return false, fmt.Errorf("daughter %d: %w", i+1, err)
		}
		if d == 0 {
			continue
		}
		id := a.translator.Translate(d)
		ch.Products = append(ch.Products, pdt.DecayProduct{ID: id, Name: daughterName(b, id, d)})
	}

	id := a.translator.Translate(parent)
	if id == 0 {
		b.Diagnose(pdt.DiagInvalidIdentifier, "no canonical identifier for decay parent",
			"dialect", DecayName, "native", parent)
		return false, nil
	}
	tp := b.Particle(id)
	tp.Decays = append(tp.Decays, ch)
	return true, nil
}

func daughterName(b *pdt.Builder, id pid.ID, native int) string {
	switch {
	case id == 0:
		return strconv.Itoa(native)
	case b.HasParticle(id):
		return b.Particle(id).Name
	}
	return pid.ParticleName(id)
}
