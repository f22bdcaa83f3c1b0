package pdt

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/leapstack-labs/pdt/pkg/pid"
)

// ErrBuilderClosed is returned (or panicked with) when a builder is used
// after it has published.
var ErrBuilderClosed = errors.New("pdt: builder already published")

// AliasData is a staging-only alias: a name pointing at a defined particle,
// with an optional charge-conjugate alias and its own decay table.
type AliasData struct {
	Alias      string
	Particle   string
	ID         pid.ID
	ChargeConj string
	Decays     []DecayChannel
}

// DefTable holds named numeric parameters from Define lines.
type DefTable struct {
	values map[string]float64
}

func newDefTable() *DefTable {
	return &DefTable{values: make(map[string]float64)}
}

// Set stores a value, replacing any previous one.
func (d *DefTable) Set(name string, v float64) { d.values[name] = v }

// Value returns the named value.
func (d *DefTable) Value(name string) (float64, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Has reports whether name is defined.
func (d *DefTable) Has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Len returns the number of definitions.
func (d *DefTable) Len() int { return len(d.values) }

// Names returns the defined names in sorted order.
func (d *DefTable) Names() []string {
	return slices.Sorted(maps.Keys(d.values))
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithDiagnostics routes warnings to sink instead of the builder logger.
func WithDiagnostics(sink DiagnosticSink) BuilderOption {
	return func(b *Builder) {
		if sink != nil {
			b.sink = sink
		}
	}
}

// WithBuilderLogger sets the builder logger.
func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Builder stages particle records for one table. It is not safe for
// concurrent use, and only one builder may target a table at a time.
type Builder struct {
	table  *Table
	logger *slog.Logger
	sink   DiagnosticSink

	particles  map[pid.ID]*TempParticle
	order      []pid.ID
	unresolved []*TempParticle
	names      map[string]*TempParticle
	defined    map[pid.ID]bool
	aliases    map[string]*AliasData
	defs       *DefTable

	once   sync.Once
	closed bool
}

// NewBuilder opens a builder that publishes into table on Close.
func NewBuilder(table *Table, opts ...BuilderOption) *Builder {
	b := &Builder{
		table:     table,
		logger:    table.logger,
		particles: make(map[pid.ID]*TempParticle),
		names:     make(map[string]*TempParticle),
		defined:   make(map[pid.ID]bool),
		aliases:   make(map[string]*AliasData),
		defs:      newDefTable(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.sink == nil {
		b.sink = b.logger
	}
	return b
}

// Build opens a builder, runs fn and publishes when fn returns, including
// on error or panic.
func Build(table *Table, fn func(b *Builder) error, opts ...BuilderOption) error {
	b := NewBuilder(table, opts...)
	defer func() { _ = b.Close() }()
	return fn(b)
}

// Close publishes the staged records. Only the first call has any effect.
func (b *Builder) Close() error {
	b.once.Do(func() {
		b.publish()
		b.closed = true
	})
	return nil
}

// Closed reports whether the builder has published.
func (b *Builder) Closed() bool { return b.closed }

// Table returns the target table.
func (b *Builder) Table() *Table { return b.table }

// Logger returns the builder logger.
func (b *Builder) Logger() *slog.Logger { return b.logger }

func (b *Builder) mustBeOpen() {
	if b.closed {
		panic(ErrBuilderClosed)
	}
}

// Diagnose reports a non-fatal problem to the diagnostics sink.
func (b *Builder) Diagnose(kind DiagKind, msg string, args ...any) {
	b.sink.Warn(msg, append([]any{"kind", string(kind)}, args...)...)
}

// Particle returns the staging record for id, creating it with the
// codec defaults if needed.
func (b *Builder) Particle(id pid.ID) *TempParticle {
	b.mustBeOpen()
	if tp, ok := b.particles[id]; ok {
		return tp
	}
	tp := NewTempParticle(id)
	b.add(tp)
	return tp
}

// HasParticle reports whether a staging record exists for id.
func (b *Builder) HasParticle(id pid.ID) bool {
	_, ok := b.particles[id]
	return ok
}

// ParticleByName returns the staging record registered under name. An
// unknown name creates an unresolved record (ID 0) that is dropped at
// publish unless an ID is assigned through AddParticle.
func (b *Builder) ParticleByName(name string) *TempParticle {
	b.mustBeOpen()
	if tp, ok := b.names[name]; ok {
		return tp
	}
	tp := &TempParticle{Name: name}
	b.unresolved = append(b.unresolved, tp)
	b.names[name] = tp
	return tp
}

// HasParticleName reports whether a staging record is registered under name.
func (b *Builder) HasParticleName(name string) bool {
	_, ok := b.names[name]
	return ok
}

// AddParticle registers tp under its ID and name. It is called by adapters
// once a definition line has been parsed; a second definition of the same
// ID is reported as a duplicate and overwrites field by field.
func (b *Builder) AddParticle(tp *TempParticle) *TempParticle {
	b.mustBeOpen()
	if tp.ID != 0 && b.defined[tp.ID] {
		b.logger.Debug("duplicate particle definition, last write wins",
			"kind", string(DiagDuplicateIdentifier), "id", int(tp.ID), "name", tp.Name)
	}
	if tp.ID != 0 {
		b.defined[tp.ID] = true
		if cur, ok := b.particles[tp.ID]; ok && cur != tp {
			*cur = *tp
			tp = cur
		} else if !ok {
			b.add(tp)
		}
	} else if !slices.Contains(b.unresolved, tp) {
		b.add(tp)
	}
	if tp.Name != "" {
		b.names[tp.Name] = tp
	}
	return tp
}

func (b *Builder) add(tp *TempParticle) {
	if tp.ID == 0 {
		b.unresolved = append(b.unresolved, tp)
	} else {
		b.particles[tp.ID] = tp
		b.order = append(b.order, tp.ID)
	}
	if tp.Name != "" {
		b.names[tp.Name] = tp
	}
}

// AntiParticle stages the antiparticle id (normally negative) as the charge
// conjugate of -id: charge and constituents are flipped, everything else is
// copied. Without a staged partner it falls back to the codec defaults.
func (b *Builder) AntiParticle(id pid.ID, name string) *TempParticle {
	b.mustBeOpen()
	partner, ok := b.particles[-id]
	if !ok {
		tp := b.Particle(id)
		if name != "" {
			tp.Name = name
			b.names[name] = tp
		}
		return tp
	}

	tp := partner.Clone()
	tp.ID = id
	tp.OriginalID = -partner.OriginalID
	tp.Charge = -partner.Charge
	tp.Decays = nil
	for i, c := range tp.Constituents {
		tp.Constituents[i] = -c
	}
	if name != "" {
		tp.Name = name
	} else {
		tp.Name = pid.ParticleName(id)
	}
	if cur, exists := b.particles[id]; exists {
		*cur = *tp
		tp = cur
	} else {
		b.add(tp)
	}
	b.names[tp.Name] = tp
	return tp
}

// RemoveParticle drops the staging record for id.
func (b *Builder) RemoveParticle(id pid.ID) {
	b.mustBeOpen()
	tp, ok := b.particles[id]
	if !ok {
		return
	}
	delete(b.particles, id)
	delete(b.defined, id)
	if b.names[tp.Name] == tp {
		delete(b.names, tp.Name)
	}
}

// Size returns the number of staged records with an identifier.
func (b *Builder) Size() int { return len(b.particles) }

// AddAlias registers or replaces an alias.
func (b *Builder) AddAlias(a AliasData) *AliasData {
	b.mustBeOpen()
	ad := a
	b.aliases[a.Alias] = &ad
	return &ad
}

// HasAlias reports whether name is a registered alias.
func (b *Builder) HasAlias(name string) bool {
	_, ok := b.aliases[name]
	return ok
}

// Alias returns the alias registered under name.
func (b *Builder) Alias(name string) (*AliasData, bool) {
	a, ok := b.aliases[name]
	return a, ok
}

// Aliases returns every alias ordered by name.
func (b *Builder) Aliases() []*AliasData {
	out := make([]*AliasData, 0, len(b.aliases))
	for _, name := range slices.Sorted(maps.Keys(b.aliases)) {
		out = append(out, b.aliases[name])
	}
	return out
}

// AliasCount returns the number of aliases.
func (b *Builder) AliasCount() int { return len(b.aliases) }

// Definitions returns the Define side table.
func (b *Builder) Definitions() *DefTable { return b.defs }

// SetDefinition stores a named parameter.
func (b *Builder) SetDefinition(name string, v float64) {
	b.mustBeOpen()
	b.defs.Set(name, v)
}

// publish inserts every valid staging record into the table in staging order.
func (b *Builder) publish() {
	published := 0
	seen := make(map[pid.ID]bool, len(b.order))
	for _, id := range b.order {
		tp, ok := b.particles[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		if b.publishOne(tp) {
			published++
		}
	}
	for _, tp := range b.unresolved {
		if tp.ID != 0 {
			// assigned later and already published through b.order
			continue
		}
		b.Diagnose(DiagInvalidIdentifier, "dropping unresolved particle",
			"name", tp.Name, "source", tp.Source)
		b.table.metrics.recordDropped(b.table.name, "unresolved")
	}

	b.logger.Debug("builder published", "table", b.table.name,
		"published", published, "aliases", len(b.aliases), "definitions", b.defs.Len())
}

func (b *Builder) publishOne(tp *TempParticle) bool {
	if tp.ID < 0 && tp.ID.IsSelfConjugate() {
		if _, ok := b.particles[-tp.ID]; ok {
			b.logger.Debug("skipping negative code of self-conjugate particle",
				"id", int(tp.ID), "name", tp.Name)
			return false
		}
		tp.ID = -tp.ID
	}
	if !tp.ID.IsValid() {
		b.Diagnose(DiagInvalidIdentifier, "dropping particle with invalid identifier",
			"id", int(tp.ID), "name", tp.Name, "source", tp.Source)
		b.table.metrics.recordDropped(b.table.name, "invalid")
		return false
	}
	if len(tp.Constituents) == 0 {
		tp.Constituents = constituentsFromID(tp.ID)
	}
	b.table.insert(newParticle(tp))
	b.table.metrics.recordPublished(b.table.name)
	return true
}
