package pdt

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/leapstack-labs/pdt/pkg/pid"
)

// Table is the published particle data table, indexed by identifier and
// by name. Names may collide across dialects; the last insert wins.
type Table struct {
	name     string
	resolver Resolver
	logger   *slog.Logger
	metrics  *Metrics

	mu     sync.RWMutex
	byID   map[pid.ID]*Particle
	byName map[string]pid.ID
}

// Option configures a Table.
type Option func(*Table)

// WithResolver sets the unknown-ID resolver. nil keeps NoopResolver.
func WithResolver(r Resolver) Option {
	return func(t *Table) {
		if r != nil {
			t.resolver = r
		}
	}
}

// WithLogger sets the table logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(t *Table) { t.metrics = m }
}

// NewTable creates an empty table.
func NewTable(name string, opts ...Option) *Table {
	t := &Table{
		name:     name,
		resolver: NoopResolver{},
		logger:   discardLogger(),
		byID:     make(map[pid.ID]*Particle),
		byName:   make(map[string]pid.ID),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Resolver returns the table's resolver.
func (t *Table) Resolver() Resolver { return t.resolver }

// Size returns the number of records.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}

// Particle looks up id. A negative self-conjugate code finds the record of
// its positive code. On a miss the resolver is consulted once; a record it
// synthesizes is inserted and later lookups are plain hits.
func (t *Table) Particle(id pid.ID) (*Particle, bool) {
	return t.ParticleContext(context.Background(), id)
}

// ParticleContext is Particle with a context. When ctx descends from the
// View context of a resolution running on this table, a miss is refused
// instead of resolved.
func (t *Table) ParticleContext(ctx context.Context, id pid.ID) (*Particle, bool) {
	if p, ok := t.local(id); ok {
		t.metrics.recordLookup(t.name, "hit")
		return p, true
	}
	if outer, ok := resolvingFrom(ctx, t); ok {
		t.refuse(outer, id)
		t.metrics.recordLookup(t.name, "miss")
		return nil, false
	}
	return t.resolve(ctx, id)
}

// ParticleByName looks up a record by display name. Names are never resolved.
func (t *Table) ParticleByName(name string) (*Particle, bool) {
	t.mu.RLock()
	id, ok := t.byName[name]
	var p *Particle
	if ok {
		p, ok = t.byID[id]
	}
	t.mu.RUnlock()
	return p, ok
}

// Particles returns every record ordered by absolute identifier, particle
// before antiparticle.
func (t *Table) Particles() []*Particle {
	t.mu.RLock()
	out := make([]*Particle, 0, len(t.byID))
	for _, p := range t.byID {
		out = append(out, p)
	}
	t.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Particle) int {
		if c := cmp.Compare(a.id.Abs(), b.id.Abs()); c != 0 {
			return c
		}
		return cmp.Compare(b.id, a.id)
	})
	return out
}

func (t *Table) local(id pid.ID) (*Particle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if p, ok := t.byID[id]; ok {
		return p, true
	}
	if id < 0 && id.IsSelfConjugate() {
		p, ok := t.byID[-id]
		return p, ok
	}
	return nil, false
}

func (t *Table) insert(p *Particle) {
	t.mu.Lock()
	t.byID[p.id] = p
	if p.name != "" {
		t.byName[p.name] = p.id
	}
	n := len(t.byID)
	t.mu.Unlock()
	t.metrics.setSize(t.name, n)
}

func (t *Table) refuse(resolving, requested pid.ID) {
	t.metrics.recordRefusal(t.name)
	t.logger.Debug("nested resolution refused",
		"table", t.name, "resolving", int(resolving), "requested", int(requested))
}

// resolve runs the resolver for a miss. The resolution view lives only for
// this call and carries a context marking the table as resolving, which caps
// the depth at one.
func (t *Table) resolve(ctx context.Context, id pid.ID) (*Particle, bool) {
	if id == 0 {
		t.metrics.recordLookup(t.name, "miss")
		return nil, false
	}

	t.metrics.recordResolverCall(t.name)
	view := &resolution{table: t, id: id, ctx: withResolving(ctx, t, id)}
	tp, err := t.resolver.Resolve(id, view)
	if err == nil && tp != nil && tp.ID != 0 && tp.ID != id {
		err = fmt.Errorf("resolver returned id %d for %d", int(tp.ID), int(id))
	}
	switch {
	case err != nil:
		t.logger.Warn("resolver failed", "table", t.name, "id", int(id), "error", err)
		t.metrics.recordUnresolved(t.name, "failed")
		t.metrics.recordLookup(t.name, "miss")
		return nil, false
	case tp == nil:
		t.logger.Debug("resolution declined", "table", t.name, "id", int(id),
			"kind", DiagResolutionDeclined)
		t.metrics.recordUnresolved(t.name, "declined")
		t.metrics.recordLookup(t.name, "miss")
		return nil, false
	}

	tp.ID = id
	p := newParticle(tp)
	t.insert(p)
	t.logger.Debug("particle synthesized", "table", t.name, "id", int(id), "name", p.name)
	t.metrics.recordLookup(t.name, "synthesized")
	return p, true
}
