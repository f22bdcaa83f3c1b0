package pdt

import (
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pdt/internal/testutil"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

const protonMass = 0.93827208816

var alphaID = pid.NucleusID(4, 2, 0, 0)

// newProtonTable publishes a proton, a photon and a neutral pion.
func newProtonTable(t *testing.T, opts ...Option) *Table {
	t.Helper()
	opts = append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)
	table := NewTable("test", opts...)
	err := Build(table, func(b *Builder) error {
		p := b.Particle(2212)
		p.Mass = Measurement{Value: protonMass, Sigma: 2.9e-10}
		b.Particle(22)
		b.Particle(111).Mass = Measurement{Value: 0.1349768}
		return nil
	})
	require.NoError(t, err)
	return table
}

func TestTable_Lookup(t *testing.T) {
	table := newProtonTable(t)

	p, ok := table.Particle(2212)
	require.True(t, ok)
	assert.Equal(t, "p+", p.Name())
	assert.InDelta(t, 1.0, p.Charge(), 1e-12)
	assert.True(t, p.IsBaryon())

	byName, ok := table.ParticleByName("p+")
	require.True(t, ok)
	assert.Same(t, p, byName)

	_, ok = table.Particle(-2212)
	assert.False(t, ok, "antiproton was never staged")

	_, ok = table.ParticleByName("nope")
	assert.False(t, ok)

	assert.Equal(t, 3, table.Size())
	assert.Equal(t, "test", table.Name())
}

func TestTable_SelfConjugateNegativeCode(t *testing.T) {
	table := newProtonTable(t)

	for _, id := range []pid.ID{22, 111} {
		pos, ok := table.Particle(id)
		require.True(t, ok)
		neg, ok := table.Particle(-id)
		require.True(t, ok, "negative code of %d", id)
		assert.Same(t, pos, neg)
	}
	assert.Equal(t, 3, table.Size(), "no second slot for the negative codes")
}

func TestTable_NucleusSynthesisIsCached(t *testing.T) {
	counting := &CountingResolver{Next: NucleusResolver{}, Logger: testutil.NewTestLogger(t)}
	table := newProtonTable(t, WithResolver(counting))

	p, ok := table.Particle(alphaID)
	require.True(t, ok)
	assert.InDelta(t, 4*protonMass, p.Mass().Value, 1e-9)
	assert.InDelta(t, 2.0, p.Charge(), 1e-12)
	assert.True(t, p.IsNucleus())
	assert.Equal(t, int64(1), counting.Calls())

	again, ok := table.Particle(alphaID)
	require.True(t, ok)
	assert.Same(t, p, again)
	assert.Equal(t, int64(1), counting.Calls(), "second lookup must be a cache hit")

	byName, ok := table.ParticleByName(p.Name())
	require.True(t, ok, "synthesized record is indexed by name")
	assert.Same(t, p, byName)
}

func TestTable_NucleusResolverDeclines(t *testing.T) {
	t.Run("missing reference", func(t *testing.T) {
		counting := &CountingResolver{Next: NucleusResolver{}}
		table := NewTable("empty", WithResolver(counting))

		_, ok := table.Particle(alphaID)
		assert.False(t, ok)
		_, ok = table.Particle(alphaID)
		assert.False(t, ok)
		assert.Equal(t, int64(2), counting.Calls(), "declines are not cached")
		assert.Equal(t, 0, table.Size())
	})

	t.Run("not a nucleus", func(t *testing.T) {
		table := newProtonTable(t, WithResolver(NucleusResolver{}))
		_, ok := table.Particle(211)
		assert.False(t, ok)
	})

	t.Run("custom reference", func(t *testing.T) {
		table := newProtonTable(t, WithResolver(NucleusResolver{Reference: 111}))
		p, ok := table.Particle(alphaID)
		require.True(t, ok)
		assert.InDelta(t, 4*0.1349768, p.Mass().Value, 1e-9)
	})
}

// nestingResolver looks up inner through the view before resolving outer.
type nestingResolver struct {
	inner       pid.ID
	capable     *CountingResolver
	nestedFound bool
	nestedCalls int
}

func (r *nestingResolver) Resolve(id pid.ID, view View) (*TempParticle, error) {
	if id != r.inner {
		_, r.nestedFound = view.Particle(r.inner)
		r.nestedCalls++
	}
	return r.capable.Resolve(id, view)
}

func TestTable_NestedResolutionIsRefused(t *testing.T) {
	inner := pid.NucleusID(12, 6, 0, 0)
	r := &nestingResolver{inner: inner, capable: &CountingResolver{}}
	table := NewTable("nested", WithResolver(r), WithLogger(testutil.NewTestLogger(t)))

	p, ok := table.Particle(alphaID)
	require.True(t, ok)
	assert.Equal(t, alphaID, p.ID())

	assert.Equal(t, 1, r.nestedCalls)
	assert.False(t, r.nestedFound, "nested lookup must report not found")
	assert.Equal(t, int64(1), r.capable.Calls(), "resolver ran once, for the outer id only")
	assert.Equal(t, 1, table.Size())

	// the refusal only applied during the outer resolution
	c, ok := table.Particle(inner)
	require.True(t, ok)
	assert.Equal(t, "fragment-1000060120", c.Name())
}

func TestTable_NestedLookupSeesExistingRecords(t *testing.T) {
	var seen bool
	r := ResolverFunc(func(id pid.ID, view View) (*TempParticle, error) {
		_, seen = view.Particle(-22)
		return nil, nil
	})
	table := newProtonTable(t, WithResolver(r))

	_, ok := table.Particle(alphaID)
	assert.False(t, ok)
	assert.True(t, seen, "published records stay visible through the view")
}

func TestTable_GuardIsPerTable(t *testing.T) {
	other := NewTable("other", WithResolver(&CountingResolver{}))

	var fromOther bool
	r := ResolverFunc(func(id pid.ID, view View) (*TempParticle, error) {
		_, fromOther = other.Particle(id)
		return nil, nil
	})
	table := NewTable("main", WithResolver(r))

	_, ok := table.Particle(alphaID)
	assert.False(t, ok)
	assert.True(t, fromOther, "a resolution in one table does not block another table")
}

func TestTable_DirectNestedLookupIsRefused(t *testing.T) {
	var table *Table
	var calls, nestedFound int
	r := ResolverFunc(func(id pid.ID, view View) (*TempParticle, error) {
		calls++
		if _, ok := table.ParticleContext(view.Context(), id+10); ok {
			nestedFound++
		}
		tp := NewTempParticle(id)
		tp.Name = "outer"
		return tp, nil
	})
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	table = NewTable("direct", WithResolver(r), WithMetrics(m),
		WithLogger(testutil.NewTestLogger(t)))

	p, ok := table.Particle(alphaID)
	require.True(t, ok)
	assert.Equal(t, "outer", p.Name())
	assert.Equal(t, 1, calls, "the nested lookup must not re-enter the resolver")
	assert.Equal(t, 0, nestedFound)
	assert.Equal(t, 1, table.Size())
	assert.InDelta(t, 1, promtestutil.ToFloat64(m.nestedRefusals.WithLabelValues("direct")), 0)

	// outside a resolution the same call resolves normally
	_, ok = table.ParticleContext(t.Context(), alphaID+10)
	assert.True(t, ok)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, table.Size())
}

func TestTable_ResolverFailures(t *testing.T) {
	tests := []struct {
		name     string
		resolver Resolver
	}{
		{"error", ResolverFunc(func(pid.ID, View) (*TempParticle, error) {
			return nil, errors.New("boom")
		})},
		{"wrong id", ResolverFunc(func(pid.ID, View) (*TempParticle, error) {
			return NewTempParticle(211), nil
		})},
		{"noop", NoopResolver{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable("fail", WithResolver(tt.resolver), WithLogger(testutil.NewTestLogger(t)))
			p, ok := table.Particle(alphaID)
			assert.False(t, ok)
			assert.Nil(t, p)
			assert.Equal(t, 0, table.Size())
		})
	}
}

func TestTable_ZeroIDNeverResolves(t *testing.T) {
	counting := &CountingResolver{}
	table := NewTable("zero", WithResolver(counting))
	_, ok := table.Particle(0)
	assert.False(t, ok)
	assert.Equal(t, int64(0), counting.Calls())
}

func TestTable_ConcurrentLookups(t *testing.T) {
	counting := &CountingResolver{Next: NucleusResolver{}}
	table := newProtonTable(t, WithResolver(counting))

	const workers = 16
	var wg sync.WaitGroup
	masses := make([]float64, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p, ok := table.Particle(alphaID); ok {
				masses[i] = p.Mass().Value
			}
			_, _ = table.Particle(2212)
		}()
	}
	wg.Wait()

	for _, m := range masses {
		assert.InDelta(t, 4*protonMass, m, 1e-9)
	}
	calls := counting.Calls()
	assert.GreaterOrEqual(t, calls, int64(1))
	assert.LessOrEqual(t, calls, int64(workers))
	assert.Equal(t, 4, table.Size(), "duplicate synthesis still leaves one slot")
}

func TestTable_ParticlesOrder(t *testing.T) {
	table := NewTable("order")
	require.NoError(t, Build(table, func(b *Builder) error {
		for _, id := range []pid.ID{-211, 2212, 211, 11, -11, 22} {
			b.Particle(id)
		}
		return nil
	}))

	var ids []pid.ID
	for _, p := range table.Particles() {
		ids = append(ids, p.ID())
	}
	assert.Equal(t, []pid.ID{11, -11, 22, 211, -211, 2212}, ids)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	counting := &CountingResolver{Next: NucleusResolver{}}
	table := NewTable("metrics", WithResolver(counting), WithMetrics(m))
	require.NoError(t, Build(table, func(b *Builder) error {
		b.Particle(2212).Mass.Value = protonMass
		b.ParticleByName("orphan")
		return nil
	}))

	_, _ = table.Particle(2212)
	_, _ = table.Particle(alphaID)
	_, _ = table.Particle(alphaID)
	_, _ = table.Particle(211)

	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.lookups.WithLabelValues("metrics", "hit")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.lookups.WithLabelValues("metrics", "synthesized")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.lookups.WithLabelValues("metrics", "miss")))
	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.resolverCalls.WithLabelValues("metrics")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.resolverOutcomes.WithLabelValues("metrics", "declined")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.published.WithLabelValues("metrics")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.dropped.WithLabelValues("metrics", "unresolved")))
	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.tableSize.WithLabelValues("metrics")))

	_, err = NewMetrics(reg)
	assert.Error(t, err, "registering twice fails")
}

func TestMetrics_Disabled(t *testing.T) {
	m, err := NewMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	assert.NotPanics(t, func() {
		m.recordLookup("x", "hit")
		m.recordRefusal("x")
		m.setSize("x", 1)
	})
}
