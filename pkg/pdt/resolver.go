package pdt

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/leapstack-labs/pdt/pkg/pid"
)

// View is the read-only table access handed to a Resolver. Lookups through
// a View never trigger resolution: a miss is reported as not found.
type View interface {
	Particle(id pid.ID) (*Particle, bool)
	ParticleByName(name string) (*Particle, bool)
	// Context marks the table as resolving. Table.ParticleContext refuses
	// to resolve under it.
	Context() context.Context
}

// Resolver synthesizes a record for an identifier missing from a table.
//
// Returning nil, nil declines. A non-nil error is logged by the table and
// treated like a decline. Resolvers read the table through view. One that
// must call the owning Table passes view.Context() to ParticleContext; a
// plain Table.Particle call carries no marker and is not limited.
type Resolver interface {
	Resolve(id pid.ID, view View) (*TempParticle, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(id pid.ID, view View) (*TempParticle, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(id pid.ID, view View) (*TempParticle, error) {
	return f(id, view)
}

// NoopResolver always declines. It is the table default.
type NoopResolver struct{}

// Resolve implements Resolver.
func (NoopResolver) Resolve(pid.ID, View) (*TempParticle, error) {
	return nil, nil
}

// DefaultReference is the reference baryon used by NucleusResolver.
const DefaultReference pid.ID = 2212

// NucleusResolver estimates nuclei as A copies of a reference baryon.
// It declines non-nuclei and declines when the reference is not in the table.
type NucleusResolver struct {
	// Reference defaults to the proton.
	Reference pid.ID
}

// Resolve implements Resolver.
func (r NucleusResolver) Resolve(id pid.ID, view View) (*TempParticle, error) {
	if !id.IsNucleus() {
		return nil, nil
	}
	ref := r.Reference
	if ref == 0 {
		ref = DefaultReference
	}
	p, ok := view.Particle(ref)
	if !ok {
		return nil, nil
	}
	a := float64(id.A())
	tp := NewTempParticle(id)
	tp.Source = "NucleusResolver"
	tp.Mass = Measurement{Value: a * p.Mass().Value, Sigma: a * p.Mass().Sigma}
	return tp, nil
}

// CountingResolver counts its invocations and logs every synthesized
// record. Without Next it creates a bare "fragment-<id>" record for any
// valid identifier.
type CountingResolver struct {
	Next   Resolver
	Logger *slog.Logger

	calls atomic.Int64
}

// Resolve implements Resolver.
func (r *CountingResolver) Resolve(id pid.ID, view View) (*TempParticle, error) {
	r.calls.Add(1)
	logger := r.Logger
	if logger == nil {
		logger = discardLogger()
	}

	if r.Next != nil {
		tp, err := r.Next.Resolve(id, view)
		if err == nil && tp != nil {
			logger.Info("resolver synthesized particle", "id", int(id), "name", tp.Name)
		}
		return tp, err
	}

	if !id.IsValid() {
		return nil, nil
	}
	tp := NewTempParticle(id)
	tp.Name = fmt.Sprintf("fragment-%d", int(id))
	tp.Source = "CountingResolver"
	logger.Info("created fragment", "id", int(id), "name", tp.Name)
	return tp, nil
}

// Calls returns the number of Resolve invocations so far.
func (r *CountingResolver) Calls() int64 {
	return r.calls.Load()
}

// resolution is the View handed to a resolver for one lookup miss. It is
// created per call, so concurrent misses on other goroutines and misses on
// other tables are unaffected by it.
type resolution struct {
	table *Table
	id    pid.ID
	ctx   context.Context
}

func (r *resolution) Particle(id pid.ID) (*Particle, bool) {
	if p, ok := r.table.local(id); ok {
		return p, true
	}
	r.table.refuse(r.id, id)
	return nil, false
}

func (r *resolution) ParticleByName(name string) (*Particle, bool) {
	return r.table.ParticleByName(name)
}

func (r *resolution) Context() context.Context { return r.ctx }

// resolvingKey scopes the marker to one table, so resolving in one table
// never blocks lookups in another.
type resolvingKey struct{ table *Table }

func withResolving(ctx context.Context, t *Table, id pid.ID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, resolvingKey{t}, id)
}

func resolvingFrom(ctx context.Context, t *Table) (pid.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(resolvingKey{t}).(pid.ID)
	return id, ok
}
