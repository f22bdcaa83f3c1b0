package pdt

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for table lookups, resolution and
// publish. A nil *Metrics is valid and records nothing.
type Metrics struct {
	lookups          *prometheus.CounterVec // by table and result (hit, miss, synthesized)
	resolverCalls    *prometheus.CounterVec // by table
	resolverOutcomes *prometheus.CounterVec // by table and outcome (declined, failed)
	nestedRefusals   *prometheus.CounterVec // by table
	published        *prometheus.CounterVec // by table
	dropped          *prometheus.CounterVec // by table and reason
	tableSize        *prometheus.GaugeVec   // by table
}

// NewMetrics creates the table metrics and registers them with reg.
// A nil registerer disables metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdt",
			Subsystem: "table",
			Name:      "lookups_total",
			Help:      "Particle lookups by result",
		}, []string{"table", "result"}),

		resolverCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdt",
			Subsystem: "resolver",
			Name:      "invocations_total",
			Help:      "Number of times the unknown-ID resolver was invoked",
		}, []string{"table"}),

		resolverOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdt",
			Subsystem: "resolver",
			Name:      "unresolved_total",
			Help:      "Resolver invocations that produced no record",
		}, []string{"table", "outcome"}),

		nestedRefusals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdt",
			Subsystem: "resolver",
			Name:      "nested_refusals_total",
			Help:      "Lookups refused because a resolution was already in progress",
		}, []string{"table"}),

		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdt",
			Subsystem: "builder",
			Name:      "published_total",
			Help:      "Staging records published into a table",
		}, []string{"table"}),

		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pdt",
			Subsystem: "builder",
			Name:      "dropped_total",
			Help:      "Staging records dropped at publish",
		}, []string{"table", "reason"}),

		tableSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pdt",
			Subsystem: "table",
			Name:      "particles",
			Help:      "Number of particles held by a table",
		}, []string{"table"}),
	}

	for _, c := range []prometheus.Collector{
		m.lookups, m.resolverCalls, m.resolverOutcomes, m.nestedRefusals,
		m.published, m.dropped, m.tableSize,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) recordLookup(table, result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(table, result).Inc()
}

func (m *Metrics) recordResolverCall(table string) {
	if m == nil {
		return
	}
	m.resolverCalls.WithLabelValues(table).Inc()
}

func (m *Metrics) recordUnresolved(table, outcome string) {
	if m == nil {
		return
	}
	m.resolverOutcomes.WithLabelValues(table, outcome).Inc()
}

func (m *Metrics) recordRefusal(table string) {
	if m == nil {
		return
	}
	m.nestedRefusals.WithLabelValues(table).Inc()
}

func (m *Metrics) recordPublished(table string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(table).Inc()
}

func (m *Metrics) recordDropped(table, reason string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(table, reason).Inc()
}

func (m *Metrics) setSize(table string, n int) {
	if m == nil {
		return
	}
	m.tableSize.WithLabelValues(table).Set(float64(n))
}
