package cache

// metrics.go is a thin abstraction over Prometheus, adapted from the
// teacher's shard-labeled metrics.go: metrics are optional, labeled here by
// object family instead of shard index, and the hot path pays nothing when
// no *prometheus.Registry was supplied.
//
// ┌──────────────────────────────┐
// │ Metric                │ Type │ Labels │
// ├────────────────────────┼──────┼────────┤
// │ sslcache_hits_total     │ Ctr  │ family │
// │ sslcache_misses_total   │ Ctr  │ family │
// │ sslcache_evictions_total│ Ctr  │ family │
// │ sslcache_creates_total  │ Ctr  │ family │
// │ sslcache_inherited_total│ Ctr  │ family │
// │ sslcache_entries        │ Gge  │ family │
// └──────────────────────────────┘
//
// © 2025 sslcache authors. MIT License.

import "github.com/prometheus/client_golang/prometheus"

type metricsSink interface {
	incHit(f Family)
	incMiss(f Family)
	incEvict(f Family)
	incCreate(f Family)
	incInherit(f Family)
	setEntries(f Family, n int)
}

/* -------------------- no-op implementation -------------------- */

type noopMetrics struct{}

func (noopMetrics) incHit(Family)          {}
func (noopMetrics) incMiss(Family)         {}
func (noopMetrics) incEvict(Family)        {}
func (noopMetrics) incCreate(Family)       {}
func (noopMetrics) incInherit(Family)      {}
func (noopMetrics) setEntries(Family, int) {}

/* -------------------- Prometheus implementation -------------------- */

type promMetrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
	creates   *prometheus.CounterVec
	inherited *prometheus.CounterVec
	entries   *prometheus.GaugeVec
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	label := []string{"family"}
	pm := &promMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sslcache", Name: "hits_total", Help: "Number of cache hits.",
		}, label),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sslcache", Name: "misses_total", Help: "Number of cache misses.",
		}, label),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sslcache", Name: "evictions_total", Help: "Number of entries evicted.",
		}, label),
		creates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sslcache", Name: "creates_total", Help: "Number of objects parsed via create().",
		}, label),
		inherited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sslcache", Name: "inherited_total", Help: "Number of objects adopted from a previous generation.",
		}, label),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "sslcache", Name: "entries", Help: "Live entries held by the connection cache.",
		}, label),
	}
	reg.MustRegister(pm.hits, pm.misses, pm.evictions, pm.creates, pm.inherited, pm.entries)
	return pm
}

func (m *promMetrics) incHit(f Family)     { m.hits.WithLabelValues(f.String()).Inc() }
func (m *promMetrics) incMiss(f Family)    { m.misses.WithLabelValues(f.String()).Inc() }
func (m *promMetrics) incEvict(f Family)   { m.evictions.WithLabelValues(f.String()).Inc() }
func (m *promMetrics) incCreate(f Family)  { m.creates.WithLabelValues(f.String()).Inc() }
func (m *promMetrics) incInherit(f Family) { m.inherited.WithLabelValues(f.String()).Inc() }
func (m *promMetrics) setEntries(f Family, n int) {
	m.entries.WithLabelValues(f.String()).Set(float64(n))
}

func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
