package cache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes cache hits, misses and build latency. A nil *Metrics records nothing
type Metrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	buildDuration prometheus.Histogram
}

// NewMetrics registers the cache collectors on the given registerer
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_cache_hits_total",
		Help: "Total schedule cache hits",
	})

	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_cache_misses_total",
		Help: "Total schedule cache misses",
	})

	buildDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_build_duration_seconds",
		Help:    "Duration of schedule builds triggered by cache misses",
		Buckets: prometheus.DefBuckets,
	})

	registerer.MustRegister(hits, misses, buildDuration)

	return &Metrics{
		hits:          hits,
		misses:        misses,
		buildDuration: buildDuration,
	}
}

func (m *Metrics) hit() {
	if m == nil {
		return
	}
	m.hits.Inc()
}

func (m *Metrics) miss() {
	if m == nil {
		return
	}
	m.misses.Inc()
}

func (m *Metrics) observeBuild(duration time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(duration.Seconds())
}
