// Package metrics instruments a rewrite.Strategy with Prometheus counters
// and a histogram, kept separate from pkg/rewrite so the core engine stays
// free of an observability dependency for callers who don't want one.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gitrdm/rewritekit/pkg/rewrite"
)

// Collector holds the Prometheus instruments shared across every
// instrumented strategy registered through it.
type Collector struct {
	applied  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector builds a Collector and registers its instruments with reg.
// Passing prometheus.DefaultRegisterer registers globally; tests typically
// pass a fresh prometheus.NewRegistry() instead.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewritekit",
			Name:      "strategy_applications_total",
			Help:      "Count of Strategy.Apply calls, partitioned by strategy name and outcome.",
		}, []string{"strategy", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rewritekit",
			Name:      "strategy_apply_duration_seconds",
			Help:      "Latency of Strategy.Apply calls, partitioned by strategy name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
	}
	reg.MustRegister(c.applied, c.duration)
	return c
}

// Instrument wraps s so every Apply call records its outcome and latency
// under label, without changing s's success/failure/result semantics.
func (c *Collector) Instrument(label string, s rewrite.Strategy) rewrite.Strategy {
	return rewrite.Mk(label, func(t rewrite.Term) (rewrite.Term, bool) {
		start := time.Now()
		result, ok := s.Apply(t)
		c.duration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		outcome := "fail"
		if ok {
			outcome = "success"
		}
		c.applied.WithLabelValues(label, outcome).Inc()
		return result, ok
	})
}
