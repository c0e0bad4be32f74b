// Package metrics exposes the Prometheus counters and histogram the
// resolver records against, purely for observability - nothing in the
// resolution algorithm reads them back.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QueriesTotal counts completed top-level resolutions by outcome:
	// "answer", "max_depth", "no_available_servers", "invalid_delegation",
	// "too_many_subqueries", or "error" for any other failure.
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinyresolve_queries_total",
			Help: "Total top-level resolutions, by outcome",
		},
		[]string{"outcome"},
	)

	// HopsTotal counts resolution hops (iterations of the walk, at any
	// depth) across all resolutions: one per hop, however many candidate
	// servers that hop tried.
	HopsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tinyresolve_hops_total",
			Help: "Total resolution hops across all resolutions",
		},
	)

	// LookupDuration observes the wall-clock time of a top-level Resolve call.
	LookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tinyresolve_lookup_duration_seconds",
			Help:    "Duration of a top-level resolution",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(QueriesTotal, HopsTotal, LookupDuration)
}

// ObserveLookup records the duration of a completed top-level resolution
// and bumps its outcome counter in one call.
func ObserveLookup(outcome string, start time.Time) {
	QueriesTotal.WithLabelValues(outcome).Inc()
	LookupDuration.Observe(time.Since(start).Seconds())
}

// RecordHop increments the hop counter for one iteration of the walk.
func RecordHop() {
	HopsTotal.Inc()
}
