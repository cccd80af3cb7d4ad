// Package metrics exposes Prometheus counters and histograms for the
// mining loop, in the style of the bifrost metrics registry this module
// was adapted from: a small named-metric table plus a constructor that
// registers everything against a supplied registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "beholder"
	subsystem = "mining"
)

// Metrics holds the counters and histograms the prove/verify paths update.
type Metrics struct {
	IterationsAttempted prometheus.Counter
	IterationsSolved    prometheus.Counter
	IterationsGivenUp   prometheus.Counter
	ProveDuration       prometheus.Histogram
	VerifyDuration      prometheus.Histogram
}

// New creates and registers all Beholder metrics against registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		IterationsAttempted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "iterations_attempted_total",
			Help:      "Fischlin iterations started across all Proof::prove calls.",
		}),
		IterationsSolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "iterations_solved_total",
			Help:      "Fischlin iterations that found a passing nonce c before exhausting the range.",
		}),
		IterationsGivenUp: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "iterations_given_up_total",
			Help:      "Fischlin iterations that exhausted their nonce range and degraded to a Commitment slot.",
		}),
		ProveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "prove_duration_seconds",
			Help:      "Wall-clock time of Proof::prove calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		VerifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "verify_duration_seconds",
			Help:      "Wall-clock time of Proof::verify calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.IterationsAttempted,
		m.IterationsSolved,
		m.IterationsGivenUp,
		m.ProveDuration,
		m.VerifyDuration,
	)

	return m
}

// RegisterHandlers mounts the Prometheus scrape endpoint on mux.
func RegisterHandlers(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
