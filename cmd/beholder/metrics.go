package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marmistrz/beholders/pkg/metrics"
)

// maybeStartMetricsServer wires --metrics-addr into a live Prometheus
// registry: if addr is empty, metrics collection is skipped entirely and
// the returned Metrics is nil (callers must treat a nil *metrics.Metrics as
// "don't record"). Otherwise it registers the mining counters/histograms
// and serves them on addr until the returned shutdown func is called.
func maybeStartMetricsServer(addr string) (*metrics.Metrics, func()) {
	if addr == "" {
		return nil, func() {}
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	mux := http.NewServeMux()
	metrics.RegisterHandlers(mux, registry)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
		}
	}()
	logger.Info().Str("addr", addr).Msg("serving prometheus metrics")

	return m, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// observeDuration records the elapsed time since start into h.
func observeDuration(h prometheus.Histogram, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}
