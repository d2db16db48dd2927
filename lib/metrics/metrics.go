// Package metrics instruments tailscale CLI invocations with Prometheus
// collectors. The library itself records nothing unless the embedder
// installs a Metrics instance, so plain library use stays free of
// registration side effects.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tailmesh/tsclient/lib/errors"
)

// Metrics holds the collectors for one client instance. A nil *Metrics is a
// valid no-op recorder; every method tolerates it.
type Metrics struct {
	registry *prometheus.Registry

	invocations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    prometheus.Gauge
}

// New creates a Metrics instance backed by its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tsclient_invocations_total",
				Help: "Total number of tailscale CLI invocations, by operation.",
			},
			[]string{"operation"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tsclient_failures_total",
				Help: "Total number of failed operations, by operation and error kind.",
			},
			[]string{"operation", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tsclient_invocation_duration_seconds",
				Help:    "Wall-clock duration of tailscale CLI invocations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tsclient_in_flight_invocations",
				Help: "Number of tailscale CLI invocations currently running.",
			},
		),
	}

	m.registry.MustRegister(m.invocations, m.failures, m.duration, m.inFlight)
	return m
}

// Track marks the start of an operation and returns a completion callback.
// The callback records duration and, when err is non-nil, a failure labeled
// with its taxonomy kind.
func (m *Metrics) Track(operation string) func(err error) {
	if m == nil {
		return func(error) {}
	}

	m.inFlight.Inc()
	start := time.Now()

	return func(err error) {
		m.inFlight.Dec()
		m.invocations.WithLabelValues(operation).Inc()
		m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		if err != nil {
			m.failures.WithLabelValues(operation, errors.GetKind(err).String()).Inc()
		}
	}
}

// Handler returns an HTTP handler exposing the collectors in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for embedders that aggregate
// multiple sources into one endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
