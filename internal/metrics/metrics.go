// Package metrics exposes Prometheus counters for HTTP traffic and
// rate-limit decisions.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pokedex"

// Metrics owns a private registry so tests can build independent instances.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	admissions *prometheus.CounterVec
}

// New creates and registers all collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratelimit_decisions_total",
			Help:      "Rate-limit decisions, by group and outcome.",
		}, []string{"group", "outcome"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.admissions,
	)
	return m
}

// Record counts one rate-limit decision. It never fails.
func (m *Metrics) Record(_ context.Context, ev domain.AdmissionEvent) error {
	outcome := "denied"
	if ev.Allowed {
		outcome = "allowed"
	}
	m.admissions.WithLabelValues(ev.Group, outcome).Inc()
	return nil
}

// ObserveRequest counts a served request. route should be the matched mux
// pattern rather than the raw path to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Admissions returns the decision counter for the given labels. Used by tests.
func (m *Metrics) Admissions(group, outcome string) prometheus.Counter {
	return m.admissions.WithLabelValues(group, outcome)
}

// Requests returns the request counter for the given labels. Used by tests.
func (m *Metrics) Requests(method, route string, status int) prometheus.Counter {
	return m.requests.WithLabelValues(method, route, strconv.Itoa(status))
}
