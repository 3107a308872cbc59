// Package metrics holds the Prometheus collectors the API exports on /metrics
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chatlens"

// Metrics owns a private registry so several instances can coexist in tests.
// A nil *Metrics is valid and records nothing
type Metrics struct {
	reg *prometheus.Registry

	requests    *prometheus.HistogramVec
	analyses    *prometheus.CounterVec
	duration    prometheus.Histogram
	messages    prometheus.Counter
	diagnostics prometheus.Counter
}

// New registers the chatlens collectors plus the Go and process collectors
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Finished analyses by outcome and relationship classification.",
		}, []string{"outcome", "classification"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one analysis from ingest to report.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Participant messages that reached the enriched table.",
		}),
		diagnostics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_diagnostics_total",
			Help:      "Header lines whose timestamp fell back to the epoch sentinel.",
		}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.analyses, m.duration, m.messages, m.diagnostics,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Middleware times every request under its chi route pattern, so path
// parameters never explode label cardinality
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// ObserveAnalysis records one analysis. classification is empty for failed or
// empty runs
func (m *Metrics) ObserveAnalysis(d time.Duration, messages, diagnostics int, classification string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case messages == 0:
		outcome = "empty"
	}
	m.analyses.WithLabelValues(outcome, classification).Inc()
	m.duration.Observe(d.Seconds())
	m.messages.Add(float64(messages))
	m.diagnostics.Add(float64(diagnostics))
}
