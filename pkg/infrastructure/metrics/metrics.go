// Package metrics exposes planning counters on a dedicated Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bakeplan"

// Plan outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder owns the registry and every collector. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	plans           *prometheus.CounterVec
	planDuration    prometheus.Histogram
	recipesResolved *prometheus.CounterVec
	shortages       prometheus.Counter
	httpRequests    *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_total",
			Help:      "Production plans computed, by outcome.",
		}, []string{"outcome"}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Time spent computing a production plan.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		recipesResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipes_resolved_total",
			Help:      "Recipes resolved into ingredient masses, by calculation system.",
		}, []string{"system"}),
		shortages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_shortages_total",
			Help:      "Stock lines found insufficient.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
	}

	r.registry.MustRegister(
		r.plans,
		r.planDuration,
		r.recipesResolved,
		r.shortages,
		r.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) ObservePlan(elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.plans.WithLabelValues(outcome).Inc()
	r.planDuration.Observe(elapsed.Seconds())
}

func (r *Recorder) RecipeResolved(system string) {
	if r == nil {
		return
	}
	r.recipesResolved.WithLabelValues(system).Inc()
}

func (r *Recorder) Shortages(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.shortages.Add(float64(n))
}

func (r *Recorder) HTTPRequest(method, route string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Registry is exposed for tests and for extra collectors
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
