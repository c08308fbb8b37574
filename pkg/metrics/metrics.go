// Package metrics provides prometheus metrics for the deal pipeline.
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// failure kinds
const (
	FailureSource  = "source"
	FailureStorage = "storage"
	FailureMint    = "mint"
	FailurePublish = "publish"
)

// Metrics holds the pipeline collectors on its own registry
type Metrics struct {
	namespace string
	registry  *prometheus.Registry

	cycles         prometheus.Counter
	cycleDuration  prometheus.Histogram
	fetched        *prometheus.CounterVec
	outcomes       *prometheus.CounterVec
	failures       *prometheus.CounterVec
	autonomous     prometheus.Gauge
	pendingReviews prometheus.Gauge
	seenItems      prometheus.Gauge
	httpRequests   *prometheus.CounterVec
}

// Option applies a configuration option to Metrics
type Option func(*Metrics)

// WithNamespace sets the namespace for all metrics
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry sets a custom registry
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Metrics) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// New creates metrics on a fresh registry without the default go collectors
func New(opts ...Option) *Metrics {
	m := &Metrics{namespace: "dealscope", registry: prometheus.NewRegistry()}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	m.cycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cycles_total",
		Help:      "Total number of completed pipeline cycles",
	})
	m.cycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "cycle_duration_seconds",
		Help:      "Duration of pipeline cycles",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})
	m.fetched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "listings_fetched_total",
		Help:      "Listings accepted from sources",
	}, []string{"source"})
	m.outcomes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "decisions_total",
		Help:      "Publication decisions by outcome and reason",
	}, []string{"outcome", "reason"})
	m.failures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "failures_total",
		Help:      "Operational failures by kind",
	}, []string{"kind"})
	m.autonomous = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "autonomous_mode",
		Help:      "1 when autonomous publishing is on",
	})
	m.pendingReviews = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "pending_reviews",
		Help:      "Deals waiting for approval",
	})
	m.seenItems = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "seen_items",
		Help:      "Identities in the seen-item store",
	})
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status code",
	}, []string{"method", "status_code"})
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// CycleDone records a finished cycle
func (m *Metrics) CycleDone(d time.Duration) {
	if m == nil {
		return
	}
	m.cycles.Inc()
	m.cycleDuration.Observe(d.Seconds())
}

// Fetched adds accepted listings of a source
func (m *Metrics) Fetched(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.fetched.WithLabelValues(source).Add(float64(n))
}

// Decision counts one decision
func (m *Metrics) Decision(outcome, reason string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome, reason).Inc()
}

// Failure counts one failure of the kind
func (m *Metrics) Failure(kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind).Inc()
}

// SetAutonomous sets the mode gauge
func (m *Metrics) SetAutonomous(on bool) {
	if m == nil {
		return
	}
	if on {
		m.autonomous.Set(1)
		return
	}
	m.autonomous.Set(0)
}

// SetPendingReviews sets the pending reviews gauge
func (m *Metrics) SetPendingReviews(n int64) {
	if m == nil {
		return
	}
	m.pendingReviews.Set(float64(n))
}

// SetSeenItems sets the seen items gauge
func (m *Metrics) SetSeenItems(n int64) {
	if m == nil {
		return
	}
	m.seenItems.Set(float64(n))
}

// Handler serves the registry in prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts requests by method and status code
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		m.httpRequests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
