package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scramble"

// Options configures construction of the collectors
type Options struct {
	Registry *prometheus.Registry
	Buckets  []float64

	// IncludeRuntime adds Go runtime and process collectors
	IncludeRuntime bool
}

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	GamesStarted   *prometheus.CounterVec
	GamesSubmitted *prometheus.CounterVec
	WordFallbacks  *prometheus.CounterVec
	Registrations  prometheus.Counter
	Logins         *prometheus.CounterVec
}

// New constructs the collectors and registers them with a dedicated registry
func New(opts Options) (*Metrics, error) {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests partitioned by method, route, and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of HTTP request latencies in seconds partitioned by method, route, and status code.",
			Buckets:   buckets,
		}, []string{"method", "route", "status"}),
		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		GamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "started_total",
			Help:      "Rounds started partitioned by difficulty and whether they were the daily challenge.",
		}, []string{"difficulty", "daily"}),
		GamesSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "submitted_total",
			Help:      "Answers submitted partitioned by difficulty and correctness.",
		}, []string{"difficulty", "correct"}),
		WordFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wordsource",
			Name:      "fallbacks_total",
			Help:      "Words served from the built-in lists because the word service failed.",
		}, []string{"difficulty", "reason"}),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "registrations_total",
			Help:      "Accounts created.",
		}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts partitioned by outcome.",
		}, []string{"outcome"}),
	}

	toRegister := []prometheus.Collector{
		m.HTTPRequests,
		m.HTTPDuration,
		m.HTTPInFlight,
		m.GamesStarted,
		m.GamesSubmitted,
		m.WordFallbacks,
		m.Registrations,
		m.Logins,
	}
	if opts.IncludeRuntime {
		toRegister = append(toRegister,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	for _, c := range toRegister {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return m, nil
}

// NewForTest returns collectors on a fresh registry, panicking on failure
func NewForTest() *Metrics {
	m, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return m
}

// Registry returns the registry backing these collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GameStarted counts a round handed to a player
func (m *Metrics) GameStarted(difficulty string, daily bool) {
	m.GamesStarted.WithLabelValues(difficulty, strconv.FormatBool(daily)).Inc()
}

// GameSubmitted counts a scored answer
func (m *Metrics) GameSubmitted(difficulty string, correct bool) {
	m.GamesSubmitted.WithLabelValues(difficulty, strconv.FormatBool(correct)).Inc()
}

// WordFallback counts a word drawn from the fallback lists
func (m *Metrics) WordFallback(difficulty, reason string) {
	m.WordFallbacks.WithLabelValues(difficulty, reason).Inc()
}

// Registered counts a new account
func (m *Metrics) Registered() {
	m.Registrations.Inc()
}

// LoginAttempt counts a login by outcome
func (m *Metrics) LoginAttempt(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.Logins.WithLabelValues(outcome).Inc()
}
