package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mcoot/wordscramble/internal/metrics"
)

// Metrics records request counts and latencies labelled by route template
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.HTTPInFlight.Inc()
			defer m.HTTPInFlight.Dec()

			wrapped := WrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			labels := prometheus.Labels{
				"method": r.Method,
				"route":  routeLabel(r),
				"status": strconv.Itoa(wrapped.Status()),
			}
			m.HTTPRequests.With(labels).Inc()
			m.HTTPDuration.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// routeLabel keeps label cardinality bounded by preferring the matched template
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
