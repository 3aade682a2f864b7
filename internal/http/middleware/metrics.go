package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giovanipessoa/next-clisphere/internal/observability/metrics"
)

// Metrics records request counts and latency per chi route pattern. Patterns
// keep label cardinality bounded (ids collapse to "{id}").
func Metrics(m *metrics.APIMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(ww.status/100) + "xx"
			m.ObserveRequest(route, r.Method, status, time.Since(start).Seconds())
		})
	}
}
