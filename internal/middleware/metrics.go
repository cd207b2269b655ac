package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/metrics"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics records latency and error counts per route.
func Metrics(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			route := routePattern(r)
			m.APILatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			if ww.Status() >= 400 {
				m.APIErrorsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
			}
		})
	}
}
