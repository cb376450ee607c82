package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/metrics"
)

func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	return r.Pattern
}

// Metrics records request counts and latency by route. It must wrap the
// ServeMux directly: the mux sets [http.Request.Pattern] on the request it is
// given, and a request cloned further in would hide it.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newStatusWriter(w)

			next.ServeHTTP(wrapped, r)

			route := routeLabel(r)
			status := strconv.Itoa(wrapped.statusCode)
			if wrapped.hijacked {
				status = strconv.Itoa(http.StatusSwitchingProtocols)
			}
			metrics.HTTPRequests.WithLabelValues(r.Method, route, status).Inc()
			metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
