package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vancomm/minesweeper-engine/internal/metrics"
)

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit is a fixed-window limiter keyed by client address, counted in
// redis with INCR and EXPIRE. A nil client disables it, and redis errors let
// the request through.
func RateLimit(
	logger *slog.Logger,
	client redis.Cmdable,
	maxRequests int,
	window time.Duration,
) Middleware {
	prefix := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":"
	retryAfter := strconv.FormatInt(int64(window.Seconds()), 10)

	return func(next http.Handler) http.Handler {
		if client == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := prefix + clientIP(r)

			val, err := client.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("rate limiter unavailable", slog.Any("error", err))
				w.Header().Set("X-RateLimit-Error", "redis-error")
				next.ServeHTTP(w, r)
				return
			}
			if val == 1 {
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					logger.Warn("unable to set rate limit window", slog.Any("error", err))
				}
			}

			if val > int64(maxRequests) {
				metrics.RateLimited.WithLabelValues(routeLabel(r)).Inc()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "rate limit exceeded",
				})
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(maxRequests)-val, 10))
			next.ServeHTTP(w, r)
		})
	}
}
