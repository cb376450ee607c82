// Package metrics holds the Prometheus collectors shared by the handlers
// and middleware.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_games_started_total",
			Help: "Games created, by difficulty",
		},
		[]string{"difficulty"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_games_finished_total",
			Help: "Games that reached an outcome, by difficulty and outcome",
		},
		[]string{"difficulty", "outcome"},
	)
	CellsRevealed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "minesweeper_cells_revealed_per_move",
			Help:    "Cells disclosed by a single reveal",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "minesweeper_active_sessions",
			Help: "Sessions held in memory",
		},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_http_requests_total",
			Help: "HTTP requests handled, by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minesweeper_http_request_duration_seconds",
			Help:    "HTTP request latency, by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minesweeper_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by route",
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		GamesStarted,
		GamesFinished,
		CellsRevealed,
		ActiveSessions,
		HTTPRequests,
		HTTPDuration,
		RateLimited,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
