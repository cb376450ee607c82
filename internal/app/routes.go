package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, a.registry, a.sessions, a.ws)

	var limiter middleware.Middleware = func(h http.Handler) http.Handler { return h }
	if a.redis != nil {
		limiter = middleware.RateLimit(
			a.logger, a.redis, a.rateLimit.Max, a.rateLimit.Window,
		)
	}

	a.router.HandleFunc("GET /difficulties", game.Difficulties)
	a.router.Handle("POST /game", limiter(http.HandlerFunc(game.NewGame)))
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /game/{id}/mark", game.Mark)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /game/{id}/mines", game.Mines)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
	a.router.Handle("GET /metrics", metrics.Handler())
}
