package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type App struct {
	logger    *slog.Logger
	router    *http.ServeMux
	registry  *session.Registry
	sessions  *config.Sessions
	ws        *config.WebSocket
	rateLimit *config.RateLimit
	redis     *redis.Client
	basePath  string
	port      string
}

func New(logger *slog.Logger) *App {
	return &App{
		logger: logger,
		router: http.NewServeMux(),
	}
}

func (a *App) connectRedis(ctx context.Context) {
	if !a.rateLimit.Enabled() {
		a.logger.Info("rate limiting disabled, REDIS_ADDR is not set")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     a.rateLimit.Addr,
		Password: a.rateLimit.Password,
		DB:       a.rateLimit.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		a.logger.Warn(
			"unable to reach redis, rate limiting disabled",
			slog.String("addr", a.rateLimit.Addr),
			slog.Any("error", err),
		)
		client.Close()
		return
	}
	a.redis = client
}

func (a *App) setup(ctx context.Context) error {
	var err error

	a.sessions, err = config.NewSessions()
	if err != nil {
		return err
	}

	a.ws, err = config.NewWebSocket()
	if err != nil {
		return err
	}

	a.rateLimit, err = config.NewRateLimit()
	if err != nil {
		return err
	}
	a.connectRedis(ctx)

	a.basePath = config.BasePath()
	a.port = config.Port()

	mines.Log = a.logger.With(slog.String("pkg", "mines"))
	a.registry = session.NewRegistry(session.RandomBoards(createRand()))

	a.loadRoutes()
	return nil
}

// Handler is the full middleware chain around the router.
func (a *App) Handler() http.Handler {
	var h http.Handler = middleware.Wrap(
		a.router,
		middleware.SessionAuth(a.logger, a.sessions),
		middleware.Metrics(),
	)
	if a.basePath != "" {
		h = http.StripPrefix(a.basePath, h)
	}
	return middleware.Wrap(
		h,
		middleware.Logging(a.logger),
		middleware.Cors(),
	)
}

func janitorInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Second), time.Minute)
}

func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	if a.redis != nil {
		defer a.redis.Close()
	}

	server := &http.Server{
		Addr:    a.port,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info(
			"server listening",
			slog.String("addr", a.port),
			slog.String("base path", a.basePath),
		)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.registry.RunJanitor(
			gCtx, a.logger,
			janitorInterval(a.sessions.TTL), a.sessions.TTL,
			func(live int) { metrics.ActiveSessions.Set(float64(live)) },
		)
	})

	return g.Wait()
}
