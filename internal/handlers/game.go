package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type GameHandler struct {
	logger   *slog.Logger
	registry *session.Registry
	sessions *config.Sessions
	ws       *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	registry *session.Registry,
	sessions *config.Sessions,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		registry: registry,
		sessions: sessions,
		ws:       ws,
	}
}

// authorize resolves the session named in the path, provided the request
// carries a token issued for it.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		unauthorized(w, g.logger)
		return nil, false
	}
	if claims.SessionID != id {
		forbidden(w, g.logger)
		return nil, false
	}
	s, err := g.registry.Get(id)
	if err != nil {
		notFound(w, g.logger)
		return nil, false
	}
	return s, true
}

func (g GameHandler) recordOutcome(s *session.Session, out mines.Outcome) {
	if len(out.Cells) > 0 {
		metrics.CellsRevealed.Observe(float64(len(out.Cells)))
	}
	if out.Terminal() {
		metrics.GamesFinished.WithLabelValues(s.Difficulty(), s.Status().String()).Inc()
		g.logger.Debug(
			"game finished",
			slog.String("id", s.ID()),
			slog.String("event", out.Event.String()),
		)
	}
}

func (g GameHandler) Difficulties(w http.ResponseWriter, r *http.Request) {
	replyWith(w, g.logger, http.StatusOK, config.Difficulties())
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		badRequest(w, g.logger, err.Error())
		return
	}

	difficulty, params, err := dto.Resolve()
	if err != nil {
		badRequest(w, g.logger, err.Error())
		return
	}

	s, err := g.registry.Create(difficulty, params)
	if errors.Is(err, mines.ErrConfiguration) {
		badRequest(w, g.logger, err.Error())
		return
	}
	if err != nil {
		internalError(w, g.logger, "unable to create a new game", slog.Any("error", err))
		return
	}

	token, err := g.sessions.Sign(s.ID())
	if err != nil {
		g.registry.Delete(s.ID())
		internalError(w, g.logger, "unable to sign session token", slog.Any("error", err))
		return
	}

	metrics.GamesStarted.WithLabelValues(difficulty).Inc()
	metrics.ActiveSessions.Set(float64(g.registry.Len()))
	g.logger.Debug(
		"created game",
		slog.String("id", s.ID()),
		slog.String("difficulty", difficulty),
		slog.String("seed", params.Seed()),
	)

	replyWith(w, g.logger, http.StatusCreated, NewGameResponse{
		Token: token,
		Game:  NewGameSessionDTO(s.Snapshot()),
	})
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	replyWith(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		badRequest(w, g.logger, err.Error())
		return
	}
	if !s.Params().InBounds(pos.X, pos.Y) {
		badRequest(w, g.logger, "invalid cell position")
		return
	}

	out, err := s.Reveal(pos.X, pos.Y)
	if errors.Is(err, session.ErrGameOver) {
		conflict(w, g.logger, err.Error())
		return
	}
	if err != nil {
		internalError(w, g.logger, "unable to reveal cell", slog.Any("error", err))
		return
	}
	g.recordOutcome(s, out)

	replyWith(w, g.logger, http.StatusOK, NewRevealResponse(out, s.Snapshot()))
}

func (g GameHandler) Mark(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		badRequest(w, g.logger, err.Error())
		return
	}

	marked, err := s.ToggleMark(pos.X, pos.Y)
	switch {
	case errors.Is(err, session.ErrGameOver):
		conflict(w, g.logger, err.Error())
		return
	case errors.Is(err, session.ErrInvalidCell):
		badRequest(w, g.logger, "only hidden cells can be marked")
		return
	case err != nil:
		internalError(w, g.logger, "unable to mark cell", slog.Any("error", err))
		return
	}

	replyWith(w, g.logger, http.StatusOK, MarkResponse{
		X:      pos.X,
		Y:      pos.Y,
		Marked: marked,
		Game:   NewGameSessionDTO(s.Snapshot()),
	})
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	if err := s.Forfeit(); err != nil {
		if errors.Is(err, session.ErrGameOver) {
			conflict(w, g.logger, err.Error())
			return
		}
		internalError(w, g.logger, "unable to forfeit", slog.Any("error", err))
		return
	}
	metrics.GamesFinished.WithLabelValues(s.Difficulty(), "forfeit").Inc()

	replyWith(w, g.logger, http.StatusOK, NewGameSessionDTO(s.Snapshot()))
}

func (g GameHandler) Mines(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	if s.Status() == session.Playing {
		conflict(w, g.logger, "mines are disclosed once the game is over")
		return
	}

	replyWith(w, g.logger, http.StatusOK, MinesResponse{Mines: s.MineLocations()})
}
