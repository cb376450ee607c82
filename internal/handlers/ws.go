package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsMark    wsCommand = "m"
	wsForfeit wsCommand = "r"
)

// WSFrame answers one client message. Cells collects the disclosures of every
// command in the message, in order.
type WSFrame struct {
	Cells []mines.Disclosure `json:"cells"`
	Event mines.Event        `json:"event"`
	Error string             `json:"error,omitempty"`
	Game  GameSessionDTO     `json:"game"`
}

type gameExecutor struct {
	*GameHandler
	s     *session.Session
	frame *WSFrame
}

func parseXY(args []string) (x int, y int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("expected 2 arguments, got %d", len(args))
		return
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func (game gameExecutor) openCell(args []string) error {
	x, y, err := parseXY(args)
	if err != nil {
		return err
	}
	if !game.s.Params().InBounds(x, y) {
		return fmt.Errorf("invalid cell position")
	}
	out, err := game.s.Reveal(x, y)
	if err != nil {
		return err
	}
	game.recordOutcome(game.s, out)
	game.frame.Cells = append(game.frame.Cells, out.Cells...)
	if out.Terminal() {
		game.frame.Event = out.Event
	}
	return nil
}

func (game gameExecutor) markCell(args []string) error {
	x, y, err := parseXY(args)
	if err != nil {
		return err
	}
	_, err = game.s.ToggleMark(x, y)
	return err
}

func (game gameExecutor) forfeit() error {
	if err := game.s.Forfeit(); err != nil {
		return err
	}
	metrics.GamesFinished.WithLabelValues(game.s.Difficulty(), "forfeit").Inc()
	return nil
}

func (game gameExecutor) execute(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsNoop:
		return nil
	case wsOpen:
		return game.openCell(args)
	case wsMark:
		return game.markCell(args)
	case wsForfeit:
		return game.forfeit()
	default:
		return fmt.Errorf("unknown command %q", tokens[0])
	}
}

// runMessage executes every line of one message, stopping at the first error
// or once the game is over.
func (game gameExecutor) runMessage(message string) {
	for _, line := range strings.Split(message, "\n") {
		if err := game.execute(strings.TrimSpace(line)); err != nil {
			game.frame.Error = err.Error()
			break
		}
		if game.s.Status() != session.Playing {
			break
		}
	}
	if game.frame.Cells == nil {
		game.frame.Cells = []mines.Disclosure{}
	}
	game.frame.Game = NewGameSessionDTO(game.s.Snapshot())
}

func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, s *session.Session) error {
	conn.SetReadLimit(g.ws.ReadLimit)
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		frame := &WSFrame{}
		game := gameExecutor{GameHandler: &g, s: s, frame: frame}
		game.runMessage(strings.TrimSpace(string(buf)))

		conn.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		if err := conn.WriteJSON(frame); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	g.logger.Debug("established WS connection", slog.String("id", s.ID()))

	err = g.wsRunGameLoop(conn, s)
	if err == nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		g.logger.Debug("closed WS connection", slog.String("id", s.ID()))
		return
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		g.logger.Debug("WS closed by peer", slog.Int("code", closeErr.Code))
		return
	}
	g.logger.Warn("error in ws loop", slog.Any("error", err))
}
