package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type testFrame struct {
	Cells []mines.Disclosure `json:"cells"`
	Event string             `json:"event"`
	Error string             `json:"error"`
	Game  testGame           `json:"game"`
}

func dial(t *testing.T, ts *testServer, id, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + id + "/connect?token=" + token
	conn, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	res.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, message string) testFrame {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(message)))
	var frame testFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestWSGameLoop(t *testing.T) {
	ts := newTestServer(t)
	token, game := ts.newGame(t, "?width=3&height=3&mine_count=1")
	conn := dial(t, ts, game.ID, token)

	frame := roundTrip(t, conn, "g")
	assert.Empty(t, frame.Cells)
	assert.Empty(t, frame.Error)
	assert.Equal(t, "none", frame.Event)
	assert.Equal(t, "playing", frame.Game.Status)

	frame = roundTrip(t, conn, "o 9 9")
	assert.Equal(t, "invalid cell position", frame.Error)

	frame = roundTrip(t, conn, "x")
	assert.Contains(t, frame.Error, "unknown command")

	frame = roundTrip(t, conn, "o 1")
	assert.NotEmpty(t, frame.Error)

	frame = roundTrip(t, conn, "m 2 2\no 1 1")
	assert.Empty(t, frame.Error)
	assert.Equal(t, []mines.Disclosure{{X: 1, Y: 1, Value: 1}}, frame.Cells)
	assert.Equal(t, int(session.Marked), frame.Game.Grid[8])

	frame = roundTrip(t, conn, "o 0 0\no 2 2")
	assert.Len(t, frame.Cells, 7)
	assert.Equal(t, "all_safe_cells_revealed", frame.Event)
	assert.Equal(t, "won", frame.Game.Status)
	assert.Equal(t, int(session.CorrectlyMarked), frame.Game.Grid[8])

	frame = roundTrip(t, conn, "o 2 2")
	assert.Equal(t, session.ErrGameOver.Error(), frame.Error)
}

func TestWSForfeit(t *testing.T) {
	ts := newTestServer(t)
	token, game := ts.newGame(t, "?width=3&height=3&mine_count=1")
	conn := dial(t, ts, game.ID, token)

	frame := roundTrip(t, conn, "r")
	assert.Empty(t, frame.Error)
	assert.Equal(t, "lost", frame.Game.Status)
}

func TestWSRequiresToken(t *testing.T) {
	ts := newTestServer(t)
	_, game := ts.newGame(t, "?width=3&height=3&mine_count=1")

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + game.ID + "/connect"
	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
