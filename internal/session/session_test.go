package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// 3x3, single mine in the bottom-right corner.
func cornerSession(t *testing.T, clock *fakeClock) *Session {
	t.Helper()
	b, err := mines.NewBoardFromMines(
		mines.GameParams{Width: 3, Height: 3, MineCount: 1},
		[]mines.Point{{X: 2, Y: 2}},
	)
	require.NoError(t, err)
	return New("abc", "custom", b, clock.Now)
}

func TestSessionWin(t *testing.T) {
	clock := newFakeClock()
	s := cornerSession(t, clock)

	clock.Advance(75 * time.Second)
	out, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Len(t, out.Cells, 8)
	assert.Equal(t, mines.AllSafeCellsRevealed, out.Event)
	assert.Equal(t, Won, s.Status())

	clock.Advance(time.Hour)
	assert.Equal(t, 75*time.Second, s.Elapsed(), "timer must stop at the terminal event")

	_, err = s.Reveal(2, 2)
	assert.ErrorIs(t, err, ErrGameOver)

	snap := s.Snapshot()
	assert.Equal(t, UnmarkedMine, snap.Grid[8])
	assert.Equal(t, CellState(1), snap.Grid[4])
	assert.Equal(t, 8, snap.Revealed)
}

func TestSessionLoss(t *testing.T) {
	clock := newFakeClock()
	s := cornerSession(t, clock)

	marked, err := s.ToggleMark(0, 0)
	require.NoError(t, err)
	assert.True(t, marked)

	out, err := s.Reveal(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []mines.Disclosure{{X: 2, Y: 2, Value: mines.Mine}}, out.Cells)
	assert.Equal(t, mines.MineTriggered, out.Event)
	assert.Equal(t, Lost, s.Status())

	snap := s.Snapshot()
	assert.Equal(t, ExplodedMine, snap.Grid[8])
	assert.Equal(t, FalselyMarked, snap.Grid[0])
	assert.Equal(t, Hidden, snap.Grid[1])

	_, err = s.ToggleMark(1, 0)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.ErrorIs(t, s.Forfeit(), ErrGameOver)
}

func TestSessionMarks(t *testing.T) {
	s := cornerSession(t, newFakeClock())

	marked, err := s.ToggleMark(2, 2)
	require.NoError(t, err)
	assert.True(t, marked)
	assert.Equal(t, Marked, s.Snapshot().Grid[8])

	marked, err = s.ToggleMark(2, 2)
	require.NoError(t, err)
	assert.False(t, marked)

	_, err = s.ToggleMark(3, 0)
	assert.ErrorIs(t, err, ErrInvalidCell)

	_, err = s.Reveal(1, 1)
	require.NoError(t, err)
	_, err = s.ToggleMark(1, 1)
	assert.ErrorIs(t, err, ErrInvalidCell, "revealed cells cannot be marked")

	// A marked cell is still revealed, and loses its mark.
	_, err = s.ToggleMark(0, 0)
	require.NoError(t, err)
	_, err = s.Reveal(0, 0)
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Marks)
	assert.Equal(t, CellState(0), snap.Grid[0])
}

func TestSessionForfeit(t *testing.T) {
	clock := newFakeClock()
	s := cornerSession(t, clock)

	_, err := s.ToggleMark(2, 2)
	require.NoError(t, err)
	clock.Advance(3 * time.Second)
	require.NoError(t, s.Forfeit())
	assert.Equal(t, Lost, s.Status())
	assert.Equal(t, 3*time.Second, s.Elapsed())
	assert.Equal(t, CorrectlyMarked, s.Snapshot().Grid[8])
	assert.Equal(t, []mines.Point{{X: 2, Y: 2}}, s.MineLocations())
}

func TestSessionOutOfBoundsReveal(t *testing.T) {
	s := cornerSession(t, newFakeClock())

	out, err := s.Reveal(-1, 5)
	require.NoError(t, err)
	assert.Empty(t, out.Cells)
	assert.Equal(t, mines.NoEvent, out.Event)
	assert.Equal(t, Playing, s.Status())
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 900*time.Millisecond, "01:01"},
		{99*time.Minute + 59*time.Second, "99:59"},
		{125 * time.Minute, "125:00"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, FormatElapsed(test.d), test.d.String())
	}
}

func TestGridToString(t *testing.T) {
	g := Grid{Hidden, 1, Marked, 0, ExplodedMine, UnmarkedMine}
	assert.Equal(t, "· 1 ⚑ \n  X * \n", g.ToString(3))
}
