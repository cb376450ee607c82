// Package session owns one board per game and everything around it that
// the engine leaves to its caller: play time, advisory marks and
// refusing further moves after a win or loss.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotFound    = errors.New("session not found")
	ErrInvalidCell = errors.New("invalid cell")
)

type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Session struct {
	mu         sync.Mutex
	id         string
	difficulty string
	board      *mines.Board
	marks      []bool
	status     Status
	startedAt  time.Time
	endedAt    time.Time
	touchedAt  time.Time
	now        func() time.Time
}

func New(id, difficulty string, board *mines.Board, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Session{
		id:         id,
		difficulty: difficulty,
		board:      board,
		marks:      make([]bool, board.Params().Cells()),
		startedAt:  t,
		touchedAt:  t,
		now:        now,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Difficulty() string {
	return s.difficulty
}

func (s *Session) Params() mines.GameParams {
	return s.board.Params()
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) finish(status Status) {
	s.status = status
	s.endedAt = s.now()
}

// Reveal forwards to the board and records a terminal event. Once the
// game is over every further call fails with [ErrGameOver].
func (s *Session) Reveal(x, y int) (mines.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Playing {
		return mines.Outcome{}, ErrGameOver
	}
	s.touchedAt = s.now()

	out := s.board.Reveal(x, y)
	w := s.board.Params().Width
	for _, d := range out.Cells {
		s.marks[d.Y*w+d.X] = false
	}

	switch out.Event {
	case mines.MineTriggered:
		s.finish(Lost)
	case mines.AllSafeCellsRevealed:
		s.finish(Won)
	}

	return out, nil
}

// ToggleMark flips the advisory mark on a hidden cell and returns the new
// mark. Marks never prevent a reveal.
func (s *Session) ToggleMark(x, y int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Playing {
		return false, ErrGameOver
	}
	if !s.board.InBounds(x, y) || s.board.Revealed(x, y) {
		return false, ErrInvalidCell
	}
	s.touchedAt = s.now()

	i := y*s.board.Params().Width + x
	s.marks[i] = !s.marks[i]
	return s.marks[i], nil
}

func (s *Session) Forfeit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Playing {
		return ErrGameOver
	}
	s.touchedAt = s.now()
	s.finish(Lost)
	return nil
}

func (s *Session) MineLocations() []mines.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.MineLocations()
}

func (s *Session) elapsed() time.Duration {
	if s.status == Playing {
		return s.now().Sub(s.startedAt)
	}
	return s.endedAt.Sub(s.startedAt)
}

// Elapsed is the play time so far, frozen at the terminal event.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed()
}

// IdleSince reports when the session last accepted a move.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// FormatElapsed renders d as "MM:SS"; minutes are not capped.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

type Snapshot struct {
	ID         string
	Difficulty string
	Params     mines.GameParams
	Status     Status
	Grid       Grid
	Revealed   int
	Marks      int
	StartedAt  time.Time
	EndedAt    time.Time
	Elapsed    time.Duration
}

// Snapshot captures the player's view. While playing, hidden cells stay
// hidden; after a loss every mine is shown and marks are judged; after a
// win the remaining hidden cells are shown as mines.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	params := s.board.Params()
	grid := make(Grid, params.Cells())
	marks := 0
	for i := range grid {
		x, y := i%params.Width, i/params.Width
		v := s.board.CellValue(x, y)
		if s.marks[i] {
			marks++
		}
		switch {
		case s.board.Revealed(x, y) && v.IsMine():
			grid[i] = ExplodedMine
		case s.board.Revealed(x, y):
			grid[i] = CellState(v)
		case s.status == Playing:
			if s.marks[i] {
				grid[i] = Marked
			} else {
				grid[i] = Hidden
			}
		case v.IsMine() && s.marks[i]:
			grid[i] = CorrectlyMarked
		case v.IsMine():
			grid[i] = UnmarkedMine
		case s.marks[i]:
			grid[i] = FalselyMarked
		default:
			grid[i] = Hidden
		}
	}

	return Snapshot{
		ID:         s.id,
		Difficulty: s.difficulty,
		Params:     params,
		Status:     s.status,
		Grid:       grid,
		Revealed:   s.board.RevealedCount(),
		Marks:      marks,
		StartedAt:  s.startedAt,
		EndedAt:    s.endedAt,
		Elapsed:    s.elapsed(),
	}
}
