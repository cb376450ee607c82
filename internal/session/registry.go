package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type BoardFactory func(params mines.GameParams) (*mines.Board, error)

// Registry keeps the live sessions of one process in memory.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	newBoard BoardFactory
	now      func() time.Time
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// RandomBoards returns a factory drawing every board from rnd. rnd is
// guarded by its own lock since handlers create games concurrently.
func RandomBoards(rnd *mrand.Rand) BoardFactory {
	var mu sync.Mutex
	return func(params mines.GameParams) (*mines.Board, error) {
		mu.Lock()
		defer mu.Unlock()
		return mines.NewBoard(params, rnd)
	}
}

func NewRegistry(newBoard BoardFactory, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		newBoard: newBoard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newID() (string, error) {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

// Create builds a board for params and registers a new session around it.
// Invalid params fail with the board's [*mines.ConfigurationError].
func (r *Registry) Create(difficulty string, params mines.GameParams) (*Session, error) {
	board, err := r.newBoard(params)
	if err != nil {
		return nil, err
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	s := New(id, difficulty, board, r.now)

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	return s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle drops every session that has not accepted a move for maxIdle
// and returns how many were dropped.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	deadline := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if s.IdleSince().Before(deadline) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// RunJanitor evicts idle sessions every interval until ctx is done. onSweep,
// if set, is called after each sweep with the number of live sessions.
func (r *Registry) RunJanitor(
	ctx context.Context,
	logger *slog.Logger,
	interval, maxIdle time.Duration,
	onSweep func(live int),
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.EvictIdle(maxIdle); n > 0 {
				logger.Debug("evicted idle sessions", slog.Int("count", n))
			}
			if onSweep != nil {
				onSweep(r.Len())
			}
		}
	}
}
