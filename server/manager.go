package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"shogi3d/game"
)

var errGameNotFound = errors.New("game not found")

// Session is one game tracked by the server. Handlers hold the session
// lock while reading or advancing its position.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu       sync.Mutex
	position *game.Position
}

// WithPosition runs fn with exclusive access to the session's position.
// fn reports whether it changed the position.
func (s *Session) WithPosition(fn func(pos *game.Position) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn(s.position) {
		s.UpdatedAt = time.Now()
	}
}

// Manager is the in-memory session store keyed by uuid.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Session)}
}

func (m *Manager) NewGame() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		position:  game.NewPosition(),
	}
	m.games[s.ID] = s
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, errGameNotFound
	}
	return s, nil
}
