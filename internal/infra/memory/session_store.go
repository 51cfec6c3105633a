package memory

import (
	"sort"
	"sync"

	"golden-brain/internal/app"
	"golden-brain/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Session),
	}
}

// Track replaces any session the player had in progress.
func (s *SessionStore) Track(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Player()] = session
}

func (s *SessionStore) Get(player string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[player]
	return session, ok
}

func (s *SessionStore) Release(player string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, player)
}

// Active lists tracked sessions, oldest first.
func (s *SessionStore) Active() []domain.ActiveSession {
	s.mu.RLock()
	out := make([]domain.ActiveSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session.Info())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}
