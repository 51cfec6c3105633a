package redis

import (
	"context"
	"sort"
	"sync"
	"time"

	"golden-brain/internal/app"
	"golden-brain/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Sessions themselves stay in a local map; Redis only carries a liveness
// marker per player so other processes can see who is mid-game.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Track(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Player()] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(session.Player()), session.ID(), s.ttl).Err()
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
	if _, ok := s.sessions[player]; !ok {
		return
	}
	delete(s.sessions, player)
	_ = s.client.Del(context.Background(), s.key(player)).Err()
}

// Active lists the local sessions, oldest first.
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

// Live reports whether any process holds a session for player.
func (s *SessionStore) Live(ctx context.Context, player string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(player)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SessionStore) key(player string) string {
	return "trivia:session:" + player
}
