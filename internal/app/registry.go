package app

import (
	"iter"
	"strings"
	"sync"

	"golden-brain/internal/domain"
)

// Registry maps player names to per-category score records for the life of
// the process. The console is the only writer; the spectator server reads.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*domain.Player)}
}

// EnsurePlayer returns the record for name, creating a zeroed one on first
// login. The bool reports whether the player was created by this call.
func (r *Registry) EnsurePlayer(name string) (domain.Player, bool, error) {
	name, err := normalizeName(name)
	if err != nil {
		return domain.Player{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if player, ok := r.players[name]; ok {
		return player.Clone(), false, nil
	}
	player := &domain.Player{
		Name:    name,
		Records: make(map[domain.Category]*domain.Record, len(domain.Categories())),
	}
	for _, c := range domain.Categories() {
		player.Records[c] = &domain.Record{}
	}
	r.players[name] = player
	r.order = append(r.order, name)
	return player.Clone(), true, nil
}

// Player looks up an existing player.
func (r *Registry) Player(name string) (domain.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[name]
	if !ok {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

// AllPlayers yields a snapshot of every player. Callers must not rely on the
// order.
func (r *Registry) AllPlayers() iter.Seq2[string, domain.Player] {
	r.mu.RLock()
	snapshot := make([]domain.Player, 0, len(r.order))
	for _, name := range r.order {
		snapshot = append(snapshot, r.players[name].Clone())
	}
	r.mu.RUnlock()

	return func(yield func(string, domain.Player) bool) {
		for _, player := range snapshot {
			if !yield(player.Name, player) {
				return
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// record runs fn against the live record under the write lock.
func (r *Registry) record(name string, category domain.Category, fn func(*domain.Record)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[name]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	rec, ok := player.Records[category]
	if !ok {
		rec = &domain.Record{}
		player.Records[category] = rec
	}
	fn(rec)
	return nil
}

// normalizeName trims the input and requires two non-empty tokens.
func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len(strings.Fields(trimmed)) < 2 {
		return "", &domain.InvalidNameError{Name: name}
	}
	return trimmed, nil
}
