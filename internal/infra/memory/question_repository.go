package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golden-brain/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionSetLoader fetches a category's questions from a backing store.
type QuestionSetLoader interface {
	LoadQuestionSet(ctx context.Context, category domain.Category) (domain.QuestionSet, error)
}

// QuestionRepository caches question sets with TTL to avoid repeated loads.
type QuestionRepository struct {
	loader QuestionSetLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[domain.Category]cachedSet
}

type cachedSet struct {
	set       domain.QuestionSet
	expiresAt time.Time
}

// NewQuestionRepository wraps loader. A ttl <= 0 caches for the life of the
// process, since banks are immutable once loaded.
func NewQuestionRepository(loader QuestionSetLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Category]cachedSet),
	}
}

func (r *QuestionRepository) GetQuestionSet(ctx context.Context, category domain.Category) (domain.QuestionSet, error) {
	if set, ok := r.lookup(category, r.clock()); ok {
		return set, nil
	}

	result, err, _ := r.sf.Do(category.String(), func() (interface{}, error) {
		now := r.clock()
		if set, ok := r.lookup(category, now); ok {
			return set, nil
		}

		set, err := r.loader.LoadQuestionSet(ctx, category)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		entry := cachedSet{set: set}
		if r.ttl > 0 {
			entry.expiresAt = now.Add(r.ttlWithJitter())
		}
		r.mu.Lock()
		r.cache[category] = entry
		r.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

func (r *QuestionRepository) lookup(category domain.Category, now time.Time) (domain.QuestionSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[category]
	if !ok {
		return domain.QuestionSet{}, false
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(now) {
		return domain.QuestionSet{}, false
	}
	return entry.set, true
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticLoader serves question sets from an in-memory map, such as the
// parsed YAML bank.
type StaticLoader struct {
	sets map[domain.Category]domain.QuestionSet
}

func NewStaticLoader(sets map[domain.Category]domain.QuestionSet) *StaticLoader {
	return &StaticLoader{sets: sets}
}

func (l *StaticLoader) LoadQuestionSet(_ context.Context, category domain.Category) (domain.QuestionSet, error) {
	if set, ok := l.sets[category]; ok {
		return set, nil
	}
	return domain.QuestionSet{}, domain.ErrCategoryNotFound
}
