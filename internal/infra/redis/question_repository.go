package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"golden-brain/internal/domain"
	"golden-brain/internal/infra/memory"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuestionRepository caches question sets in Redis as JSON and falls back to
// a loader on cache miss.
// Sets are stored as: SET trivia:questions:{category} {json}
type QuestionRepository struct {
	client *redis.Client
	loader memory.QuestionSetLoader
	ttl    time.Duration
	log    *zap.Logger
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionRepository(client *redis.Client, loader memory.QuestionSetLoader, ttl time.Duration, log *zap.Logger) *QuestionRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    log,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetQuestionSet(ctx context.Context, category domain.Category) (domain.QuestionSet, error) {
	key := questionsKey(category)
	if set, ok := r.cached(ctx, key); ok {
		return set, nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if set, ok := r.cached(ctx, key); ok {
			return set, nil
		}

		set, err := r.loader.LoadQuestionSet(ctx, category)
		if err != nil {
			return domain.QuestionSet{}, err
		}

		data, err := json.Marshal(set)
		if err != nil {
			return domain.QuestionSet{}, err
		}
		if err := r.client.Set(ctx, key, data, r.ttlWithJitter()).Err(); err != nil {
			r.log.Warn("cache question set", zap.String("key", key), zap.Error(err))
		}
		return set, nil
	})
	if err != nil {
		return domain.QuestionSet{}, err
	}
	return result.(domain.QuestionSet), nil
}

// cached treats any Redis failure as a miss so a cache outage never stops a game.
func (r *QuestionRepository) cached(ctx context.Context, key string) (domain.QuestionSet, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("read question set cache", zap.String("key", key), zap.Error(err))
		}
		return domain.QuestionSet{}, false
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(data, &set); err != nil {
		r.log.Warn("decode question set cache", zap.String("key", key), zap.Error(err))
		return domain.QuestionSet{}, false
	}
	return set, true
}

func questionsKey(category domain.Category) string {
	return "trivia:questions:" + category.String()
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
