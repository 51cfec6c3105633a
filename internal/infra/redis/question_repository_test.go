package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"golden-brain/internal/domain"
	"golden-brain/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		QuestionSetLoader: memory.NewStaticLoader(map[domain.Category]domain.QuestionSet{
			domain.Cars: sampleSet(),
		}),
	}
	repo := NewQuestionRepository(client, loader, time.Minute, nil)

	set, err := repo.GetQuestionSet(context.Background(), domain.Cars)
	if err != nil {
		t.Fatalf("get set: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("trivia:questions:Cars") {
		t.Fatalf("expected redis key to be set")
	}
	if ttl := mr.TTL("trivia:questions:Cars"); ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("expected ttl with jitter, got %s", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetQuestionSet(context.Background(), domain.Cars)
	if err != nil {
		t.Fatalf("get cached set: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Questions[0].Answers[3].Text != set.Questions[0].Answers[3].Text {
		t.Fatalf("cached set lost answers: %+v", cached)
	}
}

func TestQuestionRepositoryLoaderError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewQuestionRepository(newClient(mr), memory.NewStaticLoader(nil), time.Minute, nil)
	_, err = repo.GetQuestionSet(context.Background(), domain.Animals)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected category error, got %v", err)
	}
	if mr.Exists("trivia:questions:Animals") {
		t.Fatalf("failed load must not be cached")
	}
}

func TestQuestionRepositoryFallsBackWhenRedisDown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	loader := &countingLoader{
		QuestionSetLoader: memory.NewStaticLoader(map[domain.Category]domain.QuestionSet{
			domain.Cars: sampleSet(),
		}),
	}
	repo := NewQuestionRepository(db, loader, 0, nil)

	data, err := json.Marshal(sampleSet())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	down := errors.New("connection refused")
	mock.ExpectGet("trivia:questions:Cars").SetErr(down)
	mock.ExpectGet("trivia:questions:Cars").SetErr(down)
	mock.ExpectSet("trivia:questions:Cars", data, 0).SetErr(down)

	set, err := repo.GetQuestionSet(context.Background(), domain.Cars)
	if err != nil {
		t.Fatalf("expected loader fallback, got %v", err)
	}
	if len(set.Questions) != 1 || loader.calls != 1 {
		t.Fatalf("unexpected set %+v after %d loads", set, loader.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("redis expectations: %v", err)
	}
}

type countingLoader struct {
	memory.QuestionSetLoader
	calls int
}

func (l *countingLoader) LoadQuestionSet(ctx context.Context, category domain.Category) (domain.QuestionSet, error) {
	l.calls++
	return l.QuestionSetLoader.LoadQuestionSet(ctx, category)
}

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{
		Category: domain.Cars,
		Questions: []domain.Question{
			{
				ID:   1,
				Text: "Which company makes the Mustang car?",
				Answers: []domain.Answer{
					{Number: 1, Text: "Chevrolet", Score: 0},
					{Number: 2, Text: "Nissan", Score: 1},
					{Number: 3, Text: "Ford", Score: 2},
					{Number: 4, Text: "Lincoln", Score: 1},
				},
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
