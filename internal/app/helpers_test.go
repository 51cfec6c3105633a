package app

import (
	"fmt"
	"math/rand"
	"time"

	"golden-brain/internal/domain"
)

// testSet builds n questions where answer 1 is perfect, answer 2 is worth a
// half point and the rest score nothing.
func testSet(category domain.Category, n int) domain.QuestionSet {
	set := domain.QuestionSet{Category: category}
	for id := 1; id <= n; id++ {
		set.Questions = append(set.Questions, domain.Question{
			ID:   id,
			Text: fmt.Sprintf("question %d", id),
			Answers: []domain.Answer{
				{Number: 1, Text: "perfect", Score: domain.ScorePerfect},
				{Number: 2, Text: "half", Score: domain.ScoreHalf},
				{Number: 3, Text: "wrong", Score: domain.ScoreIncorrect},
				{Number: 4, Text: "also wrong", Score: domain.ScoreIncorrect},
			},
		})
	}
	return set
}

func completedSession(player string, category domain.Category, running int) *Session {
	s := newSession("s-"+player, player, testSet(category, 1), rand.New(rand.NewSource(1)), time.Now())
	s.cursor = s.Total()
	s.state = StateCompleted
	s.running = running
	return s
}

func setBest(r *Registry, name string, category domain.Category, best int) {
	if _, _, err := r.EnsurePlayer(name); err != nil {
		panic(err)
	}
	_ = r.record(name, category, func(rec *domain.Record) { rec.Best = best })
}
