package app

import (
	"math/rand"
	"time"

	"golden-brain/internal/domain"
)

// State is the position of a session in its lifecycle.
type State int

const (
	StateCategorySelect State = iota
	StateInProgress
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCategorySelect:
		return "category-select"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// Session is one attempt at every question of a category. It is owned by a
// single player and is not safe for concurrent use.
type Session struct {
	id        string
	player    string
	set       domain.QuestionSet
	order     []int
	drawn     map[int]struct{}
	cursor    int
	running   int
	state     State
	finalized bool
	startedAt time.Time
}

// newSession draws a full permutation of the set's question ids: every
// question is asked exactly once.
func newSession(id, player string, set domain.QuestionSet, rnd *rand.Rand, now time.Time) *Session {
	order := make([]int, len(set.Questions))
	for i, j := range rnd.Perm(len(set.Questions)) {
		order[i] = set.Questions[j].ID
	}
	state := StateInProgress
	if len(order) == 0 {
		state = StateCompleted
	}
	return &Session{
		id:        id,
		player:    player,
		set:       set,
		order:     order,
		drawn:     make(map[int]struct{}, len(order)),
		state:     state,
		startedAt: now,
	}
}

func (s *Session) ID() string { return s.id }
func (s *Session) Player() string { return s.player }
func (s *Session) Category() domain.Category { return s.set.Category }
func (s *Session) State() State { return s.state }
func (s *Session) Running() int { return s.running }
func (s *Session) QuestionSet() domain.QuestionSet { return s.set }

// Total is the number of questions in the session.
func (s *Session) Total() int { return len(s.order) }

// Answered is the number of committed answers; the round shown to the
// player is Answered()+1.
func (s *Session) Answered() int { return s.cursor }

// Drawn reports whether a question has already been presented.
func (s *Session) Drawn(id int) bool {
	_, ok := s.drawn[id]
	return ok
}

// Current draws the question for this round. Calling it again before a
// commit returns the same question, so a declined answer is re-asked.
func (s *Session) Current() (domain.Question, error) {
	if s.state != StateInProgress {
		return domain.Question{}, domain.ErrSessionClosed
	}
	id := s.order[s.cursor]
	q, ok := s.set.Question(id)
	if !ok {
		return domain.Question{}, domain.ErrInvalidQuestionSet
	}
	s.drawn[id] = struct{}{}
	return q, nil
}

// commit applies a confirmed answer and advances to the next question.
func (s *Session) commit(position int) (int, error) {
	q, err := s.Current()
	if err != nil {
		return s.running, err
	}
	total, err := ApplyAnswer(s, q, position)
	if err != nil {
		return total, err
	}
	s.cursor++
	if s.cursor == len(s.order) {
		s.state = StateCompleted
	}
	return total, nil
}

func (s *Session) abort() {
	if s.state == StateInProgress {
		s.state = StateAborted
	}
}

// Info is the spectator view of the session.
func (s *Session) Info() domain.ActiveSession {
	return domain.ActiveSession{
		SessionID: s.id,
		Player:    s.player,
		Category:  s.set.Category,
		StartedAt: s.startedAt,
	}
}
