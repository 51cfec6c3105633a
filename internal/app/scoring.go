package app

import (
	"golden-brain/internal/domain"
)

// ScoreOf returns the score of the answer at the 1-based position.
func ScoreOf(question domain.Question, position int) (int, error) {
	if position < 1 || position > domain.AnswersPerQuestion || position > len(question.Answers) {
		return 0, &domain.OutOfRangeError{Position: position}
	}
	return question.Answers[position-1].Score, nil
}

// ApplyAnswer adds the score of the chosen answer to the session's running
// total and returns the new total. The registry is not touched.
func ApplyAnswer(session *Session, question domain.Question, position int) (int, error) {
	score, err := ScoreOf(question, position)
	if err != nil {
		return session.Running(), err
	}
	session.running += score
	return session.running, nil
}

// FinalizeSession is the only path into a player's best-ever score. It
// records the final total as the current score and raises best when beaten.
func FinalizeSession(registry *Registry, player string, category domain.Category, session *Session) (int, bool, error) {
	if session.State() != StateCompleted {
		return 0, false, domain.ErrSessionNotComplete
	}
	if session.finalized {
		return 0, false, domain.ErrSessionClosed
	}
	final := session.Running()
	improved := false
	err := registry.record(player, category, func(rec *domain.Record) {
		rec.Current = final
		if final > rec.Best {
			rec.Best = final
			improved = true
		}
	})
	if err != nil {
		return 0, false, err
	}
	session.finalized = true
	return final, improved, nil
}
