package domain

import "fmt"

// Validate checks the bank schema: four answers numbered 1..4, scores in
// {0,1,2}, exactly one perfect answer and at most two half-point answers.
func (q Question) Validate() error {
	if len(q.Answers) != AnswersPerQuestion {
		return fmt.Errorf("%w: question %d has %d answers", ErrInvalidQuestionSet, q.ID, len(q.Answers))
	}
	perfect, half := 0, 0
	for i, a := range q.Answers {
		if a.Number != i+1 {
			return fmt.Errorf("%w: question %d answer %d numbered %d", ErrInvalidQuestionSet, q.ID, i+1, a.Number)
		}
		switch a.Score {
		case ScorePerfect:
			perfect++
		case ScoreHalf:
			half++
		case ScoreIncorrect:
		default:
			return fmt.Errorf("%w: question %d answer %d scores %d", ErrInvalidQuestionSet, q.ID, a.Number, a.Score)
		}
	}
	if perfect != 1 {
		return fmt.Errorf("%w: question %d has %d perfect answers", ErrInvalidQuestionSet, q.ID, perfect)
	}
	if half > 2 {
		return fmt.Errorf("%w: question %d has %d half-point answers", ErrInvalidQuestionSet, q.ID, half)
	}
	return nil
}

// Validate checks every question and that ids run 1..N without gaps.
func (s QuestionSet) Validate() error {
	if !s.Category.Valid() {
		return fmt.Errorf("%w: unknown category %d", ErrInvalidQuestionSet, int(s.Category))
	}
	if len(s.Questions) == 0 {
		return fmt.Errorf("%w: %s has no questions", ErrInvalidQuestionSet, s.Category)
	}
	seen := make(map[int]struct{}, len(s.Questions))
	for _, q := range s.Questions {
		if q.ID < 1 || q.ID > len(s.Questions) {
			return fmt.Errorf("%w: %s question id %d out of 1..%d", ErrInvalidQuestionSet, s.Category, q.ID, len(s.Questions))
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: %s duplicate question id %d", ErrInvalidQuestionSet, s.Category, q.ID)
		}
		seen[q.ID] = struct{}{}
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}
