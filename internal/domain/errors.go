package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned when a login name is blank or a single word.
	ErrInvalidName = errors.New("invalid player name")
	// ErrOutOfRange is returned when an answer position is not in [1,4].
	ErrOutOfRange = errors.New("answer position out of range")
	// ErrCategoryNotFound indicates the question set for a category could not be loaded.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidQuestionSet indicates a question set violates the bank schema.
	ErrInvalidQuestionSet = errors.New("invalid question set")
	// ErrPlayerNotFound is returned when acting for a player that never logged in.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrSessionNotComplete is returned when finalizing before every question was committed.
	ErrSessionNotComplete = errors.New("session not complete")
	// ErrSessionClosed is returned when committing to a completed or aborted session.
	ErrSessionClosed = errors.New("session closed")
)

// InvalidNameError carries the rejected name.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("%v: %q must be a first and last name separated by a space", ErrInvalidName, e.Name)
}

func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}

// OutOfRangeError carries the rejected answer position.
type OutOfRangeError struct {
	Position int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%v: %d not in [1,%d]", ErrOutOfRange, e.Position, AnswersPerQuestion)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
