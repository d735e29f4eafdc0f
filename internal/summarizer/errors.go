package summarizer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the text is empty or blank after cleaning.
	ErrEmptyInput = errors.New("empty_input")
	// ErrInsufficientInput matches any *InsufficientInputError via errors.Is.
	ErrInsufficientInput = errors.New("insufficient_input")
)

// InsufficientInputError reports text too short to summarize meaningfully.
type InsufficientInputError struct {
	Words    int
	MinWords int
}

func (e *InsufficientInputError) Error() string {
	return fmt.Sprintf("insufficient_input: %d words, need at least %d", e.Words, e.MinWords)
}

func (e *InsufficientInputError) Is(target error) bool {
	return target == ErrInsufficientInput
}
