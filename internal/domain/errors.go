package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotTrained signals that no trained model is available yet.
	ErrNotTrained = errors.New("model not trained")
	// ErrTrainingInProgress signals a training run already underway.
	ErrTrainingInProgress = errors.New("training already in progress")
	// ErrEmptyInput signals text that is empty or blank after trimming.
	ErrEmptyInput = errors.New("empty input text")
	// ErrTextTooShort signals input below the minimum analyzable length.
	ErrTextTooShort = errors.New("text too short")
	// ErrTextTooLong signals input above the maximum analyzable length.
	ErrTextTooLong = errors.New("text too long")
	// ErrNotFitted signals use of a vectorizer or classifier before fitting.
	ErrNotFitted = errors.New("not fitted")
	// ErrTrainingData signals unusable or insufficient training data.
	ErrTrainingData = errors.New("invalid training data")
	// ErrPersistence signals a failed model save or load.
	ErrPersistence = errors.New("model persistence failed")
	// ErrFetchFailed signals a failed article download or extraction.
	ErrFetchFailed = errors.New("article fetch failed")
)

// TextBoundsError wraps a length sentinel with the observed and allowed sizes.
type TextBoundsError struct {
	Sentinel error
	Length   int
	Bound    int
}

func (e *TextBoundsError) Error() string {
	return fmt.Sprintf("%s: got %d characters, bound is %d", e.Sentinel.Error(), e.Length, e.Bound)
}

func (e *TextBoundsError) Unwrap() error { return e.Sentinel }

// NewTextTooShort creates a bounds error for undersized input.
func NewTextTooShort(length, minLen int) error {
	return &TextBoundsError{Sentinel: ErrTextTooShort, Length: length, Bound: minLen}
}

// NewTextTooLong creates a bounds error for oversized input.
func NewTextTooLong(length, maxLen int) error {
	return &TextBoundsError{Sentinel: ErrTextTooLong, Length: length, Bound: maxLen}
}

// ValidateTextBounds enforces the analyzable size window at the API
// boundary: the trimmed text must reach minChars and the raw text must
// not exceed maxChars. Lengths are counted in runes.
func ValidateTextBounds(text string, minChars, maxChars int) error {
	if trimmed := strings.TrimSpace(text); utf8.RuneCountInString(trimmed) < minChars {
		return NewTextTooShort(utf8.RuneCountInString(trimmed), minChars)
	}
	if n := utf8.RuneCountInString(text); n > maxChars {
		return NewTextTooLong(n, maxChars)
	}
	return nil
}
