package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLoad marks a malformed or empty lexicon source. Fatal at startup.
	ErrLoad = errors.New("lexicon load failed")
	// ErrNoWordsForCount marks an empty syllable bucket.
	ErrNoWordsForCount = errors.New("no words for syllable count")
	// ErrCoverage marks a lexicon that lacks a bucket in [1, max].
	ErrCoverage = errors.New("lexicon coverage incomplete")
	// ErrGenerationImpossible is returned when the generator exhausts its search.
	ErrGenerationImpossible = errors.New("phrase generation impossible")
	// ErrProvider marks a failed call to the text completion provider.
	ErrProvider = errors.New("text provider failed")
	// ErrRetriesExhausted is returned when the retry loop hits its attempt cap.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// LoadError reports where a lexicon source could not be parsed.
// Line is 1-based and counts the header; 0 means the whole source.
type LoadError struct {
	Line   int
	Reason string
}

func (e *LoadError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("lexicon: %s", e.Reason)
	}
	return fmt.Sprintf("lexicon: line %d: %s", e.Line, e.Reason)
}

func (e *LoadError) Unwrap() error { return ErrLoad }

// ProviderError wraps a failure returned by a text completion provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap exposes both ErrProvider and the underlying cause to errors.Is.
func (e *ProviderError) Unwrap() []error { return []error{ErrProvider, e.Err} }

// RetriesExhaustedError reports how many provider calls were made without a match.
// Timeout is set when the loop's own deadline ended it before the attempt cap.
type RetriesExhaustedError struct {
	Attempts int
	Timeout  time.Duration
}

func (e *RetriesExhaustedError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("no matching phrase after %d attempts (timed out after %s)", e.Attempts, e.Timeout)
	}
	return fmt.Sprintf("no matching phrase after %d attempts", e.Attempts)
}

func (e *RetriesExhaustedError) Unwrap() error { return ErrRetriesExhausted }
