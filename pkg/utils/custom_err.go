package utils

import (
	"errors"
	"strings"
)

var (
	ErrCatalogUnavailable = errors.New("poi catalog unavailable")
	ErrGenerationFailure  = errors.New("content generation failed")
	ErrValidation         = errors.New("validation failed")
	ErrPersistence        = errors.New("failed to persist responses")
	ErrAggregationData    = errors.New("malformed aggregation input")

	ErrSessionNotFound   = errors.New("session not found")
	ErrConsentRequired   = errors.New("consent has not been given")
	ErrInvalidTransition = errors.New("action not allowed in current survey state")
	ErrStepMismatch      = errors.New("answers submitted for a step that is not the current one")

	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
	ErrMirrorDisabled  = errors.New("response mirror is not configured")
)

// ValidationError itemizes every problem found in a form submission.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems []string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
