package errors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidInput is raised by the pricing calculator and is treated as a validation failure.
	ErrInvalidInput = fmt.Errorf("%w: invalid pricing input", ErrValidation)
)

// Validationf wraps ErrValidation with a formatted reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted reason.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a formatted reason.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Persistence wraps a driver error so callers can classify it without losing the cause.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
