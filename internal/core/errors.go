package core

import (
	"errors"
	"fmt"
)

// Sentinel errors the web adapter maps onto HTTP statuses. Services wrap them
// with context via fmt.Errorf("...: %w", Err...).
var (
	// ErrValidation marks rejected input; nothing was persisted.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState marks an operation refused because of the record's
	// lifecycle state, e.g. editing a Received purchase.
	ErrInvalidState = errors.New("invalid state")
)

func wrapValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func wrapValidationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

