package calendar

import (
	"errors"
	"fmt"
)

// Sentinel errors for the store's error taxonomy. Callers should match with
// errors.Is (or the IsNotFound/IsValidation helpers) rather than comparing
// messages.
var (
	// ErrNotFound indicates an unknown user or meeting identifier.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a structurally invalid record: malformed
	// interval, empty participant set, or a reference to an unknown user.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError builds a NotFound error for the given record kind and id.
func NotFoundError(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// ValidationError builds a validation error with a human-readable reason.
func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
