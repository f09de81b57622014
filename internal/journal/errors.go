package journal

import (
	"errors"
	"fmt"

	"practicelog/internal/store"
)

var (
	// ErrUnauthenticated is returned when no current user can be resolved.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalid wraps validation failures detected before any store call.
	ErrInvalid = errors.New("invalid input")
	// ErrNotFound aliases the store sentinel so callers can match either.
	ErrNotFound = store.ErrNotFound
	// ErrConflict is returned for non-idempotent conflicts, such as exhausting
	// number allocation retries.
	ErrConflict = store.ErrConflict
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
