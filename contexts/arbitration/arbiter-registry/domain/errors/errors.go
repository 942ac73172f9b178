// Package errors defines sentinel errors for the arbiter registry.
package errors

import "errors"

var (
	// ErrNotAuthorized rejects a roster mutation. It covers both a caller
	// that is not the registry owner and a roster already at capacity; the
	// registry deliberately does not tell callers which rule fired.
	ErrNotAuthorized = errors.New("caller is not authorized")

	// ErrInvalidInput rejects malformed identifiers before any state is read.
	ErrInvalidInput = errors.New("invalid input")
)
