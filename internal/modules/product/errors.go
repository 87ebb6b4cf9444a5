package product

import "errors"

var (
	// ErrInvalidArgument marks client input that failed validation. Maps to 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when no row, or no active row, matches. Maps to 404.
	// Never-existed and already-deleted products are not told apart.
	ErrNotFound = errors.New("product not found")

	// ErrUnavailable wraps store failures and the default status lookup. Maps to 500.
	ErrUnavailable = errors.New("store unavailable")
)
