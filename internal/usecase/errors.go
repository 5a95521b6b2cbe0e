package usecase

import "errors"

// Sentinel errors shared by the fetch, processing and lookup services. The
// HTTP layer maps each to a status code.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrProviderFailure marks a request the football API could not serve this
	// cycle. Callers skip the unit; nothing is stored.
	ErrProviderFailure = errors.New("football api request failed")
)
