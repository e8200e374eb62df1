// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across store/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication or a missing session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates an id collision inside a collection.
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation indicates malformed input rejected before any mutation.
	ErrValidation = errors.New("validation")

	// ErrEmptyCart indicates checkout was attempted with no cart lines.
	ErrEmptyCart = errors.New("empty cart")

	// ErrInvalidTransition indicates a status change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStaleSession indicates a login completed after a newer session change and was discarded.
	ErrStaleSession = errors.New("stale session")

	// ErrClosed indicates the store has been torn down.
	ErrClosed = errors.New("store closed")
)
