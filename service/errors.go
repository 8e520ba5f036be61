// Package service holds the application core: the remember-me token
// protocol, the in-process session cache, the registration/magic-link flow
// and the skill search engine. Handlers in api/ are thin glue over these.
package service

import "errors"

var (
	// ErrNotAuthenticated is the uniform negative result of every auth-path
	// lookup miss: unknown email, wrong token, wrong series, consumed link.
	// It is a normal outcome, not a failure.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotAllowed is returned when an authenticated user tries to modify
	// a skill they don't own.
	ErrNotAllowed = errors.New("not allowed")
)
