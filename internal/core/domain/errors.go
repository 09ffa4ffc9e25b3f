package domain

import (
	"errors"
	"fmt"
)

// ErrAuthenticationFailed is the parent of every authentication failure.
// Callers outside the auth core only ever see this generic signal.
var ErrAuthenticationFailed = errors.New("authentication failed")

var (
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", ErrAuthenticationFailed)
	ErrBadCredentials     = fmt.Errorf("%w: bad credentials", ErrAuthenticationFailed)
	ErrNoAuthorities      = fmt.Errorf("%w: account has no authorities", ErrAuthenticationFailed)
	ErrAccountDisabled    = fmt.Errorf("%w: account disabled", ErrAuthenticationFailed)
	ErrAccountExpired     = fmt.Errorf("%w: account expired", ErrAuthenticationFailed)
	ErrAccountLocked      = fmt.Errorf("%w: account locked", ErrAuthenticationFailed)
	ErrCredentialsExpired = fmt.Errorf("%w: credentials expired", ErrAuthenticationFailed)
)

// ErrForbidden is returned when an authenticated principal lacks the
// authority a path requires.
var ErrForbidden = errors.New("access forbidden")

// ErrMissingPrincipal means code that needs an acting username ran without
// one in the request context. It is a call-site defect, never retried.
var ErrMissingPrincipal = errors.New("no authenticated principal in request context")

var (
	ErrAccountExists    = errors.New("account already exists")
	ErrRoleNotFound     = errors.New("role not found")
	ErrGreetingNotFound = errors.New("greeting not found")
	ErrVersionConflict  = errors.New("version conflict")
	ErrInvalidInput     = errors.New("invalid input")
)

// ErrIdempotencyInFlight means another request with the same Idempotency-Key
// is still creating its greeting.
var ErrIdempotencyInFlight = errors.New("idempotent request still in progress")

// FailureReason returns a short, log-friendly label for an authentication
// failure, or "" when err is not one.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, ErrBadCredentials):
		return "bad_credentials"
	case errors.Is(err, ErrNoAuthorities):
		return "unauthorized"
	case errors.Is(err, ErrAccountDisabled):
		return "disabled"
	case errors.Is(err, ErrAccountExpired):
		return "expired"
	case errors.Is(err, ErrAccountLocked):
		return "locked"
	case errors.Is(err, ErrCredentialsExpired):
		return "credentials_expired"
	case errors.Is(err, ErrAuthenticationFailed):
		return "failed"
	}
	return ""
}
