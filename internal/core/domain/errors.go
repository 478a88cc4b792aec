package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingSecret means no token signing secret was configured.
	ErrMissingSecret = errors.New("token signing secret is not configured")

	// ErrAuthRejected covers every credential failure. The cause is never
	// exposed to the caller.
	ErrAuthRejected = errors.New("invalid credentials")

	// ErrTokenInvalid covers malformed, unsigned, tampered and expired tokens.
	ErrTokenInvalid = errors.New("invalid session token")

	ErrTooManyAttempts   = errors.New("too many login attempts")
	ErrEmployeeIDExists  = errors.New("employee id already exists")
	ErrIdentityNotFound  = errors.New("identity not found")
	ErrInvalidSupervisor = errors.New("supervisor must be an existing supervisor or admin")
	ErrInvalidIdentity   = errors.New("invalid identity")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("access forbidden")
)

// LoginThrottledError is returned while a client is locked out of login.
type LoginThrottledError struct {
	RetryAfter time.Duration
}

func (e *LoginThrottledError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrTooManyAttempts, e.RetryAfter.Round(time.Second))
}

func (e *LoginThrottledError) Unwrap() error { return ErrTooManyAttempts }
