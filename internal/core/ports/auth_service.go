package ports

import (
	"context"
	"time"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

// CredentialVerifier checks an employee id and password pair.
type CredentialVerifier interface {
	Verify(ctx context.Context, employeeID, password string) (*domain.Principal, error)
}

// SessionIssuer mints signed session tokens.
type SessionIssuer interface {
	Issue(principal *domain.Principal) (token string, expiresAt time.Time, err error)
}

// SessionReader validates a session token. Every failure is
// domain.ErrTokenInvalid.
type SessionReader interface {
	Read(token string) (*domain.SessionContext, error)
}

// LoginInput is the DTO passed from the transport layer to AuthService.
type LoginInput struct {
	EmployeeID string
	Password   string
	ClientKey  string // throttling key, usually the client IP
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal *domain.Principal
}

// AuthService runs the login flow: throttle, verify, issue.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

// LoginThrottle tracks failed logins per client key.
type LoginThrottle interface {
	// Locked returns how long key remains locked out, or zero.
	Locked(ctx context.Context, key string) (time.Duration, error)
	// RecordFailure counts a failure and returns the lockout now in effect,
	// or zero if the key is still below the limit.
	RecordFailure(ctx context.Context, key string) (time.Duration, error)
	Reset(ctx context.Context, key string) error
}

// RouteDecider is the per-request authorisation decision.
type RouteDecider interface {
	Decide(path string, session *domain.SessionContext) domain.RouteDecision
}
