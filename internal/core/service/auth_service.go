package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

// AuthService implements the login flow on top of a verifier, a token issuer
// and an optional failed-login throttle.
type AuthService struct {
	verifier ports.CredentialVerifier
	issuer   ports.SessionIssuer
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

// NewAuthService wires the login flow. throttle may be nil.
func NewAuthService(verifier ports.CredentialVerifier, issuer ports.SessionIssuer, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{verifier: verifier, issuer: issuer, throttle: throttle, log: log}
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if wait := s.lockedFor(ctx, in.ClientKey); wait > 0 {
		return nil, &domain.LoginThrottledError{RetryAfter: wait}
	}

	principal, err := s.verifier.Verify(ctx, in.EmployeeID, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRejected) {
			s.recordFailure(ctx, in.ClientKey)
		}
		return nil, err
	}

	s.resetFailures(ctx, in.ClientKey)

	token, expiresAt, err := s.issuer.Issue(principal)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &ports.LoginResult{Token: token, ExpiresAt: expiresAt, Principal: principal}, nil
}

// lockedFor reports the remaining lockout for key. Throttle store errors
// never block a login.
func (s *AuthService) lockedFor(ctx context.Context, key string) time.Duration {
	if s.throttle == nil || key == "" {
		return 0
	}
	wait, err := s.throttle.Locked(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("client", key).Msg("login throttle check failed")
		return 0
	}
	return wait
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.throttle == nil || key == "" {
		return
	}
	lockout, err := s.throttle.RecordFailure(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("client", key).Msg("failed to record login failure")
		return
	}
	if lockout > 0 {
		s.log.Warn().Str("client", key).Dur("lockout", lockout).Msg("client locked out after repeated login failures")
	}
}

func (s *AuthService) resetFailures(ctx context.Context, key string) {
	if s.throttle == nil || key == "" {
		return
	}
	if err := s.throttle.Reset(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("client", key).Msg("failed to reset login failures")
	}
}
