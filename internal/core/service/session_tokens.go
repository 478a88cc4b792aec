package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

const (
	defaultTokenTTL    = 30 * 24 * time.Hour
	defaultTokenIssuer = "leave-portal"
)

// TokenConfig configures SessionTokens. Secret is mandatory.
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// SessionClaims is the JWT payload of a session token.
type SessionClaims struct {
	Name         string  `json:"name,omitempty"`
	Role         string  `json:"role"`
	EmployeeID   string  `json:"employeeId"`
	SupervisorID *string `json:"supervisorId"`
	jwt.RegisteredClaims
}

// SessionTokens issues and reads HS256 session tokens.
type SessionTokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewSessionTokens(cfg TokenConfig) (*SessionTokens, error) {
	if len(cfg.Secret) == 0 {
		return nil, domain.ErrMissingSecret
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultTokenIssuer
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &SessionTokens{
		secret: secret,
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    cfg.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithTimeFunc(cfg.Now),
		),
	}, nil
}

// Issue signs a token for principal.
func (s *SessionTokens) Issue(principal *domain.Principal) (string, time.Time, error) {
	claims := ProjectClaims(principal, s.now(), s.ttl, s.issuer)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Read validates signature, algorithm, issuer and expiry and returns the
// session context. Any failure is domain.ErrTokenInvalid.
func (s *SessionTokens) Read(token string) (*domain.SessionContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims := &SessionClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return ProjectSession(claims)
}

// ProjectClaims shapes the token claims for a freshly authenticated principal.
func ProjectClaims(p *domain.Principal, issuedAt time.Time, ttl time.Duration, issuer string) SessionClaims {
	issuedAt = issuedAt.Truncate(time.Second)
	var supervisor *string
	if p.SupervisorID != nil && *p.SupervisorID != "" {
		id := *p.SupervisorID
		supervisor = &id
	}
	return SessionClaims{
		Name:         p.Name,
		Role:         string(p.Role),
		EmployeeID:   p.EmployeeID,
		SupervisorID: supervisor,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
}

// ProjectSession turns verified claims into a session context, rejecting
// claim sets that lack an identity.
func ProjectSession(c *SessionClaims) (*domain.SessionContext, error) {
	role := domain.Role(c.Role)
	if strings.TrimSpace(c.Subject) == "" || strings.TrimSpace(c.EmployeeID) == "" || !role.Valid() {
		return nil, domain.ErrTokenInvalid
	}

	sess := &domain.SessionContext{
		Subject:    c.Subject,
		Name:       c.Name,
		Role:       role,
		EmployeeID: c.EmployeeID,
	}
	if c.SupervisorID != nil && *c.SupervisorID != "" {
		id := *c.SupervisorID
		sess.SupervisorID = &id
	}
	if c.IssuedAt != nil {
		sess.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		sess.ExpiresAt = c.ExpiresAt.Time
	}
	return sess, nil
}
