package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/hcportal/leave-portal/internal/api/middleware"
	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

// stubSessionReader accepts a single fixed token.
type stubSessionReader struct {
	token   string
	session *domain.SessionContext
}

func (s stubSessionReader) Read(token string) (*domain.SessionContext, error) {
	if token != s.token {
		return nil, domain.ErrTokenInvalid
	}
	return s.session, nil
}

// withSession runs the real Session middleware against c so handlers see the
// session exactly as they would behind the router.
func withSession(c echo.Context, session *domain.SessionContext) {
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer test-token")

	mw := middleware.Session(stubSessionReader{token: "test-token", session: session}, "hc_session")
	_ = mw(func(echo.Context) error { return nil })(c)
}

type stubIdentityService struct {
	createFn  func(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error)
	reportsFn func(ctx context.Context, supervisorID string) ([]*domain.Identity, error)
}

func (s *stubIdentityService) Create(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	return s.createFn(ctx, in)
}

func (s *stubIdentityService) DirectReports(ctx context.Context, supervisorID string) ([]*domain.Identity, error) {
	return s.reportsFn(ctx, supervisorID)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func strPtr(s string) *string { return &s }
