package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hcportal/leave-portal/internal/api/middleware"
	"github.com/hcportal/leave-portal/internal/core/domain"
)

// ctxSession returns the session injected by the Session middleware. The gate
// already redirects anonymous page requests, so a missing session here means
// the route was wired without it; fail closed with 401.
func ctxSession(c echo.Context) (*domain.SessionContext, error) {
	session := middleware.SessionFrom(c)
	if session == nil || session.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}
