package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hcportal/leave-portal/internal/api/metrics"
	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

const sessionKey = "session"

// Session reads the session token from the named cookie or, failing that, a
// Bearer Authorization header, and injects the validated SessionContext into
// the echo context. Missing or invalid tokens leave the request without a
// session; the gate and RequireSession decide what that means.
func Session(reader ports.SessionReader, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFrom(c.Request(), cookieName)
			if token == "" {
				return next(c)
			}

			session, err := reader.Read(token)
			if err != nil {
				metrics.SessionTokenFailuresTotal.Inc()
				return next(c)
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// SessionFrom returns the session injected by Session, or nil.
func SessionFrom(c echo.Context) *domain.SessionContext {
	session, _ := c.Get(sessionKey).(*domain.SessionContext)
	return session
}

// RequireSession rejects requests that carry no valid session.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFrom(c) == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

func tokenFrom(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
