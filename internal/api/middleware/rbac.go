package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

// RBAC enforces role-based access control on the session role.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFrom(c)
			if session == nil {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[session.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
