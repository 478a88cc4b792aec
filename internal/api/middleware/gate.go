package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hcportal/leave-portal/internal/api/metrics"
	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

// Gate applies the route authorization decision to every request. A redirect
// verdict answers 302 Found; allow and pass continue down the chain. It must
// run after Session.
func Gate(decider ports.RouteDecider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := decider.Decide(c.Request().URL.Path, SessionFrom(c))
			metrics.GateDecisionsTotal.WithLabelValues(decision.Verdict.String()).Inc()

			if decision.Verdict == domain.VerdictRedirect {
				return c.Redirect(http.StatusFound, decision.Target)
			}
			return next(c)
		}
	}
}
