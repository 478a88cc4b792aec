package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hcportal/leave-portal/internal/api/metrics"
	"github.com/hcportal/leave-portal/internal/api/middleware"
	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

// CookieConfig controls the session cookie written on login.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
	homePath    string
	signInPath  string
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig, homePath, signInPath string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		homePath:    homePath,
		signInPath:  signInPath,
	}
}

// Login verifies employee credentials and starts a session.
//
// @Summary      Sign in with employee credentials
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Employee credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/callback/credentials [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		EmployeeID: req.EmployeeID,
		Password:   req.Password,
		ClientKey:  c.RealIP(),
	})
	if err != nil {
		var throttled *domain.LoginThrottledError
		switch {
		case errors.As(err, &throttled):
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			c.Response().Header().Set("Retry-After", retryAfterSeconds(throttled.RetryAfter))
		case errors.Is(err, domain.ErrAuthRejected):
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.sessionCookie(result.Token, result.ExpiresAt))

	return c.JSON(http.StatusOK, loginResponse{
		OK:        true,
		URL:       h.homePath,
		ExpiresAt: result.ExpiresAt,
		User:      result.Principal,
	})
}

// Session returns the caller's session, or an empty object when there is none.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.SessionContext
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return c.JSON(http.StatusOK, struct{}{})
	}
	return c.JSON(http.StatusOK, session)
}

// SignOut expires the session cookie. Issued tokens stay valid until they
// expire.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  signOutResponse
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	cookie := h.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, signOutResponse{OK: true, URL: h.signInPath})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(max(int(math.Ceil(d.Seconds())), 1))
}
