package api

import (
	"context"
	"net"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/hcportal/leave-portal/docs"
	"github.com/hcportal/leave-portal/internal/api/handler"
	"github.com/hcportal/leave-portal/internal/api/middleware"
	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
	"github.com/hcportal/leave-portal/internal/core/service"
)

const loginPath = "/api/auth/callback/credentials"

// Deps are the collaborators the router wires into handlers and middleware.
type Deps struct {
	Auth       ports.AuthService
	Sessions   ports.SessionReader
	Identities ports.IdentityService
	Policy     service.RoutePolicy
	Pingers    map[string]handler.Pinger
	Cookie     handler.CookieConfig

	// LoginRatePerMin caps login requests per client IP; zero disables it.
	LoginRatePerMin int
	// HSTS adds Strict-Transport-Security to every response.
	HSTS bool
	// TrustedProxies are the only peers whose X-Forwarded-For is used for
	// the client address. Empty means the TCP peer address is used.
	TrustedProxies []*net.IPNet

	// Registry receives the HTTP request metrics. Nil uses the default
	// Prometheus registry.
	Registry *prometheus.Registry

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// ctx bounds background work started by middleware.
func NewRouter(ctx context.Context, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()
	e.IPExtractor = ipExtractor(deps.TrustedProxies)

	gate := service.NewRouteGate(deps.Policy)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(middleware.SecurityHeaders(deps.HSTS))
	e.Use(metricsMiddleware(deps.Registry))
	e.Use(middleware.Session(deps.Sessions, deps.Cookie.Name))
	e.Use(middleware.Gate(gate))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie, deps.Policy.HomePath, deps.Policy.SignInPath)
	pageHandler := handler.NewPageHandler(deps.Identities, loginPath)
	identityHandler := handler.NewIdentityHandler(deps.Identities)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Pingers)

	// --- Auth routes (always reachable through the gate) ---
	loginLimiter := middleware.NewRateLimiter(ctx, middleware.PerMinute(deps.LoginRatePerMin), max(deps.LoginRatePerMin/6, 1))
	e.POST(loginPath, authHandler.Login, loginLimiter.Middleware())
	e.GET("/api/auth/session", authHandler.Session)
	e.POST("/api/auth/signout", authHandler.SignOut)

	// --- Pages (gated) ---
	e.GET("/", pageHandler.Landing)
	e.GET("/sign-in", pageHandler.SignIn)
	e.GET("/dashboard", pageHandler.Dashboard, middleware.RequireSession())
	e.GET("/dashboard/team", pageHandler.Team, middleware.RBAC(domain.RoleSupervisor, domain.RoleAdmin))

	// --- Admin API ---
	admin := e.Group("/api/admin", middleware.RBAC(domain.RoleAdmin))
	admin.POST("/identities", identityHandler.Create)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor makes c.RealIP honour X-Forwarded-For only when the peer is
// one of the trusted proxies.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range trusted {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "leave_portal",
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/health")
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
