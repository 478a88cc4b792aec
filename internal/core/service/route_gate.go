package service

import (
	"path"
	"strings"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

// RoutePolicy names the paths the gate reasons about.
type RoutePolicy struct {
	AuthPrefix        string   // login and session endpoints, never gated
	LandingPath       string   // public, redirects signed-in users home
	SignInPath        string   // public, target for unauthenticated redirects
	HomePath          string   // authenticated home
	ProtectedPrefixes []string // require a session, including sub-paths
}

// DefaultRoutePolicy is the portal's canonical policy.
func DefaultRoutePolicy() RoutePolicy {
	return RoutePolicy{
		AuthPrefix:        "/api/auth",
		LandingPath:       "/",
		SignInPath:        "/sign-in",
		HomePath:          "/dashboard",
		ProtectedPrefixes: []string{"/dashboard"},
	}
}

// RouteGate decides, per request, whether a path may be served. It holds no
// mutable state and is safe for concurrent use.
type RouteGate struct {
	policy RoutePolicy
}

func NewRouteGate(policy RoutePolicy) *RouteGate {
	return &RouteGate{policy: policy}
}

// Decide evaluates the policy in order; the first matching rule wins.
func (g *RouteGate) Decide(p string, session *domain.SessionContext) domain.RouteDecision {
	p = cleanPath(p)
	signedIn := session != nil

	if hasPathPrefix(p, g.policy.AuthPrefix) {
		return domain.RouteDecision{Verdict: domain.VerdictAllow}
	}

	if p == g.policy.LandingPath || p == g.policy.SignInPath {
		if signedIn && p == g.policy.LandingPath {
			return domain.RouteDecision{Verdict: domain.VerdictRedirect, Target: g.policy.HomePath}
		}
		return domain.RouteDecision{Verdict: domain.VerdictAllow}
	}

	for _, prefix := range g.policy.ProtectedPrefixes {
		if hasPathPrefix(p, prefix) {
			if !signedIn {
				return domain.RouteDecision{Verdict: domain.VerdictRedirect, Target: g.policy.SignInPath}
			}
			return domain.RouteDecision{Verdict: domain.VerdictAllow}
		}
	}

	return domain.RouteDecision{Verdict: domain.VerdictPass}
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// hasPathPrefix matches prefix on whole segments: "/dashboard" matches
// "/dashboard" and "/dashboard/leave" but not "/dashboards".
func hasPathPrefix(p, prefix string) bool {
	if prefix == "" {
		return false
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}
