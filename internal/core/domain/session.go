package domain

import "time"

// SessionContext is the validated content of a session token. It lives for
// the duration of a single request.
type SessionContext struct {
	Subject      string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Role         Role      `json:"role"`
	EmployeeID   string    `json:"employeeId"`
	SupervisorID *string   `json:"supervisorId"`
	IssuedAt     time.Time `json:"issuedAt"`
	ExpiresAt    time.Time `json:"expires"`
}

// HasRole reports whether the session carries one of roles.
func (s *SessionContext) HasRole(roles ...Role) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// Verdict is the outcome of a route authorisation decision.
type Verdict int

const (
	// VerdictPass lets a request through because no rule claimed the path.
	VerdictPass Verdict = iota
	VerdictAllow
	VerdictRedirect
)

func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictRedirect:
		return "redirect"
	default:
		return "pass"
	}
}

// RouteDecision is what the route gate answers for a request. Target is set
// only for VerdictRedirect.
type RouteDecision struct {
	Verdict Verdict
	Target  string
}
