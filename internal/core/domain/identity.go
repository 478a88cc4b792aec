package domain

import (
	"strings"
	"time"
)

// Role is the authorisation level carried by an identity and its session.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleEmployee   Role = "EMPLOYEE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}

// CanSupervise reports whether an identity with this role may be the target
// of another identity's supervisor link.
func (r Role) CanSupervise() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// GosiType is the social-insurance classification imported from HR records.
type GosiType string

const (
	GosiSaudi    GosiType = "SAUDI"
	GosiNonSaudi GosiType = "NON_SAUDI"
)

// ParseGosiType maps free-form input to a GosiType. Unknown values yield "".
func ParseGosiType(s string) GosiType {
	switch GosiType(strings.ToUpper(strings.TrimSpace(s))) {
	case GosiSaudi:
		return GosiSaudi
	case GosiNonSaudi:
		return GosiNonSaudi
	}
	return ""
}

// Identity is a person allowed to authenticate against the portal.
type Identity struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	FirstName    string    `json:"first_name"`
	MiddleName   string    `json:"middle_name,omitempty"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	SupervisorID *string   `json:"supervisor_id"`
	JobTitle     string    `json:"job_title,omitempty"`
	Nationality  string    `json:"nationality,omitempty"`
	GosiType     GosiType  `json:"gosi_type,omitempty"`
	StoreCode    string    `json:"store_code,omitempty"`
	IqamaNo      string    `json:"iqama_no,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName joins first and last name, dropping empty parts.
func (i *Identity) DisplayName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// Principal projects the identity down to what authentication needs.
func (i *Identity) Principal() *Principal {
	return &Principal{
		ID:           i.ID,
		Name:         i.DisplayName(),
		Email:        i.Email,
		Role:         i.Role,
		EmployeeID:   i.EmployeeID,
		SupervisorID: cloneID(i.SupervisorID),
	}
}

// Principal is the minimal identity record returned by a successful
// credential check.
type Principal struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"`
	Role         Role    `json:"role"`
	EmployeeID   string  `json:"employeeId"`
	SupervisorID *string `json:"supervisorId"`
}

func cloneID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
