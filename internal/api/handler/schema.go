package handler

import (
	"time"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	EmployeeID string `json:"employeeId" form:"employeeId"`
	Password   string `json:"password"   form:"password"`
}

type loginResponse struct {
	OK        bool              `json:"ok"`
	URL       string            `json:"url"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      *domain.Principal `json:"user"`
}

type signOutResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}

// --- Pages ---

type landingResponse struct {
	Name   string `json:"name"`
	SignIn string `json:"signIn"`
}

type formField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type signInResponse struct {
	Action string      `json:"action"`
	Method string      `json:"method"`
	Fields []formField `json:"fields"`
}

type dashboardResponse struct {
	User *domain.SessionContext `json:"user"`
}

type teamMember struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	JobTitle   string `json:"jobTitle,omitempty"`
	StoreCode  string `json:"storeCode,omitempty"`
}

type teamResponse struct {
	Supervisor string       `json:"supervisor"`
	Members    []teamMember `json:"members"`
}

// --- Admin ---

type createIdentityRequest struct {
	EmployeeID   string  `json:"employee_id"   validate:"required,max=32"`
	FirstName    string  `json:"first_name"    validate:"required"`
	MiddleName   string  `json:"middle_name"`
	LastName     string  `json:"last_name"     validate:"required"`
	Email        string  `json:"email"         validate:"omitempty,email"`
	Password     string  `json:"password"      validate:"required,min=8"`
	Role         string  `json:"role"          validate:"required,oneof=ADMIN SUPERVISOR EMPLOYEE"`
	SupervisorID *string `json:"supervisor_id"`
	JobTitle     string  `json:"job_title"`
	Nationality  string  `json:"nationality"`
	GosiType     string  `json:"gosi_type"     validate:"omitempty,oneof=SAUDI NON_SAUDI"`
	StoreCode    string  `json:"store_code"`
	IqamaNo      string  `json:"iqama_no"`
}
