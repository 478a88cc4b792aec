package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hcportal/leave-portal/internal/core/ports"
)

// PageHandler serves the portal's page routes as JSON documents. Access to
// them is decided by the gate before these handlers run.
type PageHandler struct {
	identities ports.IdentityService
	loginPath  string
}

func NewPageHandler(identities ports.IdentityService, loginPath string) *PageHandler {
	return &PageHandler{identities: identities, loginPath: loginPath}
}

// Landing introduces the portal to anonymous visitors.
//
// @Summary      Landing page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  landingResponse
// @Success      302
// @Router       / [get]
func (h *PageHandler) Landing(c echo.Context) error {
	return c.JSON(http.StatusOK, landingResponse{Name: "HC Leave Portal", SignIn: "/sign-in"})
}

// SignIn describes the credential form.
//
// @Summary      Sign-in page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  signInResponse
// @Success      302
// @Router       /sign-in [get]
func (h *PageHandler) SignIn(c echo.Context) error {
	return c.JSON(http.StatusOK, signInResponse{
		Action: h.loginPath,
		Method: http.MethodPost,
		Fields: []formField{
			{Name: "employeeId", Label: "Employee ID", Type: "text", Required: true},
			{Name: "password", Label: "Password", Type: "password", Required: true},
		},
	})
}

// Dashboard returns the signed-in user.
//
// @Summary      Dashboard
// @Tags         pages
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Success      302
// @Router       /dashboard [get]
func (h *PageHandler) Dashboard(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{User: session})
}

// Team lists the caller's direct reports.
//
// @Summary      Direct reports
// @Tags         pages
// @Produce      json
// @Success      200  {object}  teamResponse
// @Success      302
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/team [get]
func (h *PageHandler) Team(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	reports, err := h.identities.DirectReports(c.Request().Context(), session.Subject)
	if err != nil {
		return err
	}

	members := make([]teamMember, 0, len(reports))
	for _, r := range reports {
		members = append(members, teamMember{
			ID:         r.ID,
			EmployeeID: r.EmployeeID,
			Name:       r.DisplayName(),
			JobTitle:   r.JobTitle,
			StoreCode:  r.StoreCode,
		})
	}
	return c.JSON(http.StatusOK, teamResponse{Supervisor: session.EmployeeID, Members: members})
}
