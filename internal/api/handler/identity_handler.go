package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

// IdentityHandler handles administrative identity management.
type IdentityHandler struct {
	service ports.IdentityService
}

func NewIdentityHandler(service ports.IdentityService) *IdentityHandler {
	return &IdentityHandler{service: service}
}

// Create registers a new identity.
//
// @Summary      Create an identity
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createIdentityRequest  true  "Identity details"
// @Success      201   {object}  domain.Identity
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Security     BearerAuth
// @Router       /api/admin/identities [post]
func (h *IdentityHandler) Create(c echo.Context) error {
	var req createIdentityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, err := h.service.Create(c.Request().Context(), ports.CreateIdentityInput{
		EmployeeID:   req.EmployeeID,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		Role:         domain.Role(req.Role),
		SupervisorID: nonEmpty(req.SupervisorID),
		JobTitle:     req.JobTitle,
		Nationality:  req.Nationality,
		GosiType:     domain.ParseGosiType(req.GosiType),
		StoreCode:    req.StoreCode,
		IqamaNo:      req.IqamaNo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, identity)
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
