package ports

import (
	"context"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

// CreateIdentityInput carries an administrative identity creation request.
type CreateIdentityInput struct {
	EmployeeID   string
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	Password     string
	Role         domain.Role
	SupervisorID *string
	JobTitle     string
	Nationality  string
	GosiType     domain.GosiType
	StoreCode    string
	IqamaNo      string
}

// IdentityService manages identities outside the login path.
type IdentityService interface {
	Create(ctx context.Context, in CreateIdentityInput) (*domain.Identity, error)
	// DirectReports lists identities whose supervisor link points at
	// supervisorID.
	DirectReports(ctx context.Context, supervisorID string) ([]*domain.Identity, error)
}
