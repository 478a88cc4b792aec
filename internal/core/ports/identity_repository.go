package ports

import (
	"context"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

// IdentityRepository is the identity store. Implementations must enforce
// uniqueness of EmployeeID.
type IdentityRepository interface {
	// FindByEmployeeID returns domain.ErrIdentityNotFound when absent.
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	// Create inserts a new identity and returns domain.ErrEmployeeIDExists on
	// a duplicate employee id.
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	// InsertIfAbsent inserts identity unless its employee id is already
	// stored. Existing documents are never modified.
	InsertIfAbsent(ctx context.Context, identity *domain.Identity) (inserted bool, err error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.Identity, error)
	ListBySupervisor(ctx context.Context, supervisorID string) ([]*domain.Identity, error)
	DeleteAll(ctx context.Context) (int64, error)
}
