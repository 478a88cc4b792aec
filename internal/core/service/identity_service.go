package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

const minPasswordLength = 8

// IdentityService handles administrative identity management.
type IdentityService struct {
	repo ports.IdentityRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewIdentityService(repo ports.IdentityRepository, log zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, log: log, now: time.Now}
}

// Create validates and stores a new identity. A duplicate employee id is
// reported as domain.ErrEmployeeIDExists and never overwrites.
func (s *IdentityService) Create(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	switch {
	case in.EmployeeID == "":
		return nil, fmt.Errorf("%w: employee id is required", domain.ErrInvalidIdentity)
	case strings.TrimSpace(in.FirstName) == "":
		return nil, fmt.Errorf("%w: first name is required", domain.ErrInvalidIdentity)
	case len(in.Password) < minPasswordLength:
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidIdentity, minPasswordLength)
	case !in.Role.Valid():
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidIdentity, in.Role)
	}

	supervisorID, err := s.checkSupervisor(ctx, in.SupervisorID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	identity := &domain.Identity{
		EmployeeID:   in.EmployeeID,
		FirstName:    strings.TrimSpace(in.FirstName),
		MiddleName:   strings.TrimSpace(in.MiddleName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         in.Role,
		SupervisorID: supervisorID,
		JobTitle:     strings.TrimSpace(in.JobTitle),
		Nationality:  strings.TrimSpace(in.Nationality),
		GosiType:     in.GosiType,
		StoreCode:    strings.TrimSpace(in.StoreCode),
		IqamaNo:      strings.TrimSpace(in.IqamaNo),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", created.EmployeeID).Str("role", string(created.Role)).Msg("identity created")
	return created, nil
}

func (s *IdentityService) DirectReports(ctx context.Context, supervisorID string) ([]*domain.Identity, error) {
	if supervisorID == "" {
		return nil, domain.ErrIdentityNotFound
	}
	return s.repo.ListBySupervisor(ctx, supervisorID)
}

// checkSupervisor enforces that a supervisor link targets an existing
// SUPERVISOR or ADMIN identity.
func (s *IdentityService) checkSupervisor(ctx context.Context, id *string) (*string, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	sup, err := s.repo.FindByID(ctx, strings.TrimSpace(*id))
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrInvalidSupervisor
		}
		return nil, fmt.Errorf("load supervisor: %w", err)
	}
	if !sup.Role.CanSupervise() {
		return nil, domain.ErrInvalidSupervisor
	}
	link := sup.ID
	return &link, nil
}
