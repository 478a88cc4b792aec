package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

func newIdentityFixture() (*IdentityService, *stubIdentityRepo) {
	repo := newStubIdentityRepo()
	repo.put(&domain.Identity{ID: "sup-1", EmployeeID: "HCS001", Role: domain.RoleSupervisor, StoreCode: "S001"})
	repo.put(&domain.Identity{ID: "emp-1", EmployeeID: "HC2001", Role: domain.RoleEmployee})
	return NewIdentityService(repo, zerolog.Nop()), repo
}

func validInput() ports.CreateIdentityInput {
	return ports.CreateIdentityInput{
		EmployeeID:   " HC3001 ",
		FirstName:    "Omar",
		LastName:     "Khan",
		Email:        "Omar.Khan@Company.com",
		Password:     "password123",
		Role:         domain.RoleEmployee,
		SupervisorID: strPtr("sup-1"),
		StoreCode:    "S001",
	}
}

func TestIdentityService_Create_Success(t *testing.T) {
	svc, repo := newIdentityFixture()

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.EmployeeID != "HC3001" {
		t.Fatalf("expected trimmed employee id, got %q", created.EmployeeID)
	}
	if created.Email != "omar.khan@company.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}
	if created.SupervisorID == nil || *created.SupervisorID != "sup-1" {
		t.Fatalf("expected supervisor link sup-1, got %v", created.SupervisorID)
	}

	stored := repo.snapshot()["HC3001"]
	if stored.PasswordHash == "password123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(stored.PasswordHash)); cost != PasswordCost {
		t.Fatalf("expected bcrypt cost %d, got %d", PasswordCost, cost)
	}
}

func TestIdentityService_Create_Duplicate(t *testing.T) {
	svc, repo := newIdentityFixture()
	in := validInput()
	in.EmployeeID = "HC2001"

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrEmployeeIDExists) {
		t.Fatalf("expected ErrEmployeeIDExists, got %v", err)
	}
	if repo.snapshot()["HC2001"].FirstName != "" {
		t.Fatalf("existing identity must not be overwritten")
	}
}

func TestIdentityService_Create_InvalidSupervisor(t *testing.T) {
	svc, _ := newIdentityFixture()

	for _, supID := range []string{"missing", "emp-1"} {
		in := validInput()
		in.SupervisorID = strPtr(supID)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidSupervisor) {
			t.Fatalf("supervisor %q: expected ErrInvalidSupervisor, got %v", supID, err)
		}
	}
}

func TestIdentityService_Create_Validation(t *testing.T) {
	svc, _ := newIdentityFixture()

	mutations := map[string]func(*ports.CreateIdentityInput){
		"missing employee id": func(in *ports.CreateIdentityInput) { in.EmployeeID = "  " },
		"missing first name":  func(in *ports.CreateIdentityInput) { in.FirstName = "" },
		"short password":      func(in *ports.CreateIdentityInput) { in.Password = "short" },
		"unknown role":        func(in *ports.CreateIdentityInput) { in.Role = "ROOT" },
	}
	for name, mutate := range mutations {
		in := validInput()
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidIdentity) {
			t.Fatalf("%s: expected ErrInvalidIdentity, got %v", name, err)
		}
	}
}

func TestIdentityService_DirectReports(t *testing.T) {
	svc, repo := newIdentityFixture()
	repo.put(&domain.Identity{ID: "emp-2", EmployeeID: "HC2002", Role: domain.RoleEmployee, SupervisorID: strPtr("sup-1")})
	repo.put(&domain.Identity{ID: "emp-3", EmployeeID: "HC2003", Role: domain.RoleEmployee, SupervisorID: strPtr("sup-9")})

	reports, err := svc.DirectReports(context.Background(), "sup-1")
	if err != nil {
		t.Fatalf("DirectReports returned error: %v", err)
	}
	if len(reports) != 1 || reports[0].EmployeeID != "HC2002" {
		t.Fatalf("unexpected reports: %+v", reports)
	}
}
