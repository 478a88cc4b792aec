package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

// SeedConfig holds the credentials and addressing used by the seeder.
type SeedConfig struct {
	AdminPassword    string
	EmployeePassword string
	EmailDomain      string
}

// SeedAccount is a fixed account created before the employee import.
type SeedAccount struct {
	EmployeeID  string
	FirstName   string
	LastName    string
	Mailbox     string
	Password    string
	Role        domain.Role
	JobTitle    string
	Nationality string
	GosiType    domain.GosiType
	StoreCode   string
}

// DefaultSeedAccounts returns the system administrator followed by one
// supervisor per store.
func DefaultSeedAccounts(adminPassword string) []SeedAccount {
	supervisor := func(id, name, mailbox, password, store string) SeedAccount {
		return SeedAccount{
			EmployeeID:  id,
			FirstName:   name,
			Mailbox:     mailbox,
			Password:    password,
			Role:        domain.RoleSupervisor,
			JobTitle:    "Supervisor",
			Nationality: "Saudi",
			GosiType:    domain.GosiSaudi,
			StoreCode:   store,
		}
	}
	return []SeedAccount{
		{
			EmployeeID:  "HCADMIN01",
			FirstName:   "System",
			LastName:    "Administrator",
			Mailbox:     "admin",
			Password:    adminPassword,
			Role:        domain.RoleAdmin,
			JobTitle:    "System Administrator",
			Nationality: "Saudi Arabia",
			GosiType:    domain.GosiSaudi,
			StoreCode:   "HQ001",
		},
		supervisor("HCS001", "Kakkiya", "kakkiya", "adminS001", "S001"),
		supervisor("HCS003", "Jumum", "jumum", "adminS003", "S003"),
		supervisor("HCHO", "Zahidi", "zahidi", "adminHO", "HO"),
		supervisor("HCWH", "Jumla", "jumla", "adminWH", "Wholesale"),
	}
}

// Seeder populates the identity store. Every write is insert-if-absent, so
// repeated runs over the same input leave the store unchanged.
type Seeder struct {
	repo ports.IdentityRepository
	cfg  SeedConfig
	log  zerolog.Logger
	now  func() time.Time
	hash func(password []byte) ([]byte, error)

	mu                sync.RWMutex
	supervisorByStore map[string]string
}

func NewSeeder(repo ports.IdentityRepository, cfg SeedConfig, log zerolog.Logger) *Seeder {
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = "company.com"
	}
	return &Seeder{
		repo: repo,
		cfg:  cfg,
		log:  log,
		now:  time.Now,
		hash: func(p []byte) ([]byte, error) {
			return bcrypt.GenerateFromPassword(p, PasswordCost)
		},
		supervisorByStore: make(map[string]string),
	}
}

// Reset removes every identity. It is the only destructive seeder operation.
func (s *Seeder) Reset(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset identities: %w", err)
	}
	s.log.Warn().Int64("deleted", n).Msg("identity store cleared")
	return n, nil
}

// SeedAccounts ensures the fixed accounts exist and loads the store code to
// supervisor mapping used by ImportRow. It must run before any ImportRow.
func (s *Seeder) SeedAccounts(ctx context.Context) (created int, err error) {
	for _, acct := range DefaultSeedAccounts(s.cfg.AdminPassword) {
		identity := &domain.Identity{
			EmployeeID:  acct.EmployeeID,
			FirstName:   acct.FirstName,
			LastName:    acct.LastName,
			Email:       acct.Mailbox + "@" + s.cfg.EmailDomain,
			Role:        acct.Role,
			JobTitle:    acct.JobTitle,
			Nationality: acct.Nationality,
			GosiType:    acct.GosiType,
			StoreCode:   acct.StoreCode,
		}
		outcome, err := s.insertIfAbsent(ctx, identity, acct.Password)
		if err != nil {
			return created, fmt.Errorf("seed account %s: %w", acct.EmployeeID, err)
		}
		if outcome == ports.ImportCreated {
			created++
			s.log.Info().Str("employee_id", acct.EmployeeID).Str("role", string(acct.Role)).Msg("seed account created")
		}
	}

	if err := s.loadSupervisors(ctx); err != nil {
		return created, err
	}
	return created, nil
}

func (s *Seeder) loadSupervisors(ctx context.Context) error {
	supervisors, err := s.repo.ListByRole(ctx, domain.RoleSupervisor)
	if err != nil {
		return fmt.Errorf("load supervisors: %w", err)
	}

	byStore := make(map[string]string, len(supervisors))
	for _, sup := range supervisors {
		if sup.StoreCode != "" {
			byStore[sup.StoreCode] = sup.ID
		}
	}

	s.mu.Lock()
	s.supervisorByStore = byStore
	s.mu.Unlock()

	s.log.Info().Int("stores", len(byStore)).Msg("supervisor mapping loaded")
	return nil
}

// ImportRow creates an EMPLOYEE identity for row unless its employee id is
// already stored. Safe for concurrent use once SeedAccounts has returned.
func (s *Seeder) ImportRow(ctx context.Context, row ports.EmployeeRow) (ports.ImportOutcome, error) {
	identity, derived := s.employeeFromRow(row)
	outcome, err := s.insertIfAbsent(ctx, identity, s.cfg.EmployeePassword)
	if err == nil && outcome == ports.ImportSkipped && derived {
		s.checkDerivedCollision(ctx, identity, row.No)
	}
	return outcome, err
}

// checkDerivedCollision warns when a derived id is already held by a
// different person, since that row is dropped rather than re-imported.
func (s *Seeder) checkDerivedCollision(ctx context.Context, candidate *domain.Identity, rowNo string) {
	holder, err := s.repo.FindByEmployeeID(ctx, candidate.EmployeeID)
	if err != nil {
		s.log.Warn().Err(err).Str("employee_id", candidate.EmployeeID).Msg("derived id collision check failed")
		return
	}
	if samePerson(holder, candidate) {
		return
	}
	s.log.Warn().
		Str("employee_id", candidate.EmployeeID).
		Str("row", rowNo).
		Str("row_name", fullName(candidate)).
		Str("row_iqama", candidate.IqamaNo).
		Str("holder_name", fullName(holder)).
		Str("holder_iqama", holder.IqamaNo).
		Msg("derived employee id already held by another identity, row not imported")
}

func samePerson(a, b *domain.Identity) bool {
	return strings.EqualFold(a.FirstName, b.FirstName) &&
		strings.EqualFold(a.MiddleName, b.MiddleName) &&
		strings.EqualFold(a.LastName, b.LastName) &&
		a.IqamaNo == b.IqamaNo
}

func fullName(i *domain.Identity) string {
	return strings.Join(strings.Fields(i.FirstName+" "+i.MiddleName+" "+i.LastName), " ")
}

// insertIfAbsent skips the bcrypt work when the id is already present, then
// relies on the store's insert-if-absent for concurrent writers.
func (s *Seeder) insertIfAbsent(ctx context.Context, identity *domain.Identity, password string) (ports.ImportOutcome, error) {
	_, err := s.repo.FindByEmployeeID(ctx, identity.EmployeeID)
	switch {
	case err == nil:
		return ports.ImportSkipped, nil
	case !errors.Is(err, domain.ErrIdentityNotFound):
		return ports.ImportSkipped, fmt.Errorf("lookup %s: %w", identity.EmployeeID, err)
	}

	if password == "" {
		return ports.ImportSkipped, fmt.Errorf("%w: no password configured for %s", domain.ErrInvalidIdentity, identity.EmployeeID)
	}
	hash, err := s.hash([]byte(password))
	if err != nil {
		return ports.ImportSkipped, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	identity.PasswordHash = string(hash)
	identity.CreatedAt = now
	identity.UpdatedAt = now

	inserted, err := s.repo.InsertIfAbsent(ctx, identity)
	if err != nil {
		return ports.ImportSkipped, fmt.Errorf("insert %s: %w", identity.EmployeeID, err)
	}
	if !inserted {
		return ports.ImportSkipped, nil
	}
	return ports.ImportCreated, nil
}

// employeeFromRow maps row to an EMPLOYEE identity. derived reports whether
// the employee id was generated rather than read from the row.
func (s *Seeder) employeeFromRow(row ports.EmployeeRow) (identity *domain.Identity, derived bool) {
	first := strings.TrimSpace(row.FirstName)
	last := strings.TrimSpace(row.LastName)
	store := strings.TrimSpace(row.StoreCode)

	employeeID := strings.TrimSpace(row.EmployeeID)
	if employeeID == "" {
		employeeID = derivedEmployeeID(row)
		derived = true
	}

	identity = &domain.Identity{
		EmployeeID:  employeeID,
		FirstName:   orDefault(first, "Unknown"),
		MiddleName:  strings.TrimSpace(row.MiddleName),
		LastName:    orDefault(last, "Unknown"),
		Email:       s.employeeEmail(first, last),
		Role:        domain.RoleEmployee,
		JobTitle:    strings.TrimSpace(row.JobTitle),
		Nationality: strings.TrimSpace(row.Nationality),
		GosiType:    domain.ParseGosiType(row.GosiType),
		StoreCode:   store,
		IqamaNo:     strings.TrimSpace(row.IqamaNo),
	}

	if store != "" {
		s.mu.RLock()
		supID, ok := s.supervisorByStore[store]
		s.mu.RUnlock()
		if ok {
			identity.SupervisorID = &supID
		}
	}
	return identity, derived
}

// employeeEmail builds first.last@domain, lowercased with inner spaces
// removed.
func (s *Seeder) employeeEmail(first, last string) string {
	local := func(v, fallback string) string {
		v = strings.Join(strings.Fields(strings.ToLower(v)), "")
		return orDefault(v, fallback)
	}
	return local(first, "user") + "." + local(last, "emp") + "@" + s.cfg.EmailDomain
}

// derivedEmployeeID gives rows without an employee id a stable HC#### id so
// re-imports hit the same key.
func derivedEmployeeID(row ports.EmployeeRow) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(row.ShardKey())))
	return fmt.Sprintf("HC%d", 1000+h.Sum32()%9000)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
