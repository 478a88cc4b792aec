package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hcportal/leave-portal/internal/core/domain"
	"github.com/hcportal/leave-portal/internal/core/ports"
)

// PasswordCost is the bcrypt cost used for every stored credential.
const PasswordCost = 12

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknownUserHash is compared against when the employee id does not exist so
// both rejection paths run one bcrypt comparison.
func unknownUserHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-employee"), PasswordCost)
	})
	return dummyHash
}

// CredentialVerifier checks employee id and password pairs against the
// identity store.
type CredentialVerifier struct {
	repo    ports.IdentityRepository
	compare func(hash, password []byte) error
	log     zerolog.Logger
}

func NewCredentialVerifier(repo ports.IdentityRepository, log zerolog.Logger) *CredentialVerifier {
	return &CredentialVerifier{
		repo:    repo,
		compare: bcrypt.CompareHashAndPassword,
		log:     log,
	}
}

// Verify returns the principal for a valid pair. Every credential failure is
// domain.ErrAuthRejected; only store failures surface as other errors.
func (v *CredentialVerifier) Verify(ctx context.Context, employeeID, password string) (*domain.Principal, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" || password == "" {
		v.log.Debug().Msg("login rejected: missing credentials")
		return nil, domain.ErrAuthRejected
	}

	identity, err := v.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			_ = v.compare(unknownUserHash(), []byte(password))
			v.log.Debug().Str("employee_id", employeeID).Msg("login rejected: unknown employee id")
			return nil, domain.ErrAuthRejected
		}
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	if v.compare([]byte(identity.PasswordHash), []byte(password)) != nil {
		v.log.Debug().Str("employee_id", employeeID).Msg("login rejected: password mismatch")
		return nil, domain.ErrAuthRejected
	}

	v.log.Info().Str("employee_id", identity.EmployeeID).Str("role", string(identity.Role)).Msg("credentials verified")
	return identity.Principal(), nil
}
