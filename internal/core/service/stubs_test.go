package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hcportal/leave-portal/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubIdentityRepo struct {
	mu       sync.Mutex
	byEmpID  map[string]*domain.Identity
	findErr  error // if set, FindByEmployeeID returns this error
	lookups  int
	inserted int
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byEmpID: make(map[string]*domain.Identity)}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	if i == nil {
		return nil
	}
	clone := *i
	if i.SupervisorID != nil {
		id := *i.SupervisorID
		clone.SupervisorID = &id
	}
	return &clone
}

func (r *stubIdentityRepo) put(i *domain.Identity) *domain.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.putLocked(i)
}

func (r *stubIdentityRepo) putLocked(i *domain.Identity) *domain.Identity {
	clone := cloneIdentity(i)
	if clone.ID == "" {
		clone.ID = "id-" + clone.EmployeeID
	}
	r.byEmpID[clone.EmployeeID] = clone
	return cloneIdentity(clone)
}

func (r *stubIdentityRepo) FindByEmployeeID(_ context.Context, employeeID string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.findErr != nil {
		return nil, r.findErr
	}
	i, ok := r.byEmpID[employeeID]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneIdentity(i), nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byEmpID {
		if i.ID == id {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) Create(_ context.Context, i *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmpID[i.EmployeeID]; exists {
		return nil, domain.ErrEmployeeIDExists
	}
	return r.putLocked(i), nil
}

func (r *stubIdentityRepo) InsertIfAbsent(_ context.Context, i *domain.Identity) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmpID[i.EmployeeID]; exists {
		return false, nil
	}
	r.putLocked(i)
	r.inserted++
	return true, nil
}

func (r *stubIdentityRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Identity
	for _, i := range r.byEmpID {
		if i.Role == role {
			out = append(out, cloneIdentity(i))
		}
	}
	return out, nil
}

func (r *stubIdentityRepo) ListBySupervisor(_ context.Context, supervisorID string) ([]*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Identity
	for _, i := range r.byEmpID {
		if i.SupervisorID != nil && *i.SupervisorID == supervisorID {
			out = append(out, cloneIdentity(i))
		}
	}
	return out, nil
}

func (r *stubIdentityRepo) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.byEmpID))
	r.byEmpID = make(map[string]*domain.Identity)
	return n, nil
}

func (r *stubIdentityRepo) snapshot() map[string]domain.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.Identity, len(r.byEmpID))
	for k, v := range r.byEmpID {
		out[k] = *cloneIdentity(v)
	}
	return out
}

// ---------------------------------------------------------------------------
// Other stubs
// ---------------------------------------------------------------------------

type stubThrottle struct {
	locked    time.Duration
	lockedErr error
	lockAfter int
	lockFor   time.Duration
	failures  map[string]int
	resets    []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) Locked(_ context.Context, _ string) (time.Duration, error) {
	return t.locked, t.lockedErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, key string) (time.Duration, error) {
	t.failures[key]++
	if t.lockAfter > 0 && t.failures[key] >= t.lockAfter {
		return t.lockFor, nil
	}
	return 0, nil
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	delete(t.failures, key)
	t.resets = append(t.resets, key)
	return nil
}

type stubIssuer struct {
	err error
}

func (i *stubIssuer) Issue(p *domain.Principal) (string, time.Time, error) {
	if i.err != nil {
		return "", time.Time{}, i.err
	}
	return "token-for-" + p.EmployeeID, time.Now().Add(time.Hour), nil
}

var errStoreDown = errors.New("store unavailable")

// mustHash uses the minimum cost to keep tests fast; comparison works for
// any cost.
func mustHash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}

func strPtr(s string) *string { return &s }
