package service

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	users   map[string]*domain.Account
	findErr error
	lookups int
}

func newStubAccountRepo(accounts ...*domain.Account) *stubAccountRepo {
	r := &stubAccountRepo{users: make(map[string]*domain.Account)}
	for _, a := range accounts {
		r.users[a.Username] = a
	}
	return r
}

func cloneAccount(a *domain.Account) *domain.Account {
	clone := *a
	clone.Roles = slices.Clone(a.Roles)
	return &clone
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.lookups++
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.users[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if _, exists := r.users[a.Username]; exists {
		return nil, domain.ErrAccountExists
	}
	clone := cloneAccount(a)
	clone.ID = "acct-" + a.Username
	r.users[a.Username] = clone
	return cloneAccount(clone), nil
}

type stubRoleRepo struct {
	roles    []domain.Role
	upserted []domain.Role
	err      error
}

func (r *stubRoleRepo) FindEffective(_ context.Context, now time.Time) ([]domain.Role, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Role
	for _, role := range r.roles {
		if role.IsEffective(now) {
			out = append(out, role)
		}
	}
	slices.SortFunc(out, func(a, b domain.Role) int { return a.Ordinal - b.Ordinal })
	return out, nil
}

func (r *stubRoleRepo) FindEffectiveByCode(_ context.Context, code string, now time.Time) (*domain.Role, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, role := range r.roles {
		if role.Code == code && role.IsEffective(now) {
			found := role
			return &found, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) Upsert(_ context.Context, role domain.Role) (*domain.Role, error) {
	if r.err != nil {
		return nil, r.err
	}
	role.ID = "role-" + role.Code
	r.upserted = append(r.upserted, role)
	return &role, nil
}

type stubGreetingRepo struct {
	byID      map[string]*domain.Greeting
	seq       int
	createErr error
}

func newStubGreetingRepo() *stubGreetingRepo {
	return &stubGreetingRepo{byID: make(map[string]*domain.Greeting)}
}

func (r *stubGreetingRepo) List(_ context.Context) ([]*domain.Greeting, error) {
	out := make([]*domain.Greeting, 0, len(r.byID))
	for _, g := range r.byID {
		clone := *g
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubGreetingRepo) FindByID(_ context.Context, id string) (*domain.Greeting, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrGreetingNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGreetingRepo) Create(_ context.Context, g *domain.Greeting) (*domain.Greeting, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *g
	clone.ID = strconv.Itoa(r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGreetingRepo) Update(_ context.Context, g *domain.Greeting) (*domain.Greeting, error) {
	stored, ok := r.byID[g.ID]
	if !ok {
		return nil, domain.ErrGreetingNotFound
	}
	if stored.Version != g.Version {
		return nil, domain.ErrVersionConflict
	}
	clone := *g
	clone.Version++
	r.byID[g.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGreetingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrGreetingNotFound
	}
	delete(r.byID, id)
	return nil
}

// stubIdempotency keeps actor-scoped keys; an empty value is a pending
// reservation.
type stubIdempotency struct {
	keys       map[string]string
	reserveErr error
	released   []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, actor, key string) (string, bool, error) {
	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	id, ok := s.keys[actor+":"+key]
	if ok {
		return id, false, nil
	}
	s.keys[actor+":"+key] = ""
	return "", true, nil
}

func (s *stubIdempotency) Complete(_ context.Context, actor, key, id string) error {
	s.keys[actor+":"+key] = id
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, actor, key string) error {
	delete(s.keys, actor+":"+key)
	s.released = append(s.released, actor+":"+key)
	return nil
}

type stubAuthEventRepo struct {
	inserted []*domain.AuthEvent
	err      error
}

func (r *stubAuthEventRepo) InsertEvent(_ context.Context, e *domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, e)
	return nil
}

var errStoreDown = errors.New("store unavailable")
