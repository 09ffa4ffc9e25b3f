package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
)

// PasswordHasher produces the one-way hash stored for a new account.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// AccountService provisions accounts for administrators.
type AccountService struct {
	accounts ports.AccountRepository
	roles    ports.RoleRepository
	hasher   PasswordHasher
	now      func() time.Time
	log      zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, roles ports.RoleRepository, hasher PasswordHasher, log zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, roles: roles, hasher: hasher, now: time.Now, log: log}
}

// Create stores a new enabled account. Every role code must name a
// currently effective role; an account without roles is refused because it
// could never authenticate.
func (s *AccountService) Create(ctx context.Context, in ports.CreateAccountInput) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if len(in.RoleCodes) == 0 {
		return nil, fmt.Errorf("%w: at least one role is required", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	roles := make([]domain.Role, 0, len(in.RoleCodes))
	seen := make(map[string]struct{}, len(in.RoleCodes))
	for _, code := range in.RoleCodes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		role, err := s.roles.FindEffectiveByCode(ctx, code, now)
		if err != nil {
			return nil, fmt.Errorf("create account: role %q: %w", code, err)
		}
		roles = append(roles, *role)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	account := domain.NewAccount(username, hash, roles)
	account.CreatedAt = now

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("username", created.Username).
		Int("roles", len(created.Roles)).
		Msg("account created")

	return created, nil
}
