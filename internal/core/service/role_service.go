package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
)

// DefaultRoles are installed by EnsureDefaults. They are open-ended.
var DefaultRoles = []domain.Role{
	{Code: domain.RoleUser, Label: "User", Ordinal: 0},
	{Code: domain.RoleAdmin, Label: "Administrator", Ordinal: 1},
	{Code: domain.RoleSysadmin, Label: "System Administrator", Ordinal: 2},
}

var rolesEpoch = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

type RoleService struct {
	repo ports.RoleRepository
	now  func() time.Time
	log  zerolog.Logger
}

func NewRoleService(repo ports.RoleRepository, log zerolog.Logger) *RoleService {
	return &RoleService{repo: repo, now: time.Now, log: log}
}

// ListEffective returns the roles effective right now, ordinal ascending.
func (s *RoleService) ListEffective(ctx context.Context) ([]domain.Role, error) {
	return s.repo.FindEffective(ctx, s.now().UTC())
}

// GetEffective returns domain.ErrRoleNotFound for unknown or inactive codes.
func (s *RoleService) GetEffective(ctx context.Context, code string) (*domain.Role, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrRoleNotFound
	}
	return s.repo.FindEffectiveByCode(ctx, code, s.now().UTC())
}

// EnsureDefaults upserts DefaultRoles.
func (s *RoleService) EnsureDefaults(ctx context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(DefaultRoles))
	for _, r := range DefaultRoles {
		r.EffectiveAt = rolesEpoch
		saved, err := s.repo.Upsert(ctx, r)
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("code", saved.Code).Msg("role ensured")
		out = append(out, *saved)
	}
	return out, nil
}
