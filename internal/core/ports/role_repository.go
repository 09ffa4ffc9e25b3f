package ports

import (
	"context"
	"time"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// RoleRepository reads role definitions. "Effective" means
// effective_at <= now and (expires_at unset or expires_at > now).
type RoleRepository interface {
	// FindEffective returns the roles effective at now, ordered by ordinal ascending.
	FindEffective(ctx context.Context, now time.Time) ([]domain.Role, error)
	// FindEffectiveByCode returns domain.ErrRoleNotFound when no effective role has code.
	FindEffectiveByCode(ctx context.Context, code string, now time.Time) (*domain.Role, error)
	// Upsert creates or replaces the role identified by its code.
	Upsert(ctx context.Context, role domain.Role) (*domain.Role, error)
}
