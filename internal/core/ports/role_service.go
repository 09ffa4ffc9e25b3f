package ports

import (
	"context"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// RoleService exposes the currently effective roles for display.
type RoleService interface {
	ListEffective(ctx context.Context) ([]domain.Role, error)
	GetEffective(ctx context.Context, code string) (*domain.Role, error)
}
