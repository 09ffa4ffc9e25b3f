package ports

import (
	"context"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// AccountRepository is the credential store consumed by the auth core.
// FindByUsername returns domain.ErrAccountNotFound when no account matches.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
