package ports

import (
	"context"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// AuthService authenticates presented credentials into a principal.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (domain.Principal, error)
}

// AccountService provisions accounts. It is not reachable over HTTP.
type AccountService interface {
	Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
}

// CreateAccountInput carries a plaintext password that is hashed before storage.
type CreateAccountInput struct {
	Username  string
	Password  string
	RoleCodes []string
}
