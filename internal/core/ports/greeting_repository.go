package ports

import (
	"context"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// GreetingRepository defines persistence operations for greetings.
type GreetingRepository interface {
	List(ctx context.Context) ([]*domain.Greeting, error)
	FindByID(ctx context.Context, id string) (*domain.Greeting, error)
	Create(ctx context.Context, g *domain.Greeting) (*domain.Greeting, error)
	// Update persists g only if the stored version equals g.Version, and
	// increments the version. A mismatch yields domain.ErrVersionConflict.
	Update(ctx context.Context, g *domain.Greeting) (*domain.Greeting, error)
	Delete(ctx context.Context, id string) error
}
