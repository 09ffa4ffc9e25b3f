package ports

import (
	"context"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// CreateGreetingInput carries the data for a new greeting.
type CreateGreetingInput struct {
	Text           string
	IdempotencyKey string
}

// UpdateGreetingInput carries a replacement text and the version the caller last read.
type UpdateGreetingInput struct {
	ID      string
	Text    string
	Version int
}

// GreetingResult wraps a greeting returned from a create.
type GreetingResult struct {
	Greeting *domain.Greeting
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// GreetingService defines use-case operations for greetings. Create and
// Update require an authenticated username in the request context.
type GreetingService interface {
	List(ctx context.Context) ([]*domain.Greeting, error)
	Get(ctx context.Context, id string) (*domain.Greeting, error)
	Create(ctx context.Context, input CreateGreetingInput) (*GreetingResult, error)
	Update(ctx context.Context, input UpdateGreetingInput) (*domain.Greeting, error)
	Delete(ctx context.Context, id string) error
}
