package ports

import (
	"context"

	"github.com/examplews/greeting-service/internal/core/domain"
)

// AuthEventService records authentication attempts.
type AuthEventService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
