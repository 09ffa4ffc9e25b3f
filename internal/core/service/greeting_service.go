package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
	"github.com/examplews/greeting-service/internal/core/reqctx"
)

// IdempotencyStore remembers which greeting an actor's Idempotency-Key
// produced (Redis). Reserve either claims the key or reports the greeting an
// earlier call created; an empty ID without a reservation means in flight.
type IdempotencyStore interface {
	Reserve(ctx context.Context, actor, key string) (existingID string, reserved bool, err error)
	Complete(ctx context.Context, actor, key, greetingID string) error
	Release(ctx context.Context, actor, key string) error
}

type GreetingService struct {
	repo ports.GreetingRepository
	idem IdempotencyStore
	now  func() time.Time
	log  zerolog.Logger
}

// NewGreetingService returns a GreetingService. idem may be nil, which
// disables Idempotency-Key replay.
func NewGreetingService(repo ports.GreetingRepository, idem IdempotencyStore, log zerolog.Logger) *GreetingService {
	return &GreetingService{repo: repo, idem: idem, now: time.Now, log: log}
}

func (s *GreetingService) List(ctx context.Context) ([]*domain.Greeting, error) {
	return s.repo.List(ctx)
}

func (s *GreetingService) Get(ctx context.Context, id string) (*domain.Greeting, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a greeting stamped with the acting username. Without one
// the write is aborted with domain.ErrMissingPrincipal.
func (s *GreetingService) Create(ctx context.Context, in ports.CreateGreetingInput) (*ports.GreetingResult, error) {
	actor, err := reqctx.RequireUsername(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("greeting create without principal")
		return nil, err
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	key := in.IdempotencyKey
	reserved := false
	if key != "" && s.idem != nil {
		existing, ok, err := s.reserve(ctx, actor, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.GreetingResult{Greeting: existing, AlreadyExisted: true}, nil
		}
		reserved = ok
	}

	g := &domain.Greeting{Text: text}
	if err := g.StampCreate(actor, s.now()); err != nil {
		s.release(ctx, actor, key, reserved)
		return nil, err
	}

	created, err := s.repo.Create(ctx, g)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create greeting")
		s.release(ctx, actor, key, reserved)
		return nil, err
	}

	if reserved {
		if err := s.idem.Complete(ctx, actor, key, created.ID); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to remember idempotency key")
		}
	}

	s.log.Info().Str("id", created.ID).Str("created_by", actor).Msg("greeting created")
	return &ports.GreetingResult{Greeting: created}, nil
}

// reserve claims key for actor or returns the greeting an earlier call with
// it created. Store errors are logged and the create proceeds unguarded.
func (s *GreetingService) reserve(ctx context.Context, actor, key string) (*domain.Greeting, bool, error) {
	id, reserved, err := s.idem.Reserve(ctx, actor, key)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency store failed, creating anyway")
		return nil, false, nil
	}
	if reserved {
		return nil, true, nil
	}
	if id == "" {
		return nil, false, fmt.Errorf("%w: key %q", domain.ErrIdempotencyInFlight, key)
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// The key stays with its original owner; this create is not recorded.
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotent greeting vanished")
		return nil, false, nil
	}
	s.log.Info().Str("idempotency_key", key).Str("id", existing.ID).Msg("idempotent replay")
	return existing, false, nil
}

func (s *GreetingService) release(ctx context.Context, actor, key string, reserved bool) {
	if !reserved {
		return
	}
	if err := s.idem.Release(ctx, actor, key); err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

// Update replaces the text of a greeting the caller last read at in.Version.
func (s *GreetingService) Update(ctx context.Context, in ports.UpdateGreetingInput) (*domain.Greeting, error) {
	actor, err := reqctx.RequireUsername(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("id", in.ID).Msg("greeting update without principal")
		return nil, err
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	g, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	g.Text = text
	g.Version = in.Version
	if err := g.StampUpdate(actor, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, g)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", updated.ID).Str("updated_by", actor).Int("version", updated.Version).Msg("greeting updated")
	return updated, nil
}

func (s *GreetingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	actor, _ := reqctx.Username(ctx)
	s.log.Info().Str("id", id).Str("deleted_by", actor).Msg("greeting deleted")
	return nil
}
