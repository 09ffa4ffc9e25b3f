package handler

import (
	"context"

	"github.com/examplews/greeting-service/internal/core/domain"
	"github.com/examplews/greeting-service/internal/core/ports"
)

type stubGreetingService struct {
	listFn   func(ctx context.Context) ([]*domain.Greeting, error)
	getFn    func(ctx context.Context, id string) (*domain.Greeting, error)
	createFn func(ctx context.Context, in ports.CreateGreetingInput) (*ports.GreetingResult, error)
	updateFn func(ctx context.Context, in ports.UpdateGreetingInput) (*domain.Greeting, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubGreetingService) List(ctx context.Context) ([]*domain.Greeting, error) {
	return s.listFn(ctx)
}

func (s *stubGreetingService) Get(ctx context.Context, id string) (*domain.Greeting, error) {
	return s.getFn(ctx, id)
}

func (s *stubGreetingService) Create(ctx context.Context, in ports.CreateGreetingInput) (*ports.GreetingResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubGreetingService) Update(ctx context.Context, in ports.UpdateGreetingInput) (*domain.Greeting, error) {
	return s.updateFn(ctx, in)
}

func (s *stubGreetingService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubRoleService struct {
	roles []domain.Role
	err   error
}

func (s *stubRoleService) ListEffective(context.Context) ([]domain.Role, error) {
	return s.roles, s.err
}

func (s *stubRoleService) GetEffective(_ context.Context, code string) (*domain.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.roles {
		if r.Code == code {
			r := r
			return &r, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}
