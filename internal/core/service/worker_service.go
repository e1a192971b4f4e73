package service

import (
	"context"
	"errors"

	"github.com/sizafi/marketplace-api/internal/core/domain"
	"github.com/sizafi/marketplace-api/internal/core/ports"
)

// WorkerService exposes the public worker directory.
type WorkerService struct {
	users ports.UserRepository
}

func NewWorkerService(users ports.UserRepository) *WorkerService {
	return &WorkerService{users: users}
}

func (s *WorkerService) ListWorkers(ctx context.Context, trade string) ([]*domain.User, error) {
	roles := domain.WorkerTrades
	if trade != "" {
		if !domain.IsWorkerTrade(trade) {
			return nil, domain.ErrInvalidTrade
		}
		roles = []string{trade}
	}
	return s.users.ListByRoles(ctx, roles)
}

func (s *WorkerService) GetWorker(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, err
	}
	if !domain.IsWorkerTrade(user.Role) {
		return nil, domain.ErrWorkerNotFound
	}
	return user, nil
}
