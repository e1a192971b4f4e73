package ports

import (
	"context"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

// WorkerService exposes the public worker directory.
type WorkerService interface {
	// ListWorkers returns users holding a worker trade, optionally filtered
	// to one trade.
	ListWorkers(ctx context.Context, trade string) ([]*domain.User, error)
	// GetWorker returns a single worker; ErrWorkerNotFound when the id does
	// not resolve to a worker-role user.
	GetWorker(ctx context.Context, id string) (*domain.User, error)
}
