package ports

import (
	"context"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListByRoles returns users whose role is in roles, newest first.
	ListByRoles(ctx context.Context, roles []string) ([]*domain.User, error)
	// UpdateRole sets the user's role. The write is an absolute set, so
	// repeating it with the same role is a no-op.
	UpdateRole(ctx context.Context, id string, role string) error
}
