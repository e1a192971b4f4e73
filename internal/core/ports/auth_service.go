package ports

import (
	"context"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     string // defaults to "user" when empty
}

// AuthService implements signup, login and session lookup.
type AuthService interface {
	// Register creates an account and returns a signed session token with
	// the created identity.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// Login authenticates by email and password. Lookup and hash-comparison
	// failures both surface as ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Me resolves the authenticated caller's identity by id.
	Me(ctx context.Context, userID string) (*domain.User, error)
}
