package ports

import (
	"context"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

// ApplicationRepository defines persistence operations for worker applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// FindPendingByApplicant returns the applicant's pending application, or
	// ErrApplicationNotFound when none exists.
	FindPendingByApplicant(ctx context.Context, applicantID string) (*domain.Application, error)
	// ListByApplicant returns the applicant's applications, newest first.
	ListByApplicant(ctx context.Context, applicantID string) ([]*domain.Application, error)
	// List returns all applications, newest first, optionally restricted to
	// one status (empty = all).
	List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.Application, error)
	// Resolve conditionally transitions the application from pending to the
	// given terminal status and records feedback and the reviewer. The write
	// applies only while the stored status is still pending: it returns
	// ErrApplicationResolved when the record is already terminal and
	// ErrApplicationNotFound when the id does not resolve.
	Resolve(ctx context.Context, id string, status domain.ApplicationStatus, feedback, reviewerID string) (*domain.Application, error)
}
