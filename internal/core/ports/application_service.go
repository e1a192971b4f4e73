package ports

import (
	"context"
	"io"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

// SubmitApplicationInput carries a worker-role application with its attached
// document. The applicant's name and email are snapshotted from their account
// record, never from the request.
type SubmitApplicationInput struct {
	ApplicantID string
	Trade       string
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader // nil when no document was attached
}

// SubmittedApplication is the created record plus a time-limited download URL
// for the stored document.
type SubmittedApplication struct {
	Application *domain.Application `json:"application"`
	DownloadURL string              `json:"download_url"`
}

// ApplicantInfo is the applicant identity joined into admin listings.
type ApplicantInfo struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ApplicationWithApplicant pairs an application with its applicant's current
// identity.
type ApplicationWithApplicant struct {
	Application *domain.Application `json:"application"`
	Applicant   *ApplicantInfo      `json:"applicant,omitempty"`
}

// ReviewInput carries an admin decision on one application.
type ReviewInput struct {
	ApplicationID string
	Decision      domain.ApplicationStatus
	Note          string
	ReviewerID    string
}

// ApplicationService implements the submit/review workflow.
type ApplicationService interface {
	Submit(ctx context.Context, input SubmitApplicationInput) (*SubmittedApplication, error)
	ListMine(ctx context.Context, applicantID string) ([]*domain.Application, error)
	ListAll(ctx context.Context, status domain.ApplicationStatus) ([]ApplicationWithApplicant, error)
	// Review resolves a pending application. When the decision is approved,
	// the applicant's role is promoted to the applied-for trade.
	Review(ctx context.Context, input ReviewInput) (*domain.Application, error)
}
