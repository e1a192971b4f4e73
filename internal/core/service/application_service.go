package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sizafi/marketplace-api/internal/core/domain"
	"github.com/sizafi/marketplace-api/internal/core/ports"
)

const defaultDownloadTTL = 15 * time.Minute

// ApplicationService implements the submit/review workflow.
type ApplicationService struct {
	apps        ports.ApplicationRepository
	users       ports.UserRepository
	store       ports.DocumentStore
	downloadTTL time.Duration
	log         zerolog.Logger
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	users ports.UserRepository,
	store ports.DocumentStore,
	downloadTTL time.Duration,
	log zerolog.Logger,
) *ApplicationService {
	if downloadTTL <= 0 {
		downloadTTL = defaultDownloadTTL
	}
	return &ApplicationService{apps: apps, users: users, store: store, downloadTTL: downloadTTL, log: log}
}

// Submit stores the attached document, snapshots the applicant identity and
// creates the application in pending status. At most one pending application
// per applicant is allowed.
func (s *ApplicationService) Submit(ctx context.Context, input ports.SubmitApplicationInput) (*ports.SubmittedApplication, error) {
	if !domain.IsWorkerTrade(input.Trade) {
		return nil, domain.ErrInvalidTrade
	}
	if input.File == nil || input.Size == 0 {
		return nil, domain.ErrDocumentRequired
	}

	applicant, err := s.users.FindByID(ctx, input.ApplicantID)
	if err != nil {
		return nil, err
	}

	if _, err := s.apps.FindPendingByApplicant(ctx, input.ApplicantID); err == nil {
		return nil, domain.ErrPendingApplication
	} else if !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, err
	}

	key := documentKey(input.FileName)
	stored, err := s.store.Store(ctx, key, input.FileName, input.ContentType, input.Size, input.File)
	if err != nil {
		s.log.Error().Err(err).Str("applicant_id", input.ApplicantID).Msg("document upload failed")
		return nil, fmt.Errorf("store document: %w", err)
	}

	now := time.Now().UTC()
	app := &domain.Application{
		ApplicantID: applicant.ID,
		FullName:    applicant.FullName,
		Email:       applicant.Email,
		Document: domain.Document{
			URL:      stored.URL,
			Key:      stored.Key,
			FileName: stored.FileName,
			Size:     stored.Size,
		},
		Trade:     input.Trade,
		Status:    domain.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.apps.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	downloadURL, err := s.store.PresignDownload(ctx, stored.Key, s.downloadTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("key", stored.Key).Msg("presign download failed, falling back to raw url")
		downloadURL = stored.URL
	}

	s.log.Info().
		Str("applicant_id", input.ApplicantID).
		Str("trade", input.Trade).
		Msg("application submitted")

	return &ports.SubmittedApplication{Application: created, DownloadURL: downloadURL}, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, applicantID string) ([]*domain.Application, error) {
	return s.apps.ListByApplicant(ctx, applicantID)
}

// ListAll returns all applications, optionally restricted to one status, with
// the applicant's current identity joined in.
func (s *ApplicationService) ListAll(ctx context.Context, status domain.ApplicationStatus) ([]ports.ApplicationWithApplicant, error) {
	apps, err := s.apps.List(ctx, status)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ApplicationWithApplicant, 0, len(apps))
	for _, app := range apps {
		entry := ports.ApplicationWithApplicant{Application: app}
		if user, err := s.users.FindByID(ctx, app.ApplicantID); err == nil {
			entry.Applicant = &ports.ApplicantInfo{
				ID:       user.ID,
				FullName: user.FullName,
				Email:    user.Email,
				Role:     user.Role,
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// Review resolves a pending application. The status write is conditional on
// the record still being pending, so a second review of the same application
// fails with ErrApplicationResolved. On approval the applicant's role is
// promoted to the applied-for trade; the promotion is an absolute set and is
// therefore safe to re-apply.
func (s *ApplicationService) Review(ctx context.Context, input ports.ReviewInput) (*domain.Application, error) {
	if !domain.ValidDecision(input.Decision) {
		return nil, domain.ErrInvalidDecision
	}

	resolved, err := s.apps.Resolve(ctx, input.ApplicationID, input.Decision, input.Note, input.ReviewerID)
	if err != nil {
		return nil, err
	}

	if input.Decision == domain.ApplicationApproved {
		if err := s.users.UpdateRole(ctx, resolved.ApplicantID, resolved.Trade); err != nil {
			// The application is already approved at this point. The role
			// write is idempotent, so the promotion can be re-driven from
			// the approved record.
			s.log.Error().Err(err).
				Str("application_id", resolved.ID).
				Str("applicant_id", resolved.ApplicantID).
				Msg("role promotion failed after approval")
			return nil, fmt.Errorf("promote applicant: %w", err)
		}
	}

	s.log.Info().
		Str("application_id", resolved.ID).
		Str("decision", string(input.Decision)).
		Str("reviewer_id", input.ReviewerID).
		Msg("application reviewed")

	return resolved, nil
}

// documentKey derives a unique storage key, keeping the original extension.
func documentKey(fileName string) string {
	ext := path.Ext(fileName)
	if ext == "" {
		ext = ".pdf"
	}
	return "applications/" + uuid.NewString() + ext
}
