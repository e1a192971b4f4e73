package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sizafi/marketplace-api/internal/core/domain"
	"github.com/sizafi/marketplace-api/internal/core/ports"
)

func submitInput(applicantID string) ports.SubmitApplicationInput {
	doc := "%PDF-1.4 fake"
	return ports.SubmitApplicationInput{
		ApplicantID: applicantID,
		Trade:       "plumber",
		FileName:    "certificate.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(doc)),
		File:        strings.NewReader(doc),
	}
}

func newAppService(apps *stubAppRepo, users *stubUserRepo, store *stubDocumentStore) *ApplicationService {
	return NewApplicationService(apps, users, store, time.Minute, zerolog.Nop())
}

func TestApplicationService_Submit_Success(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	applicant := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	store := &stubDocumentStore{}
	svc := newAppService(apps, users, store)

	result, err := svc.Submit(context.Background(), submitInput(applicant.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.Application.Status != domain.ApplicationPending {
		t.Fatalf("expected pending status, got %s", result.Application.Status)
	}
	if result.Application.Document.Key == "" {
		t.Fatalf("expected a document key")
	}
	if !strings.HasSuffix(result.Application.Document.Key, ".pdf") {
		t.Fatalf("expected key to keep the extension, got %s", result.Application.Document.Key)
	}
	if len(store.stored) != 1 {
		t.Fatalf("expected one stored object, got %d", len(store.stored))
	}
	if !strings.Contains(result.DownloadURL, "signed=1") {
		t.Fatalf("expected a presigned download url, got %s", result.DownloadURL)
	}
}

// The stored name and email come from the applicant's account record, so a
// request cannot claim someone else's identity.
func TestApplicationService_Submit_SnapshotsAccountIdentity(t *testing.T) {
	users := newStubUserRepo()
	applicant := users.add(&domain.User{FullName: "Alice Dlamini", Email: "alice@example.com", Role: domain.RoleUser})
	svc := newAppService(newStubAppRepo(), users, &stubDocumentStore{})

	result, err := svc.Submit(context.Background(), submitInput(applicant.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.Application.FullName != "Alice Dlamini" {
		t.Fatalf("expected snapshot of account name, got %q", result.Application.FullName)
	}
	if result.Application.Email != "alice@example.com" {
		t.Fatalf("expected snapshot of account email, got %q", result.Application.Email)
	}
}

func TestApplicationService_Submit_UnknownApplicant(t *testing.T) {
	svc := newAppService(newStubAppRepo(), newStubUserRepo(), &stubDocumentStore{})

	if _, err := svc.Submit(context.Background(), submitInput("ghost")); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestApplicationService_Submit_InvalidTrade(t *testing.T) {
	svc := newAppService(newStubAppRepo(), newStubUserRepo(), &stubDocumentStore{})

	input := submitInput("user-1")
	input.Trade = "astronaut"
	if _, err := svc.Submit(context.Background(), input); !errors.Is(err, domain.ErrInvalidTrade) {
		t.Fatalf("expected ErrInvalidTrade, got %v", err)
	}
}

func TestApplicationService_Submit_MissingDocument(t *testing.T) {
	svc := newAppService(newStubAppRepo(), newStubUserRepo(), &stubDocumentStore{})

	input := submitInput("user-1")
	input.File = nil
	input.Size = 0
	if _, err := svc.Submit(context.Background(), input); !errors.Is(err, domain.ErrDocumentRequired) {
		t.Fatalf("expected ErrDocumentRequired, got %v", err)
	}
}

func TestApplicationService_Submit_PendingConflict(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	first := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	second := users.add(&domain.User{FullName: "Bob", Email: "bob@example.com", Role: domain.RoleUser})
	svc := newAppService(apps, users, &stubDocumentStore{})

	if _, err := svc.Submit(context.Background(), submitInput(first.ID)); err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), submitInput(first.ID)); !errors.Is(err, domain.ErrPendingApplication) {
		t.Fatalf("expected ErrPendingApplication, got %v", err)
	}
	// Another applicant is unaffected.
	if _, err := svc.Submit(context.Background(), submitInput(second.ID)); err != nil {
		t.Fatalf("Submit for second applicant returned error: %v", err)
	}
}

func TestApplicationService_Submit_AllowedAfterRejection(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	applicant := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	svc := newAppService(apps, users, &stubDocumentStore{})

	first, err := svc.Submit(context.Background(), submitInput(applicant.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := svc.Review(context.Background(), ports.ReviewInput{
		ApplicationID: first.Application.ID,
		Decision:      domain.ApplicationRejected,
		Note:          "certificate expired",
		ReviewerID:    "admin-1",
	}); err != nil {
		t.Fatalf("Review returned error: %v", err)
	}

	if _, err := svc.Submit(context.Background(), submitInput(applicant.ID)); err != nil {
		t.Fatalf("resubmission after rejection returned error: %v", err)
	}
}

func TestApplicationService_Submit_PresignFallback(t *testing.T) {
	store := &stubDocumentStore{presignErr: errors.New("presign unavailable")}
	users := newStubUserRepo()
	applicant := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	svc := newAppService(newStubAppRepo(), users, store)

	result, err := svc.Submit(context.Background(), submitInput(applicant.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.DownloadURL != result.Application.Document.URL {
		t.Fatalf("expected fallback to the raw object url, got %s", result.DownloadURL)
	}
}

func TestApplicationService_Review_ApprovePromotesRole(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	applicant := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	svc := newAppService(apps, users, &stubDocumentStore{})

	submitted, err := svc.Submit(context.Background(), submitInput(applicant.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), ports.ReviewInput{
		ApplicationID: submitted.Application.ID,
		Decision:      domain.ApplicationApproved,
		ReviewerID:    "admin-1",
	})
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if reviewed.Status != domain.ApplicationApproved {
		t.Fatalf("expected approved status, got %s", reviewed.Status)
	}
	if reviewed.ReviewedBy != "admin-1" {
		t.Fatalf("expected reviewer to be recorded, got %q", reviewed.ReviewedBy)
	}

	promoted, err := users.FindByID(context.Background(), applicant.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if promoted.Role != "plumber" {
		t.Fatalf("expected role plumber after approval, got %s", promoted.Role)
	}
}

func TestApplicationService_Review_RejectKeepsRole(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	applicant := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	svc := newAppService(apps, users, &stubDocumentStore{})

	submitted, err := svc.Submit(context.Background(), submitInput(applicant.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), ports.ReviewInput{
		ApplicationID: submitted.Application.ID,
		Decision:      domain.ApplicationRejected,
		Note:          "document unreadable",
		ReviewerID:    "admin-1",
	})
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if reviewed.Feedback != "document unreadable" {
		t.Fatalf("expected feedback to be recorded, got %q", reviewed.Feedback)
	}

	unchanged, _ := users.FindByID(context.Background(), applicant.ID)
	if unchanged.Role != domain.RoleUser {
		t.Fatalf("rejection must not change the role, got %s", unchanged.Role)
	}
}

func TestApplicationService_Review_AlreadyResolved(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	applicant := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	svc := newAppService(apps, users, &stubDocumentStore{})

	submitted, err := svc.Submit(context.Background(), submitInput(applicant.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	input := ports.ReviewInput{
		ApplicationID: submitted.Application.ID,
		Decision:      domain.ApplicationApproved,
		ReviewerID:    "admin-1",
	}
	if _, err := svc.Review(context.Background(), input); err != nil {
		t.Fatalf("first Review returned error: %v", err)
	}
	if _, err := svc.Review(context.Background(), input); !errors.Is(err, domain.ErrApplicationResolved) {
		t.Fatalf("expected ErrApplicationResolved, got %v", err)
	}
}

func TestApplicationService_Review_InvalidDecision(t *testing.T) {
	svc := newAppService(newStubAppRepo(), newStubUserRepo(), &stubDocumentStore{})

	_, err := svc.Review(context.Background(), ports.ReviewInput{
		ApplicationID: "app-1",
		Decision:      domain.ApplicationPending,
	})
	if !errors.Is(err, domain.ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestApplicationService_Review_NotFound(t *testing.T) {
	svc := newAppService(newStubAppRepo(), newStubUserRepo(), &stubDocumentStore{})

	_, err := svc.Review(context.Background(), ports.ReviewInput{
		ApplicationID: "missing",
		Decision:      domain.ApplicationApproved,
	})
	if !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationService_ListAll_JoinsApplicant(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	applicant := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	svc := newAppService(apps, users, &stubDocumentStore{})

	if _, err := svc.Submit(context.Background(), submitInput(applicant.ID)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	// An application whose applicant account was since deleted still lists.
	departed := users.add(&domain.User{FullName: "Bob", Email: "bob@example.com", Role: domain.RoleUser})
	if _, err := svc.Submit(context.Background(), submitInput(departed.ID)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	users.remove(departed.ID)

	all, err := svc.ListAll(context.Background(), domain.ApplicationPending)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(all))
	}
	var joined, orphaned int
	for _, entry := range all {
		if entry.Applicant != nil {
			joined++
			if entry.Applicant.FullName != "Alice" {
				t.Fatalf("unexpected joined applicant: %+v", entry.Applicant)
			}
		} else {
			orphaned++
		}
	}
	if joined != 1 || orphaned != 1 {
		t.Fatalf("expected 1 joined and 1 orphaned entry, got %d/%d", joined, orphaned)
	}
}

func TestApplicationService_ListMine(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	alice := users.add(&domain.User{FullName: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	bob := users.add(&domain.User{FullName: "Bob", Email: "bob@example.com", Role: domain.RoleUser})
	svc := newAppService(apps, users, &stubDocumentStore{})

	if _, err := svc.Submit(context.Background(), submitInput(alice.ID)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), submitInput(bob.ID)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	mine, err := svc.ListMine(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].ApplicantID != alice.ID {
		t.Fatalf("unexpected ListMine result: %+v", mine)
	}
}
