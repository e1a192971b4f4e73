package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

func TestWorkerService_ListWorkers(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{FullName: "Pete Pipes", Email: "pete@example.com", Role: "plumber"})
	repo.add(&domain.User{FullName: "Eddy Volt", Email: "eddy@example.com", Role: "electrician"})
	repo.add(&domain.User{FullName: "Regular Ron", Email: "ron@example.com", Role: domain.RoleUser})
	repo.add(&domain.User{FullName: "Admin Ann", Email: "ann@example.com", Role: domain.RoleAdmin})

	svc := NewWorkerService(repo)

	all, err := svc.ListWorkers(context.Background(), "")
	if err != nil {
		t.Fatalf("ListWorkers returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 workers, got %d", len(all))
	}
	for _, w := range all {
		if !domain.IsWorkerTrade(w.Role) {
			t.Fatalf("non-worker %q leaked into directory", w.Role)
		}
	}

	plumbers, err := svc.ListWorkers(context.Background(), "plumber")
	if err != nil {
		t.Fatalf("ListWorkers(plumber) returned error: %v", err)
	}
	if len(plumbers) != 1 || plumbers[0].Role != "plumber" {
		t.Fatalf("unexpected plumber filter result: %+v", plumbers)
	}
}

func TestWorkerService_ListWorkers_InvalidTrade(t *testing.T) {
	svc := NewWorkerService(newStubUserRepo())

	if _, err := svc.ListWorkers(context.Background(), "astronaut"); !errors.Is(err, domain.ErrInvalidTrade) {
		t.Fatalf("expected ErrInvalidTrade, got %v", err)
	}
}

func TestWorkerService_GetWorker(t *testing.T) {
	repo := newStubUserRepo()
	worker := repo.add(&domain.User{FullName: "Pete Pipes", Email: "pete@example.com", Role: "plumber"})
	customer := repo.add(&domain.User{FullName: "Regular Ron", Email: "ron@example.com", Role: domain.RoleUser})

	svc := NewWorkerService(repo)

	got, err := svc.GetWorker(context.Background(), worker.ID)
	if err != nil {
		t.Fatalf("GetWorker returned error: %v", err)
	}
	if got.FullName != "Pete Pipes" {
		t.Fatalf("unexpected worker: %+v", got)
	}

	// A plain customer id must not resolve through the worker directory.
	if _, err := svc.GetWorker(context.Background(), customer.ID); !errors.Is(err, domain.ErrWorkerNotFound) {
		t.Fatalf("expected ErrWorkerNotFound for customer, got %v", err)
	}
	if _, err := svc.GetWorker(context.Background(), "missing"); !errors.Is(err, domain.ErrWorkerNotFound) {
		t.Fatalf("expected ErrWorkerNotFound for unknown id, got %v", err)
	}
}
