package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

type stubWorkerService struct {
	listFn func(ctx context.Context, trade string) ([]*domain.User, error)
	getFn  func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubWorkerService) ListWorkers(ctx context.Context, trade string) ([]*domain.User, error) {
	return s.listFn(ctx, trade)
}

func (s *stubWorkerService) GetWorker(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func TestWorkerHandler_List(t *testing.T) {
	stub := &stubWorkerService{
		listFn: func(_ context.Context, trade string) ([]*domain.User, error) {
			if trade != "plumber" {
				t.Fatalf("filter not forwarded: %q", trade)
			}
			return []*domain.User{
				{ID: "user-2", FullName: "Pete Pipes", Email: "pete@example.com", Role: "plumber"},
			}, nil
		},
	}
	handler := NewWorkerHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/workers?role=plumber", "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["role"] != "plumber" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestWorkerHandler_Get_NotFound(t *testing.T) {
	stub := &stubWorkerService{
		getFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrWorkerNotFound
		},
	}
	handler := NewWorkerHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/workers/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Get(c); !errors.Is(err, domain.ErrWorkerNotFound) {
		t.Fatalf("expected ErrWorkerNotFound to propagate, got %v", err)
	}
}
