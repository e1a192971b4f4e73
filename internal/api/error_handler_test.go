package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainMappings(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusBadRequest},
		{domain.ErrWeakPassword, http.StatusBadRequest},
		{domain.ErrPendingApplication, http.StatusBadRequest},
		{domain.ErrApplicationResolved, http.StatusBadRequest},
		{domain.ErrInvalidDecision, http.StatusBadRequest},
		{domain.ErrInvalidTrade, http.StatusBadRequest},
		{domain.ErrDocumentRequired, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrWorkerNotFound, http.StatusNotFound},
		{domain.ErrApplicationNotFound, http.StatusNotFound},
		{domain.ErrPaymentNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		rec, _ := handle(t, tc.err)
		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("submit application: %w", domain.ErrPendingApplication)

	rec, body := handle(t, wrapped)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	// The client sees the sentinel's text, not the wrapping context.
	if body["error"] != domain.ErrPendingApplication.Error() {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}

func TestHTTPErrorHandler_GatewayFailureStaysGeneric(t *testing.T) {
	err := fmt.Errorf("%w: connect timeout to upstream", domain.ErrGatewayFailure)

	rec, body := handle(t, err)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "payment gateway error" {
		t.Fatalf("upstream detail leaked: %q", body["error"])
	}
}

func TestHTTPErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	rec, body := handle(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body["error"])
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec, body := handle(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "invalid token" {
		t.Fatalf("unexpected message: %q", body["error"])
	}
}
