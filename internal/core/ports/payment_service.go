package ports

import (
	"context"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

// InitializePaymentInput carries a customer's request to pay a worker.
type InitializePaymentInput struct {
	PayerID    string
	PayerEmail string
	WorkerID   string
	Amount     float64
}

// InitializePaymentResult is the gateway checkout handle returned to the client.
type InitializePaymentResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Party is a payer or payee identity joined into payment views.
type Party struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// VerifyPaymentResult reports the reconciled state of one payment.
type VerifyPaymentResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payment *domain.Payment `json:"payment,omitempty"`
	Payer   *Party          `json:"payer,omitempty"`
	Worker  *Party          `json:"worker,omitempty"`
}

// PaymentEntry is one row of a payer's history, payee identity joined in.
type PaymentEntry struct {
	Payment *domain.Payment `json:"payment"`
	Worker  *Party          `json:"worker,omitempty"`
}

// EarningsEntry is one successful payment received by a worker, payer joined in.
type EarningsEntry struct {
	Payment *domain.Payment `json:"payment"`
	Payer   *Party          `json:"payer,omitempty"`
}

// WorkerEarnings is the worker's successful payments plus their sum.
type WorkerEarnings struct {
	Worker        Party           `json:"worker"`
	TotalEarnings float64         `json:"total_earnings"`
	Payments      []EarningsEntry `json:"payments"`
}

// GatewayEventInput is the DTO passed from the webhook transport to the
// payment service.
type GatewayEventInput struct {
	Event     string
	Reference string
	Data      map[string]any
}

// PaymentService implements the payment initialization and reconciliation
// workflow.
type PaymentService interface {
	Initialize(ctx context.Context, input InitializePaymentInput) (*InitializePaymentResult, error)
	// Verify polls the gateway for the transaction's current status and
	// applies the sticky pending -> success|failed transition.
	Verify(ctx context.Context, reference string) (*VerifyPaymentResult, error)
	// ProcessGatewayEvent applies an authenticated webhook event. Event
	// types other than charge.success are ignored.
	ProcessGatewayEvent(ctx context.Context, event GatewayEventInput) error
	History(ctx context.Context, payerID string) ([]PaymentEntry, error)
	// Earnings is restricted to worker-role callers; ErrForbidden otherwise.
	Earnings(ctx context.Context, workerID string) (*WorkerEarnings, error)
}
