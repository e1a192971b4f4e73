package ports

import (
	"context"

	"github.com/sizafi/marketplace-api/internal/core/domain"
)

// PaymentRepository defines persistence operations for payment records.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByReference(ctx context.Context, reference string) (*domain.Payment, error)
	// Resolve conditionally transitions the payment with the given reference
	// from pending to the given terminal status, attaching the gateway
	// payload when non-nil. The transition is sticky: the write applies only
	// while the stored status is still pending. The returned bool reports
	// whether the write was applied; a terminal record yields (record,
	// false, nil). ErrPaymentNotFound when the reference does not resolve.
	Resolve(ctx context.Context, reference string, status domain.PaymentStatus, gatewayData map[string]any) (*domain.Payment, bool, error)
	// ListByPayer returns payments made by the payer, newest first.
	ListByPayer(ctx context.Context, payerID string) ([]*domain.Payment, error)
	// ListSuccessByWorker returns successful payments received by the
	// worker, newest first.
	ListSuccessByWorker(ctx context.Context, workerID string) ([]*domain.Payment, error)
}
