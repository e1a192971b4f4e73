package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sizafi/marketplace-api/internal/core/domain"
	"github.com/sizafi/marketplace-api/internal/core/ports"
)

// WebhookDedup abstracts the idempotency store for gateway webhook events.
type WebhookDedup interface {
	IsDuplicate(ctx context.Context, reference, event string) (bool, error)
	Mark(ctx context.Context, reference, event string) error
}

const gatewayEventChargeSuccess = "charge.success"

// PaymentService implements payment initialization and reconciliation against
// the external gateway. Verify and webhook delivery can both resolve the same
// payment; the repository's conditional update keeps the first terminal state
// sticky.
type PaymentService struct {
	payments    ports.PaymentRepository
	users       ports.UserRepository
	gateway     ports.PaymentGateway
	dedup       WebhookDedup
	callbackURL string
	log         zerolog.Logger
}

func NewPaymentService(
	payments ports.PaymentRepository,
	users ports.UserRepository,
	gateway ports.PaymentGateway,
	dedup WebhookDedup,
	callbackURL string,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments:    payments,
		users:       users,
		gateway:     gateway,
		dedup:       dedup,
		callbackURL: callbackURL,
		log:         log,
	}
}

func (s *PaymentService) Initialize(ctx context.Context, input ports.InitializePaymentInput) (*ports.InitializePaymentResult, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	worker, err := s.users.FindByID(ctx, input.WorkerID)
	if err != nil || !domain.IsWorkerTrade(worker.Role) {
		return nil, domain.ErrWorkerNotFound
	}

	reference := generateReference()
	now := time.Now().UTC()
	payment := &domain.Payment{
		PayerID:   input.PayerID,
		WorkerID:  input.WorkerID,
		Amount:    input.Amount,
		Currency:  domain.DefaultCurrency,
		Reference: reference,
		Status:    domain.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	result, err := s.gateway.InitializeTransaction(ctx, ports.InitializeTransactionInput{
		Email:       input.PayerEmail,
		AmountMinor: int64(math.Round(input.Amount * 100)),
		Reference:   reference,
		CallbackURL: s.callbackURL,
		Metadata: []ports.MetadataField{
			{DisplayName: "Paid to", VariableName: "paid_to", Value: worker.FullName},
			{DisplayName: "Service", VariableName: "service", Value: worker.Role},
		},
	})
	if err != nil {
		// Do not leave the record pending forever when the checkout was
		// never created on the gateway side.
		if _, _, markErr := s.payments.Resolve(ctx, reference, domain.PaymentFailed, nil); markErr != nil {
			s.log.Warn().Err(markErr).Str("reference", reference).Msg("failed to mark orphaned payment failed")
		}
		s.log.Error().Err(err).Str("reference", reference).Msg("gateway initialization failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}

	s.log.Info().
		Str("reference", reference).
		Str("payer_id", input.PayerID).
		Str("worker_id", input.WorkerID).
		Float64("amount", input.Amount).
		Msg("payment initialized")

	return &ports.InitializePaymentResult{
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		Reference:        result.Reference,
	}, nil
}

func (s *PaymentService) Verify(ctx context.Context, reference string) (*ports.VerifyPaymentResult, error) {
	status, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}

	if status.Status != string(domain.PaymentSuccess) {
		if _, _, err := s.payments.Resolve(ctx, reference, domain.PaymentFailed, nil); err != nil {
			return nil, err
		}
		return &ports.VerifyPaymentResult{Success: false, Message: "payment verification failed"}, nil
	}

	payment, applied, err := s.payments.Resolve(ctx, reference, domain.PaymentSuccess, status.Data)
	if err != nil {
		return nil, err
	}
	if !applied {
		s.log.Debug().Str("reference", reference).Msg("payment already resolved")
	}

	return &ports.VerifyPaymentResult{
		Success: true,
		Message: "payment verified successfully",
		Payment: payment,
		Payer:   s.party(ctx, payment.PayerID),
		Worker:  s.party(ctx, payment.WorkerID),
	}, nil
}

// ProcessGatewayEvent applies one authenticated webhook delivery. Only
// charge.success mutates state; all other event types are ignored.
func (s *PaymentService) ProcessGatewayEvent(ctx context.Context, event ports.GatewayEventInput) error {
	if event.Event != gatewayEventChargeSuccess {
		s.log.Debug().Str("event", event.Event).Msg("gateway event ignored")
		return nil
	}

	isDup, err := s.dedup.IsDuplicate(ctx, event.Reference, event.Event)
	if err != nil {
		s.log.Warn().Err(err).Str("reference", event.Reference).Msg("webhook dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("reference", event.Reference).Msg("duplicate webhook delivery skipped")
		return nil
	}

	_, applied, err := s.payments.Resolve(ctx, event.Reference, domain.PaymentSuccess, event.Data)
	if err != nil {
		return fmt.Errorf("process gateway event: %w", err)
	}
	if !applied {
		s.log.Debug().Str("reference", event.Reference).Msg("payment already resolved")
	}

	if markErr := s.dedup.Mark(ctx, event.Reference, event.Event); markErr != nil {
		s.log.Warn().Err(markErr).Str("reference", event.Reference).Msg("failed to set webhook dedup key")
	}

	s.log.Info().Str("reference", event.Reference).Msg("gateway event processed")
	return nil
}

func (s *PaymentService) History(ctx context.Context, payerID string) ([]ports.PaymentEntry, error) {
	payments, err := s.payments.ListByPayer(ctx, payerID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.PaymentEntry, 0, len(payments))
	for _, p := range payments {
		out = append(out, ports.PaymentEntry{Payment: p, Worker: s.party(ctx, p.WorkerID)})
	}
	return out, nil
}

func (s *PaymentService) Earnings(ctx context.Context, workerID string) (*ports.WorkerEarnings, error) {
	worker, err := s.users.FindByID(ctx, workerID)
	if err != nil || !domain.IsWorkerTrade(worker.Role) {
		return nil, domain.ErrForbidden
	}

	payments, err := s.payments.ListSuccessByWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	result := &ports.WorkerEarnings{
		Worker:   ports.Party{ID: worker.ID, FullName: worker.FullName, Role: worker.Role},
		Payments: make([]ports.EarningsEntry, 0, len(payments)),
	}
	for _, p := range payments {
		result.TotalEarnings += p.Amount
		result.Payments = append(result.Payments, ports.EarningsEntry{Payment: p, Payer: s.party(ctx, p.PayerID)})
	}
	return result, nil
}

// party resolves a payer or payee identity for joined views. Lookup failures
// leave the party out rather than failing the whole response.
func (s *PaymentService) party(ctx context.Context, userID string) *ports.Party {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil
	}
	return &ports.Party{ID: user.ID, FullName: user.FullName, Email: user.Email, Role: user.Role}
}

// generateReference returns a gateway-unique reference: millisecond timestamp
// plus a random suffix.
func generateReference() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("pay_%d_%s", time.Now().UnixMilli(), suffix)
}
