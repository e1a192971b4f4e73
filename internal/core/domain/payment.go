package domain

import (
	"errors"
	"time"
)

// PaymentStatus mirrors the gateway's terminal transaction states.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

const DefaultCurrency = "ZAR"

var ErrPaymentNotFound = errors.New("payment not found")
var ErrInvalidAmount = errors.New("amount must be positive")
var ErrGatewayFailure = errors.New("payment gateway error")

// Terminal reports whether no further transition is defined from s.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSuccess || s == PaymentFailed
}

// Payment records a single payment attempt from a customer to a worker.
// Reference is the idempotency key shared with the external gateway.
type Payment struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	PayerID     string         `json:"payer_id" bson:"payer_id"`
	WorkerID    string         `json:"worker_id" bson:"worker_id"`
	Amount      float64        `json:"amount" bson:"amount"`
	Currency    string         `json:"currency" bson:"currency"`
	Reference   string         `json:"reference" bson:"reference"`
	Status      PaymentStatus  `json:"status" bson:"status"`
	GatewayData map[string]any `json:"gateway_data,omitempty" bson:"gateway_data,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}
