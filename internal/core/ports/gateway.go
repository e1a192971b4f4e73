package ports

import "context"

// MetadataField is one descriptive custom field forwarded to the gateway.
type MetadataField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

// InitializeTransactionInput starts a checkout with the payment gateway.
// AmountMinor is in the gateway's minor unit (cents).
type InitializeTransactionInput struct {
	Email       string
	AmountMinor int64
	Reference   string
	CallbackURL string
	Metadata    []MetadataField
}

// InitializeTransactionResult is the gateway's checkout handle.
type InitializeTransactionResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// TransactionStatus is the gateway's view of one transaction.
type TransactionStatus struct {
	Status string         // "success", "failed", "abandoned", ...
	Data   map[string]any // full gateway payload
}

// PaymentGateway is the outbound interface to the external payment provider.
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, input InitializeTransactionInput) (*InitializeTransactionResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*TransactionStatus, error)
}
