package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sizafi/marketplace-api/internal/core/ports"
)

const defaultBaseURL = "https://api.paystack.co"

// PaystackClient implements ports.PaymentGateway against the Paystack HTTP API.
type PaystackClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
	log       zerolog.Logger
}

// NewPaystackClient builds a gateway client. baseURL is overridable for tests
// and sandboxes; empty means the production API.
func NewPaystackClient(baseURL, secretKey string, log zerolog.Logger) *PaystackClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &PaystackClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
}

type initializeRequest struct {
	Email       string              `json:"email"`
	Amount      int64               `json:"amount"`
	Reference   string              `json:"reference"`
	CallbackURL string              `json:"callback_url"`
	Metadata    *initializeMetadata `json:"metadata,omitempty"`
}

type initializeMetadata struct {
	CustomFields []ports.MetadataField `json:"custom_fields"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// InitializeTransaction starts a checkout session. Amount is already in the
// gateway's minor unit.
func (c *PaystackClient) InitializeTransaction(ctx context.Context, input ports.InitializeTransactionInput) (*ports.InitializeTransactionResult, error) {
	body := initializeRequest{
		Email:       input.Email,
		Amount:      input.AmountMinor,
		Reference:   input.Reference,
		CallbackURL: input.CallbackURL,
	}
	if len(input.Metadata) > 0 {
		body.Metadata = &initializeMetadata{CustomFields: input.Metadata}
	}

	var resp initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack initialize: %s", resp.Message)
	}

	return &ports.InitializeTransactionResult{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

// VerifyTransaction fetches the current status of a transaction by reference.
func (c *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*ports.TransactionStatus, error) {
	var resp verifyResponse
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack verify: %s", resp.Message)
	}

	status, _ := resp.Data["status"].(string)
	return &ports.TransactionStatus{Status: status, Data: resp.Data}, nil
}

func (c *PaystackClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		c.log.Warn().Int("status", res.StatusCode).Str("path", path).Msg("paystack returned non-2xx")
		return fmt.Errorf("paystack %s %s: status %d: %s", method, path, res.StatusCode, raw)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
