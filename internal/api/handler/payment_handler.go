package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sizafi/marketplace-api/internal/api/metrics"
	"github.com/sizafi/marketplace-api/internal/core/ports"
)

const signatureHeader = "x-paystack-signature"

// EventQueue accepts verified gateway events for asynchronous processing.
type EventQueue interface {
	Enqueue(event ports.GatewayEventInput)
}

// PaymentHandler exposes the payment workflow over HTTP.
type PaymentHandler struct {
	service       ports.PaymentService
	queue         EventQueue
	webhookSecret string
}

func NewPaymentHandler(service ports.PaymentService, queue EventQueue, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{service: service, queue: queue, webhookSecret: webhookSecret}
}

type initializeRequest struct {
	WorkerID string  `json:"worker_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

type webhookPayload struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

func (p webhookPayload) reference() string {
	ref, _ := p.Data["reference"].(string)
	return ref
}

// Initialize handles POST /payment/initialize.
//
// @Summary      Start a payment to a worker
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      initializeRequest  true  "Worker and amount"
// @Success      200   {object}  ports.InitializePaymentResult
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /payment/initialize [post]
func (h *PaymentHandler) Initialize(c echo.Context) error {
	payerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req initializeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Initialize(c.Request().Context(), ports.InitializePaymentInput{
		PayerID:    payerID,
		PayerEmail: callerEmail(c),
		WorkerID:   req.WorkerID,
		Amount:     req.Amount,
	})
	if err != nil {
		metrics.PaymentsInitializedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PaymentsInitializedTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, result)
}

// Verify handles GET /payment/verify/:reference. It polls the gateway and
// reconciles the local record before reporting.
//
// @Summary      Verify a payment by reference
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Payment reference"
// @Success      200        {object}  ports.VerifyPaymentResult
// @Failure      404        {object}  map[string]string
// @Router       /payment/verify/{reference} [get]
func (h *PaymentHandler) Verify(c echo.Context) error {
	result, err := h.service.Verify(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return err
	}

	status := "failed"
	if result.Success {
		status = "success"
	}
	metrics.PaymentsResolvedTotal.WithLabelValues(status, "verify").Inc()
	return c.JSON(http.StatusOK, result)
}

// Webhook handles POST /payment/webhook. The body is authenticated with
// HMAC-SHA512 over the raw bytes against the x-paystack-signature header.
// Verified events are queued and the delivery is acknowledged immediately;
// the gateway retries on anything but a 200.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	signature := c.Request().Header.Get(signatureHeader)
	if signature == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing signature")
	}
	if !h.validSignature(body, signature) {
		metrics.WebhookErrorsTotal.WithLabelValues("bad_signature").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	metrics.WebhookEventsTotal.WithLabelValues(payload.Event).Inc()

	h.queue.Enqueue(ports.GatewayEventInput{
		Event:     payload.Event,
		Reference: payload.reference(),
		Data:      payload.Data,
	})

	return c.NoContent(http.StatusOK)
}

func (h *PaymentHandler) validSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// History handles GET /payment/history — the caller's payments, newest first.
//
// @Summary      List my payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.PaymentEntry
// @Router       /payment/history [get]
func (h *PaymentHandler) History(c echo.Context) error {
	payerID, err := callerID(c)
	if err != nil {
		return err
	}

	entries, err := h.service.History(c.Request().Context(), payerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Earnings handles GET /payment/worker/earnings. Worker-role accounts only.
//
// @Summary      List my earnings (worker)
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.WorkerEarnings
// @Failure      403  {object}  map[string]string
// @Router       /payment/worker/earnings [get]
func (h *PaymentHandler) Earnings(c echo.Context) error {
	workerID, err := callerID(c)
	if err != nil {
		return err
	}

	earnings, err := h.service.Earnings(c.Request().Context(), workerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, earnings)
}
