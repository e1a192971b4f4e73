package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sizafi/marketplace-api/internal/api/metrics"
	"github.com/sizafi/marketplace-api/internal/core/domain"
	"github.com/sizafi/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	processTimeout = 30 * time.Second
)

// EventProcessor is the interface the dispatcher drives for each delivery.
type EventProcessor interface {
	ProcessGatewayEvent(ctx context.Context, event ports.GatewayEventInput) error
}

// Dispatcher routes gateway webhook events to a fixed set of workers using
// consistent hashing on the payment reference, guaranteeing per-payment event
// ordering. The webhook handler enqueues and acknowledges immediately;
// processing happens here.
type Dispatcher struct {
	workers []chan ports.GatewayEventInput
	service EventProcessor
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service EventProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.GatewayEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.GatewayEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its reference.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.GatewayEventInput) {
	i := d.shardIndex(event.Reference)
	d.workers[i] <- event
	metrics.WebhookQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a reference deterministically to a worker index.
func (d *Dispatcher) shardIndex(reference string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(reference))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.GatewayEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, event)
			metrics.WebhookQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event ports.GatewayEventInput) {
	ctx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	start := time.Now()
	err := d.service.ProcessGatewayEvent(ctx, event)
	if err != nil {
		reason := "update_failed"
		if errors.Is(err, domain.ErrPaymentNotFound) {
			reason = "payment_not_found"
		}
		metrics.WebhookErrorsTotal.WithLabelValues(reason).Inc()
		metrics.WebhookProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("reference", event.Reference).
			Int("worker_id", id).
			Msg("webhook event processing failed")
		return
	}

	if event.Event == "charge.success" {
		metrics.PaymentsResolvedTotal.WithLabelValues("success", "webhook").Inc()
	}
	metrics.WebhookProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
}
