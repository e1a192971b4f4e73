// Package metrics defines and registers all custom Prometheus metrics for the
// SizaFi marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sizafi"

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts worker-role applications, by trade.
var ApplicationsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of worker applications submitted, by trade.",
	},
	[]string{"trade"},
)

// ApplicationsReviewedTotal counts admin review decisions.
// Label:
//   - decision: "approved" or "rejected"
var ApplicationsReviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_reviewed_total",
		Help:      "Total number of application review decisions, by decision.",
	},
	[]string{"decision"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsInitializedTotal counts payment initializations.
// Label:
//   - result: "ok" or "error"
var PaymentsInitializedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_initialized_total",
		Help:      "Total number of payment initializations, by result.",
	},
	[]string{"result"},
)

// PaymentsResolvedTotal counts terminal payment transitions.
// Labels:
//   - status: "success" or "failed"
//   - source: "verify" or "webhook"
var PaymentsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_resolved_total",
		Help:      "Total number of payments driven to a terminal status, by status and source.",
	},
	[]string{"status", "source"},
)

// ── Webhook metrics ───────────────────────────────────────────────────────────

// WebhookEventsTotal counts accepted gateway webhook deliveries.
// Label:
//   - event: the gateway event type (e.g. "charge.success")
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of gateway webhook deliveries accepted for processing.",
	},
	[]string{"event"},
)

// WebhookErrorsTotal counts webhook deliveries that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "payment_not_found", "update_failed")
var WebhookErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_errors_total",
		Help:      "Total number of gateway webhook deliveries that failed processing.",
	},
	[]string{"reason"},
)

// WebhookQueueDepth tracks the current number of events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var WebhookQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "webhook_queue_depth",
		Help:      "Current number of webhook events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// WebhookProcessingDuration measures how long one webhook event takes to
// process from dequeue to persistence.
var WebhookProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "webhook_processing_duration_seconds",
		Help:      "Duration of webhook event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
