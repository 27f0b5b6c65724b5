// Package metrics defines and registers all custom Prometheus metrics for the
// banking-dashboard API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "horizon"

// ── Provisioning metrics ──────────────────────────────────────────────────────

// SignupsTotal counts completed sign-up attempts.
// Label:
//   - result: "success" or "failure"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, by result.",
	},
	[]string{"result"},
)

// SignupFailuresTotal counts sign-up failures by the step that failed.
// Label:
//   - step: "payment_customer", "identity_account", "user_document", "session"
var SignupFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signup_failures_total",
		Help:      "Total number of sign-up failures, by failing step.",
	},
	[]string{"step"},
)

// CompensationsTotal counts compensating actions run while unwinding a failed
// provisioning sequence.
// Labels:
//   - step: the undo that ran (e.g. "identity_account", "user_document")
//   - result: "success" or "failure" of the undo itself
var CompensationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compensations_total",
		Help:      "Total number of compensating actions executed, by step and result.",
	},
	[]string{"step", "result"},
)

// ── Bank link metrics ─────────────────────────────────────────────────────────

// BankLinksTotal counts completed public-token exchanges.
// Label:
//   - result: "success", "failure" or "duplicate"
var BankLinksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bank_links_total",
		Help:      "Total number of bank-link exchange attempts, by result.",
	},
	[]string{"result"},
)

// ── Platform metrics ──────────────────────────────────────────────────────────

// PlatformRequestDuration measures outbound calls to the external platforms.
// Labels:
//   - platform: "identity", "aggregator" or "payments"
//   - operation: the platform operation (e.g. "create_customer")
//   - status: "ok" or "error"
var PlatformRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "platform_request_duration_seconds",
		Help:      "Duration of outbound requests to the external platforms.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"platform", "operation", "status"},
)
