// Package metrics defines and registers all custom Prometheus metrics for the
// leave portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto and are served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leave_portal"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts credential login attempts.
// Label:
//   - result: "success", "rejected", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of credential login attempts, by result.",
	},
	[]string{"result"},
)

// SessionTokenFailuresTotal counts presented session tokens that failed to
// verify (expired, tampered, malformed).
var SessionTokenFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_token_failures_total",
		Help:      "Total number of presented session tokens rejected as invalid.",
	},
)

// GateDecisionsTotal counts route gate verdicts.
// Label:
//   - verdict: "pass", "allow" or "redirect"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route authorization decisions, by verdict.",
	},
	[]string{"verdict"},
)

// ── Seed metrics ──────────────────────────────────────────────────────────────

// SeedRowsTotal counts imported employee rows.
// Label:
//   - outcome: "created", "skipped" or "failed"
var SeedRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seed_rows_total",
		Help:      "Total number of employee rows processed by the importer, by outcome.",
	},
	[]string{"outcome"},
)

// SeedQueueDepth tracks rows waiting in each import worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SeedQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "seed_queue_depth",
		Help:      "Current number of rows pending in each import worker channel.",
	},
	[]string{"worker_id"},
)

// SeedRowDuration measures how long a single row takes to import, including
// password hashing.
var SeedRowDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "seed_row_duration_seconds",
		Help:      "Duration of a single employee row import.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
