// Package metrics defines and registers all custom Prometheus metrics for the
// greeting service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init and
// are served under /actuators/metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "greeting"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication attempts.
// Label:
//   - outcome: "success" or a failure reason (e.g. "bad_credentials", "locked", "missing")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthDuration measures credential verification time, bcrypt included.
var AuthDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_duration_seconds",
		Help:      "Duration of credential lookup and verification.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// AccessDecisionsTotal counts access policy decisions on protected paths.
// Labels:
//   - prefix: the matched rule prefix (e.g. "/api/")
//   - verdict: "allow", "unauthenticated" or "forbidden"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of access policy decisions, by rule prefix and verdict.",
	},
	[]string{"prefix", "verdict"},
)

// AuthEventsQueueDepth tracks the events waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuthEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "auth_events_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuthEventsDroppedTotal counts audit events dropped because a worker queue was full.
var AuthEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_dropped_total",
		Help:      "Total number of auth events dropped on a full queue.",
	},
)

// ── Greeting metrics ──────────────────────────────────────────────────────────

// GreetingsMutatedTotal counts successful greeting writes.
// Label:
//   - operation: "create", "replay", "update" or "delete"
var GreetingsMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "greetings_mutated_total",
		Help:      "Total number of greeting writes, by operation.",
	},
	[]string{"operation"},
)
