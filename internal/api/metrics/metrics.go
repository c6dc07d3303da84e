// Package metrics defines the custom Prometheus metrics of the app shell.
// Metrics are registered with the default registry at init through promauto
// and exposed by the shell server on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "appshell"

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the knowledge-card backend.
// Labels:
//   - method: HTTP method
//   - code: response status code, or "error" when no response arrived
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the backend API.",
	},
	[]string{"method", "code"},
)

// UpstreamRequestDuration measures backend round trips.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests sent to the backend API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Labels:
//   - from, to: "anonymous", "pending" or "authenticated"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions.",
	},
	[]string{"from", "to"},
)

// ForcedLogoutsTotal counts 401 responses reported to the session. Stale
// rejections are counted too; the session decides whether to log out.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of 401 responses reported to the session.",
	},
)

// ── Navigation metrics ────────────────────────────────────────────────────────

// GuardDecisionsTotal counts navigation guard outcomes.
// Labels:
//   - route: route name
//   - decision: "proceed" or "redirect"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of navigation guard decisions.",
	},
	[]string{"route", "decision"},
)
