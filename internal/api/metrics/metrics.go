// Package metrics defines and registers all custom Prometheus metrics for the
// VerseYou API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "verseyou"

// ── Authentication metrics ────────────────────────────────────────────────────

// SignUpsTotal counts successfully created identities.
var SignUpsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of identities created through sign-up.",
	},
)

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "ok", "denied" (bad credentials), or "throttled"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts access tokens minted at sign-in.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of access tokens issued.",
	},
)

// TokenVerificationsTotal counts bearer-token checks by the auth middleware.
// Label:
//   - result: "ok", "malformed", "bad_signature", "expired", "not_yet_valid",
//     "wrong_audience", or "missing"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, labelled by result.",
	},
	[]string{"result"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// RoleAssignmentsTotal counts administrative role grants.
// Label:
//   - role: the role name assigned (e.g. "organiser")
var RoleAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of roles assigned to identities.",
	},
	[]string{"role"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditQueueDepth tracks the records waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit records pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit records dropped because a worker channel was
// full. Request handling never blocks on the audit trail.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit records dropped due to backpressure.",
	},
)
