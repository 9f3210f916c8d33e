// Package metrics defines all custom Prometheus metrics for the account
// service. It is the single source of truth for metric names, labels, and
// help strings; collectors register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Authentication metrics ────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failed", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// PrunesTotal counts accounts destroyed by the integrity guard.
// Label:
//   - reason: "tampered" (digest mismatch) or "deactivated" (activity != ACTIVE)
var PrunesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prunes_total",
		Help:      "Total number of accounts pruned by the integrity guard, by reason.",
	},
	[]string{"reason"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsIssuedTotal counts sessions established at login.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions established on successful login.",
	},
)

// SessionsDestroyedTotal counts sessions destroyed, by cause.
// Label:
//   - reason: "logout" (explicit) or "invalidated" (token rotated or account gone)
var SessionsDestroyedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_destroyed_total",
		Help:      "Total number of sessions destroyed, labelled by reason.",
	},
	[]string{"reason"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsTotal counts security events written to the audit trail.
// Label:
//   - kind: event kind (e.g. "login_succeeded", "account_pruned")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of security events recorded in the audit trail.",
	},
	[]string{"kind"},
)

// AuditQueueDepth tracks events waiting in each audit dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of events pending in each audit dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
