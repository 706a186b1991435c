// Package metrics defines and registers all custom Prometheus metrics for the
// institute console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/learnhub/institute-console/internal/core/domain"
)

const namespace = "console"

// ── Navigation metrics ────────────────────────────────────────────────────────

// GateDecisionsTotal counts route evaluations.
// Labels:
//   - decision: "allow", "redirect_login" or "redirect_default"
//   - role: "Admin", "Staff", "unknown" or "anonymous"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of navigation attempts evaluated by the gate.",
	},
	[]string{"decision", "role"},
)

// MenuBuildsTotal counts menus served.
// Label:
//   - role: "Admin", "Staff", "unknown" or "anonymous"
var MenuBuildsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_builds_total",
		Help:      "Total number of navigation menus built.",
	},
	[]string{"role"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionResolutionsTotal counts how request sessions were resolved.
// Label:
//   - result: "ok", "missing", "invalid_token", "not_found", "malformed", "store_error"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of request session lookups, labelled by result.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts navigation audit events by outcome.
// Label:
//   - result: "recorded", "failed", "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of navigation audit events, labelled by outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// RoleLabel bounds the role label to the recognised roles.
func RoleLabel(role domain.Role) string {
	switch {
	case role == "":
		return "anonymous"
	case role.Known():
		return string(role)
	default:
		return "unknown"
	}
}
