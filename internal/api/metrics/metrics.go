// Package metrics defines the custom Prometheus metrics for the admin
// console API. It is the single source of truth for metric names, labels,
// and help strings; promauto registers everything with the default registry
// at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRevokedTotal counts explicit session revocations.
// Label:
//   - reason: "logout", "password_change", or "user_deleted"
var SessionsRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked, by reason.",
	},
	[]string{"reason"},
)

// DirectoryOpsTotal counts directory mutations.
// Labels:
//   - op: "create", "update", "delete", or "change_password"
//   - result: "success" or "error"
var DirectoryOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_ops_total",
		Help:      "Total number of user directory mutations, by operation and result.",
	},
	[]string{"op", "result"},
)
