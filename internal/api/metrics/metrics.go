// Package metrics defines the custom Prometheus metrics of the members-auth
// service. It is the single source of truth for metric names, labels, and
// help strings.
//
// Call New once at startup with the registry the /metrics endpoint serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "members_auth"

// Login outcome label values.
const (
	LoginSuccess = "success"
	LoginInvalid = "invalid"
	LoginError   = "error"
)

type Metrics struct {
	// SignupsTotal counts accounts created through the signup form.
	SignupsTotal prometheus.Counter

	// LoginAttemptsTotal counts login submissions.
	// Label:
	//   - result: "success", "invalid" (any credential failure) or "error" (store failure)
	LoginAttemptsTotal *prometheus.CounterVec

	// LogoutsTotal counts logout requests, whether or not a session existed.
	LogoutsTotal prometheus.Counter

	// AccessDeniedTotal counts protected requests turned away by the access gate.
	AccessDeniedTotal prometheus.Counter

	// AuditEventsDroppedTotal counts audit events discarded because a worker
	// queue was full.
	AuditEventsDroppedTotal prometheus.Counter
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SignupsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Total number of accounts created.",
		}),
		LoginAttemptsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts, by result.",
		}, []string{"result"}),
		LogoutsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Total number of logout requests.",
		}),
		AccessDeniedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_denied_total",
			Help:      "Total number of protected requests rejected for lack of a valid session.",
		}),
		AuditEventsDroppedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_events_dropped_total",
			Help:      "Total number of audit events dropped because the queue was full.",
		}),
	}
}
