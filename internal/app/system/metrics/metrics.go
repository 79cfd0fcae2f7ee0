// internal/app/system/metrics/metrics.go

// Package metrics registers the Prometheus collectors for auth and routing
// activity and exposes the /metrics handler.
package metrics

import (
	"net/http"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AuthEvents counts auth state transitions by event type.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clienthub",
		Subsystem: "auth",
		Name:      "events_total",
		Help:      "Auth state transitions by event type.",
	}, []string{"event"})

	// RouteDecisions counts dashboard router outcomes.
	RouteDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clienthub",
		Subsystem: "router",
		Name:      "decisions_total",
		Help:      "Dashboard router outcomes (login, client, admin, error).",
	}, []string{"outcome"})

	// RoleRetries counts role-resolution attempts that found no profile row.
	RoleRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clienthub",
		Subsystem: "roles",
		Name:      "resolve_retries_total",
		Help:      "Role resolution attempts that observed no profile row.",
	})

	// ReconcileCreates counts rows created by the profile reconciler.
	ReconcileCreates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clienthub",
		Subsystem: "reconcile",
		Name:      "creates_total",
		Help:      "Profile/client rows created by the reconciler.",
	}, []string{"kind"})
)

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SubscribeAuthEvents wires the auth event bus into the AuthEvents counter.
// Returns the unsubscribe capability.
func SubscribeAuthEvents(bus *auth.EventBus) func() {
	return bus.Subscribe(func(e auth.Event, _ *auth.Session) {
		AuthEvents.WithLabelValues(string(e)).Inc()
	})
}
