// Package metrics exposes prometheus collectors for login outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for login attempts.
const (
	OutcomeSuccess       = "success"
	OutcomeUnknownUser   = "unknown_user"
	OutcomeWrongPassword = "wrong_password"
	OutcomeInvalid       = "invalid"
	OutcomeError         = "error"
)

// Route labels.
const (
	RouteLogin     = "login"
	RouteLoginTest = "login_test"
)

// LoginAttempts counts login attempts by route and outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var LoginAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "todoauth_login_attempts_total",
		Help: "Total number of login attempts",
	},
	[]string{"route", "outcome"},
)

// LoginDuration observes how long authentication took, hashing included.
var LoginDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "todoauth_login_duration_seconds",
		Help:    "Login duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route"},
)

// RegisterMetrics registers the login collectors with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(LoginDuration)
}

// RecordLogin counts one attempt and observes its duration.
func RecordLogin(route, outcome string, d time.Duration) {
	LoginAttempts.WithLabelValues(route, outcome).Inc()
	LoginDuration.WithLabelValues(route).Observe(d.Seconds())
}
