// Package metrics defines the custom Prometheus metrics of the HelpConnect
// API. HTTP request metrics come from echoprometheus; the counters here
// track marketplace activity.
//
// All metrics are registered with the default Prometheus registry on package
// initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "helpconnect"

// ── Accounts ──────────────────────────────────────────────────────────────────

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: "client" or "helper"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of profiles registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Helpers ───────────────────────────────────────────────────────────────────

var HelperSearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "helper_searches_total",
		Help:      "Total number of helper searches served.",
	},
)

// ── Jobs ──────────────────────────────────────────────────────────────────────

// JobsCreatedTotal counts accepted job requests.
// Label:
//   - replayed: "true" when an Idempotency-Key returned an earlier job
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job requests accepted.",
	},
	[]string{"replayed"},
)

// JobStatusUpdatesTotal counts valid status updates.
// Labels:
//   - status: the requested target status
//   - matched: "false" when the job id did not exist
var JobStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_status_updates_total",
		Help:      "Total number of job status updates applied.",
	},
	[]string{"status", "matched"},
)
