// Package metrics defines and registers all custom Prometheus metrics for the
// effort tracker API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "effort"

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

// EntriesCreatedTotal counts time entries created through the API.
var EntriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of time entries created.",
	},
)

// EntriesBulkUpdatedTotal counts entries modified via bulk task updates.
var EntriesBulkUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_bulk_updated_total",
		Help:      "Total number of time entries modified through bulk updates.",
	},
)

// AnalyticsQueriesTotal counts analytics endpoint hits.
// Label:
//   - kind: "monthly_stats", "team_stats", "monthly_hours", "tasks_with_entries"
var AnalyticsQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_queries_total",
		Help:      "Total number of analytics queries served, by kind.",
	},
	[]string{"kind"},
)
