// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "manager_directory",
		Name:      "submissions_created_total",
		Help:      "Profile submissions accepted by intake.",
	})

	// ReviewsTotal counts review transitions by outcome (approve / reject).
	ReviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "manager_directory",
		Name:      "reviews_total",
		Help:      "Review transitions by action.",
	}, []string{"action"})

	// DirectoryDegraded counts public directory reads that swallowed a store
	// error and served an empty list. The public contract hides these
	// failures, so this counter is the only outage signal.
	DirectoryDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "manager_directory",
		Name:      "directory_degraded_reads_total",
		Help:      "Directory reads degraded to an empty list by a store failure.",
	})

	MaintenanceRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "manager_directory",
		Name:      "maintenance_runs_total",
		Help:      "Maintenance job executions by job name.",
	}, []string{"job"})
)
