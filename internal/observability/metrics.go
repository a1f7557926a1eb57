package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts counts signup and login attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_auth_attempts_total",
		Help: "Total number of signup and login attempts by operation and result",
	}, []string{"operation", "result"})

	// PostMutations counts successful post writes by operation.
	PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_post_mutations_total",
		Help: "Total number of post create, update and delete operations",
	}, []string{"operation"})

	// CacheLookups counts post cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_cache_lookups_total",
		Help: "Total number of post cache lookups by result",
	}, []string{"result"})

	// SavedReferencesAdded counts save requests that reached the store.
	SavedReferencesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campushub_saved_references_added_total",
		Help: "Total number of save operations accepted",
	})

	// ReconcileEntriesRemoved counts dangling or malformed saved references removed by sweeps.
	ReconcileEntriesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campushub_reconcile_entries_removed_total",
		Help: "Total number of saved references removed by reconciliation",
	})

	// ReconcileUserFailures counts per-user failures skipped during sweeps.
	ReconcileUserFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campushub_reconcile_user_failures_total",
		Help: "Total number of users whose saved set could not be reconciled",
	})

	// DatabaseConnectAttempts counts database connection attempts by driver and result.
	DatabaseConnectAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushub_database_connect_attempts_total",
		Help: "Total number of database connection attempts",
	}, []string{"driver", "result"})
)
