// Package metrics exposes domain counters for the collaboration core.
// Request-level metrics come from the fiberprometheus middleware; these
// cover what HTTP status codes alone cannot show.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LockAcquisitions counts successful lock grants, including idempotent
	// refreshes by the current holder.
	LockAcquisitions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nomatrix_lock_acquisitions_total",
			Help: "Total number of successful cell lock acquisitions",
		},
	)

	// LockConflicts counts acquisitions rejected because another user holds
	// the cell.
	LockConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nomatrix_lock_conflicts_total",
			Help: "Total number of cell lock acquisitions rejected due to an active holder",
		},
	)

	// RelationshipWrites counts relationship mutations by operation.
	RelationshipWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomatrix_relationship_writes_total",
			Help: "Total number of relationship mutations",
		},
		[]string{"op"},
	)

	// EventsPublished counts change notifications handed to the push
	// transport, by outcome.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomatrix_events_published_total",
			Help: "Total number of change notifications published",
		},
		[]string{"outcome"},
	)

	// MatrixAssemblies counts full matrix reads.
	MatrixAssemblies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nomatrix_matrix_assemblies_total",
			Help: "Total number of NOM matrix assemblies",
		},
	)
)
