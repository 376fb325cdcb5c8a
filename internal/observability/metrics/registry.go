// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transaction metrics track units of work run through the transaction helper
var (
	// DBTransactionsTotal counts finished transactions by outcome (commit, rollback)
	DBTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_transactions_total",
			Help: "Total number of database transactions by outcome",
		},
		[]string{"result"},
	)

	// DBTransactionDuration measures transaction duration in seconds
	DBTransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_transaction_duration_seconds",
			Help:    "Database transaction duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"result"},
	)

	// DBConnectionsActive tracks in-use database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBCircuitBreakerState reports breaker state by name (0 closed, 1 half-open, 2 open)
	DBCircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// DBCircuitBreakerRejections counts statements refused by an open or saturated breaker
	DBCircuitBreakerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_circuit_breaker_rejections_total",
			Help: "Total number of statements rejected by the circuit breaker",
		},
		[]string{"name"},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// Business metrics track domain writes
var (
	// EntitySavesTotal counts persisted entities by type and operation (create, update)
	EntitySavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_saves_total",
			Help: "Total number of saved authors, magazines and articles",
		},
		[]string{"entity", "operation"},
	)

	// PublishOperationsTotal counts author-with-articles writes by status
	PublishOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publish_operations_total",
			Help: "Total number of transactional author-with-articles writes",
		},
		[]string{"status"},
	)

	// PublishedArticles measures how many articles each successful publish carried
	PublishedArticles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "publish_articles_per_operation",
			Help:    "Number of articles committed per transactional write",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	// SeedRunsTotal counts seed routine runs by status
	SeedRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_runs_total",
			Help: "Total number of seed routine runs",
		},
		[]string{"status"},
	)
)
