// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Transaction outcomes and durations
//   - Entity saves and transactional author-with-articles writes
//   - Connection pool gauges
//
// All metrics are automatically registered with the Prometheus default registry.
// The CLI prints them with Snapshot when run with --print-metrics.
//
// Example usage:
//
//	import "magazine-db/internal/observability/metrics"
//
//	func save(entity string) {
//	    start := time.Now()
//	    // ... insert ...
//	    metrics.RecordSave(entity, "create")
//	    metrics.RecordTransaction(true, time.Since(start))
//	}
package metrics
