// Package resilience provides fault tolerance patterns for database access.
//
// The circuitbreaker subpackage wraps the non-transactional database handle so
// that a failing database is detected quickly instead of every finder waiting
// on a dead connection. The retry subpackage retries transient failures while
// opening a pool and beginning a transaction.
//
// Usage Example:
//
//	handle := circuitbreaker.NewDBCircuitBreaker(sqlDB)
//	rows, err := handle.QueryContext(ctx, "SELECT id, name, created_at FROM authors")
//
//	err = retry.WithBackoff(ctx, retry.ConnectConfig(), func() error {
//	    return sqlDB.PingContext(ctx)
//	})
package resilience
