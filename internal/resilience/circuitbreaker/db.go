package circuitbreaker

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"magazine-db/internal/observability/metrics"
	"magazine-db/internal/repository"
)

var _ repository.DBTX = (*DBCircuitBreaker)(nil)

// DBCircuitBreaker guards the non-transactional storage handle. Every
// statement a repository issues through it, single-row lookups included,
// is counted by one breaker; once the breaker opens, statements fail with
// gobreaker.ErrOpenState without reaching the database.
//
// Transactions are begun on DB() directly and are not guarded.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig returns the breaker settings for the database handle: it opens
// once the last 5 or more statements within a minute all failed, and lets
// one statement through again after 30 seconds.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// NewDBCircuitBreaker wraps db with a breaker using DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig wraps db with a breaker using cfg.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return guard(dcb, func() (*sql.Rows, error) {
		return dcb.db.QueryContext(ctx, query, args...)
	})
}

func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return guard(dcb, func() (sql.Result, error) {
		return dcb.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext runs a single-row query through the breaker. The query
// error is taken from Row.Err, so a missing row (sql.ErrNoRows, reported
// only by Scan) never counts as a failure. A rejected call returns a row
// whose Scan reports the breaker error.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	var row *sql.Row
	_, err := guard(dcb, func() (struct{}, error) {
		row = dcb.db.QueryRowContext(ctx, query, args...)
		return struct{}{}, row.Err()
	})
	if row == nil {
		return rejectedRow(ctx, err)
	}
	return row
}

// State returns the current state of the circuit breaker.
func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}

// DB returns the unguarded pool, used for transactions and introspection.
func (dcb *DBCircuitBreaker) DB() *sql.DB {
	return dcb.db
}

// guard runs fn through the breaker and counts rejected calls.
func guard[T any](dcb *DBCircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := dcb.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCircuitBreakerRejection(dcb.cb.Name())
		}
		var zero T
		return zero, err
	}
	return res.(T), nil
}

type rejectionKey struct{}

// rejectingConnector fails every connection attempt with the error carried
// in the context. sql.Row has no exported constructor, so a rejected
// single-row query is answered by a pool built on this connector.
type rejectingConnector struct{}

func (rejectingConnector) Connect(ctx context.Context) (driver.Conn, error) {
	if err, ok := ctx.Value(rejectionKey{}).(error); ok {
		return nil, err
	}
	return nil, gobreaker.ErrOpenState
}

func (c rejectingConnector) Driver() driver.Driver { return c }

func (rejectingConnector) Open(string) (driver.Conn, error) {
	return nil, gobreaker.ErrOpenState
}

var (
	rejectOnce sync.Once
	rejectPool *sql.DB
)

func rejectedRow(ctx context.Context, err error) *sql.Row {
	rejectOnce.Do(func() { rejectPool = sql.OpenDB(rejectingConnector{}) })
	return rejectPool.QueryRowContext(context.WithValue(ctx, rejectionKey{}, err), "")
}
