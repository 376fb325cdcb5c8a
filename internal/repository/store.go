// Package repository declares the persistence ports used by the use cases.
// Adapters under internal/infra/adapter/persistence implement them.
package repository

import (
	"context"
	"database/sql"
)

// DBTX is the storage handle every repository runs its statements on.
// *sql.DB, *sql.Tx and the circuit-breaker wrapper all satisfy it, so the
// same repository code serves both single statements and transactions.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repositories bundles the repositories bound to one storage handle.
type Repositories struct {
	Authors   AuthorRepository
	Magazines MagazineRepository
	Articles  ArticleRepository
}

// Transactor runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise;
// the underlying connection is released on every path.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
