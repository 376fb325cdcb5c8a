package sqlite

import (
	"context"
	"database/sql"

	"magazine-db/internal/infra/db"
	"magazine-db/internal/repository"
)

var _ repository.Transactor = (*Store)(nil)

// Store hands out SQLite repositories bound either to the pool or to a transaction.
type Store struct {
	sqlDB  *sql.DB
	handle repository.DBTX
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithHandle routes non-transactional repositories through h instead of the
// pool, e.g. a circuit breaker wrapping the same pool.
func WithHandle(h repository.DBTX) StoreOption {
	return func(s *Store) { s.handle = h }
}

// NewStore creates a Store on an open SQLite pool.
func NewStore(sqlDB *sql.DB, opts ...StoreOption) *Store {
	s := &Store{sqlDB: sqlDB, handle: sqlDB}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRepositories binds all three repositories to h.
func NewRepositories(h repository.DBTX) repository.Repositories {
	return repository.Repositories{
		Authors:   NewAuthorRepo(h),
		Magazines: NewMagazineRepo(h),
		Articles:  NewArticleRepo(h),
	}
}

// Repositories returns repositories that run each statement on its own.
func (s *Store) Repositories() repository.Repositories {
	return NewRepositories(s.handle)
}

// WithinTx runs fn with repositories bound to one transaction.
// fn must only use the repositories it is given: the SQLite pool has a
// single connection, which the transaction holds until it ends.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return db.RunInTx(ctx, s.sqlDB, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}
