package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine-db/internal/observability/logging"
	"magazine-db/internal/observability/metrics"
)

func TestRunInTx_Commit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO authors").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	commits := metrics.DBTransactionsTotal.WithLabelValues("commit")
	before := testutil.ToFloat64(commits)

	var sawTxID string
	err = RunInTx(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		sawTxID = logging.TxIDFromContext(ctx)
		_, err := tx.ExecContext(ctx, "INSERT INTO authors (name) VALUES (?)", "Alice Walker")
		return err
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sawTxID, "fn should receive a tx_id in its context")
	assert.Equal(t, before+1, testutil.ToFloat64(commits))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	rollbacks := metrics.DBTransactionsTotal.WithLabelValues("rollback")
	before := testutil.ToFloat64(rollbacks)

	sentinel := errors.New("magazine missing")
	err = RunInTx(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return sentinel
	})

	assert.Same(t, sentinel, err, "fn error should pass through unwrapped")
	assert.Equal(t, before+1, testutil.ToFloat64(rollbacks))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = RunInTx(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	called := false
	err = RunInTx(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "BeginTx")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("constraint failed"))

	err = RunInTx(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Commit")
	assert.NoError(t, mock.ExpectationsWereMet())
}
