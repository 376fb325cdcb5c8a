package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"magazine-db/internal/observability/logging"
	"magazine-db/internal/observability/metrics"
	"magazine-db/internal/observability/tracing"
	"magazine-db/internal/resilience/retry"
)

// TxFunc is a unit of work run inside a transaction.
type TxFunc func(ctx context.Context, tx *sql.Tx) error

// RunInTx begins a transaction on db and runs fn in it. The transaction is
// committed when fn returns nil and rolled back otherwise, including when fn
// panics. The error returned by fn is passed through unwrapped.
//
// Beginning the transaction is retried when the failure is transient.
// The context handed to fn carries a fresh tx_id for log correlation.
func RunInTx(ctx context.Context, db *sql.DB, fn TxFunc) (err error) {
	txID := uuid.NewString()
	ctx = logging.ContextWithTxID(ctx, txID)
	logger := logging.WithTxID(ctx, logging.FromContext(ctx))

	ctx, span := tracing.StartSpan(ctx, "db.RunInTx", attribute.String("db.tx_id", txID))
	start := time.Now()
	committed := false
	defer func() {
		metrics.RecordTransaction(committed, time.Since(start))
		tracing.EndSpan(span, err)
	}()

	var tx *sql.Tx
	err = retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		var beginErr error
		tx, beginErr = db.BeginTx(ctx, nil)
		return beginErr
	})
	if err != nil {
		return fmt.Errorf("RunInTx: BeginTx: %w", err)
	}
	logger.Debug("transaction started")

	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			return
		}
		logger.Warn("transaction rolled back", slog.Any("cause", err))
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("RunInTx: Commit: %w", err)
	}
	committed = true

	logger.Debug("transaction committed", slog.Duration("elapsed", time.Since(start)))
	return nil
}
