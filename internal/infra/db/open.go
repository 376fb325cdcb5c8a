// Package db provides the connection provider: opening a pool for the
// configured driver, creating the schema, and running units of work in a
// transaction.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"magazine-db/internal/observability/metrics"
	"magazine-db/internal/resilience/retry"
	"magazine-db/pkg/config"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MemoryDSN is the SQLite DSN for a private in-memory database.
const MemoryDSN = ":memory:"

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,               // Maximum number of open connections
		MaxIdleConns:    10,               // Maximum number of idle connections
		ConnMaxLifetime: 1 * time.Hour,    // Maximum lifetime of a connection
		ConnMaxIdleTime: 30 * time.Minute, // Maximum idle time of a connection
	}
}

// SQLiteConnectionConfig returns the pool configuration for SQLite.
// A single connection that is never recycled keeps an in-memory database
// alive for the lifetime of the pool and serializes writers.
func SQLiteConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// Open creates and configures a new database connection pool for driver and
// verifies it with a ping. The returned pool must be closed by the caller.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	driverName, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		dsn = SQLiteDSN(dsn)
	}
	if dsn == "" {
		return nil, fmt.Errorf("Open: empty DSN for driver %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("Open: sql.Open: %w", err)
	}

	cfg := connectionConfigFor(driver)
	applyConnectionConfig(db, cfg)

	slog.Debug("database connection pool configured",
		slog.String("driver", driver),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	// Verify connection, giving a server that is still starting a few attempts.
	err = retry.WithBackoff(ctx, retry.ConnectConfig(), func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("Open: ping: %w", err)
	}

	metrics.UpdateDBStats(db.Stats())
	slog.Debug("database connection established successfully", slog.String("driver", driver))
	return db, nil
}

// SQLiteDSN normalizes a SQLite path or DSN. ":memory:" and "" become a
// private in-memory database, and foreign key enforcement is switched on
// unless the DSN already sets it.
func SQLiteDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" || dsn == MemoryDSN {
		dsn = "file::memory:"
	}
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return "sqlite", nil
	case DriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported driver %q (want %q or %q)", driver, DriverSQLite, DriverPostgres)
	}
}

func connectionConfigFor(driver string) ConnectionConfig {
	if driver == DriverSQLite {
		return SQLiteConnectionConfig()
	}
	return getConnectionConfigFromEnv()
}

func applyConnectionConfig(db *sql.DB, cfg ConnectionConfig) {
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

// getConnectionConfigFromEnv reads connection pool configuration from environment variables.
// Falls back to default values if not set or not positive.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if val := config.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); val > 0 {
		cfg.MaxOpenConns = val
	}
	if val := config.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); val > 0 {
		cfg.MaxIdleConns = val
	}
	if val := config.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime); val > 0 {
		cfg.ConnMaxLifetime = val
	}
	if val := config.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime); val > 0 {
		cfg.ConnMaxIdleTime = val
	}

	return cfg
}
