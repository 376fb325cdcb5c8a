package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestGetConnectionConfigFromEnv_Defaults(t *testing.T) {
	// Clear all environment variables
	_ = os.Unsetenv("DB_MAX_OPEN_CONNS")
	_ = os.Unsetenv("DB_MAX_IDLE_CONNS")
	_ = os.Unsetenv("DB_CONN_MAX_LIFETIME")
	_ = os.Unsetenv("DB_CONN_MAX_IDLE_TIME")

	cfg := getConnectionConfigFromEnv()

	// Should use defaults
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestGetConnectionConfigFromEnv_MaxOpenConns(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected int
	}{
		{
			name:     "valid value",
			envValue: "50",
			expected: 50,
		},
		{
			name:     "invalid value - non-numeric",
			envValue: "invalid",
			expected: 25, // default
		},
		{
			name:     "invalid value - zero",
			envValue: "0",
			expected: 25, // default
		},
		{
			name:     "invalid value - negative",
			envValue: "-10",
			expected: 25, // default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Setenv("DB_MAX_OPEN_CONNS", tt.envValue)
			defer func() { _ = os.Unsetenv("DB_MAX_OPEN_CONNS") }()

			cfg := getConnectionConfigFromEnv()
			assert.Equal(t, tt.expected, cfg.MaxOpenConns)
		})
	}
}

func TestGetConnectionConfigFromEnv_MaxIdleConns(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected int
	}{
		{
			name:     "valid value",
			envValue: "20",
			expected: 20,
		},
		{
			name:     "invalid value - non-numeric",
			envValue: "abc",
			expected: 10, // default
		},
		{
			name:     "invalid value - zero",
			envValue: "0",
			expected: 10, // default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Setenv("DB_MAX_IDLE_CONNS", tt.envValue)
			defer func() { _ = os.Unsetenv("DB_MAX_IDLE_CONNS") }()

			cfg := getConnectionConfigFromEnv()
			assert.Equal(t, tt.expected, cfg.MaxIdleConns)
		})
	}
}

func TestGetConnectionConfigFromEnv_ConnMaxLifetime(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{
			name:     "valid value - hours",
			envValue: "2h",
			expected: 2 * time.Hour,
		},
		{
			name:     "valid value - minutes",
			envValue: "45m",
			expected: 45 * time.Minute,
		},
		{
			name:     "valid value - mixed",
			envValue: "1h30m",
			expected: 90 * time.Minute,
		},
		{
			name:     "invalid value - not a duration",
			envValue: "invalid",
			expected: 1 * time.Hour, // default
		},
		{
			name:     "invalid value - zero",
			envValue: "0s",
			expected: 1 * time.Hour, // default
		},
		{
			name:     "invalid value - negative",
			envValue: "-1h",
			expected: 1 * time.Hour, // default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Setenv("DB_CONN_MAX_LIFETIME", tt.envValue)
			defer func() { _ = os.Unsetenv("DB_CONN_MAX_LIFETIME") }()

			cfg := getConnectionConfigFromEnv()
			assert.Equal(t, tt.expected, cfg.ConnMaxLifetime)
		})
	}
}

func TestGetConnectionConfigFromEnv_ConnMaxIdleTime(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{
			name:     "valid value",
			envValue: "15m",
			expected: 15 * time.Minute,
		},
		{
			name:     "invalid value",
			envValue: "not-a-duration",
			expected: 30 * time.Minute, // default
		},
		{
			name:     "zero value",
			envValue: "0m",
			expected: 30 * time.Minute, // default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Setenv("DB_CONN_MAX_IDLE_TIME", tt.envValue)
			defer func() { _ = os.Unsetenv("DB_CONN_MAX_IDLE_TIME") }()

			cfg := getConnectionConfigFromEnv()
			assert.Equal(t, tt.expected, cfg.ConnMaxIdleTime)
		})
	}
}

func TestGetConnectionConfigFromEnv_AllCustomValues(t *testing.T) {
	// Set all custom values
	_ = os.Setenv("DB_MAX_OPEN_CONNS", "100")
	_ = os.Setenv("DB_MAX_IDLE_CONNS", "50")
	_ = os.Setenv("DB_CONN_MAX_LIFETIME", "2h")
	_ = os.Setenv("DB_CONN_MAX_IDLE_TIME", "45m")

	defer func() {
		_ = os.Unsetenv("DB_MAX_OPEN_CONNS")
		_ = os.Unsetenv("DB_MAX_IDLE_CONNS")
		_ = os.Unsetenv("DB_CONN_MAX_LIFETIME")
		_ = os.Unsetenv("DB_CONN_MAX_IDLE_TIME")
	}()

	cfg := getConnectionConfigFromEnv()

	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, 50, cfg.MaxIdleConns)
	assert.Equal(t, 2*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 45*time.Minute, cfg.ConnMaxIdleTime)
}

func TestGetConnectionConfigFromEnv_PartialCustomValues(t *testing.T) {
	// Set only some custom values
	_ = os.Setenv("DB_MAX_OPEN_CONNS", "75")
	_ = os.Setenv("DB_CONN_MAX_LIFETIME", "3h")

	defer func() {
		_ = os.Unsetenv("DB_MAX_OPEN_CONNS")
		_ = os.Unsetenv("DB_CONN_MAX_LIFETIME")
	}()

	cfg := getConnectionConfigFromEnv()

	// Custom values
	assert.Equal(t, 75, cfg.MaxOpenConns)
	assert.Equal(t, 3*time.Hour, cfg.ConnMaxLifetime)

	// Default values
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxIdleTime)
}

func TestConnectionConfig_Struct(t *testing.T) {
	// Test that ConnectionConfig struct can be created manually
	cfg := ConnectionConfig{
		MaxOpenConns:    100,
		MaxIdleConns:    50,
		ConnMaxLifetime: 2 * time.Hour,
		ConnMaxIdleTime: 1 * time.Hour,
	}

	assert.Equal(t, 100, cfg.MaxOpenConns)
	assert.Equal(t, 50, cfg.MaxIdleConns)
	assert.Equal(t, 2*time.Hour, cfg.ConnMaxLifetime)
	assert.Equal(t, 1*time.Hour, cfg.ConnMaxIdleTime)
}

/* ──────────────────────────────── 7. Open ──────────────────────────────── */

func TestSQLiteConnectionConfig(t *testing.T) {
	cfg := SQLiteConnectionConfig()

	assert.Equal(t, 1, cfg.MaxOpenConns)
	assert.Equal(t, 1, cfg.MaxIdleConns)
	assert.Zero(t, cfg.ConnMaxLifetime)
	assert.Zero(t, cfg.ConnMaxIdleTime)
}

func TestConnectionConfigFor_SQLiteIgnoresEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	assert.Equal(t, SQLiteConnectionConfig(), connectionConfigFor(DriverSQLite))
	assert.Equal(t, 50, connectionConfigFor(DriverPostgres).MaxOpenConns)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "file::memory:?_pragma=foreign_keys(1)"},
		{"memory", ":memory:", "file::memory:?_pragma=foreign_keys(1)"},
		{"path", "magazine.db", "magazine.db?_pragma=foreign_keys(1)"},
		{"with query", "file:magazine.db?mode=rwc", "file:magazine.db?mode=rwc&_pragma=foreign_keys(1)"},
		{"already set", "magazine.db?_pragma=foreign_keys(0)", "magazine.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SQLiteDSN(tt.in))
		})
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestOpen_PostgresEmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), DriverPostgres, "")
	require.Error(t, err)
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(context.Background(), DriverSQLite, MemoryDSN)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	var fk int
	require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enforced")
}

func TestOpen_SQLiteMemorySurvivesAcrossStatements(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, MemoryDSN)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO t DEFAULT VALUES")
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 1, n)
}

// TestOpen_Postgres connects to a real server when DATABASE_URL is set.
func TestOpen_Postgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := Open(context.Background(), DriverPostgres, dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Positive(t, db.Stats().MaxOpenConnections)
}
