package db

import (
	"context"
	"database/sql"
	"fmt"
)

var sqliteSchema = []string{
	`
CREATE TABLE IF NOT EXISTS authors (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	`
CREATE TABLE IF NOT EXISTS magazines (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    category   TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
	`
CREATE TABLE IF NOT EXISTS articles (
    id           INTEGER PRIMARY KEY,
    title        TEXT NOT NULL,
    content      TEXT,
    author_id    INTEGER REFERENCES authors(id),
    magazine_id  INTEGER REFERENCES magazines(id),
    published_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
}

var postgresSchema = []string{
	`
CREATE TABLE IF NOT EXISTS authors (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at TIMESTAMPTZ DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS magazines (
    id         SERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    category   TEXT NOT NULL,
    created_at TIMESTAMPTZ DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS articles (
    id           SERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    content      TEXT,
    author_id    INTEGER REFERENCES authors(id),
    magazine_id  INTEGER REFERENCES magazines(id),
    published_at TIMESTAMPTZ DEFAULT now()
)`,
}

// Schema returns the CREATE TABLE statements for driver.
func Schema(driver string) ([]string, error) {
	switch driver {
	case DriverSQLite:
		return sqliteSchema, nil
	case DriverPostgres:
		return postgresSchema, nil
	default:
		return nil, fmt.Errorf("Schema: unsupported driver %q", driver)
	}
}

// MigrateUp creates the authors, magazines and articles tables if they do not exist.
// It is safe to run repeatedly.
func MigrateUp(ctx context.Context, db *sql.DB, driver string) error {
	stmts, err := Schema(driver)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}
	return nil
}
