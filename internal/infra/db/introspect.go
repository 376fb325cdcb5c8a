package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Column describes one table column for the REPL's .schema command.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// ListTables returns the user tables in the connected database, sorted by name.
func ListTables(ctx context.Context, db *sql.DB, driver string) ([]string, error) {
	var query string
	switch driver {
	case DriverSQLite:
		query = `
SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`
	case DriverPostgres:
		query = `
SELECT table_name FROM information_schema.tables
WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
ORDER BY table_name`
	default:
		return nil, fmt.Errorf("ListTables: unsupported driver %q", driver)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListTables: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tables := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("ListTables: Scan: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTables: rows.Err: %w", err)
	}
	return tables, nil
}

// DescribeTable returns the columns of table in declaration order.
// An unknown table yields an empty slice.
func DescribeTable(ctx context.Context, db *sql.DB, driver, table string) ([]Column, error) {
	var query string
	switch driver {
	case DriverSQLite:
		query = `SELECT name, type, "notnull" <> 0, pk > 0 FROM pragma_table_info(?) ORDER BY cid`
	case DriverPostgres:
		query = `
SELECT c.column_name, c.data_type, c.is_nullable = 'NO',
       EXISTS (
           SELECT 1 FROM information_schema.key_column_usage k
           JOIN information_schema.table_constraints tc
             ON tc.constraint_name = k.constraint_name AND tc.constraint_type = 'PRIMARY KEY'
           WHERE k.table_name = c.table_name AND k.column_name = c.column_name
       )
FROM information_schema.columns c
WHERE c.table_schema = current_schema() AND c.table_name = $1
ORDER BY c.ordinal_position`
	default:
		return nil, fmt.Errorf("DescribeTable: unsupported driver %q", driver)
	}

	rows, err := db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("DescribeTable: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols := make([]Column, 0, 8)
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.Type, &c.NotNull, &c.PrimaryKey); err != nil {
			return nil, fmt.Errorf("DescribeTable: Scan: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("DescribeTable: rows.Err: %w", err)
	}
	return cols, nil
}
