package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUp_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS authors").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS magazines").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = MigrateUp(context.Background(), db, DriverSQLite)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_StopsAtFirstError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS authors").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS magazines").
		WillReturnError(errors.New("disk full"))

	err = MigrateUp(context.Background(), db, DriverPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_UnsupportedDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Error(t, MigrateUp(context.Background(), db, "oracle"))
}

func TestSchema_Dialects(t *testing.T) {
	lite, err := Schema(DriverSQLite)
	require.NoError(t, err)
	pg, err := Schema(DriverPostgres)
	require.NoError(t, err)

	require.Len(t, lite, 3)
	require.Len(t, pg, 3)
	assert.Contains(t, lite[2], "REFERENCES authors(id)")
	assert.Contains(t, pg[0], "SERIAL PRIMARY KEY")
	assert.Contains(t, pg[2], "TIMESTAMPTZ")
}

func TestMigrateUp_SQLiteIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, MemoryDSN)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, MigrateUp(ctx, db, DriverSQLite))
	require.NoError(t, MigrateUp(ctx, db, DriverSQLite))

	tables, err := ListTables(ctx, db, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, []string{"articles", "authors", "magazines"}, tables)

	cols, err := DescribeTable(ctx, db, DriverSQLite, "magazines")
	require.NoError(t, err)
	require.Len(t, cols, 4)
	assert.Equal(t, Column{Name: "id", Type: "INTEGER", NotNull: false, PrimaryKey: true}, cols[0])
	assert.Equal(t, Column{Name: "category", Type: "TEXT", NotNull: true}, cols[2])

	missing, err := DescribeTable(ctx, db, DriverSQLite, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
