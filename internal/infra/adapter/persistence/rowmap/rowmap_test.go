package rowmap_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/infra/adapter/persistence/rowmap"
)

/* ────────────────────────────  helpers  ──────────────────────────── */

func query(t *testing.T, rows *sqlmock.Rows) (*sql.DB, *sql.Rows) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT").WillReturnRows(rows)
	r, err := db.QueryContext(context.Background(), "SELECT")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return db, r
}

var ts = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

/* ──────────────────────────── 1. Authors ──────────────────────────── */

func TestScanAuthors(t *testing.T) {
	_, rows := query(t, sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(int64(1), "Alice Walker", ts).
		AddRow(int64(2), "Mark Twain", "2024-03-01 09:30:00"))

	got, err := rowmap.ScanAuthors(rows)
	require.NoError(t, err)

	want := []*entity.Author{
		{ID: 1, Name: "Alice Walker", CreatedAt: ts},
		{ID: 2, Name: "Mark Twain", CreatedAt: ts},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ScanAuthors mismatch (-want +got):\n%s", diff)
	}
}

func TestScanAuthors_EmptyIsNonNil(t *testing.T) {
	_, rows := query(t, sqlmock.NewRows([]string{"id", "name", "created_at"}))

	got, err := rowmap.ScanAuthors(rows)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScanAuthors_InvalidRow(t *testing.T) {
	_, rows := query(t, sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(int64(5), "   ", ts))

	_, err := rowmap.ScanAuthors(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidationFailed))
	assert.Contains(t, err.Error(), "author row 5")
}

func TestScanAuthor_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	got, err := rowmap.ScanAuthor(db.QueryRowContext(context.Background(), "SELECT"))
	assert.NoError(t, err)
	assert.Nil(t, got)
}

/* ──────────────────────────── 2. Magazines ──────────────────────────── */

func TestScanMagazines(t *testing.T) {
	_, rows := query(t, sqlmock.NewRows([]string{"id", "name", "category", "created_at"}).
		AddRow(int64(3), "Vogue", "Fashion", []byte("2024-03-01T09:30:00Z")))

	got, err := rowmap.ScanMagazines(rows)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, &entity.Magazine{ID: 3, Name: "Vogue", Category: "Fashion", CreatedAt: ts}, got[0])
}

/* ──────────────────────────── 3. Articles ──────────────────────────── */

func TestScanArticles_NullContent(t *testing.T) {
	_, rows := query(t, sqlmock.NewRows(
		[]string{"id", "title", "content", "author_id", "magazine_id", "published_at"}).
		AddRow(int64(1), "The Color Purple", nil, int64(1), int64(3), ts).
		AddRow(int64(2), "Science Fiction Today", "Rockets.", int64(1), int64(1), ts))

	got, err := rowmap.ScanArticles(rows)
	require.NoError(t, err)

	want := []*entity.Article{
		{ID: 1, Title: "The Color Purple", Content: "", AuthorID: 1, MagazineID: 3, PublishedAt: ts},
		{ID: 2, Title: "Science Fiction Today", Content: "Rockets.", AuthorID: 1, MagazineID: 1, PublishedAt: ts},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ScanArticles mismatch (-want +got):\n%s", diff)
	}
}

func TestScanArticles_NullReferenceFailsValidation(t *testing.T) {
	_, rows := query(t, sqlmock.NewRows(
		[]string{"id", "title", "content", "author_id", "magazine_id", "published_at"}).
		AddRow(int64(9), "Orphan", nil, nil, int64(1), ts))

	_, err := rowmap.ScanArticles(rows)
	require.Error(t, err)

	var ve *entity.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "author_id", ve.Field)
}

func TestScanStrings(t *testing.T) {
	_, rows := query(t, sqlmock.NewRows([]string{"title"}).AddRow("a").AddRow("b"))

	got, err := rowmap.ScanStrings(rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

/* ──────────────────────────── 4. Same row, same entity ──────────────────────────── */

func TestArticleRow_Deterministic(t *testing.T) {
	row := rowmap.ArticleRow{
		ID:          4,
		Title:       "Pride and Prejudice",
		Content:     sql.NullString{String: "It is a truth", Valid: true},
		AuthorID:    sql.NullInt64{Int64: 3, Valid: true},
		MagazineID:  sql.NullInt64{Int64: 1, Valid: true},
		PublishedAt: rowmap.Timestamp{Time: ts},
	}

	a, err := row.ToEntity()
	require.NoError(t, err)
	b, err := row.ToEntity()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "m.id, m.name, m.category, m.created_at", rowmap.Prefixed("m", rowmap.MagazineColumns))
}
