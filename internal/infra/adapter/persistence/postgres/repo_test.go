package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"magazine-db/internal/domain/entity"
	pg "magazine-db/internal/infra/adapter/persistence/postgres"
	"magazine-db/internal/repository"
)

/* ─────────────────────────── helpers ─────────────────────────── */

var now = time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)

func artRows(articles ...*entity.Article) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "content", "author_id", "magazine_id", "published_at",
	})
	for _, a := range articles {
		rows.AddRow(a.ID, a.Title, a.Content, a.AuthorID, a.MagazineID, a.PublishedAt)
	}
	return rows
}

/* ─────────────────────────── 1. Create ─────────────────────────── */

func TestArticleRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs("Go", "body", int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "published_at"}).AddRow(int64(5), now))

	art, _ := entity.NewArticle("Go", "body", 1, 2)
	if err := pg.NewArticleRepo(db).Create(context.Background(), art); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	want := &entity.Article{ID: 5, Title: "Go", Content: "body", AuthorID: 1, MagazineID: 2, PublishedAt: now}
	if diff := cmp.Diff(want, art); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 2. FindByID ─────────────────────────── */

func TestArticleRepo_FindByID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := &entity.Article{ID: 1, Title: "Pride and Prejudice", AuthorID: 3, MagazineID: 1, PublishedAt: now}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(artRows(want))

	got, err := pg.NewArticleRepo(db).FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByID err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_FindByID_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM articles").WillReturnRows(artRows())

	got, err := pg.NewArticleRepo(db).FindByID(context.Background(), 42)
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
}

/* ─────────────────────────── 3. Finders ─────────────────────────── */

func TestAuthorRepo_FindByName_ILIKE(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE name ILIKE $1")).
		WithArgs("%alice%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(int64(1), "Alice Walker", now))

	got, err := pg.NewAuthorRepo(db).FindByName(context.Background(), "alice", false)
	if err != nil {
		t.Fatalf("FindByName err=%v", err)
	}
	if len(got) != 1 || got[0].Name != "Alice Walker" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestArticleRepo_Recent_BindsTime(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	since := now.Add(-24 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE published_at >= $1\nORDER BY published_at DESC, id DESC\nLIMIT $2")).
		WithArgs(since, 3).
		WillReturnRows(artRows())

	got, err := pg.NewArticleRepo(db).Recent(context.Background(), since, 3)
	if err != nil {
		t.Fatalf("Recent err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty slice, got %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 4. Update ─────────────────────────── */

func TestMagazineRepo_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE magazines")).
		WithArgs("Wired", "Tech", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := pg.NewMagazineRepo(db).Update(context.Background(),
		&entity.Magazine{ID: 9, Name: "Wired", Category: "Tech"})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

/* ─────────────────────────── 5. Aggregates ─────────────────────────── */

func TestMagazineRepo_TopPublisher(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("ORDER BY article_count DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "created_at", "article_count"}).
			AddRow(int64(1), "Nature", "Science", now, int64(2)))

	got, err := pg.NewMagazineRepo(db).TopPublisher(context.Background())
	if err != nil {
		t.Fatalf("TopPublisher err=%v", err)
	}
	want := &repository.MagazineArticleCount{
		Magazine:     &entity.Magazine{ID: 1, Name: "Nature", Category: "Science", CreatedAt: now},
		ArticleCount: 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMagazineRepo_TopPublisher_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("ORDER BY article_count DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "created_at", "article_count"}))

	got, err := pg.NewMagazineRepo(db).TopPublisher(context.Background())
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
}

func TestMagazineRepo_Popular(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("HAVING COUNT(DISTINCT a.author_id) >= $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "created_at"}).
			AddRow(int64(3), "Vogue", "Fashion", now))

	got, err := pg.NewMagazineRepo(db).Popular(context.Background(), 2)
	if err != nil || len(got) != 1 || got[0].Name != "Vogue" {
		t.Fatalf("Popular got=%v err=%v", got, err)
	}
}

/* ─────────────────────────── 6. Store ─────────────────────────── */

func TestStore_WithinTx_RollsBackOnError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO authors")).
		WithArgs("Bob Builder").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), now))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := pg.NewStore(db).WithinTx(context.Background(), func(ctx context.Context, repos repository.Repositories) error {
		a, _ := entity.NewAuthor("Bob Builder")
		if err := repos.Authors.Create(ctx, a); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
