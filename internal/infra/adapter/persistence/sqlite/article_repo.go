// Package sqlite provides SQLite implementations of repository interfaces.
// Every repository runs on a repository.DBTX, so the same code serves
// the connection pool and a transaction.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/infra/adapter/persistence/rowmap"
	"magazine-db/internal/repository"
)

// timeLayout matches the text SQLite's CURRENT_TIMESTAMP writes, so bound
// times compare correctly against stored ones.
const timeLayout = "2006-01-02 15:04:05"

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct{ db repository.DBTX }

// NewArticleRepo creates a new SQLite-backed article repository on db.
func NewArticleRepo(db repository.DBTX) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	if article.IsPersisted() {
		return fmt.Errorf("Create: article %d is already persisted", article.ID)
	}
	if err := entity.ValidateArticle(article.Title, article.AuthorID, article.MagazineID); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	const query = `
INSERT INTO articles
(title, content, author_id, magazine_id)
VALUES (?, ?, ?, ?)
RETURNING id, published_at
`
	var publishedAt rowmap.Timestamp
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.AuthorID, article.MagazineID,
	).Scan(&article.ID, &publishedAt)
	if err != nil {
		return fmt.Errorf("Create: QueryRowContext: %w", err)
	}
	article.PublishedAt = publishedAt.Time
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	if err := entity.ValidateArticle(article.Title, article.AuthorID, article.MagazineID); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	const query = `
UPDATE articles SET
	title       = ?,
	content     = ?,
	author_id   = ?,
	magazine_id = ?
WHERE id = ?
`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, article.AuthorID, article.MagazineID, article.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: no rows affected: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) FindByID(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + rowmap.ArticleColumns + `
FROM articles
WHERE id = ?
LIMIT 1
`
	article, err := rowmap.ScanArticle(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) FindByTitle(ctx context.Context, title string, exact bool) ([]*entity.Article, error) {
	query, args := repo.finder().
		Match("title", title, exact).
		OrderBy("id").
		Build()
	return repo.list(ctx, "FindByTitle", query, args...)
}

func (repo *ArticleRepo) FindByAuthor(ctx context.Context, authorID int64, limit int) ([]*entity.Article, error) {
	query, args := repo.finder().
		Where("author_id = ?", authorID).
		OrderBy("id").
		Limit(limit).
		Build()
	return repo.list(ctx, "FindByAuthor", query, args...)
}

func (repo *ArticleRepo) FindByMagazine(ctx context.Context, magazineID int64, limit int) ([]*entity.Article, error) {
	query, args := repo.finder().
		Where("magazine_id = ?", magazineID).
		OrderBy("id").
		Limit(limit).
		Build()
	return repo.list(ctx, "FindByMagazine", query, args...)
}

// ListByMagazine returns a magazine's articles, newest first.
func (repo *ArticleRepo) ListByMagazine(ctx context.Context, magazineID int64) ([]*entity.Article, error) {
	query, args := repo.finder().
		Where("magazine_id = ?", magazineID).
		OrderBy("published_at DESC, id DESC").
		Build()
	return repo.list(ctx, "ListByMagazine", query, args...)
}

// Recent returns articles published at or after since, newest first.
func (repo *ArticleRepo) Recent(ctx context.Context, since time.Time, limit int) ([]*entity.Article, error) {
	query, args := repo.finder().
		Where("published_at >= ?", since.UTC().Format(timeLayout)).
		OrderBy("published_at DESC, id DESC").
		Limit(limit).
		Build()
	return repo.list(ctx, "Recent", query, args...)
}

func (repo *ArticleRepo) DeleteAll(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("DeleteAll: ExecContext: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) finder() *FinderQuery {
	return NewFinderQuery(`SELECT ` + rowmap.ArticleColumns + ` FROM articles`)
}

func (repo *ArticleRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles, err := rowmap.ScanArticles(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}
