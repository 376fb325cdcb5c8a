// Package postgres provides PostgreSQL implementations of repository interfaces.
// The repositories mirror the SQLite ones statement for statement, using
// numbered placeholders, ILIKE for substring finders and TIMESTAMPTZ columns.
package postgres

import (
	"context"
	"fmt"
	"time"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/infra/adapter/persistence/rowmap"
	"magazine-db/internal/repository"
)

type ArticleRepo struct{ db repository.DBTX }

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
VALUES ($1, $2, $3, $4)
RETURNING id, published_at`
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
	title       = $1,
	content     = $2,
	author_id   = $3,
	magazine_id = $4
WHERE id = $5`
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
WHERE id = $1
LIMIT 1`
	article, err := rowmap.ScanArticle(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) FindByTitle(ctx context.Context, title string, exact bool) ([]*entity.Article, error) {
	query, args := finder().Match("title", title, exact).OrderBy("id").Build()
	return listArticles(ctx, repo.db, "FindByTitle", query, args...)
}

func (repo *ArticleRepo) FindByAuthor(ctx context.Context, authorID int64, limit int) ([]*entity.Article, error) {
	query, args := finder().
		Where("author_id = $%d", authorID).
		OrderBy("id").
		Limit(limit).
		Build()
	return listArticles(ctx, repo.db, "FindByAuthor", query, args...)
}

func (repo *ArticleRepo) FindByMagazine(ctx context.Context, magazineID int64, limit int) ([]*entity.Article, error) {
	query, args := finder().
		Where("magazine_id = $%d", magazineID).
		OrderBy("id").
		Limit(limit).
		Build()
	return listArticles(ctx, repo.db, "FindByMagazine", query, args...)
}

func (repo *ArticleRepo) ListByMagazine(ctx context.Context, magazineID int64) ([]*entity.Article, error) {
	query, args := finder().
		Where("magazine_id = $%d", magazineID).
		OrderBy("published_at DESC, id DESC").
		Build()
	return listArticles(ctx, repo.db, "ListByMagazine", query, args...)
}

func (repo *ArticleRepo) Recent(ctx context.Context, since time.Time, limit int) ([]*entity.Article, error) {
	query, args := finder().
		Where("published_at >= $%d", since).
		OrderBy("published_at DESC, id DESC").
		Limit(limit).
		Build()
	return listArticles(ctx, repo.db, "Recent", query, args...)
}

func (repo *ArticleRepo) DeleteAll(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("DeleteAll: ExecContext: %w", err)
	}
	return nil
}

func finder() *FinderQuery {
	return NewFinderQuery(`SELECT ` + rowmap.ArticleColumns + ` FROM articles`)
}
