package repository

import (
	"context"
	"time"

	"magazine-db/internal/domain/entity"
)

// ArticleRepository persists and finds articles.
type ArticleRepository interface {
	// Create inserts the article and fills in the storage-assigned ID and PublishedAt.
	Create(ctx context.Context, article *entity.Article) error
	// Update overwrites every user-supplied column of an existing article.
	Update(ctx context.Context, article *entity.Article) error
	// FindByID returns (nil, nil) when no article has the given ID.
	FindByID(ctx context.Context, id int64) (*entity.Article, error)
	FindByTitle(ctx context.Context, title string, exact bool) ([]*entity.Article, error)
	// FindByAuthor returns articles in storage order. A limit <= 0 returns all rows.
	FindByAuthor(ctx context.Context, authorID int64, limit int) ([]*entity.Article, error)
	FindByMagazine(ctx context.Context, magazineID int64, limit int) ([]*entity.Article, error)
	// ListByMagazine returns a magazine's articles, newest first.
	ListByMagazine(ctx context.Context, magazineID int64) ([]*entity.Article, error)
	// Recent returns articles published at or after since, newest first.
	Recent(ctx context.Context, since time.Time, limit int) ([]*entity.Article, error)
	DeleteAll(ctx context.Context) error
}
