package repository

import (
	"context"

	"magazine-db/internal/domain/entity"
)

// MagazineArticleCount pairs a magazine with the number of articles it published.
type MagazineArticleCount struct {
	Magazine     *entity.Magazine
	ArticleCount int64
}

// MagazineRepository persists and finds magazines.
type MagazineRepository interface {
	Create(ctx context.Context, magazine *entity.Magazine) error
	Update(ctx context.Context, magazine *entity.Magazine) error
	// FindByID returns (nil, nil) when no magazine has the given ID.
	FindByID(ctx context.Context, id int64) (*entity.Magazine, error)
	FindByName(ctx context.Context, name string, exact bool) ([]*entity.Magazine, error)
	FindByCategory(ctx context.Context, category string, exact bool) ([]*entity.Magazine, error)
	// Contributors returns the distinct authors who wrote for the magazine.
	Contributors(ctx context.Context, magazineID int64) ([]*entity.Author, error)
	// ContributingAuthors returns authors with at least minArticles articles in the magazine.
	ContributingAuthors(ctx context.Context, magazineID int64, minArticles int) ([]*entity.Author, error)
	ArticleTitles(ctx context.Context, magazineID int64) ([]string, error)
	// Popular returns magazines with articles by at least minAuthors distinct authors.
	Popular(ctx context.Context, minAuthors int) ([]*entity.Magazine, error)
	// ArticleCounts maps magazine ID to its article count. Magazines without articles are absent.
	ArticleCounts(ctx context.Context) (map[int64]int64, error)
	// TopPublisher returns the magazine with the most articles, or nil when there are none.
	TopPublisher(ctx context.Context) (*MagazineArticleCount, error)
	DeleteAll(ctx context.Context) error
}
