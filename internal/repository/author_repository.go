package repository

import (
	"context"

	"magazine-db/internal/domain/entity"
)

// AuthorRepository persists and finds authors.
type AuthorRepository interface {
	// Create inserts the author and fills in the storage-assigned ID and CreatedAt.
	Create(ctx context.Context, author *entity.Author) error
	Update(ctx context.Context, author *entity.Author) error
	// FindByID returns (nil, nil) when no author has the given ID.
	FindByID(ctx context.Context, id int64) (*entity.Author, error)
	// FindByName matches the name exactly, or as a substring when exact is false.
	FindByName(ctx context.Context, name string, exact bool) ([]*entity.Author, error)
	// Magazines returns the distinct magazines the author has written for.
	Magazines(ctx context.Context, authorID int64) ([]*entity.Magazine, error)
	// TopicAreas returns the distinct categories of those magazines.
	TopicAreas(ctx context.Context, authorID int64) ([]string, error)
	// MostProlific returns the author with the most articles, or nil when there are none.
	MostProlific(ctx context.Context) (*entity.Author, error)
	DeleteAll(ctx context.Context) error
}
