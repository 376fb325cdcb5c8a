package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/observability/logging"
	"magazine-db/internal/observability/metrics"
	"magazine-db/internal/repository"
)

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title      string
	Content    string
	AuthorID   int64
	MagazineID int64
}

// Detail is an article together with its author and magazine.
type Detail struct {
	Article  *entity.Article  `json:"article"`
	Author   *entity.Author   `json:"author"`
	Magazine *entity.Magazine `json:"magazine"`
}

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the repositories.
type Service struct {
	Repos repository.Repositories

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create creates a new article with the provided input.
// Returns a ValidationError if any input field is invalid.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	art, err := entity.NewArticle(in.Title, in.Content, in.AuthorID, in.MagazineID)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, art); err != nil {
		return nil, err
	}
	return art, nil
}

// Save inserts a new article or updates an existing one.
func (s *Service) Save(ctx context.Context, art *entity.Article) error {
	op := "update"
	if !art.IsPersisted() {
		op = "create"
	}

	var err error
	if op == "create" {
		err = s.Repos.Articles.Create(ctx, art)
	} else {
		err = s.Repos.Articles.Update(ctx, art)
	}
	if err != nil {
		return fmt.Errorf("%s article: %w", op, err)
	}

	metrics.RecordSave("article", op)
	logging.FromContext(ctx).Info("article saved",
		slog.String("operation", op),
		slog.Int64("article_id", art.ID),
		slog.Int64("author_id", art.AuthorID),
		slog.Int64("magazine_id", art.MagazineID))
	return nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repos.Articles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}

// Detail retrieves an article along with its author and magazine.
// Returns ErrDanglingReference if either of them is missing.
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	art, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.Repos.Authors.FindByID(ctx, art.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get article author: %w", err)
	}
	magazine, err := s.Repos.Magazines.FindByID(ctx, art.MagazineID)
	if err != nil {
		return nil, fmt.Errorf("get article magazine: %w", err)
	}
	if author == nil || magazine == nil {
		return nil, fmt.Errorf("article %d: %w", art.ID, ErrDanglingReference)
	}
	return &Detail{Article: art, Author: author, Magazine: magazine}, nil
}

func (s *Service) FindByTitle(ctx context.Context, title string, exact bool) ([]*entity.Article, error) {
	articles, err := s.Repos.Articles.FindByTitle(ctx, title, exact)
	if err != nil {
		return nil, fmt.Errorf("find articles by title: %w", err)
	}
	return articles, nil
}

// FindByAuthor lists an author's articles. limit <= 0 returns all of them.
func (s *Service) FindByAuthor(ctx context.Context, authorID int64, limit int) ([]*entity.Article, error) {
	articles, err := s.Repos.Articles.FindByAuthor(ctx, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("find articles by author: %w", err)
	}
	return articles, nil
}

// FindByMagazine lists a magazine's articles. limit <= 0 returns all of them.
func (s *Service) FindByMagazine(ctx context.Context, magazineID int64, limit int) ([]*entity.Article, error) {
	articles, err := s.Repos.Articles.FindByMagazine(ctx, magazineID, limit)
	if err != nil {
		return nil, fmt.Errorf("find articles by magazine: %w", err)
	}
	return articles, nil
}

// Recent lists articles published within the last days days, newest first.
// A days value below 1 is treated as 1.
func (s *Service) Recent(ctx context.Context, days, limit int) ([]*entity.Article, error) {
	if days < 1 {
		days = 1
	}
	since := s.now().AddDate(0, 0, -days)
	articles, err := s.Repos.Articles.Recent(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent articles: %w", err)
	}
	return articles, nil
}

// MostProlificAuthor returns the author with the most articles, or nil when
// there are no articles.
func (s *Service) MostProlificAuthor(ctx context.Context) (*entity.Author, error) {
	a, err := s.Repos.Authors.MostProlific(ctx)
	if err != nil {
		return nil, fmt.Errorf("most prolific author: %w", err)
	}
	return a, nil
}
