package author

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/observability/logging"
	"magazine-db/internal/observability/metrics"
	"magazine-db/internal/repository"
)

// Service provides author use cases on top of the repositories.
type Service struct {
	Repos repository.Repositories
}

// Stats summarizes an author's body of work.
type Stats struct {
	Author        *entity.Author `json:"author"`
	ArticleCount  int            `json:"article_count"`
	MagazineCount int            `json:"magazine_count"`
	TopicAreas    []string       `json:"topic_areas"`
}

// Create validates name and stores a new author.
func (s *Service) Create(ctx context.Context, name string) (*entity.Author, error) {
	a, err := entity.NewAuthor(name)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Save inserts a new author or updates an existing one.
func (s *Service) Save(ctx context.Context, a *entity.Author) error {
	op := "update"
	if !a.IsPersisted() {
		op = "create"
	}

	var err error
	if op == "create" {
		err = s.Repos.Authors.Create(ctx, a)
	} else {
		err = s.Repos.Authors.Update(ctx, a)
	}
	if err != nil {
		return fmt.Errorf("%s author: %w", op, err)
	}

	metrics.RecordSave("author", op)
	logging.FromContext(ctx).Info("author saved",
		slog.String("operation", op),
		slog.Int64("author_id", a.ID),
		slog.String("name", a.Name))
	return nil
}

// Get retrieves an author by ID.
// Returns ErrInvalidAuthorID if the ID is not positive.
// Returns ErrAuthorNotFound if the author does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Author, error) {
	if id <= 0 {
		return nil, ErrInvalidAuthorID
	}
	a, err := s.Repos.Authors.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	if a == nil {
		return nil, ErrAuthorNotFound
	}
	return a, nil
}

func (s *Service) FindByName(ctx context.Context, name string, exact bool) ([]*entity.Author, error) {
	authors, err := s.Repos.Authors.FindByName(ctx, name, exact)
	if err != nil {
		return nil, fmt.Errorf("find authors by name: %w", err)
	}
	return authors, nil
}

// Articles lists the author's articles. limit <= 0 returns all of them.
func (s *Service) Articles(ctx context.Context, id int64, limit int) ([]*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidAuthorID
	}
	articles, err := s.Repos.Articles.FindByAuthor(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list author articles: %w", err)
	}
	return articles, nil
}

func (s *Service) Magazines(ctx context.Context, id int64) ([]*entity.Magazine, error) {
	if id <= 0 {
		return nil, ErrInvalidAuthorID
	}
	magazines, err := s.Repos.Authors.Magazines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list author magazines: %w", err)
	}
	return magazines, nil
}

// TopicAreas returns the distinct categories of the magazines the author wrote for.
func (s *Service) TopicAreas(ctx context.Context, id int64) ([]string, error) {
	if id <= 0 {
		return nil, ErrInvalidAuthorID
	}
	areas, err := s.Repos.Authors.TopicAreas(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list topic areas: %w", err)
	}
	return areas, nil
}

// AddArticle writes a new article by an existing author into an existing magazine.
func (s *Service) AddArticle(ctx context.Context, id, magazineID int64, title, content string) (*entity.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	art, err := entity.NewArticle(title, content, a.ID, magazineID)
	if err != nil {
		return nil, err
	}

	m, err := s.Repos.Magazines.FindByID(ctx, magazineID)
	if err != nil {
		return nil, fmt.Errorf("get magazine: %w", err)
	}
	if m == nil {
		return nil, ErrMagazineNotFound
	}

	if err := s.Repos.Articles.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	metrics.RecordSave("article", "create")
	logging.FromContext(ctx).Info("article added",
		slog.Int64("article_id", art.ID),
		slog.Int64("author_id", a.ID),
		slog.Int64("magazine_id", m.ID))
	return art, nil
}

// Stats gathers article and magazine counts plus topic areas for an author.
// The four lookups are independent and run concurrently; on a pooled
// driver they use separate connections.
func (s *Service) Stats(ctx context.Context, id int64) (*Stats, error) {
	if id <= 0 {
		return nil, ErrInvalidAuthorID
	}

	var (
		st        Stats
		articles  []*entity.Article
		magazines []*entity.Magazine
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		st.Author, err = s.Get(egCtx, id)
		return err
	})
	eg.Go(func() (err error) {
		articles, err = s.Articles(egCtx, id, 0)
		return err
	})
	eg.Go(func() (err error) {
		magazines, err = s.Magazines(egCtx, id)
		return err
	})
	eg.Go(func() (err error) {
		st.TopicAreas, err = s.TopicAreas(egCtx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	st.ArticleCount = len(articles)
	st.MagazineCount = len(magazines)
	return &st, nil
}
