package magazine

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

// Service provides magazine use cases on top of the repositories.
type Service struct {
	Repos repository.Repositories
}

// Stats summarizes a magazine's articles and contributors.
type Stats struct {
	Magazine         *entity.Magazine `json:"magazine"`
	ArticleCount     int              `json:"article_count"`
	ContributorCount int              `json:"contributor_count"`
}

// Create validates the fields and stores a new magazine.
func (s *Service) Create(ctx context.Context, name, category string) (*entity.Magazine, error) {
	m, err := entity.NewMagazine(name, category)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Save inserts a new magazine or updates an existing one.
func (s *Service) Save(ctx context.Context, m *entity.Magazine) error {
	op := "update"
	if !m.IsPersisted() {
		op = "create"
	}

	var err error
	if op == "create" {
		err = s.Repos.Magazines.Create(ctx, m)
	} else {
		err = s.Repos.Magazines.Update(ctx, m)
	}
	if err != nil {
		return fmt.Errorf("%s magazine: %w", op, err)
	}

	metrics.RecordSave("magazine", op)
	logging.FromContext(ctx).Info("magazine saved",
		slog.String("operation", op),
		slog.Int64("magazine_id", m.ID),
		slog.String("name", m.Name),
		slog.String("category", m.Category))
	return nil
}

// Get retrieves a magazine by ID.
// Returns ErrInvalidMagazineID if the ID is not positive.
// Returns ErrMagazineNotFound if the magazine does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Magazine, error) {
	if id <= 0 {
		return nil, ErrInvalidMagazineID
	}
	m, err := s.Repos.Magazines.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get magazine: %w", err)
	}
	if m == nil {
		return nil, ErrMagazineNotFound
	}
	return m, nil
}

func (s *Service) FindByName(ctx context.Context, name string, exact bool) ([]*entity.Magazine, error) {
	magazines, err := s.Repos.Magazines.FindByName(ctx, name, exact)
	if err != nil {
		return nil, fmt.Errorf("find magazines by name: %w", err)
	}
	return magazines, nil
}

func (s *Service) FindByCategory(ctx context.Context, category string, exact bool) ([]*entity.Magazine, error) {
	magazines, err := s.Repos.Magazines.FindByCategory(ctx, category, exact)
	if err != nil {
		return nil, fmt.Errorf("find magazines by category: %w", err)
	}
	return magazines, nil
}

// Articles lists a magazine's articles, newest first.
func (s *Service) Articles(ctx context.Context, id int64) ([]*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidMagazineID
	}
	articles, err := s.Repos.Articles.ListByMagazine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list magazine articles: %w", err)
	}
	return articles, nil
}

// Contributors lists the distinct authors who wrote for a magazine.
func (s *Service) Contributors(ctx context.Context, id int64) ([]*entity.Author, error) {
	if id <= 0 {
		return nil, ErrInvalidMagazineID
	}
	authors, err := s.Repos.Magazines.Contributors(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list contributors: %w", err)
	}
	return authors, nil
}

func (s *Service) ArticleTitles(ctx context.Context, id int64) ([]string, error) {
	if id <= 0 {
		return nil, ErrInvalidMagazineID
	}
	titles, err := s.Repos.Magazines.ArticleTitles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list article titles: %w", err)
	}
	return titles, nil
}

// ContributingAuthors lists authors with at least minArticles articles in
// the magazine. A minArticles below 1 is treated as 1.
func (s *Service) ContributingAuthors(ctx context.Context, id int64, minArticles int) ([]*entity.Author, error) {
	if id <= 0 {
		return nil, ErrInvalidMagazineID
	}
	if minArticles < 1 {
		minArticles = 1
	}
	authors, err := s.Repos.Magazines.ContributingAuthors(ctx, id, minArticles)
	if err != nil {
		return nil, fmt.Errorf("list contributing authors: %w", err)
	}
	return authors, nil
}

// Popular lists magazines with articles by at least minAuthors distinct authors.
func (s *Service) Popular(ctx context.Context, minAuthors int) ([]*entity.Magazine, error) {
	if minAuthors < 1 {
		minAuthors = 1
	}
	magazines, err := s.Repos.Magazines.Popular(ctx, minAuthors)
	if err != nil {
		return nil, fmt.Errorf("list popular magazines: %w", err)
	}
	return magazines, nil
}

// ArticleCounts maps magazine ID to article count. Magazines without
// articles are absent.
func (s *Service) ArticleCounts(ctx context.Context) (map[int64]int64, error) {
	counts, err := s.Repos.Magazines.ArticleCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	return counts, nil
}

// TopPublisher returns the magazine with the most articles, or nil when no
// article exists.
func (s *Service) TopPublisher(ctx context.Context) (*repository.MagazineArticleCount, error) {
	top, err := s.Repos.Magazines.TopPublisher(ctx)
	if err != nil {
		return nil, fmt.Errorf("top publisher: %w", err)
	}
	return top, nil
}

// Stats reports the article and contributor counts for a magazine. The
// lookups run concurrently.
func (s *Service) Stats(ctx context.Context, id int64) (*Stats, error) {
	if id <= 0 {
		return nil, ErrInvalidMagazineID
	}

	var (
		st           Stats
		articles     []*entity.Article
		contributors []*entity.Author
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		st.Magazine, err = s.Get(egCtx, id)
		return err
	})
	eg.Go(func() (err error) {
		articles, err = s.Articles(egCtx, id)
		return err
	})
	eg.Go(func() (err error) {
		contributors, err = s.Contributors(egCtx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	st.ArticleCount = len(articles)
	st.ContributorCount = len(contributors)
	return &st, nil
}
