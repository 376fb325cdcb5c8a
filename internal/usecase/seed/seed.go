// Package seed resets the database to a small, fixed sample of authors,
// magazines and articles.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/observability/logging"
	"magazine-db/internal/observability/metrics"
	"magazine-db/internal/repository"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the seed data set. Articles refer to authors and magazines by name.
type Fixtures struct {
	Authors []struct {
		Name string `yaml:"name"`
	} `yaml:"authors"`
	Magazines []struct {
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
	} `yaml:"magazines"`
	Articles []struct {
		Title    string `yaml:"title"`
		Content  string `yaml:"content"`
		Author   string `yaml:"author"`
		Magazine string `yaml:"magazine"`
	} `yaml:"articles"`
}

// Summary counts the rows inserted by a seed run.
type Summary struct {
	Authors   int `json:"authors"`
	Magazines int `json:"magazines"`
	Articles  int `json:"articles"`
}

// ParseFixtures decodes a YAML fixture document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// DefaultFixtures returns the built-in data set.
func DefaultFixtures() *Fixtures {
	f, err := ParseFixtures(defaultFixtures)
	if err != nil {
		panic(err)
	}
	return f
}

// Service runs the seed routine.
type Service struct {
	Tx repository.Transactor

	// Fixtures overrides the built-in data set when set.
	Fixtures *Fixtures
}

// Run deletes every article, author and magazine and inserts the fixtures,
// all in one transaction.
func (s *Service) Run(ctx context.Context) (_ *Summary, err error) {
	defer func() { metrics.RecordSeed(err == nil) }()

	fx := s.Fixtures
	if fx == nil {
		fx = DefaultFixtures()
	}

	sum := &Summary{}
	err = s.Tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		*sum = Summary{}
		if err := reset(ctx, repos); err != nil {
			return err
		}

		authors := make(map[string]int64, len(fx.Authors))
		for _, in := range fx.Authors {
			a, err := entity.NewAuthor(in.Name)
			if err != nil {
				return err
			}
			if err := repos.Authors.Create(ctx, a); err != nil {
				return fmt.Errorf("insert author %q: %w", in.Name, err)
			}
			authors[a.Name] = a.ID
			sum.Authors++
		}

		magazines := make(map[string]int64, len(fx.Magazines))
		for _, in := range fx.Magazines {
			m, err := entity.NewMagazine(in.Name, in.Category)
			if err != nil {
				return err
			}
			if err := repos.Magazines.Create(ctx, m); err != nil {
				return fmt.Errorf("insert magazine %q: %w", in.Name, err)
			}
			magazines[m.Name] = m.ID
			sum.Magazines++
		}

		for _, in := range fx.Articles {
			authorID, ok := authors[in.Author]
			if !ok {
				return fmt.Errorf("article %q: unknown author %q", in.Title, in.Author)
			}
			magazineID, ok := magazines[in.Magazine]
			if !ok {
				return fmt.Errorf("article %q: unknown magazine %q", in.Title, in.Magazine)
			}
			art, err := entity.NewArticle(in.Title, in.Content, authorID, magazineID)
			if err != nil {
				return err
			}
			if err := repos.Articles.Create(ctx, art); err != nil {
				return fmt.Errorf("insert article %q: %w", in.Title, err)
			}
			sum.Articles++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	logging.FromContext(ctx).Info("database seeded",
		slog.Int("authors", sum.Authors),
		slog.Int("magazines", sum.Magazines),
		slog.Int("articles", sum.Articles))
	return sum, nil
}

// reset empties the tables children first so foreign keys hold throughout.
func reset(ctx context.Context, repos repository.Repositories) error {
	if err := repos.Articles.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear articles: %w", err)
	}
	if err := repos.Authors.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear authors: %w", err)
	}
	if err := repos.Magazines.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear magazines: %w", err)
	}
	return nil
}
