package publish

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/observability/logging"
	"magazine-db/internal/observability/metrics"
	"magazine-db/internal/observability/tracing"
	"magazine-db/internal/repository"
)

// ArticleSpec describes one article to write alongside a new author.
type ArticleSpec struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	MagazineID int64  `json:"magazine_id"`
}

// Service runs the transactional writer.
type Service struct {
	Tx repository.Transactor
}

// CreateAuthorWithArticles stores a new author named authorName and one
// article per spec, in spec order, inside a single transaction.
//
// All input is validated before the transaction starts. Any failure rolls
// back every row written so far and is reported as an *Error.
// On success the returned author carries its assigned id and timestamp.
func (s *Service) CreateAuthorWithArticles(ctx context.Context, authorName string, specs []ArticleSpec) (_ *entity.Author, err error) {
	ctx, span := tracing.StartSpan(ctx, "publish.CreateAuthorWithArticles",
		attribute.Int("publish.article_count", len(specs)))
	defer func() {
		metrics.RecordPublish(err == nil, len(specs))
		tracing.EndSpan(span, err)
	}()

	if err := validate(authorName, specs); err != nil {
		return nil, err
	}

	var author *entity.Author
	err = s.Tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		a, err := entity.NewAuthor(authorName)
		if err != nil {
			return &Error{Step: StepValidate, Index: -1, Err: err}
		}
		if err := repos.Authors.Create(ctx, a); err != nil {
			return &Error{Step: StepCreateAuthor, Index: -1, Err: err}
		}

		for i, spec := range specs {
			m, err := repos.Magazines.FindByID(ctx, spec.MagazineID)
			if err != nil {
				return &Error{Step: StepLookupMagazine, Index: i, Err: err}
			}
			if m == nil {
				return &Error{Step: StepLookupMagazine, Index: i, Err: ErrMagazineNotFound}
			}

			art, err := entity.NewArticle(spec.Title, spec.Content, a.ID, m.ID)
			if err != nil {
				return &Error{Step: StepValidate, Index: i, Err: err}
			}
			if err := repos.Articles.Create(ctx, art); err != nil {
				return &Error{Step: StepCreateArticle, Index: i, Err: err}
			}
		}

		author = a
		return nil
	})
	if err != nil {
		var pe *Error
		if !errors.As(err, &pe) {
			err = &Error{Step: StepTransaction, Index: -1, Err: err}
		}
		logging.FromContext(ctx).Warn("publish failed",
			slog.String("author", authorName),
			slog.Any("error", err))
		return nil, err
	}

	logging.FromContext(ctx).Info("author published",
		slog.Int64("author_id", author.ID),
		slog.Int("articles", len(specs)))
	return author, nil
}

// validate checks every input without touching storage.
func validate(authorName string, specs []ArticleSpec) error {
	if err := entity.ValidateAuthorName(authorName); err != nil {
		return &Error{Step: StepValidate, Index: -1, Err: err}
	}
	for i, spec := range specs {
		if err := entity.ValidateArticleTitle(spec.Title); err != nil {
			return &Error{Step: StepValidate, Index: i, Err: err}
		}
		if spec.MagazineID <= 0 {
			return &Error{Step: StepValidate, Index: i, Err: &entity.ValidationError{
				Entity: "article", Field: "magazine_id", Message: "must be a positive integer",
			}}
		}
	}
	return nil
}
