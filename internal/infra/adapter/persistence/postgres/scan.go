package postgres

import (
	"context"
	"fmt"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/infra/adapter/persistence/rowmap"
	"magazine-db/internal/repository"
)

var (
	authorColumnsAu  = rowmap.Prefixed("au", rowmap.AuthorColumns)
	magazineColumnsM = rowmap.Prefixed("m", rowmap.MagazineColumns)
)

func listAuthors(ctx context.Context, db repository.DBTX, op, query string, args ...interface{}) ([]*entity.Author, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	authors, err := rowmap.ScanAuthors(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return authors, nil
}

func listMagazines(ctx context.Context, db repository.DBTX, op, query string, args ...interface{}) ([]*entity.Magazine, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	magazines, err := rowmap.ScanMagazines(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return magazines, nil
}

func listArticles(ctx context.Context, db repository.DBTX, op, query string, args ...interface{}) ([]*entity.Article, error) {
	rows, err := db.QueryContext(ctx, query, args...)
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

func listStrings(ctx context.Context, db repository.DBTX, op, query string, args ...interface{}) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	values, err := rowmap.ScanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return values, nil
}
