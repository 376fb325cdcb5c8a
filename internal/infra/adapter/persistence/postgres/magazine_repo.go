package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/infra/adapter/persistence/rowmap"
	"magazine-db/internal/repository"
)

type MagazineRepo struct{ db repository.DBTX }

func NewMagazineRepo(db repository.DBTX) repository.MagazineRepository {
	return &MagazineRepo{db: db}
}

func (repo *MagazineRepo) Create(ctx context.Context, magazine *entity.Magazine) error {
	if magazine.IsPersisted() {
		return fmt.Errorf("Create: magazine %d is already persisted", magazine.ID)
	}
	if err := entity.ValidateMagazine(magazine.Name, magazine.Category); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	const query = `
INSERT INTO magazines (name, category)
VALUES ($1, $2)
RETURNING id, created_at`
	var createdAt rowmap.Timestamp
	err := repo.db.QueryRowContext(ctx, query, magazine.Name, magazine.Category).
		Scan(&magazine.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("Create: QueryRowContext: %w", err)
	}
	magazine.CreatedAt = createdAt.Time
	return nil
}

func (repo *MagazineRepo) Update(ctx context.Context, magazine *entity.Magazine) error {
	if err := entity.ValidateMagazine(magazine.Name, magazine.Category); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	const query = `
UPDATE magazines SET
	name     = $1,
	category = $2
WHERE id = $3`
	res, err := repo.db.ExecContext(ctx, query, magazine.Name, magazine.Category, magazine.ID)
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

func (repo *MagazineRepo) FindByID(ctx context.Context, id int64) (*entity.Magazine, error) {
	const query = `
SELECT ` + rowmap.MagazineColumns + `
FROM magazines
WHERE id = $1
LIMIT 1`
	magazine, err := rowmap.ScanMagazine(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return magazine, nil
}

func (repo *MagazineRepo) FindByName(ctx context.Context, name string, exact bool) ([]*entity.Magazine, error) {
	query, args := NewFinderQuery(`SELECT `+rowmap.MagazineColumns+` FROM magazines`).
		Match("name", name, exact).
		OrderBy("id").
		Build()
	return listMagazines(ctx, repo.db, "FindByName", query, args...)
}

func (repo *MagazineRepo) FindByCategory(ctx context.Context, category string, exact bool) ([]*entity.Magazine, error) {
	query, args := NewFinderQuery(`SELECT `+rowmap.MagazineColumns+` FROM magazines`).
		Match("category", category, exact).
		OrderBy("id").
		Build()
	return listMagazines(ctx, repo.db, "FindByCategory", query, args...)
}

func (repo *MagazineRepo) Contributors(ctx context.Context, magazineID int64) ([]*entity.Author, error) {
	query := `
SELECT DISTINCT ` + authorColumnsAu + `
FROM authors au
INNER JOIN articles a ON a.author_id = au.id
WHERE a.magazine_id = $1
ORDER BY au.id`
	return listAuthors(ctx, repo.db, "Contributors", query, magazineID)
}

func (repo *MagazineRepo) ContributingAuthors(ctx context.Context, magazineID int64, minArticles int) ([]*entity.Author, error) {
	query := `
SELECT ` + authorColumnsAu + `
FROM authors au
INNER JOIN articles a ON a.author_id = au.id
WHERE a.magazine_id = $1
GROUP BY au.id
HAVING COUNT(a.id) >= $2
ORDER BY au.id`
	return listAuthors(ctx, repo.db, "ContributingAuthors", query, magazineID, minArticles)
}

func (repo *MagazineRepo) ArticleTitles(ctx context.Context, magazineID int64) ([]string, error) {
	const query = `SELECT title FROM articles WHERE magazine_id = $1 ORDER BY id`
	return listStrings(ctx, repo.db, "ArticleTitles", query, magazineID)
}

func (repo *MagazineRepo) Popular(ctx context.Context, minAuthors int) ([]*entity.Magazine, error) {
	query := `
SELECT ` + magazineColumnsM + `
FROM magazines m
INNER JOIN articles a ON a.magazine_id = m.id
GROUP BY m.id
HAVING COUNT(DISTINCT a.author_id) >= $1
ORDER BY m.id`
	return listMagazines(ctx, repo.db, "Popular", query, minAuthors)
}

func (repo *MagazineRepo) ArticleCounts(ctx context.Context) (map[int64]int64, error) {
	const query = `
SELECT magazine_id, COUNT(*)
FROM articles
WHERE magazine_id IS NOT NULL
GROUP BY magazine_id`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ArticleCounts: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[int64]int64)
	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("ArticleCounts: Scan: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ArticleCounts: rows.Err: %w", err)
	}
	return counts, nil
}

func (repo *MagazineRepo) TopPublisher(ctx context.Context) (*repository.MagazineArticleCount, error) {
	query := `
SELECT ` + magazineColumnsM + `, COUNT(a.id) AS article_count
FROM magazines m
INNER JOIN articles a ON a.magazine_id = m.id
GROUP BY m.id
ORDER BY article_count DESC, m.id
LIMIT 1`
	var (
		r     rowmap.MagazineRow
		count int64
	)
	err := repo.db.QueryRowContext(ctx, query).Scan(append(r.ScanArgs(), &count)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("TopPublisher: Scan: %w", err)
	}
	magazine, err := r.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("TopPublisher: %w", err)
	}
	return &repository.MagazineArticleCount{Magazine: magazine, ArticleCount: count}, nil
}

func (repo *MagazineRepo) DeleteAll(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM magazines`); err != nil {
		return fmt.Errorf("DeleteAll: ExecContext: %w", err)
	}
	return nil
}
