package sqlite

import (
	"context"
	"fmt"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/infra/adapter/persistence/rowmap"
	"magazine-db/internal/repository"
)

// AuthorRepo implements the AuthorRepository interface using SQLite.
type AuthorRepo struct{ db repository.DBTX }

// NewAuthorRepo creates a new SQLite-backed author repository on db,
// which may be a pool, a transaction, or a wrapped handle.
func NewAuthorRepo(db repository.DBTX) repository.AuthorRepository {
	return &AuthorRepo{db: db}
}

func (repo *AuthorRepo) Create(ctx context.Context, author *entity.Author) error {
	if author.IsPersisted() {
		return fmt.Errorf("Create: author %d is already persisted", author.ID)
	}
	if err := entity.ValidateAuthorName(author.Name); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	const query = `
INSERT INTO authors (name)
VALUES (?)
RETURNING id, created_at
`
	var createdAt rowmap.Timestamp
	if err := repo.db.QueryRowContext(ctx, query, author.Name).Scan(&author.ID, &createdAt); err != nil {
		return fmt.Errorf("Create: QueryRowContext: %w", err)
	}
	author.CreatedAt = createdAt.Time
	return nil
}

func (repo *AuthorRepo) Update(ctx context.Context, author *entity.Author) error {
	if err := entity.ValidateAuthorName(author.Name); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	const query = `UPDATE authors SET name = ? WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, author.Name, author.ID)
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

func (repo *AuthorRepo) FindByID(ctx context.Context, id int64) (*entity.Author, error) {
	const query = `
SELECT ` + rowmap.AuthorColumns + `
FROM authors
WHERE id = ?
LIMIT 1
`
	author, err := rowmap.ScanAuthor(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return author, nil
}

func (repo *AuthorRepo) FindByName(ctx context.Context, name string, exact bool) ([]*entity.Author, error) {
	query, args := NewFinderQuery(`SELECT `+rowmap.AuthorColumns+` FROM authors`).
		Match("name", name, exact).
		OrderBy("id").
		Build()
	return repo.list(ctx, "FindByName", query, args...)
}

// Magazines returns the distinct magazines the author has written for, ordered by id.
func (repo *AuthorRepo) Magazines(ctx context.Context, authorID int64) ([]*entity.Magazine, error) {
	query := `
SELECT DISTINCT ` + magazineColumnsM + `
FROM magazines m
INNER JOIN articles a ON a.magazine_id = m.id
WHERE a.author_id = ?
ORDER BY m.id
`
	rows, err := repo.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("Magazines: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	magazines, err := rowmap.ScanMagazines(rows)
	if err != nil {
		return nil, fmt.Errorf("Magazines: %w", err)
	}
	return magazines, nil
}

// TopicAreas returns the distinct categories of the author's magazines, sorted.
func (repo *AuthorRepo) TopicAreas(ctx context.Context, authorID int64) ([]string, error) {
	const query = `
SELECT DISTINCT m.category
FROM magazines m
INNER JOIN articles a ON a.magazine_id = m.id
WHERE a.author_id = ?
ORDER BY m.category
`
	rows, err := repo.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("TopicAreas: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories, err := rowmap.ScanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("TopicAreas: %w", err)
	}
	return categories, nil
}

// MostProlific returns the author with the most articles. Ties go to the lowest id.
func (repo *AuthorRepo) MostProlific(ctx context.Context) (*entity.Author, error) {
	query := `
SELECT ` + authorColumnsAu + `
FROM authors au
INNER JOIN articles a ON a.author_id = au.id
GROUP BY ` + authorColumnsAu + `
ORDER BY COUNT(a.id) DESC, au.id
LIMIT 1
`
	author, err := rowmap.ScanAuthor(repo.db.QueryRowContext(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("MostProlific: %w", err)
	}
	return author, nil
}

func (repo *AuthorRepo) DeleteAll(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM authors`); err != nil {
		return fmt.Errorf("DeleteAll: ExecContext: %w", err)
	}
	return nil
}

func (repo *AuthorRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]*entity.Author, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
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
