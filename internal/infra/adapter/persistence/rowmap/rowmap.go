// Package rowmap holds the single row-to-entity conversion rule for each
// entity type. Every SQL adapter scans result rows through these types so
// that identical rows always map to identical entities.
package rowmap

import (
	"database/sql"
	"fmt"
	"strings"

	"magazine-db/internal/domain/entity"
)

// Column lists. The order MUST match the corresponding ScanArgs.
const (
	AuthorColumns   = `id, name, created_at`
	MagazineColumns = `id, name, category, created_at`
	ArticleColumns  = `id, title, content, author_id, magazine_id, published_at`
)

// Prefixed returns cols with every column qualified by alias, for joins.
func Prefixed(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// Rows is the subset of *sql.Rows the collectors need.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ============================================================================
// Author
// ============================================================================

// AuthorRow holds the columns of one authors row.
type AuthorRow struct {
	ID        int64
	Name      string
	CreatedAt Timestamp
}

// ScanArgs returns pointers in AuthorColumns order: id, name, created_at
func (r *AuthorRow) ScanArgs() []interface{} {
	return []interface{}{&r.ID, &r.Name, &r.CreatedAt}
}

// ToEntity converts the row into a validated Author.
func (r *AuthorRow) ToEntity() (*entity.Author, error) {
	return entity.RestoreAuthor(r.ID, r.Name, r.CreatedAt.Time)
}

// ScanAuthor scans a single-row result into an Author.
// It returns (nil, nil) when the row does not exist.
func ScanAuthor(row *sql.Row) (*entity.Author, error) {
	var r AuthorRow
	if err := row.Scan(r.ScanArgs()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return r.ToEntity()
}

// ScanAuthors materialises every remaining row as an Author.
func ScanAuthors(rows Rows) ([]*entity.Author, error) {
	authors := make([]*entity.Author, 0, 16)
	for rows.Next() {
		var r AuthorRow
		if err := rows.Scan(r.ScanArgs()...); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		a, err := r.ToEntity()
		if err != nil {
			return nil, fmt.Errorf("author row %d: %w", r.ID, err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return authors, nil
}

// ============================================================================
// Magazine
// ============================================================================

// MagazineRow holds the columns of one magazines row.
type MagazineRow struct {
	ID        int64
	Name      string
	Category  string
	CreatedAt Timestamp
}

// ScanArgs returns pointers in MagazineColumns order: id, name, category, created_at
func (r *MagazineRow) ScanArgs() []interface{} {
	return []interface{}{&r.ID, &r.Name, &r.Category, &r.CreatedAt}
}

// ToEntity converts the row into a validated Magazine.
func (r *MagazineRow) ToEntity() (*entity.Magazine, error) {
	return entity.RestoreMagazine(r.ID, r.Name, r.Category, r.CreatedAt.Time)
}

// ScanMagazine scans a single-row result into a Magazine.
// It returns (nil, nil) when the row does not exist.
func ScanMagazine(row *sql.Row) (*entity.Magazine, error) {
	var r MagazineRow
	if err := row.Scan(r.ScanArgs()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return r.ToEntity()
}

// ScanMagazines materialises every remaining row as a Magazine.
func ScanMagazines(rows Rows) ([]*entity.Magazine, error) {
	magazines := make([]*entity.Magazine, 0, 16)
	for rows.Next() {
		var r MagazineRow
		if err := rows.Scan(r.ScanArgs()...); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		m, err := r.ToEntity()
		if err != nil {
			return nil, fmt.Errorf("magazine row %d: %w", r.ID, err)
		}
		magazines = append(magazines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return magazines, nil
}

// ============================================================================
// Article
// ============================================================================

// ArticleRow holds the columns of one articles row.
// content, author_id and magazine_id are nullable in the schema. A NULL
// content maps to an empty string; a NULL reference fails entity validation.
type ArticleRow struct {
	ID          int64
	Title       string
	Content     sql.NullString
	AuthorID    sql.NullInt64
	MagazineID  sql.NullInt64
	PublishedAt Timestamp
}

// ScanArgs returns pointers in ArticleColumns order:
// id, title, content, author_id, magazine_id, published_at
func (r *ArticleRow) ScanArgs() []interface{} {
	return []interface{}{
		&r.ID,          // 1
		&r.Title,       // 2
		&r.Content,     // 3
		&r.AuthorID,    // 4
		&r.MagazineID,  // 5
		&r.PublishedAt, // 6
	}
}

// ToEntity converts the row into a validated Article.
func (r *ArticleRow) ToEntity() (*entity.Article, error) {
	return entity.RestoreArticle(r.ID, r.Title, r.Content.String, r.AuthorID.Int64, r.MagazineID.Int64, r.PublishedAt.Time)
}

// ScanArticle scans a single-row result into an Article.
// It returns (nil, nil) when the row does not exist.
func ScanArticle(row *sql.Row) (*entity.Article, error) {
	var r ArticleRow
	if err := row.Scan(r.ScanArgs()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return r.ToEntity()
}

// ScanArticles materialises every remaining row as an Article.
func ScanArticles(rows Rows) ([]*entity.Article, error) {
	articles := make([]*entity.Article, 0, 32)
	for rows.Next() {
		var r ArticleRow
		if err := rows.Scan(r.ScanArgs()...); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		a, err := r.ToEntity()
		if err != nil {
			return nil, fmt.Errorf("article row %d: %w", r.ID, err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return articles, nil
}

// ScanStrings materialises a single text column.
func ScanStrings(rows Rows) ([]string, error) {
	out := make([]string, 0, 16)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("Scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return out, nil
}
