package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pg "magazine-db/internal/infra/adapter/persistence/postgres"
)

func TestFinderQuery_NumbersPlaceholders(t *testing.T) {
	t.Parallel()

	query, args := pg.NewFinderQuery("SELECT id FROM articles").
		Where("author_id = $%d", int64(3)).
		Match("title", "go", false).
		OrderBy("id").
		Limit(10).
		Build()

	assert.Equal(t,
		"SELECT id FROM articles\nWHERE author_id = $1 AND title ILIKE $2\nORDER BY id\nLIMIT $3",
		query)
	assert.Equal(t, []interface{}{int64(3), "%go%", 10}, args)
}

func TestFinderQuery_ExactMatch(t *testing.T) {
	t.Parallel()

	query, args := pg.NewFinderQuery("SELECT id FROM magazines").
		Match("category", "Fashion", true).
		Build()

	assert.Equal(t, "SELECT id FROM magazines\nWHERE category = $1", query)
	assert.Equal(t, []interface{}{"Fashion"}, args)
}

func TestFinderQuery_LimitOnly(t *testing.T) {
	t.Parallel()

	query, args := pg.NewFinderQuery("SELECT id FROM authors").Limit(1).Build()
	assert.Equal(t, "SELECT id FROM authors\nLIMIT $1", query)
	assert.Equal(t, []interface{}{1}, args)

	query, args = pg.NewFinderQuery("SELECT id FROM authors").Limit(0).Build()
	assert.Equal(t, "SELECT id FROM authors", query)
	assert.Empty(t, args)
}
