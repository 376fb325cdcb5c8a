package postgres

import (
	"fmt"
	"strings"
)

// FinderQuery builds the SELECT statements behind the finders using
// PostgreSQL's numbered placeholders ($1, $2, etc.).
type FinderQuery struct {
	base       string
	conditions []string
	args       []interface{}
	orderBy    string
	limit      int
}

// NewFinderQuery creates a query builder for the given SELECT ... FROM ... statement.
func NewFinderQuery(base string) *FinderQuery {
	return &FinderQuery{base: strings.TrimSpace(base)}
}

// Match adds a condition on column: equality when exact is set, otherwise a
// case-insensitive substring match using ILIKE. Wildcards in term are not escaped.
func (q *FinderQuery) Match(column, term string, exact bool) *FinderQuery {
	if exact {
		return q.Where(column+" = $%d", term)
	}
	return q.Where(column+" ILIKE $%d", "%"+term+"%")
}

// Where adds a condition whose single $%d verb is replaced by the next
// placeholder number.
func (q *FinderQuery) Where(format string, arg interface{}) *FinderQuery {
	q.args = append(q.args, arg)
	q.conditions = append(q.conditions, fmt.Sprintf(format, len(q.args)))
	return q
}

// OrderBy sets the ORDER BY expression.
func (q *FinderQuery) OrderBy(expr string) *FinderQuery {
	q.orderBy = expr
	return q
}

// Limit truncates the result to n rows. n <= 0 means no limit.
func (q *FinderQuery) Limit(n int) *FinderQuery {
	q.limit = n
	return q
}

// Build returns the statement text and its arguments in placeholder order.
func (q *FinderQuery) Build() (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(q.base)

	args := make([]interface{}, 0, len(q.args)+1)
	args = append(args, q.args...)

	if len(q.conditions) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(q.conditions, " AND "))
	}
	if q.orderBy != "" {
		sb.WriteString("\nORDER BY ")
		sb.WriteString(q.orderBy)
	}
	if q.limit > 0 {
		args = append(args, q.limit)
		fmt.Fprintf(&sb, "\nLIMIT $%d", len(args))
	}
	return sb.String(), args
}
