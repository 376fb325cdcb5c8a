package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"magazine-db/internal/domain/entity"
	"magazine-db/internal/observability/metrics"
)

// renderer writes command results as a table or as indented JSON.
type renderer struct {
	w      io.Writer
	format string
}

func newRenderer(w io.Writer, format string) *renderer {
	return &renderer{w: w, format: format}
}

func (r *renderer) isJSON() bool { return r.format == "json" }

func (r *renderer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table renders header and rows with go-pretty, or v as JSON.
func (r *renderer) table(v interface{}, header table.Row, rows []table.Row) error {
	if r.isJSON() {
		return r.writeJSON(v)
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
	_, _ = fmt.Fprintf(r.w, "(%d rows)\n", len(rows))
	return nil
}

// message prints a line of text, or {"message": ...} in JSON mode.
func (r *renderer) message(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if r.isJSON() {
		return r.writeJSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *renderer) authors(authors []*entity.Author) error {
	rows := make([]table.Row, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, table.Row{a.ID, a.Name, formatTime(a.CreatedAt)})
	}
	return r.table(authors, table.Row{"ID", "Name", "Created"}, rows)
}

func (r *renderer) magazines(magazines []*entity.Magazine) error {
	rows := make([]table.Row, 0, len(magazines))
	for _, m := range magazines {
		rows = append(rows, table.Row{m.ID, m.Name, m.Category, formatTime(m.CreatedAt)})
	}
	return r.table(magazines, table.Row{"ID", "Name", "Category", "Created"}, rows)
}

func (r *renderer) articles(articles []*entity.Article) error {
	rows := make([]table.Row, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, table.Row{a.ID, a.Title, a.AuthorID, a.MagazineID, formatTime(a.PublishedAt)})
	}
	return r.table(articles, table.Row{"ID", "Title", "Author", "Magazine", "Published"}, rows)
}

func (r *renderer) values(header string, values []string) error {
	rows := make([]table.Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, table.Row{v})
	}
	return r.table(values, table.Row{header}, rows)
}

func (r *renderer) samples(samples []metrics.Sample) error {
	rows := make([]table.Row, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, table.Row{s.Name, s.Labels, strconv.FormatFloat(s.Value, 'g', -1, 64)})
	}
	return r.table(samples, table.Row{"Metric", "Labels", "Value"}, rows)
}

// sqlRows renders an arbitrary result set, as typed into the REPL.
func (r *renderer) sqlRows(rows *sql.Rows) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	var (
		results []map[string]interface{}
		out     []table.Row
	)
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}

		row := make(map[string]interface{}, len(cols))
		tr := make(table.Row, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
			tr[i] = formatValue(v)
		}
		results = append(results, row)
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if results == nil {
		results = []map[string]interface{}{}
	}
	return r.table(results, header, out)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return formatTime(x)
	default:
		return fmt.Sprint(x)
	}
}
