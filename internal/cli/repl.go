package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"magazine-db/internal/infra/db"
)

const (
	replPrompt     = "magdb> "
	replContPrompt = "  ...> "
)

func newREPLCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL shell on the configured database",
		Long: `Start an interactive shell. SQL statements end with a semicolon and may
span several lines. Type .help for the dot-commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, a)
		},
	}
}

func runREPL(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		AutoComplete:    newCompleter(ctx, a),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sh := &shell{app: a, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	_, _ = fmt.Fprintf(sh.out, "magdb %s (%s)\n", Version, a.cfg.Driver)
	_, _ = fmt.Fprintln(sh.out, "Type .help for commands, .quit to exit")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sh.buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if sh.feed(ctx, line) {
			return nil
		}
		if sh.pending() {
			rl.SetPrompt(replContPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
}

// shell interprets REPL input one line at a time.
type shell struct {
	app    *app
	out    io.Writer
	errOut io.Writer
	buf    strings.Builder
}

func (s *shell) pending() bool { return s.buf.Len() > 0 }

// feed handles one input line and reports whether the shell should exit.
// SQL accumulates until a line ends with a semicolon.
func (s *shell) feed(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !s.pending() && strings.HasPrefix(line, ".") {
		return s.dotCommand(ctx, line)
	}

	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.buf.WriteString(" ")
		return false
	}
	stmt := strings.TrimSpace(strings.TrimSuffix(s.buf.String(), ";"))
	s.buf.Reset()

	if err := s.exec(ctx, stmt); err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	return false
}

func (s *shell) dotCommand(ctx context.Context, line string) (quit bool) {
	parts := strings.Fields(line)
	a := s.app

	var err error
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(s.out)
	case ".tables":
		var tables []string
		if tables, err = db.ListTables(ctx, a.db, a.cfg.Driver); err == nil {
			err = s.renderer().values("Table", tables)
		}
	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .schema <table>")
			return false
		}
		err = s.schema(ctx, parts[1])
	case ".seed":
		sum, serr := a.seeder().Run(ctx)
		if err = serr; err == nil {
			_, _ = fmt.Fprintf(s.out, "Seeded %d authors, %d magazines and %d articles.\n",
				sum.Authors, sum.Magazines, sum.Articles)
		}
	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	return false
}

func (s *shell) schema(ctx context.Context, tableName string) error {
	cols, err := db.DescribeTable(ctx, s.app.db, s.app.cfg.Driver, tableName)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("no such table: %s", tableName)
	}
	rows := make([]table.Row, 0, len(cols))
	for _, c := range cols {
		rows = append(rows, table.Row{c.Name, c.Type, c.NotNull, c.PrimaryKey})
	}
	return s.renderer().table(cols, table.Row{"Column", "Type", "Not Null", "Primary Key"}, rows)
}

// exec runs stmt as a query when it returns rows, otherwise as a statement.
func (s *shell) exec(ctx context.Context, stmt string) error {
	if returnsRows(stmt) {
		rows, err := s.app.handle.QueryContext(ctx, stmt)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()
		return s.renderer().sqlRows(rows)
	}

	res, err := s.app.handle.ExecContext(ctx, stmt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "OK (%d rows affected)\n", n)
	return nil
}

func (s *shell) renderer() *renderer {
	return newRenderer(s.out, s.app.cfg.Output)
}

// returnsRows guesses from the leading keyword whether stmt yields a result set.
func returnsRows(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH", "PRAGMA", "EXPLAIN", "VALUES", "SHOW":
		return true
	}
	return strings.Contains(strings.ToUpper(stmt), " RETURNING ")
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List all tables
  .schema <name>  Show the columns of a table
  .seed           Replace all data with the sample data set
  .quit / .exit   Exit the REPL

SQL statements must end with a semicolon (;) and may span several lines.`
	_, _ = fmt.Fprintln(w, help)
}

// newCompleter completes dot-commands and table names.
func newCompleter(ctx context.Context, a *app) *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".seed"),
		readline.PcItem(".quit"),
	}
	tables, err := db.ListTables(ctx, a.db, a.cfg.Driver)
	if err != nil {
		return readline.NewPrefixCompleter(items...)
	}
	schemaItems := make([]readline.PrefixCompleterInterface, 0, len(tables))
	for _, t := range tables {
		schemaItems = append(schemaItems, readline.PcItem(t))
		items = append(items, readline.PcItem("SELECT * FROM "+t))
	}
	items = append(items, readline.PcItem(".schema", schemaItems...))
	return readline.NewPrefixCompleter(items...)
}
