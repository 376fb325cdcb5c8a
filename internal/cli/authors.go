package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"magazine-db/internal/usecase/publish"
)

func newAuthorsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "authors",
		Aliases: []string{"author"},
		Short:   "Find, inspect and add authors",
	}
	cmd.AddCommand(
		newAuthorsFindCommand(a),
		newAuthorsShowCommand(a),
		newAuthorsAddCommand(a),
		newAuthorsArticlesCommand(a),
	)
	return cmd
}

func newAuthorsFindCommand(a *app) *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   "find NAME",
		Short: "Find authors by name (substring unless --exact)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			authors, err := a.authors().FindByName(cmd.Context(), args[0], exact)
			if err != nil {
				return err
			}
			return a.out.authors(authors)
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "match the whole name")
	return cmd
}

func newAuthorsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an author with article and magazine counts and topic areas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("author", args[0])
			if err != nil {
				return err
			}
			stats, err := a.authors().Stats(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.out.table(stats,
				table.Row{"ID", "Name", "Articles", "Magazines", "Topic Areas"},
				[]table.Row{{
					stats.Author.ID, stats.Author.Name, stats.ArticleCount,
					stats.MagazineCount, strings.Join(stats.TopicAreas, ", "),
				}})
		},
	}
}

func newAuthorsAddCommand(a *app) *cobra.Command {
	var specs []string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an author together with their articles in one transaction",
		Long: `Add an author and any number of articles atomically. Each --article takes
"title|magazineID" or "title|magazineID|content". If any article cannot be
stored, nothing is stored.`,
		Example: `  magdb authors add "Bob Builder" \
    --article "Building Bridges|1" \
    --article "Scaffolding in Style|3|Hi-vis is back."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]publish.ArticleSpec, 0, len(specs))
			for _, s := range specs {
				spec, err := parseArticleSpec(s)
				if err != nil {
					return err
				}
				parsed = append(parsed, spec)
			}

			author, err := a.publisher().CreateAuthorWithArticles(cmd.Context(), args[0], parsed)
			if err != nil {
				return err
			}
			if a.out.isJSON() {
				return a.out.writeJSON(author)
			}
			return a.out.message("Created author %d (%s) with %d articles.", author.ID, author.Name, len(parsed))
		},
	}
	cmd.Flags().StringArrayVar(&specs, "article", nil, `article as "title|magazineID[|content]" (repeatable)`)
	return cmd
}

// parseArticleSpec parses "title|magazineID[|content]".
func parseArticleSpec(s string) (publish.ArticleSpec, error) {
	parts := strings.SplitN(s, "|", 3)
	if len(parts) < 2 {
		return publish.ArticleSpec{}, fmt.Errorf("invalid --article %q: want title|magazineID[|content]", s)
	}
	magazineID, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return publish.ArticleSpec{}, fmt.Errorf("invalid --article %q: bad magazine id", s)
	}
	spec := publish.ArticleSpec{Title: strings.TrimSpace(parts[0]), MagazineID: magazineID}
	if len(parts) == 3 {
		spec.Content = parts[2]
	}
	return spec, nil
}

func newAuthorsArticlesCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "articles ID",
		Short: "List an author's articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("author", args[0])
			if err != nil {
				return err
			}
			articles, err := a.authors().Articles(cmd.Context(), id, limit)
			if err != nil {
				return err
			}
			return a.out.articles(articles)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of articles (0 for all)")
	return cmd
}
