package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"magazine-db/internal/domain/entity"
)

func newArticlesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "Find and inspect articles",
	}
	cmd.AddCommand(
		newArticlesFindCommand(a),
		newArticlesShowCommand(a),
		newArticlesRecentCommand(a),
		newArticlesProlificCommand(a),
	)
	return cmd
}

func newArticlesFindCommand(a *app) *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   "find TITLE",
		Short: "Find articles by title (substring unless --exact)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			articles, err := a.articles().FindByTitle(cmd.Context(), args[0], exact)
			if err != nil {
				return err
			}
			return a.out.articles(articles)
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "match the whole title")
	return cmd
}

func newArticlesShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an article with its author and magazine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("article", args[0])
			if err != nil {
				return err
			}
			d, err := a.articles().Detail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.out.table(d,
				table.Row{"ID", "Title", "Author", "Magazine", "Published", "Content"},
				[]table.Row{{
					d.Article.ID, d.Article.Title, d.Author.Name, d.Magazine.Name,
					formatTime(d.Article.PublishedAt), d.Article.Content,
				}})
		},
	}
}

func newArticlesRecentCommand(a *app) *cobra.Command {
	var days, limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List articles published in the last --days days, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			articles, err := a.articles().Recent(cmd.Context(), days, limit)
			if err != nil {
				return err
			}
			return a.out.articles(articles)
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "look-back window in days")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of articles (0 for all)")
	return cmd
}

func newArticlesProlificCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prolific",
		Short: "Show the author with the most articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			author, err := a.articles().MostProlificAuthor(cmd.Context())
			if err != nil {
				return err
			}
			if author == nil {
				return a.out.authors([]*entity.Author{})
			}
			return a.out.authors([]*entity.Author{author})
		},
	}
}
