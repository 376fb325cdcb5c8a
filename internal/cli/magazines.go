package cli

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newMagazinesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "magazines",
		Aliases: []string{"magazine", "mag"},
		Short:   "Find magazines and report on their articles and contributors",
	}
	cmd.AddCommand(
		newMagazinesFindCommand(a, "find NAME", "Find magazines by name", false),
		newMagazinesFindCommand(a, "category CATEGORY", "Find magazines by category", true),
		newMagazinesShowCommand(a),
		newMagazinesByIDCommand(a, "articles", "List a magazine's articles, newest first"),
		newMagazinesByIDCommand(a, "contributors", "List the authors who wrote for a magazine"),
		newMagazinesByIDCommand(a, "titles", "List the titles of a magazine's articles"),
		newMagazinesContributingCommand(a),
		newMagazinesPopularCommand(a),
		newMagazinesTopCommand(a),
		newMagazinesCountsCommand(a),
	)
	return cmd
}

func newMagazinesFindCommand(a *app, use, short string, byCategory bool) *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short + " (substring unless --exact)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.magazines()
			find := svc.FindByName
			if byCategory {
				find = svc.FindByCategory
			}
			magazines, err := find(cmd.Context(), args[0], exact)
			if err != nil {
				return err
			}
			return a.out.magazines(magazines)
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "match the whole value")
	return cmd
}

func newMagazinesShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a magazine with its article and contributor counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("magazine", args[0])
			if err != nil {
				return err
			}
			stats, err := a.magazines().Stats(cmd.Context(), id)
			if err != nil {
				return err
			}
			m := stats.Magazine
			return a.out.table(stats,
				table.Row{"ID", "Name", "Category", "Articles", "Contributors"},
				[]table.Row{{m.ID, m.Name, m.Category, stats.ArticleCount, stats.ContributorCount}})
		},
	}
}

func newMagazinesByIDCommand(a *app, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("magazine", args[0])
			if err != nil {
				return err
			}
			svc := a.magazines()
			ctx := cmd.Context()

			switch name {
			case "articles":
				articles, err := svc.Articles(ctx, id)
				if err != nil {
					return err
				}
				return a.out.articles(articles)
			case "contributors":
				authors, err := svc.Contributors(ctx, id)
				if err != nil {
					return err
				}
				return a.out.authors(authors)
			default:
				titles, err := svc.ArticleTitles(ctx, id)
				if err != nil {
					return err
				}
				return a.out.values("Title", titles)
			}
		},
	}
}

func newMagazinesContributingCommand(a *app) *cobra.Command {
	var minArticles int
	cmd := &cobra.Command{
		Use:   "contributing ID",
		Short: "List authors with at least --min articles in a magazine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("magazine", args[0])
			if err != nil {
				return err
			}
			authors, err := a.magazines().ContributingAuthors(cmd.Context(), id, minArticles)
			if err != nil {
				return err
			}
			return a.out.authors(authors)
		},
	}
	cmd.Flags().IntVar(&minArticles, "min", 2, "minimum number of articles")
	return cmd
}

func newMagazinesPopularCommand(a *app) *cobra.Command {
	var minAuthors int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List magazines with articles by at least --min-authors authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			magazines, err := a.magazines().Popular(cmd.Context(), minAuthors)
			if err != nil {
				return err
			}
			return a.out.magazines(magazines)
		},
	}
	cmd.Flags().IntVar(&minAuthors, "min-authors", 2, "minimum number of distinct authors")
	return cmd
}

func newMagazinesTopCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Show the magazine with the most articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			top, err := a.magazines().TopPublisher(cmd.Context())
			if err != nil {
				return err
			}
			if top == nil {
				return a.out.table(nil, nil, nil)
			}
			return a.out.table(top,
				table.Row{"ID", "Name", "Category", "Articles"},
				[]table.Row{{top.Magazine.ID, top.Magazine.Name, top.Magazine.Category, top.ArticleCount}})
		},
	}
}

func newMagazinesCountsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Count articles per magazine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts, err := a.magazines().ArticleCounts(cmd.Context())
			if err != nil {
				return err
			}
			ids := make([]int64, 0, len(counts))
			for id := range counts {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

			rows := make([]table.Row, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, table.Row{id, counts[id]})
			}
			return a.out.table(counts, table.Row{"Magazine", "Articles"}, rows)
		},
	}
}
