package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"magazine-db/internal/infra/db"
)

func newSetupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the authors, magazines and articles tables",
		Long: `Create the schema if it does not exist yet. Running setup twice is safe;
existing tables and rows are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := db.MigrateUp(ctx, a.db, a.cfg.Driver); err != nil {
				return err
			}
			tables, err := db.ListTables(ctx, a.db, a.cfg.Driver)
			if err != nil {
				return err
			}
			return a.out.values("Table", tables)
		},
	}
}

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the built-in sample data set",
		Long: `Delete every article, author and magazine and insert the sample data:
three authors, three magazines and five articles. The reset and the inserts
run in one transaction, so a failed seed leaves the previous data in place.`,
		Example: `  magdb setup && magdb seed
  magdb seed --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sum, err := a.seeder().Run(cmd.Context())
			if err != nil {
				return err
			}
			if a.out.isJSON() {
				return a.out.writeJSON(sum)
			}
			return a.out.message("Seeded %d authors, %d magazines and %d articles.",
				sum.Authors, sum.Magazines, sum.Articles)
		},
	}
}

// parseID parses a positive entity id argument.
func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}
