// Package cli provides the magdb command-line interface.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"magazine-db/internal/config"
	"magazine-db/internal/infra/adapter/persistence/postgres"
	"magazine-db/internal/infra/adapter/persistence/sqlite"
	"magazine-db/internal/infra/db"
	"magazine-db/internal/observability/logging"
	"magazine-db/internal/observability/metrics"
	"magazine-db/internal/repository"
	"magazine-db/internal/resilience/circuitbreaker"
	artUC "magazine-db/internal/usecase/article"
	authorUC "magazine-db/internal/usecase/author"
	magUC "magazine-db/internal/usecase/magazine"
	"magazine-db/internal/usecase/publish"
	"magazine-db/internal/usecase/seed"
)

// Version is set at build time.
var Version = "dev"

// metricPrefixes selects the application's own metric families for --print-metrics.
var metricPrefixes = []string{"db_", "entity_", "publish_", "seed_"}

// store is the storage backend as seen by the commands.
type store interface {
	repository.Transactor
	Repositories() repository.Repositories
}

// app carries the state shared by every command of one invocation.
type app struct {
	cfgFile      string
	printMetrics bool

	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	handle repository.DBTX
	store  store
	out    *renderer
}

func (a *app) authors() *authorUC.Service  { return &authorUC.Service{Repos: a.store.Repositories()} }
func (a *app) magazines() *magUC.Service   { return &magUC.Service{Repos: a.store.Repositories()} }
func (a *app) articles() *artUC.Service    { return &artUC.Service{Repos: a.store.Repositories()} }
func (a *app) publisher() *publish.Service { return &publish.Service{Tx: a.store} }
func (a *app) seeder() *seed.Service       { return &seed.Service{Tx: a.store} }

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "magdb",
		Short: "magdb - authors, magazines and the articles that connect them",
		Long: `magdb manages a small publishing database of authors, magazines and
articles on SQLite or PostgreSQL.

Configuration is read from magdb.yaml, MAGDB_* environment variables and flags.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./magdb.yaml)")
	pf.String("driver", config.DefaultDriver, "storage driver (sqlite|postgres)")
	pf.String("dsn", config.DefaultDSN, "SQLite file path or PostgreSQL connection string")
	pf.StringP("output", "o", config.DefaultOutput, "output format (table|json)")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	pf.String("log-format", config.DefaultLogFormat, "log format (text|json)")
	pf.Bool("circuit-breaker", false, "guard non-transactional statements with a circuit breaker")
	pf.BoolVar(&a.printMetrics, "print-metrics", false, "print collected metrics after the command")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		newSetupCommand(a),
		newSeedCommand(a),
		newAuthorsCommand(a),
		newMagazinesCommand(a),
		newArticlesCommand(a),
		newREPLCommand(a),
	)
	closeOnError(rootCmd, a)
	return rootCmd
}

// closeOnError releases the database when a command fails, since cobra
// skips the post-run hooks after a RunE error.
func closeOnError(cmd *cobra.Command, a *app) {
	for _, sub := range cmd.Commands() {
		closeOnError(sub, a)
	}
	if cmd.RunE == nil {
		return
	}
	runE := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		if err := runE(c, args); err != nil {
			_ = a.close()
			return err
		}
		return nil
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// open loads configuration, sets up logging and connects to the database.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.out = newRenderer(cmd.OutOrStdout(), cfg.Output)

	a.logger = logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	ctx := logging.WithLogger(cmd.Context(), a.logger)
	cmd.SetContext(ctx)
	if cfg.File != "" {
		a.logger.Debug("using config file", slog.String("path", cfg.File))
	}

	sqlDB, err := db.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return err
	}
	a.db = sqlDB

	// a private in-memory database starts empty on every run
	if cfg.Driver == db.DriverSQLite && (cfg.DSN == db.MemoryDSN || cfg.DSN == "") {
		if err := db.MigrateUp(ctx, sqlDB, cfg.Driver); err != nil {
			_ = a.close()
			return err
		}
	}

	// one handle, and so one breaker, for repositories and REPL statements
	a.handle = sqlDB
	if cfg.CircuitBreaker {
		a.handle = circuitbreaker.NewDBCircuitBreaker(sqlDB)
	}
	switch cfg.Driver {
	case db.DriverPostgres:
		a.store = postgres.NewStore(sqlDB, postgres.WithHandle(a.handle))
	default:
		a.store = sqlite.NewStore(sqlDB, sqlite.WithHandle(a.handle))
	}

	a.logger.Debug("database opened",
		slog.String("driver", cfg.Driver),
		slog.Bool("circuit_breaker", cfg.CircuitBreaker))
	return nil
}

// close prints metrics when requested and releases the database.
func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	metrics.UpdateDBStats(a.db.Stats())

	var err error
	if a.printMetrics {
		samples, serr := metrics.Snapshot(prometheus.DefaultGatherer, metricPrefixes...)
		if serr != nil {
			err = fmt.Errorf("gather metrics: %w", serr)
		} else {
			err = a.out.samples(samples)
		}
	}
	if cerr := a.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	a.db = nil
	a.handle = nil
	return err
}
