// @title           HelpConnect Marketplace API
// @version         1.0
// @description     Local services marketplace: client and helper profiles, helper search and job booking.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by the login token.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/helpconnect/marketplace-api/internal/infrastructure/db/sqlstore"
	"github.com/helpconnect/marketplace-api/internal/pkg/config"
	"github.com/helpconnect/marketplace-api/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port     string
	dbDriver string
	dbDSN    string
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "helpconnect",
		Short:         "HelpConnect - local services marketplace API",
		Long:          `HelpConnect serves the marketplace HTTP API: profile registration and login, helper search and job booking.`,
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver: sqlite or postgres (or set DB_DRIVER env var)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "SQLite path or Postgres URL (or set DB_DSN env var)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (or set LOG_LEVEL env var)")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (or set PORT env var)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (or set PORT env var)")

	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE:  runMigrate,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Apply the schema and insert demo helpers, clients and reviews",
		RunE:  runSeed,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("helpconnect %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies explicit flag overrides.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if port != "" {
		cfg.Port = port
	}
	if dbDriver != "" {
		cfg.Database.Driver = dbDriver
	}
	if dbDSN != "" {
		cfg.Database.DSN = dbDSN
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) zerolog.Logger {
	return logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
		File: logger.FileOptions{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   true,
		},
	})
}

// openStore opens the relational store and applies pending migrations.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sqlstore.DB, error) {
	db, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := setupLogging(cfg)

	db, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("driver", db.Driver()).Int("schema_version", v).Msg("Database schema is up to date")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := setupLogging(cfg)

	db, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	cmd.Printf("Seeded %d demo profiles\n", n)
	return nil
}
