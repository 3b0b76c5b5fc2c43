package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/superheroes/config"
	"github.com/DhavalSuthar-24/superheroes/internal/database"
	"github.com/DhavalSuthar-24/superheroes/internal/hero"
	"github.com/DhavalSuthar-24/superheroes/pkg/token"
	"github.com/DhavalSuthar-24/superheroes/routes"
)

var (
	tokenSubject string
	tokenTTL     int
)

var rootCmd = &cobra.Command{
	Use:   "superheroes",
	Short: "Heroes and powers catalog API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Initialize()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback migrations (default: 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMigrateDown,
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current migration version",
	RunE:  runMigrateVersion,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the catalog with the demo heroes and powers",
	RunE:  runSeed,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the write routes",
	// only needs configuration, not a database connection
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.LoadConfig()
		return err
	},
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "Token subject")
	tokenCmd.Flags().IntVar(&tokenTTL, "ttl", 0, "Lifetime in minutes (default: JWT_EXPIRY_MINUTES)")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, tokenCmd)
}

// @title Superheroes REST API
// @version 1.0
// @description Heroes, powers and the strengths linking them.
// @host localhost:5555
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute command: %v", err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	logger := config.Logger
	defer func() { _ = logger.Sync() }()

	if err := database.Migrate(config.DB, cfg.DB.Driver, logger, hero.Models()...); err != nil {
		return err
	}

	r, err := routes.SetupRoutes(config.DB, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting server", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
	return r.Run(":" + cfg.App.Port)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if cfg.DB.Driver != database.DriverPostgres {
		return database.Migrate(config.DB, cfg.DB.Driver, config.Logger, hero.Models()...)
	}
	m, err := database.NewMigrator(config.DB, cfg.DB.Driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			config.Logger.Info("no migrations to apply")
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}
	return printVersion(m)
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid steps %q: expected a positive integer", args[0])
		}
		steps = n
	}

	cfg := config.GetConfig()
	m, err := database.NewMigrator(config.DB, cfg.DB.Driver)
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			config.Logger.Info("no migrations to rollback")
			return nil
		}
		return fmt.Errorf("migration down failed: %w", err)
	}
	config.Logger.Info("rolled back migrations", zap.Int("steps", steps))
	return printVersion(m)
}

func runMigrateVersion(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	m, err := database.NewMigrator(config.DB, cfg.DB.Driver)
	if err != nil {
		return err
	}
	return printVersion(m)
}

func printVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("No migrations applied yet")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get version: %w", err)
	}
	fmt.Printf("Current version: %d (dirty: %t)\n", version, dirty)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if err := database.Migrate(config.DB, cfg.DB.Driver, config.Logger, hero.Models()...); err != nil {
		return err
	}

	summary, err := hero.Seed(context.Background(), config.DB, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return err
	}
	config.Logger.Info("Done seeding!",
		zap.Int("heroes", summary.Heroes),
		zap.Int("powers", summary.Powers),
		zap.Int("hero_powers", summary.HeroPowers))
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.JWT.ExpiryMinutes
	}
	signed, err := token.GenerateJWT(tokenSubject, token.WriteScope, cfg.JWT.Secret, ttl)
	if err != nil {
		return err
	}
	fmt.Println(signed)
	return nil
}
