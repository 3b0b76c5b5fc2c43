package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// ErrMigrationsUnsupported is returned by the versioned migration commands
// on drivers that are migrated with AutoMigrate instead.
var ErrMigrationsUnsupported = errors.New("versioned migrations are only available for postgres")

// MigrationFiles exposes the embedded SQL migrations.
func MigrationFiles() embed.FS {
	return migrationFiles
}

// Migrate brings the schema up to date: the embedded SQL migrations on
// postgres, GORM AutoMigrate of models elsewhere.
func Migrate(db *gorm.DB, driver string, log *zap.Logger, models ...any) error {
	if driver != DriverPostgres {
		if err := db.AutoMigrate(models...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("schema auto-migrated", zap.String("driver", driver), zap.Int("models", len(models)))
		return nil
	}

	// m is left open: closing it would close db's pool as well
	m, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	} else if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply")
		return nil
	}
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// NewMigrator builds a golang-migrate instance over the embedded SQL files,
// sharing db's connection pool.
func NewMigrator(db *gorm.DB, driver string) (*migrate.Migrate, error) {
	if driver != DriverPostgres {
		return nil, ErrMigrationsUnsupported
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	dbDriver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, DriverPostgres, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}
