package database

import (
	"fmt"
	"strings"

	"github.com/DhavalSuthar-24/superheroes/internal/models"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options selects and configures the database connection.
type Options struct {
	Driver string
	// DSN is a postgres connection string, or a sqlite file path
	// (":memory:" for a private in-memory database).
	DSN      string
	LogLevel gormlogger.LogLevel
}

// Open connects to the configured database with the catalog naming
// strategy. sqlite connections enforce foreign keys.
func Open(opts Options, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverPostgres:
		dialector = postgres.Open(opts.DSN)
	case DriverSQLite, "":
		dialector = sqlite.Open(SQLiteDSN(opts.DSN))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: models.NamingStrategy{},
		Logger:         NewGormLogger(log, opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.Driver != DriverPostgres {
		if isMemory(opts.DSN) {
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			// every new connection would see a fresh, empty in-memory database
			sqlDB.SetMaxOpenConns(1)
		}
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}
	return db, nil
}

// SQLiteDSN turns a file path into a DSN with foreign key enforcement on.
func SQLiteDSN(path string) string {
	if isMemory(path) {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func isMemory(path string) bool {
	return path == "" || path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}

// PostgresDSN formats a key/value libpq connection string.
func PostgresDSN(host, port, user, password, name, sslMode string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, password, name, port, sslMode,
	)
}

// Ping checks the connection is alive.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
