package database_test

import (
	"io/fs"
	"testing"

	"github.com/DhavalSuthar-24/superheroes/internal/database"
	"github.com/DhavalSuthar-24/superheroes/internal/hero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Options{
		Driver:   database.DriverSQLite,
		DSN:      ":memory:",
		LogLevel: gormlogger.Silent,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	db := openMemory(t)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
	assert.NoError(t, database.Ping(db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(database.Options{Driver: "oracle"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)", database.SQLiteDSN(":memory:"))
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)", database.SQLiteDSN(""))
	assert.Equal(t, "app.db?_pragma=foreign_keys(1)", database.SQLiteDSN("app.db"))
	assert.Equal(t, "app.db?mode=rwc&_pragma=foreign_keys(1)", database.SQLiteDSN("app.db?mode=rwc"))
}

func TestPostgresDSN(t *testing.T) {
	dsn := database.PostgresDSN("db", "5432", "app", "pw", "heroes", "disable")
	assert.Equal(t, "host=db user=app password=pw dbname=heroes port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestMigrateNamesForeignKeys(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, database.Migrate(db, database.DriverSQLite, zap.NewNop(), hero.Models()...))

	for _, table := range []string{"heroes", "powers", "hero_powers"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var ddl string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = ? AND name = ?", "table", "hero_powers").Scan(&ddl).Error)
	assert.Contains(t, ddl, "fk_hero_powers_hero_id_heroes")
	assert.Contains(t, ddl, "fk_hero_powers_power_id_powers")
	assert.Contains(t, ddl, "ON DELETE CASCADE")

	// running it again is a no-op
	assert.NoError(t, database.Migrate(db, database.DriverSQLite, zap.NewNop(), hero.Models()...))
}

func TestMigrationFilesDeclareConstraints(t *testing.T) {
	up, err := fs.ReadFile(database.MigrationFiles(), "migrations/000001_create_catalog.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CONSTRAINT fk_hero_powers_hero_id_heroes FOREIGN KEY (hero_id) REFERENCES heroes (id) ON DELETE CASCADE")
	assert.Contains(t, string(up), "CONSTRAINT fk_hero_powers_power_id_powers FOREIGN KEY (power_id) REFERENCES powers (id)\n")

	down, err := fs.ReadFile(database.MigrationFiles(), "migrations/000001_create_catalog.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP TABLE IF EXISTS hero_powers")
}

func TestNewMigratorRequiresPostgres(t *testing.T) {
	db := openMemory(t)
	_, err := database.NewMigrator(db, database.DriverSQLite)
	assert.ErrorIs(t, err, database.ErrMigrationsUnsupported)
}
