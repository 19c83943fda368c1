package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations for the database dialect.
// The migrate instance is not closed since that would close db.
func RunMigrations(db *DB) error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(db.Dialect))
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var driver migratedb.Driver
	switch db.Dialect {
	case DialectPostgres:
		driver, err = postgres.WithInstance(db.DB.DB, &postgres.Config{})
	case DialectSQLite:
		driver, err = sqlite.WithInstance(db.DB.DB, &sqlite.Config{})
	default:
		return fmt.Errorf("unsupported dialect %q", db.Dialect)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(db.Dialect), driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
