package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies all pending schema migrations from sourceURL
// (e.g. "file://./migrations") to the database at dsn. An already
// current schema is not an error.
func RunMigrations(dsn, sourceURL string) error {
	return runMigrator(dsn, sourceURL, (*migrate.Migrate).Up)
}

// RunMigrationsDown rolls the schema all the way back. Intended for
// throwaway test databases, never for a live lending store.
func RunMigrationsDown(dsn, sourceURL string) error {
	return runMigrator(dsn, sourceURL, (*migrate.Migrate).Down)
}

func runMigrator(dsn, sourceURL string, apply func(*migrate.Migrate) error) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("postgres: open migrator: %w", err)
	}
	defer m.Close()

	if err := apply(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: apply migrations: %w", err)
	}
	return nil
}
