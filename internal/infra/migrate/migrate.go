package migrate

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	migrationsFS "github.com/Miraines/MoonyAndStarry/task-service/scripts/db/migrations"
)

// Up applies all pending migrations to the database behind db.
func Up(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	return apply(driver, "postgres")
}

// apply runs every pending embedded migration against driver. An already
// current schema is not an error.
func apply(driver database.Driver, name string) error {
	m, err := newMigrate(driver, name)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func newMigrate(driver database.Driver, name string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS.FS, ".")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", source, name, driver)
}
