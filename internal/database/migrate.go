package database

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies all pending migrations from path against the database at
// dsn. An already up-to-date schema is not an error.
func Migrate(dsn, path string) error {
	if dsn == "" {
		return errors.New("database DSN is empty")
	}
	if path == "" {
		return errors.New("migrations path is empty")
	}

	m, err := migrate.New("file://"+path, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
