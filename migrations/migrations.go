// Package migrations embeds the Postgres schema and applies it with
// golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/logx"
)

//go:embed *.sql
var files embed.FS

// New builds a migrator over db using the embedded files. Closing the
// migrator closes db.
func New(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(files, ".")
	if err != nil {
		return nil, errx.Wrap(err, "failed to open embedded migrations", errx.TypeInternal)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, errx.Wrap(err, "failed to create migrate driver", errx.TypeInternal)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, errx.Wrap(err, "failed to create migrator", errx.TypeInternal)
	}
	return m, nil
}

// Up applies every pending migration. A dirty database is an error.
func Up(db *sql.DB) error {
	m, err := New(db)
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errx.Wrap(err, "failed to read migration version", errx.TypeInternal)
	}
	if dirty {
		return errx.New("database is in a dirty migration state", errx.TypeInternal).
			WithDetail("version", version)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logx.Debugf("migrations: up to date (version %d)", version)
			return nil
		}
		return errx.Wrap(err, "failed to apply migrations", errx.TypeInternal)
	}

	if v, _, err := m.Version(); err == nil && v != version {
		logx.Infof("migrations: migrated from version %d to %d", version, v)
	}
	return nil
}
