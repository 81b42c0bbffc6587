// Package migrations applies the embedded schema of the yard database.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed sql/*.sql
var files embed.FS

// Up applies every pending migration. It reports whether anything changed.
func Up(dsn string) (bool, error) {
	m, closeFn, err := open(dsn)
	if err != nil {
		return false, err
	}
	defer closeFn()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return true, nil
}

// Down reverts every migration.
func Down(dsn string) error {
	m, closeFn, err := open(dsn)
	if err != nil {
		return err
	}
	defer closeFn()

	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to revert migrations: %w", err)
	}
	return nil
}

// Version returns the applied version and whether the last run left the schema dirty.
func Version(dsn string) (uint, bool, error) {
	m, closeFn, err := open(dsn)
	if err != nil {
		return 0, false, err
	}
	defer closeFn()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func open(dsn string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database for migrations: %w", err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(files, "sql")
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to initialize migration instance: %w", err)
	}

	return m, func() { _, _ = m.Close() }, nil
}
