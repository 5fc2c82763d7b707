package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/hammer/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// LatestSchemaVersion is the version of the newest embedded migration.
const LatestSchemaVersion uint = 2

// migrationDirs maps a backend to its directory of embedded migrations.
var migrationDirs = map[schema.DatabaseBackend]string{
	schema.SQLiteBackend:     "migrations/sqlite",
	schema.MySQLBackend:      "migrations/mysql",
	schema.PostgreSQLBackend: "migrations/postgresql",
}

// getMigrator returns the migrate instance of the store, creating it on first use.
// It is never closed because closing it also closes the shared connection pool.
func (s *SQLStore) getMigrator() (*migrate.Migrate, error) {
	if s.migrator != nil {
		return s.migrator, nil
	}

	var driver database.Driver
	var err error
	switch s.backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(s.db, &sqlite.Config{})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(s.db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = postgres.WithInstance(s.db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported backend: %s", s.backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migrate driver: %w", s.backend, err)
	}

	sourceDriver, err := iofs.New(migrationsFS, migrationDirs[s.backend])
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "hammer", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	s.migrator = m
	return m, nil
}

// version returns the applied schema version, or 0 when none has been applied.
func (s *SQLStore) version() (uint, bool, error) {
	m, err := s.getMigrator()
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get current migration version: %w", err)
	}
	return v, dirty, nil
}

// Initialized implements the Store interface.
func (s *SQLStore) Initialized(_ context.Context) (bool, error) {
	v, _, err := s.version()
	if err != nil {
		return false, err
	}
	return v > 0, nil
}

// CheckSchema implements the Store interface.
func (s *SQLStore) CheckSchema(_ context.Context) error {
	v, dirty, err := s.version()
	if err != nil {
		return err
	}
	if v == 0 {
		return schema.ErrStoreNotInitialized
	}
	if dirty {
		return fmt.Errorf("%w: version %d is dirty, fix it manually or force the version", schema.ErrOldSchema, v)
	}
	if v < LatestSchemaVersion {
		return fmt.Errorf("%w: at version %d of %d", schema.ErrOldSchema, v, LatestSchemaVersion)
	}
	return nil
}

// Migrate implements the Store interface.
// - If target < 0, it migrates to the latest version.
// - If target == 0, it rolls back all migrations (to initial state).
// - If target > 0, it migrates to the specified version.
func (s *SQLStore) Migrate(_ context.Context, target int) (uint, uint, error) {
	m, err := s.getMigrator()
	if err != nil {
		return 0, 0, err
	}
	from, dirty, err := s.version()
	if err != nil {
		return 0, 0, err
	}
	if dirty {
		return from, from, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", from)
	}

	switch {
	case target < 0:
		err = m.Up()
	case target == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(target))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return from, from, fmt.Errorf("failed to migrate from version %d: %w", from, err)
	}

	to, _, err := s.version()
	if err != nil {
		return from, from, err
	}
	logger().Info("migrated store", "backend", s.backend, "from", from, "to", to)
	return from, to, nil
}
