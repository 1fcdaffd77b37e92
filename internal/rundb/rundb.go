// Package rundb persists model-comparison results to a local SQLite
// database so successive pipeline runs can be compared over time.
package rundb

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the run-history database handle.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the run-history database at path and applies
// any pending migrations. Use ":memory:" for an ephemeral database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run db %s: %w", path, err)
	}
	// modernc sqlite serializes writes through a single connection.
	db.SetMaxOpenConns(1)

	d := &DB{db}
	if err := d.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// migrateUp applies all pending embedded migrations. A database
// already at the latest version is not an error.
func (db *DB) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	// Note: we don't close m because it would close the underlying DB
	// connection.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// migrateLogger implements migrate.Logger.
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool { return false }
