// Package store persists habitat records in a local SQLite database.
package store

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // register sqlite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

const timestampLayout = time.RFC3339

// Store is the record store. It holds a single connection so writes and the
// recompute pass that follows them are serialized.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sqlx.Connect("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Debug("database opened", "path", path)
	return &Store{db: db}, nil
}

func migrate(db *sqlx.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	goose.SetBaseFS(dir)
	goose.SetLogger(goose.NopLogger())

	if err := goose.Up(db.DB, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func stamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseStamp(s string) time.Time {
	t, _ := time.Parse(timestampLayout, s)
	return t
}

// dayString stores a calendar day without time or zone.
func dayString(t time.Time) string {
	return t.Format("2006-01-02")
}

// parseDay reads a stored calendar day as local midnight.
func parseDay(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.Local)
	return t
}

func rowsAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
