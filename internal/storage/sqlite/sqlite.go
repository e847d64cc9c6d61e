// Package sqlite provides the SQLite-backed implementation of the
// storage contracts using database/sql and the mattn/go-sqlite3 driver.
//
// The store owns everything the rest of the application treats as
// store-managed: id assignment, createdAt/updatedAt maintenance, and
// rollNumber uniqueness (a UNIQUE index on students.roll_number).
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/library-api/internal/config"

	// Blank import registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// SQLite implements storage.BookStorage and storage.StudentStorage.
// A single *sql.DB is a connection pool, safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the books
// and students tables if they do not already exist, and returns a
// ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// Ensure the parent directory exists so first-run succeeds.
	if dir := filepath.Dir(cfg.StoragePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent, safe on every startup.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id             INTEGER   PRIMARY KEY AUTOINCREMENT,
			title          TEXT      NOT NULL,
			author         TEXT      NOT NULL,
			published_year INTEGER   NOT NULL,
			genre          TEXT,
			price          REAL,
			in_stock       BOOLEAN   NOT NULL DEFAULT 1,
			created_at     TIMESTAMP NOT NULL,
			updated_at     TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create books table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id          INTEGER   PRIMARY KEY AUTOINCREMENT,
			name        TEXT      NOT NULL,
			roll_number TEXT      NOT NULL UNIQUE,
			age         INTEGER,
			class_name  TEXT,
			email       TEXT,
			phone       TEXT,
			is_active   BOOLEAN   NOT NULL DEFAULT 1,
			created_at  TIMESTAMP NOT NULL,
			updated_at  TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create students table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
