// ABOUTME: SQLite connection management for the deal tracker
// ABOUTME: Opens the database with WAL mode and initializes the schema
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDatabase opens the tracker database at path, creating the parent
// directory and schema on first use. WAL plus a busy timeout lets a CLI
// invocation and a long-running TUI or web process share the file without
// "database is locked" failures.
func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Single connection; the working set lives in memory and writes are rare.
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
