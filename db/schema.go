// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS deals (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	created_by TEXT NOT NULL,
	client_name TEXT NOT NULL DEFAULT '',
	memo TEXT NOT NULL,
	due_date TEXT NOT NULL,
	importance TEXT NOT NULL DEFAULT 'medium',
	urgency TEXT NOT NULL DEFAULT 'medium',
	profit TEXT NOT NULL DEFAULT 'medium',
	assignment_type TEXT NOT NULL DEFAULT 'delegate',
	assignee TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'open',
	image_url TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_deals_status ON deals(status);
CREATE INDEX IF NOT EXISTS idx_deals_due_date ON deals(due_date);
CREATE INDEX IF NOT EXISTS idx_deals_assignee ON deals(assignee);

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
