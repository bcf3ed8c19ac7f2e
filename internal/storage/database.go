package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// New opens the SQLite manifest database at path.
// The driver is mattn/go-sqlite3 when built with -tags cgo_sqlite and
// modernc.org/sqlite otherwise. Foreign keys are enabled on every connection.
func New(path string) (*sql.DB, error) {
	db, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates the manifest tables. It is idempotent.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			status TEXT NOT NULL,
			records INTEGER NOT NULL DEFAULT 0,
			pages INTEGER NOT NULL DEFAULT 0,
			problems INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_builds_status_started ON builds (status, started_at);`,
		`CREATE TABLE IF NOT EXISTS build_entries (
			build_id TEXT NOT NULL,
			slug TEXT NOT NULL,
			title TEXT NOT NULL,
			date TEXT,
			source_path TEXT NOT NULL,
			source_hash TEXT NOT NULL,
			PRIMARY KEY (build_id, slug),
			FOREIGN KEY (build_id) REFERENCES builds(id) ON DELETE CASCADE
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	return nil
}
