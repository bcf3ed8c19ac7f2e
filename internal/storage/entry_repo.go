package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_entry_store.go -package=mocks sitegen/internal/storage EntryStore

import (
	"context"
	"database/sql"
	"fmt"
)

// EntryStore defines the interface for the per-build content listing.
type EntryStore interface {
	// ReplaceForBuild replaces every entry of buildID with entries.
	ReplaceForBuild(ctx context.Context, buildID string, entries []Entry) error
	// ListByBuild returns the entries of buildID ordered by slug.
	ListByBuild(ctx context.Context, buildID string) ([]Entry, error)
}

// EntryRepo implements EntryStore on SQLite.
type EntryRepo struct {
	db *sql.DB
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(db *sql.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// ReplaceForBuild writes entries in a single transaction.
func (r *EntryRepo) ReplaceForBuild(ctx context.Context, buildID string, entries []Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM build_entries WHERE build_id = ?", buildID); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO build_entries (build_id, slug, title, date, source_path, source_hash)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		var date sql.NullString
		if !e.Date.IsZero() {
			date = sql.NullString{String: formatTime(e.Date), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, buildID, e.Slug, e.Title, date, e.SourcePath, e.SourceHash); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// ListByBuild returns the entries of a build.
func (r *EntryRepo) ListByBuild(ctx context.Context, buildID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT build_id, slug, title, date, source_path, source_hash
		 FROM build_entries WHERE build_id = ? ORDER BY slug`,
		buildID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			date sql.NullString
		)
		if err := rows.Scan(&e.BuildID, &e.Slug, &e.Title, &date, &e.SourcePath, &e.SourceHash); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if date.Valid && date.String != "" {
			if e.Date, err = parseTime(date.String); err != nil {
				return nil, fmt.Errorf("failed to parse entry date: %w", err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}
