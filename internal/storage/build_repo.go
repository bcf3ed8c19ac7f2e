package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_build_store.go -package=mocks sitegen/internal/storage BuildStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// BuildStore defines the interface for build manifest operations.
type BuildStore interface {
	// Start records a new running build and returns it.
	Start(ctx context.Context) (*Build, error)
	// Finish stores the final status and counts of build and stamps FinishedAt.
	Finish(ctx context.Context, build *Build) error
	// Get returns the build with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Build, error)
	// LastSuccessful returns the most recent succeeded build, or ErrNotFound.
	LastSuccessful(ctx context.Context) (*Build, error)
	// List returns up to limit builds, newest first.
	List(ctx context.Context, limit int) ([]Build, error)
}

// BuildRepo implements BuildStore on SQLite.
type BuildRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewBuildRepo creates a new BuildRepo.
func NewBuildRepo(db *sql.DB) *BuildRepo {
	return &BuildRepo{db: db, now: time.Now}
}

const buildColumns = "id, started_at, finished_at, status, records, pages, problems, error"

// Start records a new running build.
func (r *BuildRepo) Start(ctx context.Context) (*Build, error) {
	build := &Build{
		ID:        uuid.New().String(),
		StartedAt: r.now().UTC(),
		Status:    BuildRunning,
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO builds (id, started_at, status) VALUES (?, ?, ?)",
		build.ID, formatTime(build.StartedAt), string(build.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert build: %w", err)
	}

	return build, nil
}

// Finish updates the status, counts and error of a build.
func (r *BuildRepo) Finish(ctx context.Context, build *Build) error {
	if build.Status == BuildRunning || build.Status == "" {
		return fmt.Errorf("build %s must finish as %s or %s", build.ID, BuildSucceeded, BuildFailed)
	}
	build.FinishedAt = r.now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE builds SET finished_at = ?, status = ?, records = ?, pages = ?, problems = ?, error = ?
		 WHERE id = ?`,
		formatTime(build.FinishedAt), string(build.Status), build.Records, build.Pages, build.Problems, build.Error,
		build.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update build: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated build: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Get returns a build by id.
func (r *BuildRepo) Get(ctx context.Context, id string) (*Build, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+buildColumns+" FROM builds WHERE id = ?", id)
	return scanBuild(row)
}

// LastSuccessful returns the most recently started succeeded build.
func (r *BuildRepo) LastSuccessful(ctx context.Context) (*Build, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+buildColumns+" FROM builds WHERE status = ? ORDER BY started_at DESC LIMIT 1",
		string(BuildSucceeded),
	)
	return scanBuild(row)
}

// List returns up to limit builds, newest first.
func (r *BuildRepo) List(ctx context.Context, limit int) ([]Build, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+buildColumns+" FROM builds ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		build, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, *build)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate builds: %w", err)
	}

	return builds, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (*Build, error) {
	var (
		build      Build
		startedAt  string
		finishedAt sql.NullString
		status     string
	)

	err := row.Scan(&build.ID, &startedAt, &finishedAt, &status, &build.Records, &build.Pages, &build.Problems, &build.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan build: %w", err)
	}

	build.Status = BuildStatus(status)
	if build.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, fmt.Errorf("failed to parse started_at timestamp: %w", err)
	}
	if finishedAt.Valid && finishedAt.String != "" {
		if build.FinishedAt, err = parseTime(finishedAt.String); err != nil {
			return nil, fmt.Errorf("failed to parse finished_at timestamp: %w", err)
		}
	}

	return &build, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
