package storage

import "time"

// BuildStatus is the lifecycle state of a build.
type BuildStatus string

const (
	BuildRunning   BuildStatus = "running"
	BuildSucceeded BuildStatus = "succeeded"
	BuildFailed    BuildStatus = "failed"
)

// Build is one generation run recorded in the manifest.
type Build struct {
	ID         string // UUID
	StartedAt  time.Time
	FinishedAt time.Time // Zero while running
	Status     BuildStatus
	Records    int    // Content records in the store
	Pages      int    // Files written
	Problems   int    // Per-record errors reported
	Error      string // Failure reason for failed builds
}

// Entry is one content record published by a build.
type Entry struct {
	BuildID    string
	Slug       string
	Title      string
	Date       time.Time // Zero for pages
	SourcePath string
	SourceHash string // SHA256 hex of the source file
}
