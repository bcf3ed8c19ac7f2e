package site

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is returned when content is required but none was found.
	ErrNoContent = errors.New("no content found")
	// ErrBuildInProgress is returned when a build is requested while another runs.
	ErrBuildInProgress = errors.New("build already in progress")
	// ErrGeneratorClosed is returned when a build is requested after Close.
	ErrGeneratorClosed = errors.New("generator is closed")
)

// BuildError is an unrecoverable failure that halts a build. Slug names the
// record or list the failure belongs to, when there is one.
type BuildError struct {
	Slug string
	Err  error
}

func (e *BuildError) Error() string {
	if e.Slug == "" {
		return fmt.Sprintf("build failed: %v", e.Err)
	}
	return fmt.Sprintf("build failed at %s: %v", e.Slug, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// OutputCollisionError reports two pages planned at the same output path.
// The page planned first is kept.
type OutputCollisionError struct {
	Path     string
	Owner    string
	Existing string
}

func (e *OutputCollisionError) Error() string {
	return fmt.Sprintf("output %s for %s is already produced by %s", e.Path, e.Owner, e.Existing)
}

// InvalidOutputPathError reports a page whose output path would leave the
// output root or land in a subdirectory. The page is not written.
type InvalidOutputPathError struct {
	Path  string
	Owner string
}

func (e *InvalidOutputPathError) Error() string {
	return fmt.Sprintf("output path %q for %s is not a file in the output directory", e.Path, e.Owner)
}
