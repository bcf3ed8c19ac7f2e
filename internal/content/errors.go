package content

import "fmt"

// ParseError is returned when a source file cannot be turned into a Record.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidDateError is returned when a frontmatter date matches none of the accepted layouts.
type InvalidDateError struct {
	Path  string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q in %s: use YYYY-MM-DD, YYYY-MM-DD HH:MM or YYYY-MM-DD HH:MM:SS", e.Value, e.Path)
}

// DuplicateSlugError is reported when two records resolve to the same slug.
// The record parsed first is kept.
type DuplicateSlugError struct {
	Slug         string
	Path         string
	ExistingPath string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate slug %q: %s conflicts with %s", e.Slug, e.Path, e.ExistingPath)
}
