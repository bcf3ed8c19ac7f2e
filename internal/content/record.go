package content

import "time"

// DefaultStream is the stream a record belongs to when its frontmatter does not name one.
const DefaultStream = "index"

// Record is a single parsed post or page.
// Records are created by the Parser and must not be mutated once handed to a Store.
type Record struct {
	Slug        string         // Unique key, also the output file name without extension
	Title       string         // Frontmatter title or first markdown line
	Date        time.Time      // Zero for undated content (pages)
	Tags        []string       // Declared tags in frontmatter order
	Authors     []string       // Author ids in frontmatter order
	HTML        string         // Rendered markdown body
	Description string         // Frontmatter description, may be empty
	Excerpt     string         // Description or stripped body truncated to ExcerptLength runes
	BannerImage string         // Optional
	CardImage   string         // Optional
	Stream      string         // Stream name, DefaultStream when unset
	LinksTo     []string       // Slugs of internal links found in the body
	TOC         []Heading      // Headings with ids, in document order
	SourcePath  string         // Path relative to the content directory
	SourceHash  string         // SHA256 hex of the source file
	Extra       map[string]any // Open frontmatter "extra" map
}

// Dated reports whether the record carries a date. Undated records are pages.
func (r *Record) Dated() bool {
	return !r.Date.IsZero()
}

// Heading is one entry of a record's table of contents.
type Heading struct {
	Level int
	ID    string
	Title string
}

// Author is an author profile. Authors own no content; records reference them by Slug.
type Author struct {
	Slug   string
	Name   string
	Bio    string
	Avatar string
	Links  []Link
}

// Link is a labelled URL.
type Link struct {
	Label string
	URL   string
}

// StubAuthor returns the profile used for an author id that has no configured profile.
func StubAuthor(id string) *Author {
	return &Author{Slug: id, Name: id}
}
