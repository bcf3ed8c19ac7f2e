package site

import (
	"strings"
	"time"

	"sitegen/internal/content"
	"sitegen/internal/index"
	"sitegen/internal/relation"
)

// Snapshot is one frozen generation of the site. Nothing in it changes after
// it is published; a new build produces a new Snapshot.
type Snapshot struct {
	BuildID   string
	BuiltAt   time.Time
	Store     *content.Store
	Indexes   *index.Indexes
	Relations map[string]relation.Snapshot
	Authors   map[string]*content.Author
}

// RelationsOf returns the relations of slug.
func (s *Snapshot) RelationsOf(slug string) relation.Snapshot {
	return s.Relations[slug]
}

// Author returns the profile for id, falling back to a stub.
func (s *Snapshot) Author(id string) *content.Author {
	if a, ok := s.Authors[id]; ok {
		return a
	}
	return content.StubAuthor(id)
}

// AuthorsOf returns the profiles of the record's authors in declared order.
func (s *Snapshot) AuthorsOf(rec *content.Record) []*content.Author {
	var out []*content.Author
	seen := make(map[string]struct{}, len(rec.Authors))
	for _, id := range rec.Authors {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, s.Author(id))
	}
	return out
}

// authorProfiles merges configured profiles with stubs for every author
// referenced by content.
func authorProfiles(configured map[string]*content.Author, idx *index.Indexes) map[string]*content.Author {
	out := make(map[string]*content.Author, len(configured))
	for id, a := range configured {
		out[id] = a
	}
	for _, g := range idx.Authors.Groups() {
		if _, ok := out[g.Key]; !ok {
			out[g.Key] = content.StubAuthor(g.Key)
		}
	}
	return out
}
