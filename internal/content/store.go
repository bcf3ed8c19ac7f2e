package content

import "sort"

// Store is an immutable, slug-keyed collection of records for one generation.
// Rebuilding the site creates a new Store; an existing Store is never modified.
type Store struct {
	records []*Record
	bySlug  map[string]*Record
}

// NewStore indexes records by slug. When two records share a slug the first one
// wins and a DuplicateSlugError is returned for each later record; the rest of
// the store is unaffected.
func NewStore(records []*Record) (*Store, []error) {
	s := &Store{
		records: make([]*Record, 0, len(records)),
		bySlug:  make(map[string]*Record, len(records)),
	}

	var errs []error
	for _, r := range records {
		if r == nil {
			continue
		}
		if existing, ok := s.bySlug[r.Slug]; ok {
			errs = append(errs, &DuplicateSlugError{Slug: r.Slug, Path: r.SourcePath, ExistingPath: existing.SourcePath})
			continue
		}
		s.bySlug[r.Slug] = r
		s.records = append(s.records, r)
	}

	return s, errs
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Get returns the record with the given slug.
func (s *Store) Get(slug string) (*Record, bool) {
	r, ok := s.bySlug[slug]
	return r, ok
}

// All returns every record in insertion order. The slice is a copy; the records are shared.
func (s *Store) All() []*Record {
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

// Posts returns the dated records, newest first.
func (s *Store) Posts() []*Record {
	var posts []*Record
	for _, r := range s.records {
		if r.Dated() {
			posts = append(posts, r)
		}
	}
	SortByDateDesc(posts)
	return posts
}

// Pages returns the undated records in insertion order.
func (s *Store) Pages() []*Record {
	var pages []*Record
	for _, r := range s.records {
		if !r.Dated() {
			pages = append(pages, r)
		}
	}
	return pages
}

// SortByDateDesc orders records newest first. Undated records sort after all
// dated ones and records with equal dates keep their relative order.
func SortByDateDesc(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Dated() || !b.Dated() {
			return a.Dated() && !b.Dated()
		}
		return a.Date.After(b.Date)
	})
}
