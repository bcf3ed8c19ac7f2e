package index

import (
	"fmt"
	"strings"

	"sitegen/internal/content"
)

// MissingMetadataError reports a blank tag or author on a record.
// The blank value is skipped; the record is still indexed under its other values.
type MissingMetadataError struct {
	Slug  string
	Field string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("record %s declares an empty %s", e.Slug, e.Field)
}

// Indexes are the derived views of one content generation.
type Indexes struct {
	Tags    *GroupedContent
	Authors *GroupedContent
	Archive *GroupedContent
	Streams *GroupedContent
	Links   LinkIndex
}

// LinkIndex maps a slug to the records whose body links to it, newest first.
type LinkIndex map[string][]*content.Record

// Inbound returns a copy of the records linking to slug.
func (l LinkIndex) Inbound(slug string) []*content.Record {
	items := l[slug]
	if len(items) == 0 {
		return nil
	}
	out := make([]*content.Record, len(items))
	copy(out, items)
	return out
}

// Build derives all indexes from records. It never fails as a whole: blank
// tags and authors are skipped and reported as MissingMetadataError.
func Build(records []*content.Record) (*Indexes, []error) {
	idx := &Indexes{
		Tags:    newGroupedContent(KindTag),
		Authors: newGroupedContent(KindAuthor),
		Archive: newGroupedContent(KindArchive),
		Streams: newGroupedContent(KindStream),
		Links:   make(LinkIndex),
	}

	var errs []error
	slugs := make(map[string]struct{}, len(records))
	for _, r := range records {
		slugs[r.Slug] = struct{}{}
	}

	for _, r := range records {
		for _, key := range uniqueValues(r.Tags) {
			if key == "" {
				errs = append(errs, &MissingMetadataError{Slug: r.Slug, Field: "tag"})
				continue
			}
			idx.Tags.add(key, r)
		}

		for _, key := range uniqueValues(r.Authors) {
			if key == "" {
				errs = append(errs, &MissingMetadataError{Slug: r.Slug, Field: "author"})
				continue
			}
			idx.Authors.add(key, r)
		}

		if r.Dated() {
			idx.Archive.add(r.Date.Format("2006"), r)
		}

		stream := r.Stream
		if stream == "" {
			stream = content.DefaultStream
		}
		idx.Streams.add(stream, r)

		for _, target := range r.LinksTo {
			if target == r.Slug {
				continue
			}
			if _, ok := slugs[target]; !ok {
				continue
			}
			if !contains(idx.Links[target], r) {
				idx.Links[target] = append(idx.Links[target], r)
			}
		}
	}

	idx.Tags.seal()
	idx.Authors.seal()
	idx.Archive.seal()
	idx.Streams.seal()
	for _, inbound := range idx.Links {
		content.SortByDateDesc(inbound)
	}

	return idx, errs
}

// uniqueValues trims values and drops repeats, keeping first occurrence order.
// Blank values are kept (once per occurrence) so the caller can report them.
func uniqueValues(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
		}
		out = append(out, v)
	}
	return out
}

func contains(records []*content.Record, r *content.Record) bool {
	for _, existing := range records {
		if existing == r {
			return true
		}
	}
	return false
}
