package index

import (
	"sort"

	"sitegen/internal/content"
)

// Kind identifies what a GroupedContent is keyed by.
type Kind int

const (
	KindTag Kind = iota
	KindArchive
	KindAuthor
	KindStream
)

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindArchive:
		return "archive"
	case KindAuthor:
		return "author"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Group is one key of a GroupedContent together with its records.
type Group struct {
	Key   string
	Items []*content.Record
}

// GroupedContent maps a key (tag, year, author id, stream) to the records
// carrying it, each list ordered by date descending with undated records last.
// It is read-only once built.
type GroupedContent struct {
	kind   Kind
	groups map[string][]*content.Record
}

func newGroupedContent(kind Kind) *GroupedContent {
	return &GroupedContent{kind: kind, groups: make(map[string][]*content.Record)}
}

func (g *GroupedContent) add(key string, r *content.Record) {
	g.groups[key] = append(g.groups[key], r)
}

func (g *GroupedContent) seal() {
	for _, items := range g.groups {
		content.SortByDateDesc(items)
	}
}

// Kind returns the grouping kind.
func (g *GroupedContent) Kind() Kind {
	return g.kind
}

// Len returns the number of keys.
func (g *GroupedContent) Len() int {
	return len(g.groups)
}

// Get returns a copy of the records grouped under key.
func (g *GroupedContent) Get(key string) []*content.Record {
	items := g.groups[key]
	if len(items) == 0 {
		return nil
	}
	out := make([]*content.Record, len(items))
	copy(out, items)
	return out
}

// Groups returns every group in the display order for the kind:
// tags by number of records (most first, ties by name), archive years newest
// first, authors and streams by name.
func (g *GroupedContent) Groups() []Group {
	out := make([]Group, 0, len(g.groups))
	for key := range g.groups {
		out = append(out, Group{Key: key, Items: g.Get(key)})
	}

	sort.Slice(out, func(i, j int) bool {
		switch g.kind {
		case KindTag:
			if len(out[i].Items) != len(out[j].Items) {
				return len(out[i].Items) > len(out[j].Items)
			}
			return out[i].Key < out[j].Key
		case KindArchive:
			return out[i].Key > out[j].Key
		default:
			return out[i].Key < out[j].Key
		}
	})

	return out
}
