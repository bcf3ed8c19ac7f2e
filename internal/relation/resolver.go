package relation

import (
	"fmt"
	"sort"
	"strings"

	"sitegen/internal/content"
	"sitegen/internal/index"
)

const (
	// DefaultBackLinkLimit caps the back-links listed per record.
	DefaultBackLinkLimit = 10
	// DefaultRelatedLimit caps the related records listed per record.
	DefaultRelatedLimit = 5
)

// Strategy selects which tag groups feed related content.
type Strategy string

const (
	// FirstTagOnly relates a record to the records of its first declared tag.
	FirstTagOnly Strategy = "first_tag_only"
	// AllTags relates a record to the records of any of its tags.
	AllTags Strategy = "all_tags"
)

// ParseStrategy validates a strategy name. An empty name selects FirstTagOnly.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.TrimSpace(strings.ToLower(name))) {
	case "", FirstTagOnly:
		return FirstTagOnly, nil
	case AllTags:
		return AllTags, nil
	default:
		return "", fmt.Errorf("unknown related tag strategy %q (want %s or %s)", name, FirstTagOnly, AllTags)
	}
}

// Snapshot holds the computed relations of one record.
type Snapshot struct {
	BackLinks []*content.Record // Records linking here, newest first
	Related   []*content.Record // Same-tag records, excluding self and back-links
	Previous  *content.Record   // Older neighbour in the dated sequence
	Next      *content.Record   // Newer neighbour in the dated sequence
}

// Resolver computes back-links, related content and previous/next chains.
// A limit of 0 disables the corresponding list.
type Resolver struct {
	BackLinkLimit int
	RelatedLimit  int
	Strategy      Strategy
}

// NewResolver returns a Resolver with the default limits and FirstTagOnly.
func NewResolver() Resolver {
	return Resolver{
		BackLinkLimit: DefaultBackLinkLimit,
		RelatedLimit:  DefaultRelatedLimit,
		Strategy:      FirstTagOnly,
	}
}

// Resolve computes a Snapshot for every record. It reads records and idx and
// modifies neither, so the result is a pure function of its inputs.
func (r Resolver) Resolve(records []*content.Record, idx *index.Indexes) map[string]Snapshot {
	out := make(map[string]Snapshot, len(records))

	previous, next := chain(records)

	for _, rec := range records {
		inbound := idx.Links.Inbound(rec.Slug)
		out[rec.Slug] = Snapshot{
			BackLinks: capped(inbound, r.BackLinkLimit),
			Related:   capped(r.related(rec, idx.Tags, inbound), r.RelatedLimit),
			Previous:  previous[rec.Slug],
			Next:      next[rec.Slug],
		}
	}

	return out
}

// related gathers candidate records from the record's tag groups and removes
// the record itself and everything already linking to it.
func (r Resolver) related(rec *content.Record, tags *index.GroupedContent, inbound []*content.Record) []*content.Record {
	// Blank tags are not indexed and never count as the first tag.
	var keys []string
	for _, tag := range rec.Tags {
		if tag = strings.TrimSpace(tag); tag == "" {
			continue
		}
		keys = append(keys, tag)
		if r.Strategy != AllTags {
			break
		}
	}
	if len(keys) == 0 {
		return nil
	}

	exclude := make(map[*content.Record]struct{}, len(inbound)+1)
	exclude[rec] = struct{}{}
	for _, b := range inbound {
		exclude[b] = struct{}{}
	}

	var candidates []*content.Record
	for _, key := range keys {
		for _, candidate := range tags.Get(key) {
			if _, skip := exclude[candidate]; skip {
				continue
			}
			exclude[candidate] = struct{}{}
			candidates = append(candidates, candidate)
		}
	}

	if len(keys) > 1 {
		content.SortByDateDesc(candidates)
	}
	return candidates
}

// chain orders dated records by (date, slug) ascending and links neighbours.
func chain(records []*content.Record) (previous, next map[string]*content.Record) {
	var dated []*content.Record
	for _, rec := range records {
		if rec.Dated() {
			dated = append(dated, rec)
		}
	}

	sort.Slice(dated, func(i, j int) bool {
		if !dated[i].Date.Equal(dated[j].Date) {
			return dated[i].Date.Before(dated[j].Date)
		}
		return dated[i].Slug < dated[j].Slug
	})

	previous = make(map[string]*content.Record, len(dated))
	next = make(map[string]*content.Record, len(dated))
	for i, rec := range dated {
		if i > 0 {
			previous[rec.Slug] = dated[i-1]
		}
		if i < len(dated)-1 {
			next[rec.Slug] = dated[i+1]
		}
	}
	return previous, next
}

func capped(records []*content.Record, limit int) []*content.Record {
	if limit <= 0 || len(records) == 0 {
		return nil
	}
	if len(records) > limit {
		records = records[:limit]
	}
	out := make([]*content.Record, len(records))
	copy(out, records)
	return out
}
