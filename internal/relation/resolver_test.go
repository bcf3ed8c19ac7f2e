package relation

import (
	"fmt"
	"testing"
	"time"

	"sitegen/internal/content"
	"sitegen/internal/index"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slugs(records []*content.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Slug
	}
	return out
}

func resolve(t *testing.T, r Resolver, records []*content.Record) map[string]Snapshot {
	t.Helper()
	idx, errs := index.Build(records)
	if len(errs) != 0 {
		t.Fatalf("index.Build() errors = %v", errs)
	}
	return r.Resolve(records, idx)
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{name: "empty defaults to first tag", input: "", want: FirstTagOnly},
		{name: "first tag only", input: "first_tag_only", want: FirstTagOnly},
		{name: "all tags mixed case", input: " ALL_TAGS ", want: AllTags},
		{name: "unknown", input: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseStrategy(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStrategy(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolve_BackLinks(t *testing.T) {
	a := &content.Record{Slug: "a", Date: day(2024, 1, 1), LinksTo: []string{"b"}}
	b := &content.Record{Slug: "b", Date: day(2024, 2, 1)}

	got := resolve(t, NewResolver(), []*content.Record{a, b})

	if back := slugs(got["b"].BackLinks); len(back) != 1 || back[0] != "a" {
		t.Errorf("BackLinks[b] = %v, want [a]", back)
	}
	if len(got["a"].BackLinks) != 0 {
		t.Errorf("BackLinks[a] = %v, want none", slugs(got["a"].BackLinks))
	}
}

func TestResolve_BackLinkLimit(t *testing.T) {
	target := &content.Record{Slug: "target"}
	records := []*content.Record{target}
	for i := 1; i <= 12; i++ {
		records = append(records, &content.Record{
			Slug:    fmt.Sprintf("linker-%02d", i),
			Date:    day(2024, 1, i),
			LinksTo: []string{"target"},
		})
	}

	got := resolve(t, NewResolver(), records)

	back := got["target"].BackLinks
	if len(back) != DefaultBackLinkLimit {
		t.Fatalf("len(BackLinks) = %d, want %d", len(back), DefaultBackLinkLimit)
	}
	if back[0].Slug != "linker-12" {
		t.Errorf("BackLinks[0] = %s, want newest linker-12", back[0].Slug)
	}
}

func TestResolve_RelatedFirstTagOnly(t *testing.T) {
	r := &content.Record{Slug: "r", Date: day(2024, 3, 1), Tags: []string{"go", "web"}}
	goOld := &content.Record{Slug: "go-old", Date: day(2024, 1, 1), Tags: []string{"go"}}
	goNew := &content.Record{Slug: "go-new", Date: day(2024, 2, 1), Tags: []string{"go"}}
	webOnly := &content.Record{Slug: "web-only", Date: day(2024, 2, 15), Tags: []string{"web"}}
	linker := &content.Record{Slug: "linker", Date: day(2024, 2, 20), Tags: []string{"go"}, LinksTo: []string{"r"}}

	got := resolve(t, NewResolver(), []*content.Record{r, goOld, goNew, webOnly, linker})

	related := slugs(got["r"].Related)
	want := []string{"go-new", "go-old"}
	if fmt.Sprint(related) != fmt.Sprint(want) {
		t.Errorf("Related[r] = %v, want %v", related, want)
	}
}

func TestResolve_RelatedAllTags(t *testing.T) {
	r := &content.Record{Slug: "r", Date: day(2024, 3, 1), Tags: []string{"go", "web"}}
	goOld := &content.Record{Slug: "go-old", Date: day(2024, 1, 1), Tags: []string{"go"}}
	both := &content.Record{Slug: "both", Date: day(2024, 2, 1), Tags: []string{"go", "web"}}
	webOnly := &content.Record{Slug: "web-only", Date: day(2024, 2, 15), Tags: []string{"web"}}

	resolver := NewResolver()
	resolver.Strategy = AllTags
	got := resolve(t, resolver, []*content.Record{r, goOld, both, webOnly})

	related := slugs(got["r"].Related)
	want := []string{"web-only", "both", "go-old"}
	if fmt.Sprint(related) != fmt.Sprint(want) {
		t.Errorf("Related[r] = %v, want %v", related, want)
	}
}

func TestResolve_RelatedSkipsBlankTags(t *testing.T) {
	r := &content.Record{Slug: "r", Date: day(2024, 3, 1), Tags: []string{" ", "go", "", "web"}}
	goPost := &content.Record{Slug: "go-post", Date: day(2024, 1, 1), Tags: []string{"go"}}
	webPost := &content.Record{Slug: "web-post", Date: day(2024, 2, 1), Tags: []string{"web"}}
	blank := &content.Record{Slug: "blank", Date: day(2024, 2, 15), Tags: []string{"  "}}
	records := []*content.Record{r, goPost, webPost, blank}

	tests := []struct {
		name     string
		strategy Strategy
		want     []string
	}{
		{name: "first tag only uses first non-blank tag", strategy: FirstTagOnly, want: []string{"go-post"}},
		{name: "all tags ignores blanks", strategy: AllTags, want: []string{"web-post", "go-post"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Blank tags are reported by the index and skipped.
			idx, _ := index.Build(records)
			resolver := NewResolver()
			resolver.Strategy = tt.strategy
			got := resolver.Resolve(records, idx)

			if related := slugs(got["r"].Related); fmt.Sprint(related) != fmt.Sprint(tt.want) {
				t.Errorf("Related[r] = %v, want %v", related, tt.want)
			}
			if related := got["blank"].Related; len(related) != 0 {
				t.Errorf("Related[blank] = %v, want none", slugs(related))
			}
		})
	}
}

func TestResolve_RelatedNeverContainsSelfOrBackLinks(t *testing.T) {
	var records []*content.Record
	for i := 0; i < 20; i++ {
		rec := &content.Record{
			Slug: fmt.Sprintf("r%02d", i),
			Date: day(2024, 1, i+1),
			Tags: []string{"shared"},
		}
		if i%3 == 0 {
			rec.LinksTo = []string{fmt.Sprintf("r%02d", (i+1)%20), fmt.Sprintf("r%02d", (i+5)%20)}
		}
		records = append(records, rec)
	}

	resolver := NewResolver()
	resolver.BackLinkLimit = 1
	got := resolve(t, resolver, records)

	idx, _ := index.Build(records)
	for _, rec := range records {
		snap := got[rec.Slug]
		if len(snap.Related) > DefaultRelatedLimit {
			t.Errorf("Related[%s] has %d entries, cap is %d", rec.Slug, len(snap.Related), DefaultRelatedLimit)
		}
		inbound := make(map[string]bool)
		for _, b := range idx.Links.Inbound(rec.Slug) {
			inbound[b.Slug] = true
		}
		for _, rel := range snap.Related {
			if rel == rec {
				t.Errorf("Related[%s] contains the record itself", rec.Slug)
			}
			if inbound[rel.Slug] {
				t.Errorf("Related[%s] contains back-link %s", rec.Slug, rel.Slug)
			}
		}
	}
}

func TestResolve_RelatedLimitZeroDisables(t *testing.T) {
	a := &content.Record{Slug: "a", Tags: []string{"x"}}
	b := &content.Record{Slug: "b", Tags: []string{"x"}}

	resolver := NewResolver()
	resolver.RelatedLimit = 0
	got := resolve(t, resolver, []*content.Record{a, b})

	if len(got["a"].Related) != 0 {
		t.Errorf("Related[a] = %v, want none when limit is 0", slugs(got["a"].Related))
	}
}

func TestResolve_PreviousNext(t *testing.T) {
	mid := &content.Record{Slug: "mid", Date: day(2024, 2, 1)}
	first := &content.Record{Slug: "first", Date: day(2024, 1, 1)}
	tieB := &content.Record{Slug: "tie-b", Date: day(2024, 3, 1)}
	tieA := &content.Record{Slug: "tie-a", Date: day(2024, 3, 1)}
	page := &content.Record{Slug: "page"}

	got := resolve(t, NewResolver(), []*content.Record{mid, first, tieB, page, tieA})

	tests := []struct {
		slug     string
		previous string
		next     string
	}{
		{slug: "first", previous: "", next: "mid"},
		{slug: "mid", previous: "first", next: "tie-a"},
		{slug: "tie-a", previous: "mid", next: "tie-b"},
		{slug: "tie-b", previous: "tie-a", next: ""},
		{slug: "page", previous: "", next: ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			snap := got[tt.slug]
			if name(snap.Previous) != tt.previous {
				t.Errorf("Previous(%s) = %q, want %q", tt.slug, name(snap.Previous), tt.previous)
			}
			if name(snap.Next) != tt.next {
				t.Errorf("Next(%s) = %q, want %q", tt.slug, name(snap.Next), tt.next)
			}
		})
	}
}

func TestResolve_ChainIsConsistent(t *testing.T) {
	var records []*content.Record
	for i := 0; i < 10; i++ {
		records = append(records, &content.Record{Slug: fmt.Sprintf("p%d", i), Date: day(2024, 1, 10-i)})
	}

	got := resolve(t, NewResolver(), records)

	for _, rec := range records {
		snap := got[rec.Slug]
		if snap.Next != nil && got[snap.Next.Slug].Previous != rec {
			t.Errorf("Next(%s) = %s but Previous(%s) != %s", rec.Slug, snap.Next.Slug, snap.Next.Slug, rec.Slug)
		}
		if snap.Previous != nil && got[snap.Previous.Slug].Next != rec {
			t.Errorf("Previous(%s) = %s but Next(%s) != %s", rec.Slug, snap.Previous.Slug, snap.Previous.Slug, rec.Slug)
		}
		if snap.Previous != nil && !snap.Previous.Date.Before(rec.Date) {
			t.Errorf("Previous(%s) is not older", rec.Slug)
		}
	}
}

func name(r *content.Record) string {
	if r == nil {
		return ""
	}
	return r.Slug
}
