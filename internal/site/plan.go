package site

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"sitegen/internal/content"
	"sitegen/internal/index"
	"sitegen/internal/pagination"
	"sitegen/internal/render"
)

// page is one output file of a build.
type page struct {
	path   string // Relative to the output root
	owner  string // Record slug or list the page belongs to
	render func(ctx context.Context, w io.Writer) error
}

type planner struct {
	dispatcher *render.Dispatcher
	pageSize   int
	pages      []page
	owners     map[string]string
	problems   []error
}

func newPlanner(dispatcher *render.Dispatcher, pageSize int) *planner {
	return &planner{
		dispatcher: dispatcher,
		pageSize:   pageSize,
		owners:     make(map[string]string),
	}
}

// plan lists every page of snap. Content pages are planned first and win any
// output collision with a generated list.
func plan(snap *Snapshot, dispatcher *render.Dispatcher, pageSize int) ([]page, []error, error) {
	p := newPlanner(dispatcher, pageSize)

	for _, rec := range snap.Store.All() {
		rec := rec
		rel := snap.RelationsOf(rec.Slug)
		authors := snap.AuthorsOf(rec)
		p.add(rec.Slug+".html", rec.Slug, func(ctx context.Context, w io.Writer) error {
			return dispatcher.Content(ctx, w, rec, rel, authors)
		})
	}

	var indexPosts []*content.Record
	for _, rec := range snap.Indexes.Streams.Get(content.DefaultStream) {
		if rec.Dated() {
			indexPosts = append(indexPosts, rec)
		}
	}
	if err := p.addList("", "index", indexPosts); err != nil {
		return nil, nil, err
	}

	for _, g := range snap.Indexes.Streams.Groups() {
		if g.Key == content.DefaultStream {
			continue
		}
		if err := p.addList(g.Key, content.Slugify(g.Key), g.Items); err != nil {
			return nil, nil, err
		}
	}

	for _, g := range snap.Indexes.Tags.Groups() {
		if err := p.addList(fmt.Sprintf("Posts tagged '%s'", g.Key), tagBase(g.Key), g.Items); err != nil {
			return nil, nil, err
		}
	}

	for _, g := range snap.Indexes.Archive.Groups() {
		if err := p.addList(fmt.Sprintf("Posts from %s", g.Key), archiveBase(g.Key), g.Items); err != nil {
			return nil, nil, err
		}
	}

	var authors []*content.Author
	for _, g := range snap.Indexes.Authors.Groups() {
		author := snap.Author(g.Key)
		authors = append(authors, author)
		if err := p.addAuthor(author, g.Items); err != nil {
			return nil, nil, err
		}
	}
	if err := p.addAuthors(authors); err != nil {
		return nil, nil, err
	}

	p.addGroups("Tags", "tags", snap.Indexes.Tags, tagBase)
	p.addGroups("Archive", "archive", snap.Indexes.Archive, archiveBase)

	if err := p.addList("Pages", "pages", snap.Store.Pages()); err != nil {
		return nil, nil, err
	}

	return p.pages, p.problems, nil
}

func tagBase(tag string) string {
	return "tag-" + content.Slugify(tag)
}

func archiveBase(year string) string {
	return "archive-" + year
}

func authorBase(id string) string {
	return "author-" + content.Slugify(id)
}

// validOutputPath reports whether path names a plain file directly under the
// output root.
func validOutputPath(path string) bool {
	return filepath.IsLocal(path) &&
		!strings.ContainsAny(path, `/\`) &&
		!strings.HasPrefix(path, ".")
}

func (p *planner) add(path, owner string, fn func(ctx context.Context, w io.Writer) error) {
	if !validOutputPath(path) {
		p.problems = append(p.problems, &InvalidOutputPathError{Path: path, Owner: owner})
		return
	}
	if existing, ok := p.owners[path]; ok {
		p.problems = append(p.problems, &OutputCollisionError{Path: path, Owner: owner, Existing: existing})
		return
	}
	p.owners[path] = owner
	p.pages = append(p.pages, page{path: path, owner: owner, render: fn})
}

func (p *planner) addList(title, base string, items []*content.Record) error {
	pages, err := paginate(items, p.pageSize)
	if err != nil {
		return &BuildError{Slug: base, Err: err}
	}
	for _, pg := range pages {
		pg := pg
		p.add(pg.URLPath(base), base, func(ctx context.Context, w io.Writer) error {
			return p.dispatcher.List(ctx, w, title, base, pg)
		})
	}
	return nil
}

func (p *planner) addAuthor(author *content.Author, items []*content.Record) error {
	base := authorBase(author.Slug)
	pages, err := paginate(items, p.pageSize)
	if err != nil {
		return &BuildError{Slug: base, Err: err}
	}
	for _, pg := range pages {
		pg := pg
		p.add(pg.URLPath(base), base, func(ctx context.Context, w io.Writer) error {
			return p.dispatcher.Author(ctx, w, author, base, pg)
		})
	}
	return nil
}

func (p *planner) addAuthors(authors []*content.Author) error {
	pages, err := paginate(authors, p.pageSize)
	if err != nil {
		return &BuildError{Slug: "authors", Err: err}
	}
	for _, pg := range pages {
		pg := pg
		p.add(pg.URLPath("authors"), "authors", func(ctx context.Context, w io.Writer) error {
			return p.dispatcher.Authors(ctx, w, "Authors", "authors", pg)
		})
	}
	return nil
}

func (p *planner) addGroups(title, base string, grouped *index.GroupedContent, keyBase func(string) string) {
	var links []render.GroupLink
	for _, g := range grouped.Groups() {
		links = append(links, render.GroupLink{
			Key:   g.Key,
			Count: len(g.Items),
			URL:   p.dispatcher.URLFor(pagination.PagePath(keyBase(g.Key), 1)),
		})
	}
	p.add(base+".html", base, func(ctx context.Context, w io.Writer) error {
		return p.dispatcher.Groups(ctx, w, title, links)
	})
}

// paginate splits items into pages and yields a single empty first page for
// an empty list.
func paginate[T any](items []T, size int) ([]pagination.Page[T], error) {
	pages, err := pagination.Paginate(items, size)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		pages = []pagination.Page[T]{{Number: 1, TotalPages: 1}}
	}
	return pages, nil
}
