package render

import (
	"context"
	"html/template"
	"io"

	"sitegen/internal/content"
	"sitegen/internal/pagination"
	"sitegen/internal/relation"
)

// Dispatcher maps domain values onto template contexts and hands them to a
// Renderer. It makes no decisions about what gets rendered.
type Dispatcher struct {
	renderer Renderer
	site     Site
	urls     *URLResolver
}

// NewDispatcher creates a Dispatcher for site.
func NewDispatcher(renderer Renderer, site Site, urls *URLResolver) *Dispatcher {
	if urls == nil {
		urls = NewURLResolver("")
	}
	return &Dispatcher{renderer: renderer, site: site, urls: urls}
}

// Site returns the site data passed to every template.
func (d *Dispatcher) Site() Site {
	return d.site
}

// Content renders a single record together with its relations.
func (d *Dispatcher) Content(ctx context.Context, w io.Writer, rec *content.Record, rel relation.Snapshot, authors []*content.Author) error {
	return d.renderer.Render(ctx, w, TemplateContent, ContentContext{
		Site:      d.site,
		Title:     rec.Title,
		Content:   rec,
		Body:      template.HTML(rec.HTML),
		Authors:   authors,
		BackLinks: rel.BackLinks,
		Related:   rel.Related,
		Previous:  rel.Previous,
		Next:      rel.Next,
	})
}

// List renders one page of a content list whose pages are named after base.
func (d *Dispatcher) List(ctx context.Context, w io.Writer, title, base string, page pagination.Page[*content.Record]) error {
	return d.renderer.Render(ctx, w, TemplateList, ListContext{
		Site:       d.site,
		Title:      title,
		Contents:   page.Items,
		Pagination: d.pagination(base, page.Number, page.TotalPages, page.Previous, page.Next),
	})
}

// Groups renders an overview of groups such as all tags or archive years.
func (d *Dispatcher) Groups(ctx context.Context, w io.Writer, title string, groups []GroupLink) error {
	return d.renderer.Render(ctx, w, TemplateGroupList, ListContext{
		Site:       d.site,
		Title:      title,
		Groups:     groups,
		Pagination: Pagination{CurrentPage: 1, TotalPages: 1},
	})
}

// Authors renders one page of the author list.
func (d *Dispatcher) Authors(ctx context.Context, w io.Writer, title, base string, page pagination.Page[*content.Author]) error {
	return d.renderer.Render(ctx, w, TemplateAuthors, ListContext{
		Site:       d.site,
		Title:      title,
		Authors:    page.Items,
		Pagination: d.pagination(base, page.Number, page.TotalPages, page.Previous, page.Next),
	})
}

// Author renders one page of an author's content.
func (d *Dispatcher) Author(ctx context.Context, w io.Writer, author *content.Author, base string, page pagination.Page[*content.Record]) error {
	return d.renderer.Render(ctx, w, TemplateAuthor, AuthorContext{
		ListContext: ListContext{
			Site:       d.site,
			Title:      author.Name,
			Contents:   page.Items,
			Pagination: d.pagination(base, page.Number, page.TotalPages, page.Previous, page.Next),
		},
		Author: author,
	})
}

// URLFor resolves a site-relative path with the dispatcher's URL resolver.
func (d *Dispatcher) URLFor(p string) string {
	return d.urls.URLFor(p)
}

func (d *Dispatcher) pagination(base string, number, total, previous, next int) Pagination {
	p := Pagination{CurrentPage: max(number, 1), TotalPages: max(total, 1)}
	if previous > 0 {
		p.PreviousPage = d.urls.URLFor(pagination.PagePath(base, previous))
	}
	if next > 0 {
		p.NextPage = d.urls.URLFor(pagination.PagePath(base, next))
	}
	return p
}
