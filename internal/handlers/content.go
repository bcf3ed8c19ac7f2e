package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sitegen/internal/content"
	"sitegen/internal/contextutil"
	"sitegen/internal/pagination"
	"sitegen/internal/render"
	"sitegen/internal/site"
)

// ContentSummary is the list view of a record.
type ContentSummary struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Date    string   `json:"date,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Stream  string   `json:"stream"`
	Excerpt string   `json:"excerpt,omitempty"`
	URL     string   `json:"url"`
}

// HeadingResponse is one table of contents entry.
type HeadingResponse struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ContentDetail is a single record with its relations.
type ContentDetail struct {
	ContentSummary
	Description string            `json:"description,omitempty"`
	BannerImage string            `json:"banner_image,omitempty"`
	CardImage   string            `json:"card_image,omitempty"`
	SourcePath  string            `json:"source_path"`
	TOC         []HeadingResponse `json:"toc,omitempty"`
	LinksTo     []string          `json:"links_to,omitempty"`
	BackLinks   []ContentSummary  `json:"back_links"`
	Related     []ContentSummary  `json:"related"`
	Previous    *ContentSummary   `json:"previous,omitempty"`
	Next        *ContentSummary   `json:"next,omitempty"`
	Extra       map[string]any    `json:"extra,omitempty"`
}

// ContentListResponse is one page of records.
type ContentListResponse struct {
	Items      []ContentSummary `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

// ContentHandler serves records from the published snapshot.
// Without a slug it lists posts newest first, then pages. The list can be
// filtered by ?tag, ?author or ?stream and is paginated by ?page.
type ContentHandler struct {
	snapshots SnapshotSource
	urls      *render.URLResolver
	pageSize  int
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(snapshots SnapshotSource, urls *render.URLResolver, pageSize int) *ContentHandler {
	return &ContentHandler{snapshots: snapshots, urls: urls, pageSize: pageSize}
}

// ServeHTTP handles GET /content and GET /content/{slug}.
func (h *ContentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	snap := currentSnapshot(ctx, w, h.snapshots)
	if snap == nil {
		return
	}

	if slug := chi.URLParam(r, "slug"); slug != "" {
		h.detail(w, r, snap, slug)
		return
	}
	h.list(w, r, snap)
}

func (h *ContentHandler) detail(w http.ResponseWriter, r *http.Request, snap *site.Snapshot, slug string) {
	ctx := r.Context()

	rec, ok := snap.Store.Get(slug)
	if !ok {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "content not found", "slug", slug)
		writeError(ctx, w, http.StatusNotFound, "Content not found")
		return
	}

	rel := snap.RelationsOf(slug)
	resp := ContentDetail{
		ContentSummary: h.summary(rec),
		Description:    rec.Description,
		BannerImage:    rec.BannerImage,
		CardImage:      rec.CardImage,
		SourcePath:     rec.SourcePath,
		LinksTo:        rec.LinksTo,
		BackLinks:      h.summaries(rel.BackLinks),
		Related:        h.summaries(rel.Related),
		Previous:       h.optional(rel.Previous),
		Next:           h.optional(rel.Next),
		Extra:          rec.Extra,
	}
	for _, heading := range rec.TOC {
		resp.TOC = append(resp.TOC, HeadingResponse{Level: heading.Level, ID: heading.ID, Title: heading.Title})
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

func (h *ContentHandler) list(w http.ResponseWriter, r *http.Request, snap *site.Snapshot) {
	ctx := r.Context()
	query := r.URL.Query()

	pageNumber := 1
	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(ctx, w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		pageNumber = n
	}

	var records []*content.Record
	switch {
	case query.Get("tag") != "":
		records = snap.Indexes.Tags.Get(strings.TrimSpace(query.Get("tag")))
	case query.Get("author") != "":
		records = snap.Indexes.Authors.Get(strings.TrimSpace(query.Get("author")))
	case query.Get("stream") != "":
		records = snap.Indexes.Streams.Get(strings.TrimSpace(query.Get("stream")))
	default:
		records = append(snap.Store.Posts(), snap.Store.Pages()...)
	}

	pages, err := pagination.Paginate(records, h.pageSize)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to paginate content", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to paginate content")
		return
	}

	resp := ContentListResponse{
		Items:      []ContentSummary{},
		Page:       pageNumber,
		TotalPages: len(pages),
		Total:      len(records),
	}
	// An empty list still has a first page.
	if pageNumber > max(len(pages), 1) {
		writeError(ctx, w, http.StatusNotFound, "Page not found")
		return
	}
	if len(pages) > 0 {
		resp.Items = h.summaries(pages[pageNumber-1].Items)
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

func (h *ContentHandler) summary(rec *content.Record) ContentSummary {
	s := ContentSummary{
		Slug:    rec.Slug,
		Title:   rec.Title,
		Tags:    rec.Tags,
		Authors: rec.Authors,
		Stream:  rec.Stream,
		Excerpt: rec.Excerpt,
		URL:     h.urls.URLFor(rec.Slug + ".html"),
	}
	if rec.Dated() {
		s.Date = rec.Date.Format("2006-01-02")
	}
	return s
}

func (h *ContentHandler) summaries(records []*content.Record) []ContentSummary {
	out := make([]ContentSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, h.summary(rec))
	}
	return out
}

func (h *ContentHandler) optional(rec *content.Record) *ContentSummary {
	if rec == nil {
		return nil
	}
	s := h.summary(rec)
	return &s
}

// GroupResponse is one tag or author with its record count.
type GroupResponse struct {
	Key   string `json:"key"`
	Name  string `json:"name,omitempty"`
	Count int    `json:"count"`
	URL   string `json:"url"`
}

// TagsHandler lists tags, most used first.
type TagsHandler struct {
	snapshots SnapshotSource
	urls      *render.URLResolver
}

// NewTagsHandler creates a new TagsHandler.
func NewTagsHandler(snapshots SnapshotSource, urls *render.URLResolver) *TagsHandler {
	return &TagsHandler{snapshots: snapshots, urls: urls}
}

// ServeHTTP handles GET /tags.
func (h *TagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	snap := currentSnapshot(ctx, w, h.snapshots)
	if snap == nil {
		return
	}

	groups := snap.Indexes.Tags.Groups()
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupResponse{
			Key:   g.Key,
			Count: len(g.Items),
			URL:   h.urls.URLFor("tag-" + content.Slugify(g.Key) + ".html"),
		})
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

// AuthorsHandler lists authors with their display names.
type AuthorsHandler struct {
	snapshots SnapshotSource
	urls      *render.URLResolver
}

// NewAuthorsHandler creates a new AuthorsHandler.
func NewAuthorsHandler(snapshots SnapshotSource, urls *render.URLResolver) *AuthorsHandler {
	return &AuthorsHandler{snapshots: snapshots, urls: urls}
}

// ServeHTTP handles GET /authors.
func (h *AuthorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	snap := currentSnapshot(ctx, w, h.snapshots)
	if snap == nil {
		return
	}

	groups := snap.Indexes.Authors.Groups()
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupResponse{
			Key:   g.Key,
			Name:  snap.Author(g.Key).Name,
			Count: len(g.Items),
			URL:   h.urls.URLFor("author-" + content.Slugify(g.Key) + ".html"),
		})
	}
	writeJSON(ctx, w, http.StatusOK, out)
}
