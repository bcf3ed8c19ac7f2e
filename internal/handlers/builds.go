package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sitegen/internal/contextutil"
	"sitegen/internal/storage"
)

const defaultBuildListLimit = 20

// BuildSummary is a manifest build.
type BuildSummary struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	Records    int    `json:"records"`
	Pages      int    `json:"pages"`
	Problems   int    `json:"problems"`
	Error      string `json:"error,omitempty"`
}

// EntryResponse is one record published by a build.
type EntryResponse struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Date       string `json:"date,omitempty"`
	SourcePath string `json:"source_path"`
	SourceHash string `json:"source_hash"`
}

// BuildsHandler serves the build manifest.
type BuildsHandler struct {
	builds  storage.BuildStore
	entries storage.EntryStore
}

// NewBuildsHandler creates a new BuildsHandler.
func NewBuildsHandler(builds storage.BuildStore, entries storage.EntryStore) *BuildsHandler {
	return &BuildsHandler{builds: builds, entries: entries}
}

// List handles GET /builds?limit=N.
func (h *BuildsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultBuildListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(ctx, w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	builds, err := h.builds.List(ctx, limit)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list builds", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to list builds")
		return
	}

	out := make([]BuildSummary, 0, len(builds))
	for i := range builds {
		out = append(out, buildSummary(&builds[i]))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

// Latest handles GET /builds/latest: the most recent successful build.
func (h *BuildsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	build, err := h.builds.LastSuccessful(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, "No successful build yet")
		return
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to get latest build", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to get latest build")
		return
	}

	writeJSON(ctx, w, http.StatusOK, buildSummary(build))
}

// Entries handles GET /builds/{id}/entries.
func (h *BuildsHandler) Entries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := h.builds.Get(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Build not found")
			return
		}
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to get build", "build_id", id, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to get build")
		return
	}

	entries, err := h.entries.ListByBuild(ctx, id)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list entries", "build_id", id, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to list entries")
		return
	}

	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := EntryResponse{
			Slug:       e.Slug,
			Title:      e.Title,
			SourcePath: e.SourcePath,
			SourceHash: e.SourceHash,
		}
		if !e.Date.IsZero() {
			resp.Date = e.Date.Format("2006-01-02")
		}
		out = append(out, resp)
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func buildSummary(b *storage.Build) BuildSummary {
	s := BuildSummary{
		ID:        b.ID,
		Status:    string(b.Status),
		StartedAt: b.StartedAt.UTC().Format(time.RFC3339),
		Records:   b.Records,
		Pages:     b.Pages,
		Problems:  b.Problems,
		Error:     b.Error,
	}
	if !b.FinishedAt.IsZero() {
		s.FinishedAt = b.FinishedAt.UTC().Format(time.RFC3339)
	}
	return s
}
