package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_site.go -package=mocks sitegen/internal/handlers Builder,SnapshotSource

import (
	"context"
	"encoding/json"
	"net/http"

	"sitegen/internal/contextutil"
	"sitegen/internal/site"
)

// Builder runs a site build.
type Builder interface {
	Build(ctx context.Context) (*site.Result, error)
	Building() bool
}

// SnapshotSource exposes the last published site snapshot.
type SnapshotSource interface {
	Current() *site.Snapshot
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes body with status.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, ErrorResponse{Error: message})
}

// currentSnapshot returns the published snapshot or writes 503.
func currentSnapshot(ctx context.Context, w http.ResponseWriter, source SnapshotSource) *site.Snapshot {
	snap := source.Current()
	if snap == nil {
		writeError(ctx, w, http.StatusServiceUnavailable, "site has not been built yet")
	}
	return snap
}
