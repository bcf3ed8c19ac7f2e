package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"sitegen/internal/contextutil"
	"sitegen/internal/site"
)

// BuildHandler handles HTTP requests for triggering a site rebuild.
// Requests beyond one per interval are rejected with 429.
type BuildHandler struct {
	builder Builder
	limiter *rate.Limiter
}

// NewBuildHandler creates a BuildHandler. An interval of 0 disables throttling.
func NewBuildHandler(builder Builder, interval time.Duration) *BuildHandler {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &BuildHandler{
		builder: builder,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// BuildResponse represents the response from the build endpoint.
type BuildResponse struct {
	Message  string   `json:"message"`
	Status   string   `json:"status"`
	BuildID  string   `json:"build_id,omitempty"`
	Records  int      `json:"records,omitempty"`
	Pages    int      `json:"pages,omitempty"`
	Problems []string `json:"problems,omitempty"`
	Duration string   `json:"duration,omitempty"`
}

// ServeHTTP triggers a build. By default the build runs in the background and
// the handler answers 202; with ?wait=true it answers with the build result.
func (h *BuildHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if !h.limiter.Allow() {
		logger.WarnContext(ctx, "rebuild throttled")
		writeError(ctx, w, http.StatusTooManyRequests, "Rebuild requested too soon, try again later")
		return
	}

	if r.URL.Query().Get("wait") == "true" {
		result, err := h.builder.Build(ctx)
		if err != nil {
			h.writeBuildError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, resultResponse(result))
		return
	}

	if h.builder.Building() {
		h.writeBuildError(ctx, w, site.ErrBuildInProgress)
		return
	}

	logger.InfoContext(ctx, "rebuild triggered via API")

	// The build continues after the response; keep the request's values only.
	buildCtx := context.WithoutCancel(ctx)
	go func() {
		_, err := h.builder.Build(buildCtx)
		switch {
		case errors.Is(err, site.ErrBuildInProgress):
			logger.WarnContext(buildCtx, "background rebuild skipped", "error", err)
		case err != nil:
			logger.ErrorContext(buildCtx, "background rebuild failed", "error", err)
		}
	}()

	writeJSON(ctx, w, http.StatusAccepted, BuildResponse{
		Message: "Build started. Check server logs for progress.",
		Status:  "accepted",
	})
}

func (h *BuildHandler) writeBuildError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, site.ErrBuildInProgress) {
		writeError(ctx, w, http.StatusConflict, err.Error())
		return
	}
	if errors.Is(err, site.ErrGeneratorClosed) {
		writeError(ctx, w, http.StatusServiceUnavailable, err.Error())
		return
	}
	contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "rebuild failed", "error", err)
	writeError(ctx, w, http.StatusInternalServerError, err.Error())
}

func resultResponse(result *site.Result) BuildResponse {
	resp := BuildResponse{
		Message:  "Build completed",
		Status:   "succeeded",
		BuildID:  result.BuildID,
		Records:  result.Records,
		Pages:    result.Pages,
		Duration: result.Duration.String(),
	}
	for _, p := range result.Problems {
		resp.Problems = append(resp.Problems, p.Error())
	}
	return resp
}
