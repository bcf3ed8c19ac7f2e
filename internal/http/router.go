package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sitegen/internal/handlers"
	"sitegen/internal/render"
	"sitegen/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Builder         handlers.Builder
	Snapshots       handlers.SnapshotSource
	DB              handlers.Pinger    // Optional
	Builds          storage.BuildStore // Optional; manifest routes are skipped when nil
	Entries         storage.EntryStore // Optional
	URLs            *render.URLResolver
	PageSize        int
	RebuildInterval time.Duration
	OutputDir       string // Served at "/"
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	contentHandler := handlers.NewContentHandler(deps.Snapshots, deps.URLs, deps.PageSize)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB, deps.Snapshots))
		r.Method(http.MethodPost, "/build", handlers.NewBuildHandler(deps.Builder, deps.RebuildInterval))
		r.Method(http.MethodGet, "/content", contentHandler)
		r.Method(http.MethodGet, "/content/{slug}", contentHandler)
		r.Method(http.MethodGet, "/tags", handlers.NewTagsHandler(deps.Snapshots, deps.URLs))
		r.Method(http.MethodGet, "/authors", handlers.NewAuthorsHandler(deps.Snapshots, deps.URLs))

		if deps.Builds != nil && deps.Entries != nil {
			buildsHandler := handlers.NewBuildsHandler(deps.Builds, deps.Entries)
			r.Get("/builds", buildsHandler.List)
			r.Get("/builds/latest", buildsHandler.Latest)
			r.Get("/builds/{id}/entries", buildsHandler.Entries)
		}
	})

	// Serve the generated site
	r.Handle("/*", http.FileServer(http.Dir(deps.OutputDir)))

	return r
}
