package main

import (
	"database/sql"
	"fmt"
	"html/template"
	"log/slog"

	"sitegen/internal/config"
	"sitegen/internal/content"
	"sitegen/internal/relation"
	"sitegen/internal/render"
	"sitegen/internal/site"
	"sitegen/internal/storage"
)

// app holds the wired pipeline shared by the build and serve commands.
type app struct {
	db        *sql.DB
	builds    *storage.BuildRepo
	entries   *storage.EntryRepo
	urls      *render.URLResolver
	generator *site.Generator
}

// newApp loads site metadata and the theme, opens the build manifest and
// assembles the generator.
func newApp(cfg *config.Config) (*app, error) {
	meta, err := config.LoadSite(cfg.SiteFile)
	if err != nil {
		return nil, err
	}
	slog.Debug("Site metadata loaded", "name", meta.Name, "authors", len(meta.Authors), "menu", len(meta.Menu))

	parser := content.NewParser(slog.Default())

	renderSite, err := siteData(meta, parser)
	if err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = meta.URL
	}
	urls := render.NewURLResolver(baseURL)

	renderer, err := render.NewTemplateRenderer(cfg.ThemeDir, urls)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	dispatcher := render.NewDispatcher(renderer, renderSite, urls)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	builds := storage.NewBuildRepo(db)
	entries := storage.NewEntryRepo(db)

	generator := site.NewGenerator(site.Options{
		ContentDir:     cfg.ContentDir,
		OutputDir:      cfg.OutputDir,
		StaticDir:      cfg.StaticDir,
		PageSize:       cfg.PageSize,
		Workers:        cfg.RenderWorkers,
		RequireContent: cfg.RequireContent,
		Resolver: relation.Resolver{
			BackLinkLimit: cfg.BackLinkLimit,
			RelatedLimit:  cfg.RelatedLimit,
			Strategy:      cfg.RelatedStrategy,
		},
		Authors: meta.Authors,
	}, parser, dispatcher, builds, entries)

	return &app{
		db:        db,
		builds:    builds,
		entries:   entries,
		urls:      urls,
		generator: generator,
	}, nil
}

// Close waits for a running build and then releases the manifest database.
func (a *app) Close() {
	a.generator.Close()
	if err := a.db.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// siteData converts site metadata into the template site, rendering the
// markdown footer once.
func siteData(meta *config.Site, parser *content.Parser) (render.Site, error) {
	footer, err := parser.RenderFragment(meta.Footer)
	if err != nil {
		return render.Site{}, fmt.Errorf("failed to render site footer: %w", err)
	}

	out := render.Site{
		Name:                 meta.Name,
		Tagline:              meta.Tagline,
		URL:                  meta.URL,
		LogoImage:            meta.LogoImage,
		CardImage:            meta.CardImage,
		Footer:               template.HTML(footer),
		Language:             meta.Language,
		EnableSearch:         meta.EnableSearch,
		EnableRelatedContent: meta.EnableRelatedContent,
		ShowNextPrevLinks:    meta.ShowNextPrevLinks,
		Extra:                meta.Extra,
	}
	for _, entry := range meta.Menu {
		out.Menu = append(out.Menu, render.NewMenuItem(entry.Label, entry.URL))
	}
	return out, nil
}
