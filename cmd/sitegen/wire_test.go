package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitegen/internal/config"
	"sitegen/internal/content"
	"sitegen/internal/relation"
	"sitegen/internal/site"
	"sitegen/internal/storage"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestSiteData(t *testing.T) {
	meta := config.DefaultSite()
	meta.Name = "Field Notes"
	meta.Footer = "Built with **care**"
	meta.Menu = []config.MenuEntry{
		{Label: "About", URL: "about.html"},
		{Label: "Source", URL: "https://example.com/src"},
	}

	got, err := siteData(meta, content.NewParser(nil))
	if err != nil {
		t.Fatalf("siteData() error = %v", err)
	}

	if got.Name != "Field Notes" || got.Language != "en" {
		t.Errorf("siteData() = %+v", got)
	}
	if !strings.Contains(string(got.Footer), "<strong>care</strong>") {
		t.Errorf("Footer = %q, want rendered markdown", got.Footer)
	}
	if len(got.Menu) != 2 {
		t.Fatalf("Menu = %+v, want 2 items", got.Menu)
	}
	if got.Menu[0].External {
		t.Error("relative menu entry flagged external")
	}
	if !got.Menu[1].External {
		t.Error("absolute menu entry not flagged external")
	}
}

func TestNewApp_BuildsSite(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{
		ContentDir:      filepath.Join(root, "content"),
		OutputDir:       filepath.Join(root, "public"),
		StaticDir:       filepath.Join(root, "static"),
		SiteFile:        filepath.Join(root, "site.yaml"),
		DBPath:          filepath.Join(root, "sitegen.db"),
		PageSize:        10,
		BackLinkLimit:   relation.DefaultBackLinkLimit,
		RelatedLimit:    relation.DefaultRelatedLimit,
		RelatedStrategy: relation.FirstTagOnly,
		RenderWorkers:   2,
	}

	writeFile(t, cfg.SiteFile, "name: Field Notes\nfooter: \"Made by *hand*\"\nauthors:\n  ada:\n    name: Ada Lovelace\n")
	writeFile(t, filepath.Join(cfg.ContentDir, "2024-01-02-hello.md"), "---\ntitle: Hello\ntags: [intro]\nauthors: [ada]\n---\nFirst post, see [world](world.html).\n")
	writeFile(t, filepath.Join(cfg.ContentDir, "2024-02-03-world.md"), "---\ntitle: World\ntags: [intro]\n---\nSecond post.\n")
	writeFile(t, filepath.Join(cfg.StaticDir, "style.css"), "body{}")

	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	result, err := a.generator.Build(ctx)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.Records != 2 {
		t.Errorf("Records = %d, want 2", result.Records)
	}

	for _, name := range []string{"index.html", "hello.html", "world.html", "tag-intro.html", "author-ada.html", "style.css"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Errorf("expected %s in output: %v", name, err)
		}
	}

	page, err := os.ReadFile(filepath.Join(cfg.OutputDir, "world.html"))
	if err != nil {
		t.Fatalf("failed to read world.html: %v", err)
	}
	if !strings.Contains(string(page), "Made by <em>hand</em>") {
		t.Error("world.html is missing the rendered footer")
	}
	if !strings.Contains(string(page), "hello.html") {
		t.Error("world.html is missing the back-link to hello")
	}

	build, err := a.builds.LastSuccessful(ctx)
	if err != nil {
		t.Fatalf("LastSuccessful() error = %v", err)
	}
	if build.ID != result.BuildID || build.Status != storage.BuildSucceeded {
		t.Errorf("manifest build = %+v, want %s succeeded", build, result.BuildID)
	}

	entries, err := a.entries.ListByBuild(ctx, build.ID)
	if err != nil {
		t.Fatalf("ListByBuild() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Slug != "hello" {
		t.Errorf("entries = %+v, want hello and world", entries)
	}
}

func TestNewApp_InvalidSiteFile(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{
		ContentDir: filepath.Join(root, "content"),
		OutputDir:  filepath.Join(root, "public"),
		SiteFile:   filepath.Join(root, "site.yaml"),
		DBPath:     filepath.Join(root, "sitegen.db"),
		PageSize:   10,
	}
	writeFile(t, cfg.SiteFile, "name: \"\"\n")

	if _, err := newApp(cfg); err == nil {
		t.Fatal("newApp() expected error for an empty site name")
	}
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		ContentDir:      filepath.Join(root, "content"),
		OutputDir:       filepath.Join(root, "public"),
		StaticDir:       filepath.Join(root, "static"),
		SiteFile:        filepath.Join(root, "site.yaml"),
		DBPath:          filepath.Join(root, "sitegen.db"),
		PageSize:        10,
		BackLinkLimit:   relation.DefaultBackLinkLimit,
		RelatedLimit:    relation.DefaultRelatedLimit,
		RelatedStrategy: relation.FirstTagOnly,
		RenderWorkers:   2,
	}
	writeFile(t, cfg.SiteFile, "name: Field Notes\n")
	return cfg
}

func TestApp_CloseStopsBuilds(t *testing.T) {
	cfg := newTestConfig(t)
	writeFile(t, filepath.Join(cfg.ContentDir, "hello.md"), "---\ntitle: Hello\n---\nHi.\n")

	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	if _, err := a.generator.Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	a.Close()

	if _, err := a.generator.Build(context.Background()); !errors.Is(err, site.ErrGeneratorClosed) {
		t.Errorf("Build() after Close error = %v, want ErrGeneratorClosed", err)
	}
}

func TestBuildCmd_LogsEachProblemOnce(t *testing.T) {
	cfg := newTestConfig(t)
	writeFile(t, filepath.Join(cfg.ContentDir, "good.md"), "---\ntitle: Good\ndate: 2024-01-01\n---\nok\n")
	writeFile(t, filepath.Join(cfg.ContentDir, "bad.md"), "---\ntitle: Bad\ndate: not-a-date\n---\nbad\n")

	var buf bytes.Buffer
	prevLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	prevConfig := appConfig
	appConfig = cfg
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		appConfig = prevConfig
	})

	buildCmd.SetContext(context.Background())
	if err := buildCmd.RunE(buildCmd, nil); err != nil {
		t.Fatalf("build command error = %v", err)
	}

	if got := strings.Count(buf.String(), "bad.md"); got != 1 {
		t.Errorf("bad.md logged %d times, want 1:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "problems=1") {
		t.Errorf("summary is missing the problem count:\n%s", buf.String())
	}
}
