package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	natomic "github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"

	"sitegen/internal/content"
	"sitegen/internal/contextutil"
	"sitegen/internal/index"
	"sitegen/internal/relation"
	"sitegen/internal/render"
	"sitegen/internal/storage"
)

// Options configures a Generator.
type Options struct {
	ContentDir     string
	OutputDir      string
	StaticDir      string
	PageSize       int
	Workers        int
	RequireContent bool
	Resolver       relation.Resolver
	Authors        map[string]*content.Author // Configured author profiles
}

// Result summarises a finished build.
type Result struct {
	BuildID  string
	Records  int
	Pages    int
	Static   int
	Problems []error // Per-record errors; the build still succeeded
	Duration time.Duration
}

// Generator runs the content pipeline: scan, parse, index, resolve, render
// and publish. One build runs at a time; the last published Snapshot is
// available to concurrent readers through Current.
type Generator struct {
	opts       Options
	parser     *content.Parser
	dispatcher *render.Dispatcher
	builds     storage.BuildStore
	entries    storage.EntryStore
	logger     *slog.Logger

	mu       sync.Mutex
	closed   bool
	building atomic.Bool
	current  atomic.Pointer[Snapshot]
}

// NewGenerator creates a Generator. builds and entries may be nil, in which
// case no manifest is recorded.
func NewGenerator(opts Options, parser *content.Parser, dispatcher *render.Dispatcher, builds storage.BuildStore, entries storage.EntryStore) *Generator {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Generator{
		opts:       opts,
		parser:     parser,
		dispatcher: dispatcher,
		builds:     builds,
		entries:    entries,
		logger:     slog.Default(),
	}
}

// Current returns the last published snapshot, or nil before the first build.
func (g *Generator) Current() *Snapshot {
	return g.current.Load()
}

// Building reports whether a build is running.
func (g *Generator) Building() bool {
	return g.building.Load()
}

// Close waits for a running build to finish. Builds requested afterwards
// return ErrGeneratorClosed.
func (g *Generator) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
}

// getLogger extracts logger from context or returns the generator's logger.
func (g *Generator) getLogger(ctx context.Context) *slog.Logger {
	if l := contextutil.LoggerFromContext(ctx); l != slog.Default() {
		return l
	}
	return g.logger
}

// Build generates the whole site. Per-record problems are reported in the
// Result; any other failure leaves the previous output and snapshot in place.
// It returns ErrBuildInProgress if another build is running.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	if !g.mu.TryLock() {
		return nil, ErrBuildInProgress
	}
	defer g.mu.Unlock()
	if g.closed {
		return nil, ErrGeneratorClosed
	}
	g.building.Store(true)
	defer g.building.Store(false)

	logger := g.getLogger(ctx)
	started := time.Now()

	var manifest *storage.Build
	buildID := uuid.New().String()
	if g.builds != nil {
		b, err := g.builds.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to record build start: %w", err)
		}
		manifest = b
		buildID = b.ID
	}

	logger = logger.With("build_id", buildID)
	logger.InfoContext(ctx, "build started", "content_dir", g.opts.ContentDir, "output_dir", g.opts.OutputDir)

	snap, result, err := g.generate(contextutil.WithLogger(ctx, logger), buildID)
	if result == nil {
		result = &Result{BuildID: buildID}
	}
	result.Duration = time.Since(started)

	if manifest != nil {
		g.recordManifest(ctx, logger, manifest, snap, result, err)
	}

	if err != nil {
		logger.ErrorContext(ctx, "build failed", "error", err, "duration", result.Duration)
		return result, err
	}

	logger.InfoContext(ctx, "build completed",
		"records", result.Records,
		"pages", result.Pages,
		"static_files", result.Static,
		"problems", len(result.Problems),
		"duration", result.Duration,
	)
	return result, nil
}

func (g *Generator) generate(ctx context.Context, buildID string) (*Snapshot, *Result, error) {
	logger := contextutil.LoggerFromContext(ctx)
	result := &Result{BuildID: buildID}

	files, err := content.Scan(ctx, g.opts.ContentDir)
	if err != nil {
		return nil, result, fmt.Errorf("failed to scan content: %w", err)
	}
	logger.DebugContext(ctx, "content scanned", "files", len(files))

	records, parseErrs, err := g.parseAll(ctx, files)
	if err != nil {
		return nil, result, err
	}
	result.Problems = append(result.Problems, parseErrs...)

	if len(records) == 0 && g.opts.RequireContent {
		return nil, result, &BuildError{Err: ErrNoContent}
	}

	store, dupErrs := content.NewStore(records)
	result.Problems = append(result.Problems, dupErrs...)
	result.Records = store.Len()

	// Indexing and resolution complete before any page renders.
	idx, idxErrs := index.Build(store.All())
	result.Problems = append(result.Problems, idxErrs...)
	relations := g.opts.Resolver.Resolve(store.All(), idx)

	snap := &Snapshot{
		BuildID:   buildID,
		BuiltAt:   time.Now().UTC(),
		Store:     store,
		Indexes:   idx,
		Relations: relations,
		Authors:   authorProfiles(g.opts.Authors, idx),
	}

	pages, planErrs, err := plan(snap, g.dispatcher, g.opts.PageSize)
	if err != nil {
		return nil, result, err
	}
	result.Problems = append(result.Problems, planErrs...)

	for _, problem := range result.Problems {
		logger.WarnContext(ctx, "content problem", "error", problem)
	}

	staging, err := newStaging(g.opts.OutputDir)
	if err != nil {
		return nil, result, err
	}
	published := false
	defer func() {
		if !published {
			_ = os.RemoveAll(staging)
		}
	}()

	if result.Static, err = copyDir(g.opts.StaticDir, staging); err != nil {
		return nil, result, err
	}

	if err := g.renderAll(ctx, staging, pages); err != nil {
		return nil, result, err
	}
	result.Pages = len(pages)

	if err := publish(staging, g.opts.OutputDir, buildID); err != nil {
		return nil, result, err
	}
	published = true

	g.current.Store(snap)
	return snap, result, nil
}

// parseAll reads and parses files concurrently, keeping scan order.
// Files that fail are reported individually and left out.
func (g *Generator) parseAll(ctx context.Context, files []content.SourceFile) ([]*content.Record, []error, error) {
	records := make([]*content.Record, len(files))
	errs := make([]error, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, f := range files {
		i, f := i, f
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				errs[i] = &content.ParseError{Path: f.RelPath, Err: err}
				return nil
			}
			rec, err := g.parser.Parse(f.RelPath, data)
			if err != nil {
				errs[i] = err
				return nil
			}
			records[i] = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to parse content: %w", err)
	}

	var (
		parsed   []*content.Record
		problems []error
	)
	for i := range files {
		if errs[i] != nil {
			problems = append(problems, errs[i])
			continue
		}
		parsed = append(parsed, records[i])
	}
	return parsed, problems, nil
}

// renderAll renders pages concurrently into dir. The first failure cancels
// the remaining renders.
func (g *Generator) renderAll(ctx context.Context, dir string, pages []page) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)

	for _, p := range pages {
		p := p
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			if !validOutputPath(p.path) {
				return &BuildError{Slug: p.owner, Err: &InvalidOutputPathError{Path: p.path, Owner: p.owner}}
			}
			var buf bytes.Buffer
			if err := p.render(egCtx, &buf); err != nil {
				return &BuildError{Slug: p.owner, Err: err}
			}
			target := filepath.Join(dir, filepath.FromSlash(p.path))
			if err := natomic.WriteFile(target, &buf); err != nil {
				return &BuildError{Slug: p.owner, Err: fmt.Errorf("failed to write %s: %w", p.path, err)}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		var buildErr *BuildError
		if errors.As(err, &buildErr) {
			return err
		}
		return &BuildError{Err: err}
	}
	return nil
}

func (g *Generator) recordManifest(ctx context.Context, logger *slog.Logger, build *storage.Build, snap *Snapshot, result *Result, buildErr error) {
	// The manifest outlives a cancelled build request.
	ctx = context.WithoutCancel(ctx)

	build.Records = result.Records
	build.Pages = result.Pages
	build.Problems = len(result.Problems)
	build.Status = storage.BuildSucceeded
	if buildErr != nil {
		build.Status = storage.BuildFailed
		build.Error = buildErr.Error()
	}

	if snap != nil && g.entries != nil {
		entries := make([]storage.Entry, 0, snap.Store.Len())
		for _, rec := range snap.Store.All() {
			entries = append(entries, storage.Entry{
				BuildID:    build.ID,
				Slug:       rec.Slug,
				Title:      rec.Title,
				Date:       rec.Date,
				SourcePath: rec.SourcePath,
				SourceHash: rec.SourceHash,
			})
		}
		if err := g.entries.ReplaceForBuild(ctx, build.ID, entries); err != nil {
			logger.ErrorContext(ctx, "failed to record build entries", "error", err)
		}
	}

	if err := g.builds.Finish(ctx, build); err != nil {
		logger.ErrorContext(ctx, "failed to record build result", "error", err)
	}
}
