package render

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_renderer.go -package=mocks sitegen/internal/render Renderer

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"sitegen/internal/content"
)

// Template names the dispatcher renders.
const (
	TemplateContent   = "content.html"
	TemplateList      = "list.html"
	TemplateGroupList = "group_list.html"
	TemplateAuthors   = "authors.html"
	TemplateAuthor    = "author.html"
)

//go:embed theme/*.html
var defaultTheme embed.FS

// Renderer executes a named template with data into w.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, name string, data any) error
}

// TemplateRenderer renders html/template templates. It is safe for concurrent use
// once constructed.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer loads the embedded default theme and overlays every
// *.html file found in themeDir, so a theme only needs the templates it changes.
func NewTemplateRenderer(themeDir string, urls *URLResolver) (*TemplateRenderer, error) {
	if urls == nil {
		urls = NewURLResolver("")
	}

	tmpl, err := template.New("").Funcs(Funcs(urls)).ParseFS(defaultTheme, "theme/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse default theme: %w", err)
	}

	if themeDir != "" {
		info, err := os.Stat(themeDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open theme directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("theme path %s is not a directory", themeDir)
		}

		matches, err := filepath.Glob(filepath.Join(themeDir, "*.html"))
		if err != nil {
			return nil, fmt.Errorf("failed to list theme templates: %w", err)
		}
		if len(matches) > 0 {
			if tmpl, err = tmpl.ParseFiles(matches...); err != nil {
				return nil, fmt.Errorf("failed to parse theme templates: %w", err)
			}
		}
	}

	return &TemplateRenderer{templates: tmpl}, nil
}

// Render executes the template called name.
func (r *TemplateRenderer) Render(ctx context.Context, w io.Writer, name string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.templates.Lookup(name) == nil {
		return fmt.Errorf("template %s not found", name)
	}
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return nil
}

// Funcs returns the template function map bound to urls.
func Funcs(urls *URLResolver) template.FuncMap {
	return template.FuncMap{
		"url_for": urls.URLFor,
		"slugify": content.Slugify,
		"default": defaultValue,
		"truncate": func(n int, s string) string {
			return truncate(s, n)
		},
		"date": func(layout string, t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		},
	}
}

// defaultValue returns fallback when value is the zero value of its kind.
func defaultValue(fallback, value any) any {
	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		if v == "" {
			return fallback
		}
	case template.HTML:
		if v == "" {
			return fallback
		}
	case bool:
		if !v {
			return fallback
		}
	case int:
		if v == 0 {
			return fallback
		}
	case []string:
		if len(v) == 0 {
			return fallback
		}
	}
	return value
}

func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
