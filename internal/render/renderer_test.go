package render

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sitegen/internal/content"
)

func testSite() Site {
	return Site{
		Name:                 "Test Site",
		Tagline:              "notes",
		Footer:               template.HTML("<p>footer</p>"),
		EnableRelatedContent: true,
		ShowNextPrevLinks:    true,
		Menu: []MenuItem{
			NewMenuItem("About", "about.html"),
			NewMenuItem("Code", "https://example.com/code"),
		},
	}
}

func TestTemplateRenderer_DefaultTheme(t *testing.T) {
	r, err := NewTemplateRenderer("", NewURLResolver("/blog"))
	if err != nil {
		t.Fatalf("NewTemplateRenderer() error = %v", err)
	}

	rec := &content.Record{
		Slug:  "hello",
		Title: "Hello <World>",
		Date:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Tags:  []string{"Go Lang"},
		HTML:  "<p>body <em>text</em></p>",
	}
	back := &content.Record{Slug: "linker", Title: "Linker"}

	var buf bytes.Buffer
	err = r.Render(context.Background(), &buf, TemplateContent, ContentContext{
		Site:      testSite(),
		Title:     rec.Title,
		Content:   rec,
		Body:      template.HTML(rec.HTML),
		Authors:   []*content.Author{content.StubAuthor("alice")},
		BackLinks: []*content.Record{back},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<p>body <em>text</em></p>",
		"Hello &lt;World&gt;",
		`href="/blog/tag-go-lang.html"`,
		`href="/blog/linker.html"`,
		`href="/blog/author-alice.html"`,
		`target="_blank"`,
		"Feb 1, 2024",
		"<p>footer</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q", want)
		}
	}
}

func TestTemplateRenderer_SkipsBlankTags(t *testing.T) {
	r, err := NewTemplateRenderer("", NewURLResolver(""))
	if err != nil {
		t.Fatalf("NewTemplateRenderer() error = %v", err)
	}

	rec := &content.Record{Slug: "tagged", Title: "Tagged", Tags: []string{" ", "go", "", "!!"}}

	var buf bytes.Buffer
	err = r.Render(context.Background(), &buf, TemplateContent, ContentContext{
		Site:    testSite(),
		Title:   rec.Title,
		Content: rec,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `href="tag-go.html"`) {
		t.Error("Render() output missing the go tag link")
	}
	if strings.Contains(out, `tag-.html`) {
		t.Error("Render() linked a blank tag to tag-.html")
	}
	if got := strings.Count(out, `class="p-category"`); got != 1 {
		t.Errorf("tag links = %d, want 1", got)
	}
}

func TestTemplateRenderer_ThemeOverride(t *testing.T) {
	dir := t.TempDir()
	override := `custom {{.Title}} {{len .Contents}}`
	if err := os.WriteFile(filepath.Join(dir, "list.html"), []byte(override), 0644); err != nil {
		t.Fatalf("failed to write theme: %v", err)
	}

	r, err := NewTemplateRenderer(dir, nil)
	if err != nil {
		t.Fatalf("NewTemplateRenderer() error = %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, TemplateList, ListContext{Title: "Posts"}); err != nil {
		t.Fatalf("Render(list) error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "custom Posts 0" {
		t.Errorf("Render(list) = %q, want override output", got)
	}

	buf.Reset()
	if err := r.Render(context.Background(), &buf, TemplateGroupList, ListContext{Site: testSite(), Title: "Tags"}); err != nil {
		t.Fatalf("Render(group_list) falls back to default theme, error = %v", err)
	}
}

func TestTemplateRenderer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		themeDir func(t *testing.T) string
		wantErr  bool
	}{
		{
			name:     "missing theme dir",
			themeDir: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			wantErr:  true,
		},
		{
			name: "broken template",
			themeDir: func(t *testing.T) string {
				dir := t.TempDir()
				_ = os.WriteFile(filepath.Join(dir, "content.html"), []byte("{{if}"), 0644)
				return dir
			},
			wantErr: true,
		},
		{
			name:     "empty theme dir",
			themeDir: func(t *testing.T) string { return t.TempDir() },
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTemplateRenderer(tt.themeDir(t), nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTemplateRenderer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTemplateRenderer_RenderFailures(t *testing.T) {
	r, err := NewTemplateRenderer("", nil)
	if err != nil {
		t.Fatalf("NewTemplateRenderer() error = %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, "missing.html", nil); err == nil {
		t.Error("Render(missing) expected error, got nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Render(ctx, &buf, TemplateList, ListContext{}); err == nil {
		t.Error("Render() with cancelled context expected error, got nil")
	}
}

func TestFuncs(t *testing.T) {
	funcs := Funcs(NewURLResolver(""))

	def := funcs["default"].(func(any, any) any)
	if got := def("x", ""); got != "x" {
		t.Errorf("default(\"x\", \"\") = %v, want x", got)
	}
	if got := def("x", "y"); got != "y" {
		t.Errorf("default(\"x\", \"y\") = %v, want y", got)
	}

	trunc := funcs["truncate"].(func(int, string) string)
	if got := trunc(3, "héllo"); got != "hél..." {
		t.Errorf("truncate(3, héllo) = %q, want hél...", got)
	}
	if got := trunc(10, "short"); got != "short" {
		t.Errorf("truncate(10, short) = %q", got)
	}

	date := funcs["date"].(func(string, time.Time) string)
	if got := date("2006", time.Time{}); got != "" {
		t.Errorf("date(zero) = %q, want empty", got)
	}
}
