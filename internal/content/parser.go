package content

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Parser turns markdown source files with optional frontmatter into Records.
// A Parser is safe for concurrent use.
type Parser struct {
	markdown goldmark.Markdown
	logger   *slog.Logger
}

// NewParser creates a Parser rendering GitHub flavoured markdown with heading ids.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
		logger: logger,
	}
}

// Parse builds a Record from the raw bytes of the file at relPath.
// Missing optional metadata falls back to derived values; an unparseable
// frontmatter date is the only metadata error.
func (p *Parser) Parse(relPath string, data []byte) (*Record, error) {
	var fm map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		p.logger.Warn("could not parse frontmatter, treating file as plain markdown", "rel_path", relPath, "error", err)
		body = data
		fm = nil
	}
	if fm == nil {
		fm = map[string]any{}
	}

	title, markdown := extractTitle(fm, string(body))
	if title == "" {
		title = titleFromFilename(relPath)
	}

	date, err := extractDate(fm, relPath)
	if err != nil {
		return nil, err
	}

	// A stream with no slug characters cannot name an output file.
	stream := stringValue(fm["stream"])
	if Slugify(stream) == "" {
		stream = DefaultStream
	}

	html, toc, err := p.render([]byte(markdown))
	if err != nil {
		return nil, &ParseError{Path: relPath, Err: fmt.Errorf("failed to convert markdown: %w", err)}
	}

	description := stringValue(fm["description"])
	excerpt := description
	if excerpt == "" {
		excerpt = Excerpt(stripMarkup(html))
	}

	var extra map[string]any
	if raw, ok := NormalizeValue(fm["extra"]).(map[string]any); ok {
		extra = raw
	}

	return &Record{
		Slug:        extractSlug(fm, relPath, stream),
		Title:       title,
		Date:        date,
		Tags:        stringList(fm["tags"]),
		Authors:     stringList(fm["authors"]),
		HTML:        html,
		Description: description,
		Excerpt:     excerpt,
		BannerImage: stringValue(fm["banner_image"]),
		CardImage:   stringValue(fm["card_image"]),
		Stream:      stream,
		LinksTo:     extractLinks(html),
		TOC:         toc,
		SourcePath:  relPath,
		SourceHash:  fmt.Sprintf("%x", sha256.Sum256(data)),
		Extra:       extra,
	}, nil
}

// RenderFragment converts a standalone markdown snippet, such as a site footer, to HTML.
func (p *Parser) RenderFragment(markdown string) (string, error) {
	html, _, err := p.render([]byte(markdown))
	if err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return html, nil
}

// render converts markdown to HTML and collects headings that received an id.
func (p *Parser) render(source []byte) (string, []Heading, error) {
	doc := p.markdown.Parser().Parse(text.NewReader(source))

	var toc []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id, ok := heading.AttributeString("id")
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		idBytes, _ := id.([]byte)
		toc = append(toc, Heading{
			Level: heading.Level,
			ID:    string(idBytes),
			Title: nodeText(heading, source),
		})
		return ast.WalkSkipChildren, nil
	})

	var buf bytes.Buffer
	if err := p.markdown.Renderer().Render(&buf, source, doc); err != nil {
		return "", nil, err
	}
	return buf.String(), toc, nil
}

// nodeText concatenates the text of a node's descendants.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// extractTitle returns the frontmatter title, or the first non-empty markdown
// line without leading '#'. Leading blank lines and lines repeating the title
// are removed from the returned markdown.
func extractTitle(fm map[string]any, markdown string) (string, string) {
	lines := strings.Split(markdown, "\n")

	title := stringValue(fm["title"])
	if title == "" {
		for _, line := range lines {
			if strings.TrimSpace(line) != "" {
				title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
				break
			}
		}
	}

	skip := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		isTitleHeading := strings.HasPrefix(trimmed, "#") && strings.TrimSpace(strings.TrimLeft(trimmed, "#")) == title
		if trimmed == "" || isTitleHeading || trimmed == title {
			skip++
			continue
		}
		break
	}
	return title, strings.Join(lines[skip:], "\n")
}

// extractSlug prefers the frontmatter slug, then the frontmatter title, then the
// file name without its date prefix. Records outside the default stream are
// prefixed with the slugified stream name.
func extractSlug(fm map[string]any, relPath, stream string) string {
	slug := Slugify(stringValue(fm["slug"]))
	if slug == "" {
		slug = Slugify(stringValue(fm["title"]))
	}
	if slug == "" {
		slug = slugFromFilename(relPath)
	}
	if stream != DefaultStream {
		slug = Slugify(stream) + "-" + slug
	}
	return slug
}

func extractDate(fm map[string]any, relPath string) (time.Time, error) {
	switch v := fm["date"].(type) {
	case time.Time:
		return v, nil
	case nil:
	default:
		raw := stringValue(v)
		date, ok := parseDate(raw)
		if !ok {
			return time.Time{}, &InvalidDateError{Path: relPath, Value: raw}
		}
		return date, nil
	}
	if date, ok := dateFromFilename(relPath); ok {
		return date, nil
	}
	return time.Time{}, nil
}

// stringValue renders scalar frontmatter values as trimmed strings.
func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// stringList accepts a YAML list or a comma separated string.
// Entries are trimmed but empty entries are kept so the index builder can report them.
func stringList(v any) []string {
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, strings.Trim(stringValue(item), `"`))
		}
		return out
	case []string:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, strings.TrimSpace(item))
		}
		return out
	case string:
		if strings.TrimSpace(list) == "" {
			return nil
		}
		parts := strings.Split(list, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return nil
	}
}

// NormalizeValue converts YAML decoded maps with interface keys into
// map[string]any, recursively, so values can be encoded as JSON and indexed
// from templates.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = NormalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = NormalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeValue(item)
		}
		return out
	default:
		return v
	}
}
