package content

import (
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ExcerptLength is the maximum number of runes in a generated excerpt.
const ExcerptLength = 200

// extractLinks returns the slugs of internal links in an HTML fragment, in
// document order without duplicates. External URLs, fragments and mailto links
// are ignored. "other.html", "./other.html", "/other.html", "other.md" and
// "other" all resolve to "other".
func extractLinks(fragment string) []string {
	var slugs []string
	seen := make(map[string]struct{})

	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			return slugs
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}
		name, moreAttr := tokenizer.TagName()
		if string(name) != "a" {
			continue
		}
		var key, val []byte
		for moreAttr {
			key, val, moreAttr = tokenizer.TagAttr()
			if string(key) != "href" {
				continue
			}
			slug := slugFromHref(string(val))
			if slug == "" {
				break
			}
			if _, ok := seen[slug]; !ok {
				seen[slug] = struct{}{}
				slugs = append(slugs, slug)
			}
			break
		}
	}
}

func slugFromHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "//") || strings.Contains(href, ":") {
		return ""
	}
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	base := path.Base(strings.TrimSuffix(href, "/"))
	if base == "." || base == "/" {
		return ""
	}
	for _, ext := range []string{".html", ".htm", ".md"} {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// stripMarkup returns the text content of an HTML fragment with whitespace collapsed.
func stripMarkup(fragment string) string {
	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way keep what was collected.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(tokenizer.Text())
			b.WriteByte(' ')
		}
	}
}

// Excerpt returns text truncated to ExcerptLength runes, with "..." appended when cut.
func Excerpt(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= ExcerptLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:ExcerptLength])) + "..."
}
