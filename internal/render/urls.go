package render

import (
	"net/url"
	"strings"
)

// URLResolver turns site-relative paths into links under the deployment base.
// With an empty base, links stay relative so the output can be browsed from disk.
type URLResolver struct {
	base string
}

// NewURLResolver creates a resolver for baseURL, which may be a full URL
// ("https://example.com/blog"), a path prefix ("/blog") or empty.
func NewURLResolver(baseURL string) *URLResolver {
	return &URLResolver{base: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// Base returns the normalized base URL.
func (u *URLResolver) Base() string {
	return u.base
}

// URLFor resolves p. External URLs and fragments are returned unchanged.
func (u *URLResolver) URLFor(p string) string {
	if IsExternal(p) || strings.HasPrefix(p, "#") {
		return p
	}
	p = strings.TrimLeft(p, "/")
	if u.base == "" {
		if p == "" {
			return "index.html"
		}
		return p
	}
	return u.base + "/" + p
}

// IsExternal reports whether link carries a scheme or is protocol-relative.
func IsExternal(link string) bool {
	if strings.HasPrefix(link, "//") {
		return true
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	return parsed.Scheme != ""
}
