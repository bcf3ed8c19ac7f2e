package content

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	filenameDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	dateLayouts  = []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02", time.RFC3339}
)

// Slugify turns arbitrary text into a URL-safe slug.
// Text is NFD-normalised before non-alphanumerics are collapsed, so accented
// letters split around their combining mark ("Téxt" becomes "te-xt").
func Slugify(text string) string {
	normalized := strings.ToLower(norm.NFD.String(text))
	slug := nonSlugChars.ReplaceAllString(normalized, "-")
	return strings.Trim(slug, "-")
}

// dateFromFilename returns the first YYYY-MM-DD found in the path, if any.
func dateFromFilename(path string) (time.Time, bool) {
	match := filenameDate.FindString(path)
	if match == "" {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", match)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// parseDate accepts the frontmatter date layouts.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// titleFromFilename builds a readable title from a file name, e.g. "my-first_post.md" -> "My First Post".
func titleFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if date, ok := dateFromFilename(name); ok {
		name = strings.TrimPrefix(name, date.Format("2006-01-02")+"-")
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	// Casers are stateful and not safe for concurrent use.
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}

// slugFromFilename returns the file stem with a leading date prefix removed.
func slugFromFilename(path string) string {
	stem := filepath.Base(path)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	if date, ok := dateFromFilename(path); ok {
		stem = strings.Replace(stem, date.Format("2006-01-02")+"-", "", 1)
	}
	return stem
}
