package render

import (
	"html/template"

	"sitegen/internal/content"
)

// Site is the site-wide data every template receives.
type Site struct {
	Name                 string
	Tagline              string
	URL                  string
	LogoImage            string
	CardImage            string
	Footer               template.HTML // Pre-rendered markup
	Language             string
	EnableSearch         bool
	EnableRelatedContent bool
	ShowNextPrevLinks    bool
	Extra                map[string]any
	Menu                 []MenuItem
}

// MenuItem is one navigation entry. External items open in a new tab.
type MenuItem struct {
	Label    string
	URL      string
	External bool
}

// NewMenuItem builds a menu entry, flagging absolute URLs as external.
func NewMenuItem(label, url string) MenuItem {
	return MenuItem{Label: label, URL: url, External: IsExternal(url)}
}

// ContentContext is the data for a single content page.
type ContentContext struct {
	Site      Site
	Title     string
	Content   *content.Record
	Body      template.HTML
	Authors   []*content.Author
	BackLinks []*content.Record
	Related   []*content.Record
	Previous  *content.Record
	Next      *content.Record
}

// ListContext is the data for a paginated list of content or authors.
type ListContext struct {
	Site       Site
	Title      string
	Contents   []*content.Record
	Authors    []*content.Author
	Groups     []GroupLink
	Pagination Pagination
}

// AuthorContext is a list page for one author's content.
type AuthorContext struct {
	ListContext
	Author *content.Author
}

// GroupLink is one entry of a group overview page such as tags.html.
type GroupLink struct {
	Key   string
	Count int
	URL   string
}

// Pagination carries the page position and resolved neighbour URLs.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	PreviousPage string
	NextPage     string
}
