package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"sitegen/internal/content"
)

// DefaultSiteName is used when no site file exists.
const DefaultSiteName = "Home"

// Site is the site-wide metadata read from the site file.
type Site struct {
	Name                 string
	Tagline              string
	URL                  string
	Language             string
	LogoImage            string
	CardImage            string
	Footer               string // Markdown
	EnableSearch         bool
	EnableRelatedContent bool
	ShowNextPrevLinks    bool
	Menu                 []MenuEntry
	Authors              map[string]*content.Author
	Extra                map[string]any
}

// MenuEntry is one (label, url) pair of the navigation menu.
type MenuEntry struct {
	Label string
	URL   string
}

type siteFile struct {
	Name                 *string               `yaml:"name"`
	Tagline              string                `yaml:"tagline"`
	URL                  string                `yaml:"url"`
	Language             string                `yaml:"language"`
	LogoImage            string                `yaml:"logo_image"`
	CardImage            string                `yaml:"card_image"`
	Footer               string                `yaml:"footer"`
	EnableSearch         bool                  `yaml:"enable_search"`
	EnableRelatedContent *bool                 `yaml:"enable_related_content"`
	ShowNextPrevLinks    *bool                 `yaml:"show_next_prev_links"`
	Menu                 [][]string            `yaml:"menu"`
	Authors              map[string]authorFile `yaml:"authors"`
	Extra                map[string]any        `yaml:"extra"`
}

type authorFile struct {
	Name   string     `yaml:"name"`
	Bio    string     `yaml:"bio"`
	Avatar string     `yaml:"avatar"`
	Links  [][]string `yaml:"links"`
}

// DefaultSite returns the metadata used when the site file does not exist.
func DefaultSite() *Site {
	return &Site{
		Name:                 DefaultSiteName,
		Language:             "en",
		EnableRelatedContent: true,
		ShowNextPrevLinks:    true,
		Authors:              map[string]*content.Author{},
	}
}

// LoadSite reads the YAML site file at path. A missing file yields DefaultSite;
// a file that sets an empty name is an error.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSite(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read site file: %w", err)
	}
	return ParseSite(data)
}

// ParseSite decodes site metadata from YAML.
func ParseSite(data []byte) (*Site, error) {
	var raw siteFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse site file: %w", err)
	}

	site := DefaultSite()
	if raw.Name != nil {
		site.Name = strings.TrimSpace(*raw.Name)
		if site.Name == "" {
			return nil, fmt.Errorf("site name must not be empty")
		}
	}
	site.Tagline = raw.Tagline
	site.URL = raw.URL
	if raw.Language != "" {
		site.Language = raw.Language
	}
	site.LogoImage = raw.LogoImage
	site.CardImage = raw.CardImage
	site.Footer = raw.Footer
	site.EnableSearch = raw.EnableSearch
	if raw.EnableRelatedContent != nil {
		site.EnableRelatedContent = *raw.EnableRelatedContent
	}
	if raw.ShowNextPrevLinks != nil {
		site.ShowNextPrevLinks = *raw.ShowNextPrevLinks
	}

	for i, pair := range raw.Menu {
		if len(pair) != 2 {
			return nil, fmt.Errorf("menu entry %d must be a [label, url] pair", i+1)
		}
		site.Menu = append(site.Menu, MenuEntry{Label: pair[0], URL: pair[1]})
	}

	ids := make([]string, 0, len(raw.Authors))
	for id := range raw.Authors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		a := raw.Authors[id]
		author := &content.Author{Slug: id, Name: a.Name, Bio: a.Bio, Avatar: a.Avatar}
		if author.Name == "" {
			author.Name = id
		}
		for i, pair := range a.Links {
			if len(pair) != 2 {
				return nil, fmt.Errorf("author %s link %d must be a [label, url] pair", id, i+1)
			}
			author.Links = append(author.Links, content.Link{Label: pair[0], URL: pair[1]})
		}
		site.Authors[id] = author
	}

	if extra, ok := content.NormalizeValue(raw.Extra).(map[string]any); ok {
		site.Extra = extra
	}

	return site, nil
}

// Author returns the configured profile for id or a stub.
func (s *Site) Author(id string) *content.Author {
	if a, ok := s.Authors[id]; ok {
		return a
	}
	return content.StubAuthor(id)
}
