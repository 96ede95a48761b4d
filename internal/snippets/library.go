// Package snippets implements the content library: curated candidate
// strings per prompt field, organized into categories (optionally one level
// of subcategories) and partitioned by content rating. Built-in defaults
// cover the PG rating; user-defined sets are loaded from JSON files and
// shadow the defaults per field.
package snippets

import (
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Rating is a content partition gating which snippet sets are visible.
type Rating string

const (
	RatingPG     Rating = "PG"
	RatingNSFW   Rating = "NSFW"
	RatingHentai Rating = "Hentai"
)

// Ratings returns all known ratings in ascending permissiveness.
func Ratings() []Rating {
	return []Rating{RatingPG, RatingNSFW, RatingHentai}
}

// ParseRating normalizes a rating string; unknown values fall back to PG.
func ParseRating(s string) Rating {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NSFW":
		return RatingNSFW
	case "HENTAI":
		return RatingHentai
	default:
		return RatingPG
	}
}

// Allowed returns the ratings visible under r. Higher ratings include the
// lower ones: NSFW sees PG, Hentai sees everything.
func (r Rating) Allowed() []Rating {
	switch r {
	case RatingNSFW:
		return []Rating{RatingPG, RatingNSFW}
	case RatingHentai:
		return []Rating{RatingPG, RatingNSFW, RatingHentai}
	default:
		return []Rating{RatingPG}
	}
}

// Category holds direct items and at most one level of subcategories.
type Category struct {
	Items         []string            `json:"items,omitempty"`
	Subcategories map[string][]string `json:"subcategories,omitempty"`
}

// AllItems flattens direct items and every subcategory's items, in stable
// (sorted subcategory) order.
func (c Category) AllItems() []string {
	out := append([]string(nil), c.Items...)
	subs := make([]string, 0, len(c.Subcategories))
	for name := range c.Subcategories {
		subs = append(subs, name)
	}
	sort.Strings(subs)
	for _, name := range subs {
		out = append(out, c.Subcategories[name]...)
	}
	return out
}

// FieldSet is one field's snippet collection under a single rating.
type FieldSet struct {
	Rating     string              `json:"rating"`
	Categories map[string]Category `json:"categories"`
}

// Library serves snippet lookups for the realization engine and the
// pickers. Lookups never fail: an unknown field, category, or rating yields
// an empty result.
type Library struct {
	mu       sync.RWMutex
	defaults map[string]FieldSet
	user     map[string]FieldSet
	dir      string // snippets directory for user-set persistence
}

// NewLibrary creates a library backed by the built-in defaults, loading any
// user snippet files found under dir. An empty dir disables persistence.
func NewLibrary(dir string) (*Library, error) {
	l := &Library{
		defaults: defaultSets(),
		user:     make(map[string]FieldSet),
		dir:      dir,
	}
	if dir != "" {
		if err := l.loadUserSets(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// setFor resolves the field's snippet set visible under the given filter:
// the user set shadows the default when its rating matches.
func (l *Library) setFor(field string, filter Rating) (FieldSet, bool) {
	if set, ok := l.user[field]; ok && ParseRating(set.Rating) == filter {
		return set, true
	}
	if set, ok := l.defaults[field]; ok && ParseRating(set.Rating) == filter {
		return set, true
	}
	return FieldSet{}, false
}

// findCategory matches a category name case-insensitively.
func findCategory(set FieldSet, category string) (Category, bool) {
	if c, ok := set.Categories[category]; ok {
		return c, true
	}
	for name, c := range set.Categories {
		if strings.EqualFold(name, category) {
			return c, true
		}
	}
	return Category{}, false
}

// ItemsForCategory returns every item reachable under (field, category) for
// one filter, flattening subcategories. Returns an empty slice when nothing
// matches; never an error.
func (l *Library) ItemsForCategory(field, category string, filter Rating) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	set, ok := l.setFor(field, filter)
	if !ok {
		return nil
	}
	c, ok := findCategory(set, category)
	if !ok {
		return nil
	}
	return c.AllItems()
}

// ItemsForSubcategory returns the items of one subcategory under one
// filter. Empty slice when nothing matches.
func (l *Library) ItemsForSubcategory(field, category, subcategory string, filter Rating) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	set, ok := l.setFor(field, filter)
	if !ok {
		return nil
	}
	c, ok := findCategory(set, category)
	if !ok {
		return nil
	}
	if items, ok := c.Subcategories[subcategory]; ok {
		return append([]string(nil), items...)
	}
	for name, items := range c.Subcategories {
		if strings.EqualFold(name, subcategory) {
			return append([]string(nil), items...)
		}
	}
	return nil
}

// Categories lists the category names visible for a field under any of the
// filters, sorted.
func (l *Library) Categories(field string, filters []Rating) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := make(map[string]bool)
	for _, f := range filters {
		if set, ok := l.setFor(field, f); ok {
			for name := range set.Categories {
				seen[name] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Subcategories lists the subcategory names of a category visible under any
// of the filters, sorted.
func (l *Library) Subcategories(field, category string, filters []Rating) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := make(map[string]bool)
	for _, f := range filters {
		set, ok := l.setFor(field, f)
		if !ok {
			continue
		}
		if c, ok := findCategory(set, category); ok {
			for name := range c.Subcategories {
				seen[name] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Fields lists every field name known to the library, sorted.
func (l *Library) Fields() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := make(map[string]bool)
	for name := range l.defaults {
		seen[name] = true
	}
	for name := range l.user {
		seen[name] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Match is one fuzzy search hit.
type Match struct {
	Field    string
	Category string
	Item     string
}

// Search fuzzy-matches query against every item visible under the filters.
// An empty field restricts nothing; otherwise only that field is searched.
func (l *Library) Search(field, query string, filters []Rating) []Match {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var candidates []Match
	fields := []string{field}
	if field == "" {
		fields = nil
		seen := make(map[string]bool)
		for name := range l.defaults {
			seen[name] = true
		}
		for name := range l.user {
			seen[name] = true
		}
		for name := range seen {
			fields = append(fields, name)
		}
		sort.Strings(fields)
	}
	for _, f := range fields {
		for _, filter := range filters {
			set, ok := l.setFor(f, filter)
			if !ok {
				continue
			}
			catNames := make([]string, 0, len(set.Categories))
			for name := range set.Categories {
				catNames = append(catNames, name)
			}
			sort.Strings(catNames)
			for _, catName := range catNames {
				for _, item := range set.Categories[catName].AllItems() {
					candidates = append(candidates, Match{Field: f, Category: catName, Item: item})
				}
			}
		}
	}

	if strings.TrimSpace(query) == "" {
		return candidates
	}
	haystack := make([]string, len(candidates))
	for i, c := range candidates {
		haystack[i] = c.Item
	}
	var out []Match
	for _, m := range fuzzy.Find(query, haystack) {
		out = append(out, candidates[m.Index])
	}
	return out
}
