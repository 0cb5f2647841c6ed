// Package dedupe implements the run-scoped seen-set used to suppress
// duplicate articles across pages and across runs.
package dedupe

import "strings"

// Index tracks normalized titles and canonical links already seen, either
// loaded from storage at run start or added as articles are saved during
// the run. A hit on either key is treated as a duplicate: near-duplicate
// titles across different links are suppressed at the cost of occasionally
// dropping two distinct articles that share a normalized title.
//
// Titles are compared case-insensitively everywhere. The scrapers this
// replaces disagreed on case handling between sites; one policy is applied
// here deliberately.
type Index struct {
	titles map[string]struct{}
	links  map[string]struct{}
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		titles: make(map[string]struct{}),
		links:  make(map[string]struct{}),
	}
}

// Seed loads previously persisted titles and links in bulk.
func (i *Index) Seed(titles, links []string) {
	for _, t := range titles {
		if key := NormalizeTitle(t); key != "" {
			i.titles[key] = struct{}{}
		}
	}
	for _, l := range links {
		if l != "" {
			i.links[l] = struct{}{}
		}
	}
}

// SeenTitle reports whether a title (after normalization) is known.
func (i *Index) SeenTitle(title string) bool {
	_, ok := i.titles[NormalizeTitle(title)]
	return ok
}

// SeenLink reports whether the exact link string is known.
func (i *Index) SeenLink(link string) bool {
	_, ok := i.links[link]
	return ok
}

// Seen reports whether either the title or the link is known.
func (i *Index) Seen(title, link string) bool {
	return i.SeenLink(link) || i.SeenTitle(title)
}

// Add records a title/link pair. Called immediately after a successful
// insert so a duplicate emitted twice within one run is caught without a
// round trip to storage.
func (i *Index) Add(title, link string) {
	if key := NormalizeTitle(title); key != "" {
		i.titles[key] = struct{}{}
	}
	if link != "" {
		i.links[link] = struct{}{}
	}
}

// Len returns the number of distinct title keys held.
func (i *Index) Len() int {
	return len(i.titles)
}

// NormalizeTitle collapses internal whitespace runs to single spaces, trims,
// and lower-cases the title for comparison.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}
