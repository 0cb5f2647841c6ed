// Package sources loads and validates the catalogue of news sites the
// crawler knows how to read. Each entry carries the selectors and
// pagination style for one site; the crawl skeleton itself is shared.
package sources

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Pagination styles supported by the listing URL builder.
const (
	// PaginationWordPress appends /page/N/ to the category URL (page 1 is
	// the category URL itself).
	PaginationWordPress = "wordpress"
	// PaginationPath appends /N to the category URL.
	PaginationPath = "path"
)

// DefaultMaxPages bounds pagination when a source does not set its own
// ceiling.
const DefaultMaxPages = 1000

// Duration wraps time.Duration so catalogue files can spell delays as
// "1s" or "1500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("duration must be a string like \"1s\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Selectors holds the CSS selectors used to extract fields from one site.
// Meta selectors name a <meta> property/name attribute; element selectors
// are ordinary CSS.
type Selectors struct {
	// ListingLinks selects the article anchors on a category listing page.
	ListingLinks string `yaml:"listing_links"`
	// Title selects the headline element on a detail page.
	Title string `yaml:"title"`
	// TitleMeta is a meta property fallback for the title (e.g. "og:title").
	TitleMeta string `yaml:"title_meta"`
	// Content selects the body container; paragraph text is joined with
	// newlines.
	Content string `yaml:"content"`
	// ContentFallback is tried when Content yields nothing.
	ContentFallback string `yaml:"content_fallback"`
	// Reporter selects the byline element.
	Reporter string `yaml:"reporter"`
	// ReporterMeta is a meta name fallback for the byline (e.g. "author").
	ReporterMeta string `yaml:"reporter_meta"`
	// DateMeta is a meta property holding an ISO timestamp
	// (e.g. "article:published_time").
	DateMeta string `yaml:"date_meta"`
	// DateAttr selects an element whose "datetime" attribute holds the date.
	DateAttr string `yaml:"date_attr"`
	// DateText selects an element whose text is an Indonesian-formatted date.
	DateText string `yaml:"date_text"`
}

// Source describes one news site.
type Source struct {
	Name         string    `yaml:"name"`
	URL          string    `yaml:"url"`
	CategoryURLs []string  `yaml:"category_urls"`
	Pagination   string    `yaml:"pagination"`
	MaxPages     int       `yaml:"max_pages"`
	Delay        Duration  `yaml:"delay"`
	Selectors    Selectors `yaml:"selectors"`
}

// Catalogue is the full set of configured sources.
type Catalogue struct {
	Sources []Source `yaml:"sources"`
}

// ErrNoSources indicates the catalogue holds no usable source. This is a
// configuration error and halts the run before any crawling starts.
var ErrNoSources = fmt.Errorf("no valid sources configured")

// Load reads and validates a catalogue file.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var cat Catalogue
	if unmarshalErr := yaml.Unmarshal(data, &cat); unmarshalErr != nil {
		return nil, fmt.Errorf("parse sources file: %w", unmarshalErr)
	}

	if validateErr := cat.Validate(); validateErr != nil {
		return nil, validateErr
	}

	return &cat, nil
}

// Validate checks every source and the catalogue as a whole.
func (c *Catalogue) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	names := make(map[string]bool, len(c.Sources))
	for i := range c.Sources {
		src := &c.Sources[i]
		if err := src.Validate(); err != nil {
			return fmt.Errorf("source %d (%s): %w", i, src.Name, err)
		}
		if names[src.Name] {
			return fmt.Errorf("source %d: duplicate name %q", i, src.Name)
		}
		names[src.Name] = true
	}

	return nil
}

// Validate checks a single source entry and applies defaults.
func (s *Source) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.CategoryURLs) == 0 {
		return fmt.Errorf("at least one category URL is required")
	}
	for _, u := range s.CategoryURLs {
		if u == "" {
			return fmt.Errorf("empty category URL")
		}
	}

	switch s.Pagination {
	case "":
		s.Pagination = PaginationWordPress
	case PaginationWordPress, PaginationPath:
	default:
		return fmt.Errorf("unknown pagination style %q", s.Pagination)
	}

	if s.MaxPages < 0 {
		return fmt.Errorf("max_pages must not be negative")
	}
	if s.MaxPages == 0 {
		s.MaxPages = DefaultMaxPages
	}
	if s.Delay < 0 {
		return fmt.Errorf("delay must not be negative")
	}
	if s.Delay == 0 {
		s.Delay = Duration(time.Second)
	}

	if s.Selectors.ListingLinks == "" {
		return fmt.Errorf("selectors.listing_links is required")
	}
	if s.Selectors.Title == "" && s.Selectors.TitleMeta == "" {
		return fmt.Errorf("a title selector is required")
	}
	if s.Selectors.Content == "" {
		return fmt.Errorf("selectors.content is required")
	}

	return nil
}

// ByName returns the source with the given name, or nil.
func (c *Catalogue) ByName(name string) *Source {
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			return &c.Sources[i]
		}
	}
	return nil
}
