// Package sites implements the site adapter layer: given a category
// listing URL it yields candidate article URLs, and given an article URL it
// returns a normalized article record. All eight regional sites share one
// selector-driven implementation; only their catalogue entries differ.
package sites

import (
	"context"
	"errors"
	"time"

	"github.com/hulondalo/warta/internal/domain"
)

// ErrNotFound signals a 404 response. For listing pages this is the normal
// end-of-pagination signal, not an error condition.
var ErrNotFound = errors.New("page not found")

// ErrParse signals a detail page missing an expected field. The candidate
// is dropped and the crawl continues.
var ErrParse = errors.New("article parse failure")

// Adapter is the contract between the crawl controller and one news site.
type Adapter interface {
	// Source returns the fixed source label stored with every article.
	Source() string
	// Delay returns the politeness delay enforced between article fetches.
	Delay() time.Duration
	// MaxPages returns the hard pagination ceiling for this site.
	MaxPages() int
	// ListingURL builds the URL of the nth listing page (1-based) for a
	// category.
	ListingURL(categoryURL string, page int) string
	// FetchListing returns the candidates found on one listing page. An
	// empty slice means the listing has run out; ErrNotFound means the
	// page does not exist.
	FetchListing(ctx context.Context, url string) ([]domain.Candidate, error)
	// FetchDetail fetches and parses one article page.
	FetchDetail(ctx context.Context, url string) (*domain.Article, error)
}
