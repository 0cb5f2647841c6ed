// Package crawler implements the incremental crawl controller: it walks
// category listings page by page, filters candidates through the dedup
// index and the date window, classifies survivors, and persists them.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hulondalo/warta/internal/database"
	"github.com/hulondalo/warta/internal/dedupe"
	"github.com/hulondalo/warta/internal/domain"
	"github.com/hulondalo/warta/internal/logger"
	"github.com/hulondalo/warta/internal/sector"
	"github.com/hulondalo/warta/internal/sites"
	"github.com/hulondalo/warta/internal/sources"
)

// ErrInvalidWindow signals a crawl window whose end precedes its start.
var ErrInvalidWindow = errors.New("invalid crawl window")

// Sink receives articles that survived dedup and window filtering.
// database.ArticleRepository is the production implementation.
type Sink interface {
	Insert(ctx context.Context, article *domain.Article) error
}

// Classifier assigns a sector code to an article. sector.Classifier is the
// production implementation.
type Classifier interface {
	Classify(text, hint string) sector.Code
}

// Target pairs a site adapter with the category listings to crawl on it.
type Target struct {
	Adapter    sites.Adapter
	Categories []string
}

// Report summarizes one crawl run.
type Report struct {
	RunID string
	// SavedBySource counts newly persisted articles per source label.
	SavedBySource map[string]int
	Saved         int
	Skipped       int
	Duplicates    int
	Elapsed       time.Duration
}

// Controller drives the crawl. It is not safe for concurrent use; sites
// are crawled sequentially to keep the request rate polite.
type Controller struct {
	sink       Sink
	classifier Classifier
	index      *dedupe.Index
	log        logger.Interface

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewController wires a controller. The index should be seeded with the
// stored title and link keys before Run.
func NewController(sink Sink, classifier Classifier, index *dedupe.Index, log logger.Interface) *Controller {
	return &Controller{
		sink:       sink,
		classifier: classifier,
		index:      index,
		log:        log,
		sleep:      sleepCtx,
	}
}

// Run crawls every target sequentially and returns a per-source report.
// A failing source is logged and does not abort the remaining targets;
// context cancellation does.
func (c *Controller) Run(ctx context.Context, targets []Target, window domain.Window) (*Report, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: %s after %s", ErrInvalidWindow,
			window.Start.Format(domain.DateLayout), window.End.Format(domain.DateLayout))
	}

	report := &Report{
		RunID:         uuid.New().String(),
		SavedBySource: make(map[string]int),
	}
	start := time.Now()
	log := c.log.WithRunID(report.RunID)

	log.Info("Crawl run starting",
		"targets", len(targets),
		"window_start", window.Start.Format(domain.DateLayout),
		"window_end", window.End.Format(domain.DateLayout),
	)

	for _, target := range targets {
		srcLog := log.WithSource(target.Adapter.Source())
		for _, categoryURL := range target.Categories {
			saved, err := c.crawlCategory(ctx, target.Adapter, categoryURL, window, srcLog, report)
			report.SavedBySource[target.Adapter.Source()] += saved
			report.Saved += saved
			if err != nil {
				if ctx.Err() != nil {
					report.Elapsed = time.Since(start)
					return report, err
				}
				srcLog.WithError(err).Error("Category crawl failed", "category", categoryURL)
			}
		}
	}

	report.Elapsed = time.Since(start)
	log.Info("Crawl run finished",
		"saved", report.Saved,
		"skipped", report.Skipped,
		"duplicates", report.Duplicates,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

// CrawlCategory walks one category's listing pages until the pagination
// runs out, the page ceiling is hit, or every article on a page predates
// the window. It returns the number of newly saved articles.
func (c *Controller) CrawlCategory(ctx context.Context, adapter sites.Adapter, categoryURL string, window domain.Window) (int, error) {
	if !window.Valid() {
		return 0, fmt.Errorf("%w: %s after %s", ErrInvalidWindow,
			window.Start.Format(domain.DateLayout), window.End.Format(domain.DateLayout))
	}
	return c.crawlCategory(ctx, adapter, categoryURL, window, c.log.WithSource(adapter.Source()), &Report{})
}

func (c *Controller) crawlCategory(ctx context.Context, adapter sites.Adapter, categoryURL string, window domain.Window, log logger.Interface, report *Report) (int, error) {
	maxPages := adapter.MaxPages()
	if maxPages <= 0 {
		maxPages = sources.DefaultMaxPages
	}

	saved := 0
	for page := 1; page <= maxPages; page++ {
		url := adapter.ListingURL(categoryURL, page)
		candidates, err := adapter.FetchListing(ctx, url)
		if errors.Is(err, sites.ErrNotFound) {
			log.Debug("Listing page not found, pagination exhausted", "page", page)
			return saved, nil
		}
		if err != nil {
			return saved, fmt.Errorf("listing page %d: %w", page, err)
		}
		if len(candidates) == 0 {
			log.Debug("Empty listing page, pagination exhausted", "page", page)
			return saved, nil
		}

		pageSaved, oldest, err := c.processPage(ctx, adapter, candidates, window, log, report)
		saved += pageSaved
		if err != nil {
			return saved, err
		}

		// Listings run newest first, so once the oldest article on a page
		// predates the window no later page can contain anything newer.
		if oldest != nil && window.Before(*oldest) {
			log.Info("Window exhausted, stopping pagination",
				"page", page,
				"oldest", oldest.Format(domain.DateLayout),
			)
			return saved, nil
		}
	}

	log.Warn("Page ceiling reached before window exhausted", "max_pages", maxPages)
	return saved, nil
}

// processPage handles every candidate on one listing page and reports the
// oldest publication date seen on it.
func (c *Controller) processPage(ctx context.Context, adapter sites.Adapter, candidates []domain.Candidate, window domain.Window, log logger.Interface, report *Report) (int, *time.Time, error) {
	saved := 0
	var oldest *time.Time
	note := func(d time.Time) {
		if oldest == nil || d.Before(*oldest) {
			d := d
			oldest = &d
		}
	}

	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return saved, oldest, err
		}

		// Link-level dedup avoids the detail fetch entirely. The listing
		// date hint, when present, still feeds the early-termination check.
		if c.index.SeenLink(cand.URL) {
			noteHint(cand, note)
			report.Duplicates++
			log.Debug("Skipping known link", "url", cand.URL)
			continue
		}
		if cand.Title != "" && c.index.SeenTitle(cand.Title) {
			noteHint(cand, note)
			report.Duplicates++
			log.Debug("Skipping known title", "title", cand.Title)
			continue
		}

		article, err := adapter.FetchDetail(ctx, cand.URL)
		if err != nil {
			if ctx.Err() != nil {
				return saved, oldest, ctx.Err()
			}
			report.Skipped++
			log.WithError(err).Warn("Skipping unparseable article", "url", cand.URL)
			continue
		}

		if err := c.sleep(ctx, adapter.Delay()); err != nil {
			return saved, oldest, err
		}

		if article.Date == nil {
			report.Skipped++
			log.Warn("Skipping article without a verifiable date", "url", cand.URL)
			continue
		}
		note(*article.Date)

		if c.index.Seen(article.Title, article.Link) {
			report.Duplicates++
			log.Debug("Skipping duplicate title", "title", article.Title)
			continue
		}
		if !window.Contains(*article.Date) {
			report.Skipped++
			log.Debug("Skipping article outside window",
				"date", article.DateString(),
				"title", article.Title,
			)
			continue
		}

		code := c.classifier.Classify(article.Title+" "+article.Contents, "")
		article.KategoriBPS = string(code)
		article.KategoriBPSDetail = sector.Label(code)

		if err := c.sink.Insert(ctx, article); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				c.index.Add(article.Title, article.Link)
				report.Duplicates++
				log.Debug("Storage rejected duplicate", "title", article.Title)
				continue
			}
			return saved, oldest, fmt.Errorf("insert %q: %w", article.Title, err)
		}

		c.index.Add(article.Title, article.Link)
		saved++
		log.Info("Article saved",
			"title", article.Title,
			"date", article.DateString(),
			"kategori_bps", article.KategoriBPS,
		)
	}

	return saved, oldest, nil
}

// noteHint feeds a skipped candidate's listing date, or the date embedded
// in its permalink, to the oldest-on-page tracker.
func noteHint(cand domain.Candidate, note func(time.Time)) {
	if !cand.DateHint.IsZero() {
		note(cand.DateHint)
		return
	}
	if d, ok := sites.DateFromURL(cand.URL); ok {
		note(d)
	}
}

// sleepCtx waits for the politeness delay unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
