package sites

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hulondalo/warta/internal/domain"
	"github.com/hulondalo/warta/internal/logger"
	"github.com/hulondalo/warta/internal/sources"
)

const (
	// defaultUserAgent mirrors a desktop browser; several of the regional
	// sites reject the default Go client string.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"

	defaultRequestTimeout = 10 * time.Second
)

// SelectorAdapter implements Adapter for any site describable by CSS
// selectors. The per-site differences live entirely in the sources
// catalogue entry.
type SelectorAdapter struct {
	cfg    sources.Source
	client *http.Client
	log    logger.Interface
}

// NewSelectorAdapter builds an adapter for one catalogue entry. A nil
// client gets a default with a request timeout.
func NewSelectorAdapter(cfg sources.Source, client *http.Client, log logger.Interface) *SelectorAdapter {
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &SelectorAdapter{
		cfg:    cfg,
		client: client,
		log:    log.WithSource(cfg.Name),
	}
}

// Source returns the fixed source label.
func (a *SelectorAdapter) Source() string {
	return a.cfg.Name
}

// Delay returns the politeness delay between article fetches.
func (a *SelectorAdapter) Delay() time.Duration {
	return a.cfg.Delay.Std()
}

// MaxPages returns the pagination ceiling.
func (a *SelectorAdapter) MaxPages() int {
	return a.cfg.MaxPages
}

// ListingURL builds the nth listing page URL. Page 1 is always the
// category URL itself.
func (a *SelectorAdapter) ListingURL(categoryURL string, page int) string {
	if page <= 1 {
		return categoryURL
	}
	base := strings.TrimRight(categoryURL, "/")
	if a.cfg.Pagination == sources.PaginationPath {
		return fmt.Sprintf("%s/%d", base, page)
	}
	return fmt.Sprintf("%s/page/%d/", base, page)
}

// FetchListing fetches one listing page and extracts candidate links.
func (a *SelectorAdapter) FetchListing(ctx context.Context, url string) ([]domain.Candidate, error) {
	doc, err := a.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var candidates []domain.Candidate
	doc.Find(a.cfg.Selectors.ListingLinks).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		candidate := domain.Candidate{
			URL:   href,
			Title: strings.TrimSpace(sel.Text()),
		}
		if date, ok := DateFromURL(href); ok {
			candidate.DateHint = date
		}
		candidates = append(candidates, candidate)
	})

	return candidates, nil
}

// FetchDetail fetches one article page and extracts the normalized record.
// A page without a title is a parse failure; everything else degrades to
// sentinel or empty values.
func (a *SelectorAdapter) FetchDetail(ctx context.Context, url string) (*domain.Article, error) {
	doc, err := a.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	title := a.extractTitle(doc)
	if title == "" {
		return nil, fmt.Errorf("%w: no title at %s", ErrParse, url)
	}

	article := &domain.Article{
		Title:    title,
		Contents: a.extractContents(doc),
		Reporter: a.extractReporter(doc),
		Source:   a.cfg.Name,
		Link:     url,
	}

	if date, ok := a.extractDate(doc, url); ok {
		article.Date = &date
	}

	return article, nil
}

// fetch performs an HTTP GET and parses the body. 404 maps to ErrNotFound.
func (a *SelectorAdapter) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, doErr := a.client.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, doErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, parseErr := goquery.NewDocumentFromReader(resp.Body)
	if parseErr != nil {
		return nil, fmt.Errorf("parse %s: %w", url, parseErr)
	}

	return doc, nil
}

func (a *SelectorAdapter) extractTitle(doc *goquery.Document) string {
	if sel := a.cfg.Selectors.Title; sel != "" {
		if title := strings.TrimSpace(doc.Find(sel).First().Text()); title != "" {
			return title
		}
	}
	if meta := a.cfg.Selectors.TitleMeta; meta != "" {
		if content, ok := metaContent(doc, meta); ok {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

func (a *SelectorAdapter) extractContents(doc *goquery.Document) string {
	contents := joinParagraphs(doc, a.cfg.Selectors.Content)
	if contents == "" && a.cfg.Selectors.ContentFallback != "" {
		contents = joinParagraphs(doc, a.cfg.Selectors.ContentFallback)
	}
	return contents
}

func (a *SelectorAdapter) extractReporter(doc *goquery.Document) string {
	if sel := a.cfg.Selectors.Reporter; sel != "" {
		if reporter := strings.TrimSpace(doc.Find(sel).First().Text()); reporter != "" {
			return strings.TrimSpace(strings.TrimPrefix(reporter, "Pewarta:"))
		}
	}
	if meta := a.cfg.Selectors.ReporterMeta; meta != "" {
		if content, ok := metaContent(doc, meta); ok && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}
	return domain.ReporterUnknown
}

// extractDate tries, in order: the meta timestamp, the datetime attribute,
// the visible date text, and finally the permalink.
func (a *SelectorAdapter) extractDate(doc *goquery.Document, url string) (time.Time, bool) {
	if meta := a.cfg.Selectors.DateMeta; meta != "" {
		if content, ok := metaContent(doc, meta); ok {
			if date, err := ParseDate(content); err == nil {
				return date, true
			}
		}
	}

	if sel := a.cfg.Selectors.DateAttr; sel != "" {
		if attr, ok := doc.Find(sel).First().Attr("datetime"); ok {
			if date, err := ParseDate(attr); err == nil {
				return date, true
			}
		}
	}

	if sel := a.cfg.Selectors.DateText; sel != "" {
		raw := doc.Find(sel).First().Text()
		if date, err := ParseDate(raw); err == nil {
			return date, true
		}
	}

	if date, ok := DateFromURL(url); ok {
		return date, true
	}

	return time.Time{}, false
}

// metaContent looks up a <meta> tag by property or name attribute.
func metaContent(doc *goquery.Document, key string) (string, bool) {
	selector := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)
	return doc.Find(selector).First().Attr("content")
}

// joinParagraphs joins the non-empty <p> texts under a container. A
// container without paragraphs falls back to its own text.
func joinParagraphs(doc *goquery.Document, containerSel string) string {
	container := doc.Find(containerSel).First()
	if container.Length() == 0 {
		return ""
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		return strings.TrimSpace(container.Text())
	}
	return strings.Join(paragraphs, "\n")
}
