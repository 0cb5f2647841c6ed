// Package domain provides domain models used across the application.
package domain

import (
	"strings"
	"time"
)

// DateLayout is the canonical wire format for article dates. Dates carry no
// time-of-day semantics.
const DateLayout = "2006-01-02"

// Sentinel reporter values used by sources that do not expose a byline.
const (
	ReporterUnknown = "-"
	ReporterAdmin   = "Admin"
)

// Article is the unit of work flowing through the pipeline. Title is the de
// facto unique key; Link is a secondary uniqueness signal.
type Article struct {
	ID       int64  `db:"id"       json:"id"`
	Title    string `db:"title"    json:"title"`
	Contents string `db:"contents" json:"contents"`
	Reporter string `db:"reporter" json:"reporter"`
	// Source is the fixed enumerated label of the originating site or paper.
	Source string `db:"sources" json:"sources"`
	Link   string `db:"links"   json:"links"`
	// Date is nil for PDF-derived articles whose publication date could not
	// be verified. Persisted web-scraped articles always carry a date.
	Date      *time.Time `db:"date"      json:"date,omitempty"`
	Impact    string     `db:"impact"    json:"impact,omitempty"`
	Sector    string     `db:"sector"    json:"sector,omitempty"`
	Sentiment string     `db:"sentiment" json:"sentiment,omitempty"`
	// KategoriBPS is one of the 29 BPS/KBLI sector codes, assigned once at
	// ingest time.
	KategoriBPS       string `db:"kategori_bps"        json:"kategori_bps"`
	KategoriBPSDetail string `db:"kategori_bps_detail" json:"kategori_bps_detail,omitempty"`
	// Halaman holds the newspaper page number(s) for PDF-derived articles,
	// comma-joined when an article spans pages ("3,4"). Empty for web articles.
	Halaman string `db:"halaman" json:"halaman,omitempty"`
}

// DateString renders the article date in the canonical layout, or "" when
// the date is unverified.
func (a *Article) DateString() string {
	if a.Date == nil {
		return ""
	}
	return a.Date.Format(DateLayout)
}

// HasReporter reports whether the article carries an actual byline rather
// than a sentinel value.
func (a *Article) HasReporter() bool {
	r := strings.TrimSpace(a.Reporter)
	return r != "" && r != ReporterUnknown && r != ReporterAdmin
}

// Candidate is a URL discovered on a listing page, not yet fetched in full.
type Candidate struct {
	URL string
	// Title is the listing-level title when the site exposes one. It is a
	// hint only; the detail page remains authoritative.
	Title string
	// DateHint is the listing-level date when present, zero otherwise.
	DateHint time.Time
}

// Window is an inclusive calendar date range driving the crawl filter and
// the pagination early-termination rule.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a Window from inclusive calendar bounds, truncating any
// time-of-day component.
func NewWindow(start, end time.Time) Window {
	return Window{Start: truncate(start), End: truncate(end)}
}

// Contains reports whether the date falls within the window, bounds
// included.
func (w Window) Contains(date time.Time) bool {
	d := truncate(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Before reports whether the date precedes the window start.
func (w Window) Before(date time.Time) bool {
	return truncate(date).Before(w.Start)
}

// Valid reports whether the window bounds are ordered.
func (w Window) Valid() bool {
	return !w.End.Before(w.Start)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
