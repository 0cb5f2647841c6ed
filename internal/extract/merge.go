package extract

import (
	"sort"
	"strconv"
	"strings"
)

// continuationMarker separates the merged parts of a continued article.
const continuationMarker = "\n\n[BERSAMBUNG DARI HALAMAN SEBELUMNYA]\n\n"

// contentIndicators mark text that picks up an article from an earlier
// page. strongIndicators is the subset trusted when the titles differ.
var (
	contentIndicators = []string{
		"bersambung", "lanjutan", "(lanjutan", "(bersambung", "halaman", "baca juga",
	}
	strongIndicators = []string{
		"bersambung", "lanjutan", "(lanjutan", "(bersambung",
	}
	genericTitles  = []string{"berita", "artikel", "koran", "halaman"}
	sentenceStarts = []string{"dalam", "dengan", "untuk", "pada", "oleh"}
)

// MergeContinued joins article records that continue across consecutive
// pages. Records are processed in page order; a continuation is absorbed
// into its predecessor with a comma-joined page list ("3,4").
func MergeContinued(records []Record) []Record {
	if len(records) == 0 {
		return records
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return firstPage(sorted[i].Halaman) < firstPage(sorted[j].Halaman)
	})

	merged := make([]Record, 0, len(sorted))
	current := sorted[0]
	for _, record := range sorted[1:] {
		if isContinuation(current, record) {
			current.Konten += continuationMarker + record.Konten
			current.Halaman = current.Halaman + "," + record.Halaman
			continue
		}
		merged = append(merged, current)
		current = record
	}
	return append(merged, current)
}

// isContinuation reports whether next continues prev. The check is
// deliberately strict: the pages must be exactly consecutive, and the
// continuation must either repeat the title with a continuation phrase in
// its opening text, or carry a fragmentary title plus a strong phrase.
func isContinuation(prev, next Record) bool {
	prevPage, ok := lastPage(prev.Halaman)
	if !ok {
		return false
	}
	nextPage := firstPage(next.Halaman)
	if nextPage != prevPage+1 {
		return false
	}

	prevTitle := strings.ToLower(strings.TrimSpace(prev.Judul))
	nextTitle := strings.ToLower(strings.TrimSpace(next.Judul))

	if prevTitle == nextTitle && len(prevTitle) > 10 {
		return containsAny(head(next.Konten, 300), contentIndicators)
	}

	if isFragmentTitle(nextTitle) {
		return containsAny(head(next.Konten, 200), strongIndicators)
	}

	return false
}

// isFragmentTitle reports whether a title looks like a stray phrase the
// extractor lifted from a continuation rather than a headline.
func isFragmentTitle(title string) bool {
	if len(strings.Fields(title)) > 4 {
		return false
	}
	if strings.HasSuffix(title, "?") {
		return false
	}
	for _, start := range sentenceStarts {
		if strings.HasPrefix(title, start) {
			return false
		}
	}
	for _, generic := range genericTitles {
		if title == generic {
			return false
		}
	}
	return true
}

func containsAny(text string, indicators []string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range indicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// firstPage parses the first number of a comma-joined page list, 0 when
// unparseable.
func firstPage(halaman string) int {
	parts := strings.SplitN(halaman, ",", 2)
	page, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	return page
}

// lastPage parses the last number of a comma-joined page list.
func lastPage(halaman string) (int, bool) {
	parts := strings.Split(halaman, ",")
	page, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	return page, err == nil
}
