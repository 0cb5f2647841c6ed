package sites

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// indonesianNames translates Indonesian month and day names to English so
// the stdlib layouts can parse them.
var indonesianNames = strings.NewReplacer(
	"Januari", "January", "Februari", "February", "Maret", "March",
	"Mei", "May", "Juni", "June", "Juli", "July", "Agustus", "August",
	"Oktober", "October", "Desember", "December",
	"Senin", "Monday", "Selasa", "Tuesday", "Rabu", "Wednesday",
	"Kamis", "Thursday", "Jumat", "Friday", "Sabtu", "Saturday",
	"Minggu", "Sunday",
)

// dateLayouts are tried in order against the translated text.
var dateLayouts = []string{
	"Monday, 2 January 2006 15:04",
	"Monday, 2 January 2006",
	"2 January 2006 15:04",
	"2 January 2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timezoneSuffixes are Indonesian timezone markers stripped before parsing.
var timezoneSuffixes = []string{" WIB", " WITA", " WIT"}

// urlDatePattern matches the /YYYY/MM/DD/ segment WordPress sites embed in
// permalinks.
var urlDatePattern = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)

// ParseDate parses a date from site text. It handles Indonesian long forms
// ("Senin, 2 Juni 2025 10:30 WIB"), ISO timestamps, and plain calendar
// dates. The result is truncated to a calendar date in UTC.
func ParseDate(raw string) (time.Time, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, suffix := range timezoneSuffixes {
		if idx := strings.Index(text, suffix); idx >= 0 {
			text = text[:idx]
		}
	}
	text = indonesianNames.Replace(text)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return midnight(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// DateFromURL extracts a /YYYY/MM/DD/ date embedded in a permalink.
func DateFromURL(url string) (time.Time, bool) {
	m := urlDatePattern.FindStringSubmatch(url)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
