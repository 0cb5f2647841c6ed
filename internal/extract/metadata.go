package extract

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// filenameDatePattern matches DD.MM.YYYY or DD-MM-YYYY in a scan filename.
var filenameDatePattern = regexp.MustCompile(`(\d{1,2})[.\-](\d{1,2})[.\-](\d{4})`)

// sourceMarkers maps filename fragments to canonical newspaper labels.
// Checked in order; the first hit wins.
var sourceMarkers = []struct {
	keywords []string
	source   string
}{
	{[]string{"GORONTALO_POST", "GORONTALOPOST", "GO_POST", "GP"}, "Gorontalo Post"},
	{[]string{"GOSULUT_ID", "GOSULUT", "SULUT"}, "GOSULUT.ID"},
	{[]string{"HABARI"}, "Habari.id"},
	{[]string{"COOLTURNESIA_COM", "COOL_TURNESIA", "COOLTURNESIA"}, "COOLTURNESIA.COM"},
	{[]string{"RAKYAT_GORONTALO", "RAKYATGORONTALO"}, "RakyatGorontalo.com"},
	{[]string{"GO_POS", "GOPOS"}, "GoPOS.id"},
	{[]string{"ANTARA"}, "Antara News"},
	{[]string{"PEMERINTAH", "DAERAH", "GORONTALOPROV"}, "Berita Pemerintah Daerah Gorontalo"},
}

// Metadata is what a scan's filename reveals about its origin.
type Metadata struct {
	// Source is the canonical newspaper label, or "unknown".
	Source string
	// Date is the publication date embedded in the filename, nil when the
	// filename carries none. It is a hint, not a verified date.
	Date *time.Time
}

// MetadataFromFilename derives the newspaper and publication date from a
// scan filename such as "GP_12.06.2025.pdf".
func MetadataFromFilename(filename string) Metadata {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	meta := Metadata{Source: "unknown"}

	if m := filenameDatePattern.FindStringSubmatch(base); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			meta.Date = &d
		}
	}

	upper := strings.ToUpper(base)
	for _, marker := range sourceMarkers {
		for _, keyword := range marker.keywords {
			if strings.Contains(upper, keyword) {
				meta.Source = marker.source
				return meta
			}
		}
	}
	return meta
}
