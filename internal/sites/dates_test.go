package sites

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Senin, 2 Juni 2025 10:30 WIB", "2025-06-02"},
		{"Jumat, 15 Agustus 2025 07:05 WITA", "2025-08-15"},
		{"Rabu, 01 Oktober 2025", "2025-10-01"},
		{"17 Desember 2024", "2024-12-17"},
		{"2025-06-10T08:30:00+08:00", "2025-06-10"},
		{"2025-06-10T08:30:00Z", "2025-06-10"},
		{"2025-06-10", "2025-06-10"},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got.Format("2006-01-02"), "raw=%q", tt.raw)
		assert.Equal(t, time.UTC, got.Location())
		assert.Equal(t, 0, got.Hour())
	}
}

func TestParseDateErrors(t *testing.T) {
	for _, raw := range []string{"", "   ", "kemarin sore", "13/06/2025"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestDateFromURL(t *testing.T) {
	date, ok := DateFromURL("https://gopos.id/2025/06/08/harga-beras-naik/")
	require.True(t, ok)
	assert.Equal(t, "2025-06-08", date.Format("2006-01-02"))

	_, ok = DateFromURL("https://gopos.id/berita/harga-beras-naik/")
	assert.False(t, ok)

	_, ok = DateFromURL("https://gopos.id/2025/66/08/harga/")
	assert.False(t, ok)
}
