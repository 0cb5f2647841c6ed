package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		source   string
		date     string
	}{
		{"GP_12.06.2025.pdf", "Gorontalo Post", "2025-06-12"},
		{"scans/GORONTALOPOST-01-07-2025.pdf", "Gorontalo Post", "2025-07-01"},
		{"gosulut_3.6.2025.pdf", "GOSULUT.ID", "2025-06-03"},
		{"HABARI 12.06.2025.pdf", "Habari.id", "2025-06-12"},
		{"rakyatgorontalo_edisi.pdf", "RakyatGorontalo.com", ""},
		{"koran_tanpa_sumber_12.06.2025.pdf", "unknown", "2025-06-12"},
		{"scan001.pdf", "unknown", ""},
	}

	for _, tt := range tests {
		meta := MetadataFromFilename(tt.filename)
		assert.Equal(t, tt.source, meta.Source, "filename=%q", tt.filename)
		if tt.date == "" {
			assert.Nil(t, meta.Date, "filename=%q", tt.filename)
		} else {
			require.NotNil(t, meta.Date, "filename=%q", tt.filename)
			assert.Equal(t, tt.date, meta.Date.Format("2006-01-02"), "filename=%q", tt.filename)
		}
	}
}

func TestMetadataFromFilenameRejectsImpossibleDate(t *testing.T) {
	meta := MetadataFromFilename("GP_40.13.2025.pdf")
	assert.Nil(t, meta.Date)
}
