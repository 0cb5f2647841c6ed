package extract

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hulondalo/warta/internal/database"
	"github.com/hulondalo/warta/internal/domain"
	"github.com/hulondalo/warta/internal/logger"
	"github.com/hulondalo/warta/internal/sector"
)

type captureSink struct {
	articles     []*domain.Article
	rejectTitles map[string]struct{}
}

func (s *captureSink) Insert(_ context.Context, article *domain.Article) error {
	if _, ok := s.rejectTitles[article.Title]; ok {
		return fmt.Errorf("%w: %s", database.ErrDuplicate, article.Title)
	}
	s.articles = append(s.articles, article)
	return nil
}

func newIngestor(t *testing.T, sink Sink) *Ingestor {
	t.Helper()
	classifier, err := sector.NewClassifier(sector.DefaultRules(), logger.NewNoOp())
	require.NoError(t, err)
	return NewIngestor(sink, classifier, logger.NewNoOp())
}

func TestIngestPersistsRecords(t *testing.T) {
	sink := &captureSink{}
	ingestor := newIngestor(t, sink)
	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	saved, err := ingestor.Ingest(context.Background(), []Record{
		{Judul: "Panen Jagung Meningkat", Konten: "hasil panen para petani naik", Kategori: "A1", Halaman: "1", Sumber: "Gorontalo Post"},
		{Judul: "Sekolah Kekurangan Guru", Konten: "sejumlah sekolah kekurangan guru", Kategori: "", Halaman: "2", Sumber: "Gorontalo Post"},
	}, &date)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	require.Len(t, sink.articles, 2)

	first := sink.articles[0]
	assert.Equal(t, "Panen Jagung Meningkat", first.Title)
	assert.Equal(t, "Gorontalo Post", first.Source)
	assert.Equal(t, "1", first.Halaman)
	assert.Equal(t, string(sector.A1), first.KategoriBPS)
	assert.Equal(t, "2025-06-12", first.DateString())

	// Without a usable hint the classifier falls back to the text.
	assert.Equal(t, string(sector.P), sink.articles[1].KategoriBPS)
}

func TestIngestHintOverridesText(t *testing.T) {
	sink := &captureSink{}
	ingestor := newIngestor(t, sink)

	// The hint names mining even though the text talks about fishing.
	saved, err := ingestor.Ingest(context.Background(), []Record{
		{Judul: "Produksi Tambang Naik", Konten: "para nelayan ikut terdampak", Kategori: "B - Pertambangan", Halaman: "1", Sumber: "Habari.id"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.Equal(t, string(sector.B), sink.articles[0].KategoriBPS)
}

func TestIngestNilDate(t *testing.T) {
	sink := &captureSink{}
	ingestor := newIngestor(t, sink)

	saved, err := ingestor.Ingest(context.Background(), []Record{
		{Judul: "Artikel Tanpa Tanggal Terbit", Konten: "isi", Kategori: "", Halaman: "3", Sumber: "unknown"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.Nil(t, sink.articles[0].Date)
}

func TestIngestSkipsUntitledAndDuplicates(t *testing.T) {
	sink := &captureSink{rejectTitles: map[string]struct{}{"Sudah Tersimpan": {}}}
	ingestor := newIngestor(t, sink)

	saved, err := ingestor.Ingest(context.Background(), []Record{
		{Judul: "   ", Konten: "isi tanpa judul", Halaman: "1"},
		{Judul: "Sudah Tersimpan", Konten: "isi", Halaman: "2"},
		{Judul: "Artikel Baru Sama Sekali", Konten: "isi", Halaman: "3"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	require.Len(t, sink.articles, 1)
	assert.Equal(t, "Artikel Baru Sama Sekali", sink.articles[0].Title)
}

func TestIngestMergesBeforePersisting(t *testing.T) {
	sink := &captureSink{}
	ingestor := newIngestor(t, sink)

	saved, err := ingestor.Ingest(context.Background(), []Record{
		{Judul: "Anggaran Daerah Disahkan DPRD", Konten: "Bagian pertama.", Halaman: "1", Sumber: "Gorontalo Post"},
		{Judul: "Anggaran Daerah Disahkan DPRD", Konten: "Lanjutan bagian kedua.", Halaman: "2", Sumber: "Gorontalo Post"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	require.Len(t, sink.articles, 1)
	assert.Equal(t, "1,2", sink.articles[0].Halaman)
}
