package extract

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hulondalo/warta/internal/database"
	"github.com/hulondalo/warta/internal/domain"
	"github.com/hulondalo/warta/internal/logger"
	"github.com/hulondalo/warta/internal/sector"
)

// Sink persists extracted articles. database.ArticleRepository is the
// production implementation.
type Sink interface {
	Insert(ctx context.Context, article *domain.Article) error
}

// Classifier resolves the sector code for a record, honoring the category
// hint the extraction service already produced.
type Classifier interface {
	Classify(text, hint string) sector.Code
}

// Ingestor turns extraction records into stored articles.
type Ingestor struct {
	sink       Sink
	classifier Classifier
	log        logger.Interface
}

// NewIngestor wires an ingestor.
func NewIngestor(sink Sink, classifier Classifier, log logger.Interface) *Ingestor {
	return &Ingestor{sink: sink, classifier: classifier, log: log}
}

// Ingest merges and persists extraction records. The date applies to every
// record and may be nil; a scan date can rarely be verified. It returns the
// number of newly stored articles.
func (i *Ingestor) Ingest(ctx context.Context, records []Record, date *time.Time) (int, error) {
	saved := 0
	for _, record := range MergeContinued(records) {
		if err := ctx.Err(); err != nil {
			return saved, err
		}

		title := strings.TrimSpace(record.Judul)
		if title == "" {
			i.log.Warn("Skipping extraction record without a title", "halaman", record.Halaman)
			continue
		}

		code := i.classifier.Classify(title+" "+record.Konten, record.Kategori)
		article := &domain.Article{
			Title:             title,
			Contents:          record.Konten,
			Reporter:          domain.ReporterUnknown,
			Source:            record.Sumber,
			Date:              date,
			KategoriBPS:       string(code),
			KategoriBPSDetail: sector.Label(code),
			Halaman:           record.Halaman,
		}

		if err := i.sink.Insert(ctx, article); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				i.log.Debug("Skipping duplicate extracted article", "title", title)
				continue
			}
			return saved, err
		}
		saved++
		i.log.Info("Extracted article saved",
			"title", title,
			"halaman", article.Halaman,
			"kategori_bps", article.KategoriBPS,
		)
	}
	return saved, nil
}
