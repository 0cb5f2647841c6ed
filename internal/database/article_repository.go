package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hulondalo/warta/internal/domain"
	"github.com/hulondalo/warta/internal/logger"
)

// ErrDuplicate signals a unique-constraint violation on insert. Callers
// treat it as "already ingested", not as a failure.
var ErrDuplicate = errors.New("article already exists")

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS news_articles (
	id                  BIGSERIAL PRIMARY KEY,
	date                DATE,
	title               TEXT NOT NULL,
	contents            TEXT NOT NULL DEFAULT '',
	reporter            VARCHAR(255) NOT NULL DEFAULT '-',
	sources             VARCHAR(100) NOT NULL DEFAULT '',
	links               TEXT NOT NULL DEFAULT '',
	impact              VARCHAR(100) NOT NULL DEFAULT '',
	sector              VARCHAR(100) NOT NULL DEFAULT '',
	sentiment           VARCHAR(50)  NOT NULL DEFAULT '',
	kategori_bps        VARCHAR(10)  NOT NULL DEFAULT 'UMUM',
	kategori_bps_detail VARCHAR(255) NOT NULL DEFAULT '',
	halaman             VARCHAR(50)  NOT NULL DEFAULT ''
);

CREATE UNIQUE INDEX IF NOT EXISTS news_articles_title_key
	ON news_articles (substring(title, 1, 255));

CREATE INDEX IF NOT EXISTS news_articles_date_idx ON news_articles (date);
CREATE INDEX IF NOT EXISTS news_articles_sources_idx ON news_articles (sources);
`

const insertQuery = `
INSERT INTO news_articles (
	date, title, contents, reporter, sources, links,
	impact, sector, sentiment, kategori_bps, kategori_bps_detail, halaman
) VALUES (
	:date, :title, :contents, :reporter, :sources, :links,
	:impact, :sector, :sentiment, :kategori_bps, :kategori_bps_detail, :halaman
) RETURNING id`

// ArticleRepository persists articles in the news_articles table. The title
// prefix carries the unique constraint; the link column is a secondary
// lookup key without one, matching how the dedup index treats the pair.
type ArticleRepository struct {
	db  *sqlx.DB
	log logger.Interface
}

// NewArticleRepository creates a repository backed by an open connection.
func NewArticleRepository(db *sqlx.DB, log logger.Interface) *ArticleRepository {
	return &ArticleRepository{db: db, log: log}
}

// EnsureSchema creates the table and its indexes when absent.
func (r *ArticleRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Insert stores one article and sets its generated ID. A unique-constraint
// hit maps to ErrDuplicate.
func (r *ArticleRepository) Insert(ctx context.Context, article *domain.Article) error {
	rows, err := r.db.NamedQueryContext(ctx, insertQuery, article)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicate, article.Title)
		}
		return fmt.Errorf("failed to insert article: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if scanErr := rows.Scan(&article.ID); scanErr != nil {
			return fmt.Errorf("failed to scan inserted id: %w", scanErr)
		}
	}
	return rows.Err()
}

// Exists reports whether an article with the same normalized title prefix
// or the same link is already stored.
func (r *ArticleRepository) Exists(ctx context.Context, title, link string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM news_articles
		 WHERE lower(substring(title, 1, 255)) = lower(substring($1, 1, 255))
		    OR links = $2`,
		title, link,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}
	return count > 0, nil
}

// LoadExistingKeys returns every stored title and link. The crawl
// controller seeds its in-memory dedup index from this once per run
// instead of querying per candidate.
func (r *ArticleRepository) LoadExistingKeys(ctx context.Context) (titles, links []string, err error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT title, links FROM news_articles`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load existing keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var title, link string
		if scanErr := rows.Scan(&title, &link); scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan key row: %w", scanErr)
		}
		titles = append(titles, title)
		links = append(links, link)
	}
	return titles, links, rows.Err()
}

// CountBySource returns stored article counts keyed by source label.
func (r *ArticleRepository) CountBySource(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT sources, COUNT(*) FROM news_articles GROUP BY sources`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if scanErr := rows.Scan(&source, &count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", scanErr)
		}
		counts[source] = count
	}
	return counts, rows.Err()
}

// ListByWindow returns articles dated within the inclusive window, newest
// first.
func (r *ArticleRepository) ListByWindow(ctx context.Context, window domain.Window) ([]domain.Article, error) {
	var articles []domain.Article
	err := r.db.SelectContext(ctx, &articles,
		`SELECT * FROM news_articles
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date DESC, id DESC`,
		window.Start, window.End,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}
