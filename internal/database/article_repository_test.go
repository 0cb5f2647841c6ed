package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hulondalo/warta/internal/database"
	"github.com/hulondalo/warta/internal/domain"
	"github.com/hulondalo/warta/internal/logger"
)

func newMockRepo(t *testing.T) (*database.ArticleRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")
	return database.NewArticleRepository(db, logger.NewNoOp()), mock
}

func TestArticleRepository_Insert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO news_articles").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	article := &domain.Article{
		Title:       "Panen Raya Dimulai",
		Contents:    "isi artikel",
		Reporter:    "Andi",
		Source:      "GoPOS.id",
		Link:        "https://gopos.id/2025/06/10/panen/",
		Date:        &date,
		KategoriBPS: "A1",
	}

	if err := repo.Insert(context.Background(), article); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if article.ID != 42 {
		t.Errorf("expected article.ID=42, got %d", article.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestArticleRepository_Insert_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO news_articles").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "news_articles_title_key"})

	article := &domain.Article{Title: "Sudah Ada"}
	err := repo.Insert(context.Background(), article)
	if !errors.Is(err, database.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestArticleRepository_Insert_OtherError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO news_articles").
		WillReturnError(errors.New("connection refused"))

	err := repo.Insert(context.Background(), &domain.Article{Title: "Apa Saja"})
	if err == nil || errors.Is(err, database.ErrDuplicate) {
		t.Fatalf("expected plain error, got %v", err)
	}
}

func TestArticleRepository_Exists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("Panen Raya Dimulai", "https://gopos.id/2025/06/10/panen/").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "Panen Raya Dimulai", "https://gopos.id/2025/06/10/panen/")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("expected exists=true")
	}
}

func TestArticleRepository_LoadExistingKeys(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT title, links FROM news_articles").
		WillReturnRows(sqlmock.NewRows([]string{"title", "links"}).
			AddRow("Judul Satu", "https://a.test/1").
			AddRow("Judul Dua", "https://a.test/2"))

	titles, links, err := repo.LoadExistingKeys(context.Background())
	if err != nil {
		t.Fatalf("LoadExistingKeys() error = %v", err)
	}
	if len(titles) != 2 || len(links) != 2 {
		t.Fatalf("expected 2 keys, got %d titles %d links", len(titles), len(links))
	}
	if titles[0] != "Judul Satu" || links[1] != "https://a.test/2" {
		t.Errorf("unexpected keys: %v %v", titles, links)
	}
}

func TestArticleRepository_CountBySource(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT sources, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"sources", "count"}).
			AddRow("GoPOS.id", 12).
			AddRow("Antara News", 7))

	counts, err := repo.CountBySource(context.Background())
	if err != nil {
		t.Fatalf("CountBySource() error = %v", err)
	}
	if counts["GoPOS.id"] != 12 || counts["Antara News"] != 7 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestArticleRepository_EnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS news_articles").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
}
