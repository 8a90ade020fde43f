package views

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/press-archive/internal/model"
	"github.com/Leganyst/press-archive/internal/queryset"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Minimal schema for the view logic (sqlite-friendly).
	schema := []string{
		`CREATE TABLE articles (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			body TEXT,
			template TEXT,
			status TEXT NOT NULL,
			published_at DATETIME NOT NULL,
			meta TEXT,
			author_id TEXT,
			section_id TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

func seedArticle(t *testing.T, db *gorm.DB, title, slug string, published time.Time) model.Article {
	t.Helper()

	a := model.Article{
		ID:          uuid.New(),
		Title:       title,
		Slug:        slug,
		Status:      model.ArticleStatusPublished,
		PublishedAt: published,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed article %q: %v", slug, err)
	}
	return a
}

func articleQS(db *gorm.DB) *queryset.Queryset[model.Article] {
	return queryset.New[model.Article](db, model.ArticleMeta())
}

func mustDate(t *testing.T, year int, month time.Month, day int) time.Time {
	t.Helper()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// stubLoader запоминает предложенные кандидаты и отдаёт шаблон,
// который записывает отрендеренный контекст.
type stubLoader struct {
	selected []string
	rendered Context
}

func (l *stubLoader) Select(names []string) (Template, error) {
	l.selected = names
	return &stubTemplate{loader: l}, nil
}

type stubTemplate struct {
	loader *stubLoader
}

func (s *stubTemplate) Render(c Context) (string, error) {
	s.loader.rendered = c
	return "rendered", nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
