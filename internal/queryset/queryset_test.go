package queryset_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/press-archive/internal/queryset"
)

// Локальная тестовая сущность, чтобы не тянуть модели приложения.
type entry struct {
	ID          int `gorm:"primaryKey"`
	Title       string
	PublishedAt time.Time
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := `CREATE TABLE entries (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		published_at DATETIME NOT NULL
	);`
	if err := db.Exec(schema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}

	return db
}

func seed(t *testing.T, db *gorm.DB, rows ...entry) {
	t.Helper()
	for _, row := range rows {
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed entry %d: %v", row.ID, err)
		}
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entryQS(db *gorm.DB) *queryset.Queryset[entry] {
	return queryset.New[entry](db, queryset.Meta{})
}

func TestFilterAndCount(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		entry{ID: 1, Title: "a", PublishedAt: day(2023, time.January, 15)},
		entry{ID: 2, Title: "b", PublishedAt: day(2023, time.March, 10)},
	)

	qs := entryQS(db).Filter("published_at < ?", day(2023, time.February, 1))

	n, err := qs.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	rows, err := qs.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("expected row 1, got %v", rows)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		entry{ID: 1, Title: "a", PublishedAt: day(2023, time.January, 15)},
		entry{ID: 2, Title: "b", PublishedAt: day(2023, time.March, 10)},
	)

	base := entryQS(db)
	filtered := base.Clone().Filter("id = ?", 1)

	n, err := filtered.Count(context.Background())
	if err != nil {
		t.Fatalf("count filtered: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected filtered count 1, got %d", n)
	}

	// Базовый набор не затронут фильтром клона.
	n, err = base.Count(context.Background())
	if err != nil {
		t.Fatalf("count base: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected base count 2, got %d", n)
	}
}

func TestGet(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		entry{ID: 1, Title: "dup", PublishedAt: day(2023, time.January, 15)},
		entry{ID: 2, Title: "dup", PublishedAt: day(2023, time.March, 10)},
		entry{ID: 3, Title: "single", PublishedAt: day(2023, time.April, 1)},
	)

	ctx := context.Background()

	row, err := entryQS(db).Filter("title = ?", "single").Get(ctx)
	if err != nil {
		t.Fatalf("get single: %v", err)
	}
	if row.ID != 3 {
		t.Fatalf("expected row 3, got %v", row)
	}

	_, err = entryQS(db).Filter("title = ?", "missing").Get(ctx)
	if !errors.Is(err, queryset.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}

	_, err = entryQS(db).Filter("title = ?", "dup").Get(ctx)
	if !errors.Is(err, queryset.ErrMultipleObjects) {
		t.Fatalf("expected ErrMultipleObjects, got %v", err)
	}
}

func TestFirstWithOrder(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		entry{ID: 1, Title: "old", PublishedAt: day(2023, time.January, 15)},
		entry{ID: 2, Title: "new", PublishedAt: day(2023, time.March, 10)},
	)

	row, err := entryQS(db).OrderBy("published_at DESC").First(context.Background())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if row.Title != "new" {
		t.Fatalf("expected newest row first, got %v", row)
	}

	_, err = entryQS(db).Filter("id > ?", 100).First(context.Background())
	if !errors.Is(err, queryset.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestFirstDate(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		entry{ID: 1, Title: "old", PublishedAt: day(2023, time.January, 15)},
		entry{ID: 2, Title: "new", PublishedAt: day(2023, time.March, 10)},
	)

	ts, err := entryQS(db).OrderBy("published_at ASC").FirstDate(context.Background(), "published_at")
	if err != nil {
		t.Fatalf("first date: %v", err)
	}
	if !ts.Equal(day(2023, time.January, 15)) {
		t.Fatalf("expected 2023-01-15, got %v", ts)
	}

	_, err = entryQS(db).Filter("id > ?", 100).FirstDate(context.Background(), "published_at")
	if !errors.Is(err, queryset.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestDates(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		entry{ID: 1, Title: "a", PublishedAt: day(2023, time.March, 10)},
		entry{ID: 2, Title: "b", PublishedAt: day(2023, time.March, 25)},
		entry{ID: 3, Title: "c", PublishedAt: day(2023, time.January, 15)},
	)

	ctx := context.Background()

	// Месяцы: дубликаты схлопнуты, порядок по возрастанию.
	months, err := entryQS(db).Dates(ctx, "published_at", queryset.GranularityMonth)
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if len(months) != 2 ||
		!months[0].Equal(day(2023, time.January, 1)) ||
		!months[1].Equal(day(2023, time.March, 1)) {
		t.Fatalf("expected [January, March], got %v", months)
	}

	years, err := entryQS(db).Dates(ctx, "published_at", queryset.GranularityYear)
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if len(years) != 1 || !years[0].Equal(day(2023, time.January, 1)) {
		t.Fatalf("expected [2023], got %v", years)
	}

	days, err := entryQS(db).Dates(ctx, "published_at", queryset.GranularityDay)
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	if len(days) != 3 || !days[0].Equal(day(2023, time.January, 15)) {
		t.Fatalf("expected 3 ascending days, got %v", days)
	}
}

func TestMetaDefined(t *testing.T) {
	if (queryset.Meta{}).Defined() {
		t.Fatalf("empty meta must not be defined")
	}
	if !(queryset.Meta{ObjectName: "Entry"}).Defined() {
		t.Fatalf("meta with object name must be defined")
	}
}
