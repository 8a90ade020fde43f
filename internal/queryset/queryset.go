package queryset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

var (
	// Запрос не нашёл ни одной строки.
	ErrObjectNotFound = errors.New("object not found")
	// Get ожидает ровно одну строку, а нашёл несколько.
	ErrMultipleObjects = errors.New("multiple objects returned")
)

// Гранулярность списка дат: год, месяц или день.
type DateGranularity string

const (
	GranularityYear  DateGranularity = "year"
	GranularityMonth DateGranularity = "month"
	GranularityDay   DateGranularity = "day"
)

// Метаданные сущности: из них строятся имена шаблонов по конвенции
// и ключи контекста рендеринга.
type Meta struct {
	AppLabel          string
	ObjectName        string
	VerboseName       string
	VerboseNamePlural string
}

// Defined сообщает, несёт ли набор метаданные модели.
// Для "плоских" коллекций без модели метаданных нет.
func (m Meta) Defined() bool {
	return m.ObjectName != ""
}

// Queryset — ленивый, фильтруемый и сортируемый дескриптор набора строк
// одной сущности. Каждый Filter/OrderBy/Limit возвращает новый Queryset,
// не трогая исходный: один и тот же базовый Queryset безопасно делить
// между конкурентными запросами.
type Queryset[T any] struct {
	db   *gorm.DB
	meta Meta
}

func New[T any](db *gorm.DB, meta Meta) *Queryset[T] {
	return &Queryset[T]{
		db:   db.Model(new(T)).Session(&gorm.Session{}),
		meta: meta,
	}
}

func (q *Queryset[T]) Meta() Meta {
	return q.meta
}

// Clone возвращает независимую копию набора.
func (q *Queryset[T]) Clone() *Queryset[T] {
	return &Queryset[T]{db: q.db.Session(&gorm.Session{}), meta: q.meta}
}

// Filter добавляет условие WHERE.
func (q *Queryset[T]) Filter(query string, args ...any) *Queryset[T] {
	return &Queryset[T]{
		db:   q.db.Where(query, args...).Session(&gorm.Session{}),
		meta: q.meta,
	}
}

// OrderBy добавляет условие сортировки, например "published_at DESC".
func (q *Queryset[T]) OrderBy(order string) *Queryset[T] {
	return &Queryset[T]{
		db:   q.db.Order(order).Session(&gorm.Session{}),
		meta: q.meta,
	}
}

// Limit ограничивает число возвращаемых строк.
func (q *Queryset[T]) Limit(n int) *Queryset[T] {
	return &Queryset[T]{
		db:   q.db.Limit(n).Session(&gorm.Session{}),
		meta: q.meta,
	}
}

// Count возвращает количество строк под текущими условиями.
func (q *Queryset[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.WithContext(ctx).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// All выполняет запрос и возвращает все строки.
func (q *Queryset[T]) All(ctx context.Context) ([]T, error) {
	var rows []T
	if err := q.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	return rows, nil
}

// First возвращает первую строку под текущими условиями
// или ErrObjectNotFound, если строк нет.
func (q *Queryset[T]) First(ctx context.Context) (*T, error) {
	var rows []T
	if err := q.db.WithContext(ctx).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("first: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrObjectNotFound
	}
	return &rows[0], nil
}

// Get возвращает ровно одну строку. Ноль строк — ErrObjectNotFound,
// больше одной — ErrMultipleObjects.
func (q *Queryset[T]) Get(ctx context.Context) (*T, error) {
	var rows []T
	if err := q.db.WithContext(ctx).Limit(2).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	switch len(rows) {
	case 0:
		return nil, ErrObjectNotFound
	case 1:
		return &rows[0], nil
	default:
		return nil, ErrMultipleObjects
	}
}

// FirstDate возвращает значение поля-даты первой строки под текущими
// условиями (с учётом OrderBy) или ErrObjectNotFound.
func (q *Queryset[T]) FirstDate(ctx context.Context, field string) (time.Time, error) {
	var stamps []time.Time
	if err := q.db.WithContext(ctx).Limit(1).Pluck(field, &stamps).Error; err != nil {
		return time.Time{}, fmt.Errorf("pluck %s: %w", field, err)
	}
	if len(stamps) == 0 {
		return time.Time{}, ErrObjectNotFound
	}
	return stamps[0].UTC(), nil
}

// Dates возвращает упорядоченный по возрастанию список различных дат
// поля field, усечённых до заданной гранулярности.
//
// Усечение выполняется на стороне приложения: диалекты считают
// date_trunc/strftime по-разному, а набор различных значений одного
// индексированного поля невелик.
func (q *Queryset[T]) Dates(ctx context.Context, field string, gran DateGranularity) ([]time.Time, error) {
	var stamps []time.Time
	if err := q.db.WithContext(ctx).Pluck(field, &stamps).Error; err != nil {
		return nil, fmt.Errorf("pluck %s: %w", field, err)
	}

	seen := make(map[time.Time]struct{}, len(stamps))
	dates := make([]time.Time, 0, len(stamps))
	for _, ts := range stamps {
		d := truncateDate(ts.UTC(), gran)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func truncateDate(t time.Time, gran DateGranularity) time.Time {
	switch gran {
	case GranularityYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}
