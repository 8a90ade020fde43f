package views

import (
	"context"
	"errors"
	"time"

	"github.com/Leganyst/press-archive/internal/queryset"
)

// dateScope — общая часть архивных представлений: queryset, поле даты
// и политики allow_empty/allow_future. Конкретные представления
// (архив, год, месяц, неделя) добавляют своё окно дат и навигацию.
type dateScope[T any] struct {
	cfg    Config
	qs     *queryset.Queryset[T]
	loader Loader
}

// base возвращает клон queryset без каких-либо фильтров.
func (d *dateScope[T]) base() (*queryset.Queryset[T], error) {
	if d.qs == nil {
		return nil, misconfiguredf("date view must define queryset")
	}
	if d.cfg.DateField == "" {
		return nil, misconfiguredf("date view must define date_field")
	}
	return d.qs.Clone(), nil
}

func (d *dateScope[T]) now() time.Time {
	if d.cfg.Now != nil {
		return d.cfg.Now()
	}
	return time.Now()
}

func (d *dateScope[T]) meta() *queryset.Meta {
	if d.qs == nil {
		return nil
	}
	m := d.qs.Meta()
	return &m
}

// dated возвращает queryset, ограниченный окном дат и политиками:
// без allow_future отсекаются строки с датой позже "сейчас",
// без allow_empty пустой набор — 404.
func (d *dateScope[T]) dated(ctx context.Context, window *DateWindow) (*queryset.Queryset[T], error) {
	qs, err := d.base()
	if err != nil {
		return nil, err
	}

	field := d.cfg.DateField
	if window != nil {
		qs = qs.Filter(field+" >= ?", window.Start).Filter(field+" < ?", window.End)
	}
	if !d.cfg.AllowFuture {
		qs = qs.Filter(field+" <= ?", d.now())
	}

	if !d.cfg.AllowEmpty {
		n, err := qs.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, notFoundf("no %s available", d.pluralName())
		}
	}

	return qs, nil
}

// dateList возвращает различные даты набора по убыванию,
// с проверкой allow_empty.
func (d *dateScope[T]) dateList(ctx context.Context, qs *queryset.Queryset[T], gran queryset.DateGranularity) ([]time.Time, error) {
	dates, err := qs.Dates(ctx, d.cfg.DateField, gran)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 && !d.cfg.AllowEmpty {
		return nil, notFoundf("no %s available", d.pluralName())
	}

	// от новых к старым
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates, nil
}

func (d *dateScope[T]) pluralName() string {
	if m := d.meta(); m != nil && m.Defined() {
		return m.VerboseNamePlural
	}
	return "objects"
}

func (d *dateScope[T]) serveDated(req *Request, suffix string, fill func(c Context)) (*Response, error) {
	names, err := templateNames(d.cfg, nil, d.meta(), suffix)
	if err != nil {
		return nil, err
	}

	c := newContext(req.HTTP, d.cfg.ContextProcessors)
	fill(c)

	return render(d.loader, names, c, d.cfg.ContentType)
}

// ArchiveView — верхний уровень архива: список лет, в которых есть
// материалы, плюс несколько самых свежих материалов.
type ArchiveView[T any] struct {
	dateScope[T]
}

func NewArchiveView[T any](qs *queryset.Queryset[T], loader Loader, cfg Config) *ArchiveView[T] {
	return &ArchiveView[T]{dateScope[T]{cfg: cfg, qs: qs, loader: loader}}
}

func (v *ArchiveView[T]) Serve(ctx context.Context, req *Request) (*Response, error) {
	qs, err := v.dated(ctx, nil)
	if err != nil {
		return nil, err
	}

	dates, err := v.dateList(ctx, qs, queryset.GranularityYear)
	if err != nil {
		return nil, err
	}

	var latest []T
	if len(dates) > 0 && v.cfg.NumLatest > 0 {
		latest, err = qs.Clone().OrderBy(v.cfg.DateField + " DESC").Limit(v.cfg.NumLatest).All(ctx)
		if err != nil {
			return nil, err
		}
	}

	return v.serveDated(req, "archive", func(c Context) {
		c["date_list"] = dates
		// именованный ключ здесь без суффикса "_list": свежие материалы
		// доступны шаблону как "latest"
		listCfg := v.cfg
		listCfg.TemplateObjectName = ""
		fillListContext(c, listCfg, nil, latest, nil, nil)
		name := v.cfg.TemplateObjectName
		if name == "" {
			name = "latest"
		}
		c[name] = latest
	})
}

// YearView — материалы заданного года и список месяцев, в которых
// они есть.
type YearView[T any] struct {
	dateScope[T]
}

func NewYearView[T any](qs *queryset.Queryset[T], loader Loader, cfg Config) *YearView[T] {
	return &YearView[T]{dateScope[T]{cfg: cfg, qs: qs, loader: loader}}
}

func (v *YearView[T]) Serve(ctx context.Context, req *Request) (*Response, error) {
	year, err := intFromToken(req.Year, "year")
	if err != nil {
		return nil, err
	}

	window := DateWindow{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	qs, err := v.dated(ctx, &window)
	if err != nil {
		return nil, err
	}

	dates, err := v.dateList(ctx, qs, queryset.GranularityMonth)
	if err != nil {
		return nil, err
	}

	// Полный список строк года опционален: без make_object_list
	// в контекст уходит пустая заглушка.
	items := []T{}
	if v.cfg.MakeObjectList {
		items, err = qs.Clone().OrderBy(v.cfg.DateField + " DESC").All(ctx)
		if err != nil {
			return nil, err
		}
	}

	return v.serveDated(req, "archive_year", func(c Context) {
		c["year"] = year
		c["date_list"] = dates
		fillListContext(c, v.cfg, v.meta(), items, nil, nil)
	})
}

// MonthView — материалы календарного месяца плюс навигация на
// соседние месяцы с учётом политик allow_empty и allow_future.
type MonthView[T any] struct {
	dateScope[T]
}

func NewMonthView[T any](qs *queryset.Queryset[T], loader Loader, cfg Config) *MonthView[T] {
	return &MonthView[T]{dateScope[T]{cfg: cfg, qs: qs, loader: loader}}
}

func (v *MonthView[T]) Serve(ctx context.Context, req *Request) (*Response, error) {
	date, err := dateFromTokens(req.Year, req.Month, v.cfg.MonthFormat)
	if err != nil {
		return nil, err
	}

	window := monthWindow(date)
	qs, err := v.dated(ctx, &window)
	if err != nil {
		return nil, err
	}

	dates, err := v.dateList(ctx, qs, queryset.GranularityDay)
	if err != nil {
		return nil, err
	}

	items, err := qs.All(ctx)
	if err != nil {
		return nil, err
	}

	// Навигация вычисляется один раз на запрос и кладётся в контекст
	// значением; на самом представлении ничего не кэшируется.
	next, err := v.nextMonth(ctx, date)
	if err != nil {
		return nil, err
	}
	prev, err := v.previousMonth(ctx, date)
	if err != nil {
		return nil, err
	}

	return v.serveDated(req, "archive_month", func(c Context) {
		c["month"] = date
		c["next_month"] = next
		c["previous_month"] = prev
		c["date_list"] = dates
		fillListContext(c, v.cfg, v.meta(), items, nil, nil)
	})
}

// nextMonth возвращает следующий месяц для навигации или nil.
//
// Наивный кандидат — следующий календарный месяц; с allow_empty он
// принимается без запроса. Без allow_empty ищется ближайшая строка
// с датой не раньше границы, и берётся её месяц; строк нет — nil.
// В обоих случаях кандидат в будущем при запрете будущего — nil.
func (v *MonthView[T]) nextMonth(ctx context.Context, date time.Time) (*time.Time, error) {
	candidate := monthWindow(date).End

	if !v.cfg.AllowEmpty {
		qs, err := v.base()
		if err != nil {
			return nil, err
		}
		field := v.cfg.DateField
		ts, err := qs.Filter(field+" >= ?", candidate).OrderBy(field + " ASC").FirstDate(ctx, field)
		if errors.Is(err, queryset.ErrObjectNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		candidate = monthStart(ts)
	}

	return checkDate(candidate, v.cfg.AllowFuture, v.now()), nil
}

// previousMonth — зеркальный вариант nextMonth: ближайшая строка
// с датой не позже границы предыдущего месяца.
func (v *MonthView[T]) previousMonth(ctx context.Context, date time.Time) (*time.Time, error) {
	candidate := monthStart(monthWindow(date).Start.AddDate(0, 0, -1))

	if !v.cfg.AllowEmpty {
		qs, err := v.base()
		if err != nil {
			return nil, err
		}
		field := v.cfg.DateField
		ts, err := qs.Filter(field+" <= ?", candidate).OrderBy(field + " DESC").FirstDate(ctx, field)
		if errors.Is(err, queryset.ErrObjectNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		candidate = monthStart(ts)
	}

	return checkDate(candidate, v.cfg.AllowFuture, v.now()), nil
}

// WeekView — материалы одной недели.
type WeekView[T any] struct {
	dateScope[T]
}

func NewWeekView[T any](qs *queryset.Queryset[T], loader Loader, cfg Config) *WeekView[T] {
	return &WeekView[T]{dateScope[T]{cfg: cfg, qs: qs, loader: loader}}
}

func (v *WeekView[T]) Serve(ctx context.Context, req *Request) (*Response, error) {
	year, err := intFromToken(req.Year, "year")
	if err != nil {
		return nil, err
	}
	week, err := intFromToken(req.Week, "week")
	if err != nil {
		return nil, err
	}

	start, err := weekStartDate(year, week)
	if err != nil {
		return nil, err
	}

	window := weekWindow(start)
	qs, err := v.dated(ctx, &window)
	if err != nil {
		return nil, err
	}

	items, err := qs.All(ctx)
	if err != nil {
		return nil, err
	}

	// Недельный архив рендерится шаблоном годового архива.
	return v.serveDated(req, "archive_year", func(c Context) {
		c["week"] = start
		c["date_list"] = nil
		fillListContext(c, v.cfg, v.meta(), items, nil, nil)
	})
}
