package views

import (
	"strconv"
	"strings"
	"time"
)

// DateWindow — полуоткрытый интервал [Start, End) по полю даты,
// ограничивающий архивное представление.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// monthWindow возвращает окно календарного месяца даты date:
// [первый день месяца, первый день следующего месяца).
func monthWindow(date time.Time) DateWindow {
	first := monthStart(date)
	return DateWindow{Start: first, End: first.AddDate(0, 1, 0)}
}

// weekWindow возвращает окно недели: [start, start+7 дней).
func weekWindow(start time.Time) DateWindow {
	return DateWindow{Start: start, End: start.AddDate(0, 0, 7)}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// checkDate применяет политику allow_future: кандидат строго позже
// сегодняшнего календарного дня и будущее запрещено — nil.
// Сравнение идёт по календарным дням, не по меткам времени.
func checkDate(candidate time.Time, allowFuture bool, now time.Time) *time.Time {
	day := time.Date(candidate.Year(), candidate.Month(), candidate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if allowFuture || day.Before(today) {
		return &day
	}
	return nil
}

// intFromToken парсит числовой параметр пути (год, номер недели).
// Токены даты — недоверенный клиентский ввод: любая ошибка парсинга — 404.
func intFromToken(token, what string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, notFoundf("invalid %s string %q", what, token)
	}
	return n, nil
}

// dateFromTokens парсит год и месяц в дату (первый день месяца).
// monthFormat — формат месяца в синтаксисе time.Parse, "Jan" или "01".
func dateFromTokens(year, month, monthFormat string) (time.Time, error) {
	if monthFormat == "" {
		monthFormat = "Jan"
	}
	token := month
	if strings.Contains(monthFormat, "Jan") && len(token) > 1 {
		// имена месяцев в URL обычно в нижнем регистре, time.Parse строг
		token = strings.ToUpper(token[:1]) + strings.ToLower(token[1:])
	}

	date, err := time.Parse("2006|"+monthFormat, year+"|"+token)
	if err != nil {
		return time.Time{}, notFoundf("invalid date string %q given format %q", year+"/"+month, monthFormat)
	}
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// weekStartDate возвращает первый день недели week года year.
// Недели считаются по американской схеме: неделя начинается
// с воскресенья, дни до первого воскресенья года — неделя 0.
func weekStartDate(year, week int) (time.Time, error) {
	if week < 1 || week > 53 {
		return time.Time{}, notFoundf("invalid week %d", week)
	}

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	firstSunday := jan1.AddDate(0, 0, (7-int(jan1.Weekday()))%7)

	start := firstSunday.AddDate(0, 0, (week-1)*7)
	if start.Year() > year {
		return time.Time{}, notFoundf("invalid week %d", week)
	}
	return start, nil
}
