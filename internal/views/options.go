package views

import (
	"fmt"
	"time"
)

// Config — полный набор опций обобщённого представления.
// Конфигурация неизменяема после регистрации представления: всё
// производное от запроса живёт в локальных переменных обработчика,
// на самом представлении состояние запроса не хранится.
type Config struct {
	// Явное имя шаблона.
	TemplateName string
	// Явный список дополнительных имён шаблонов (приоритетнее TemplateName).
	TemplateNames []string
	// Имя поля объекта, значение которого используется как самое
	// специфичное имя шаблона (имя Go-поля, например "Template").
	TemplateNameField string
	// Явное имя объекта в контексте шаблона.
	TemplateObjectName string

	// Колонка первичного ключа и колонка slug для детального поиска.
	PKField   string
	SlugField string

	// Размер страницы; 0 — без пагинации.
	PaginateBy int
	// Пустой результат — валидный ответ (true) или 404 (false).
	AllowEmpty bool
	// Показывать ли строки с датой в будущем.
	AllowFuture bool

	// Колонка даты для архивных представлений.
	DateField string
	// Сколько свежих материалов показывает верхний уровень архива.
	NumLatest int
	// Включать ли полный список строк в годовой архив.
	MakeObjectList bool
	// Формат месяца в URL в синтаксисе time.Parse ("Jan" или "01").
	MonthFormat string

	// Плоские legacy-ключи пагинации в контексте (устаревшие).
	LegacyContext bool

	ContentType       string
	ContextProcessors []ContextProcessor

	// Источник текущего времени; в тестах подменяется.
	Now func() time.Time
}

// ListDefaults — значения опций спискового представления по умолчанию.
func ListDefaults() Config {
	return Config{
		PKField:       "id",
		SlugField:     "slug",
		AllowEmpty:    true,
		NumLatest:     15,
		MonthFormat:   "Jan",
		LegacyContext: true,
		ContentType:   "text/html; charset=utf-8",
		Now:           time.Now,
	}
}

// ArchiveDefaults — значения по умолчанию для архивных представлений:
// пустой период — 404, legacy-контекст не используется.
func ArchiveDefaults() Config {
	cfg := ListDefaults()
	cfg.AllowEmpty = false
	cfg.LegacyContext = false
	return cfg
}

// Apply накладывает на конфигурацию переопределения по именам опций.
// Неизвестный ключ или значение не того типа — ошибка с именем ключа.
func (c *Config) Apply(settings map[string]any) error {
	for key, val := range settings {
		var err error
		switch key {
		case "template_name":
			c.TemplateName, err = optString(key, val)
		case "template_names":
			c.TemplateNames, err = optStrings(key, val)
		case "template_name_field":
			c.TemplateNameField, err = optString(key, val)
		case "template_object_name":
			c.TemplateObjectName, err = optString(key, val)
		case "pk_field":
			c.PKField, err = optString(key, val)
		case "slug_field":
			c.SlugField, err = optString(key, val)
		case "paginate_by":
			c.PaginateBy, err = optInt(key, val)
		case "allow_empty":
			c.AllowEmpty, err = optBool(key, val)
		case "allow_future":
			c.AllowFuture, err = optBool(key, val)
		case "date_field":
			c.DateField, err = optString(key, val)
		case "num_latest":
			c.NumLatest, err = optInt(key, val)
		case "make_object_list":
			c.MakeObjectList, err = optBool(key, val)
		case "month_format":
			c.MonthFormat, err = optString(key, val)
		case "legacy_context":
			c.LegacyContext, err = optBool(key, val)
		case "content_type":
			c.ContentType, err = optString(key, val)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownOption, key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func optString(key string, val any) (string, error) {
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("option %q: expected string, got %T", key, val)
	}
	return s, nil
}

func optStrings(key string, val any) ([]string, error) {
	ss, ok := val.([]string)
	if !ok {
		return nil, fmt.Errorf("option %q: expected []string, got %T", key, val)
	}
	return ss, nil
}

func optInt(key string, val any) (int, error) {
	n, ok := val.(int)
	if !ok {
		return 0, fmt.Errorf("option %q: expected int, got %T", key, val)
	}
	return n, nil
}

func optBool(key string, val any) (bool, error) {
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("option %q: expected bool, got %T", key, val)
	}
	return b, nil
}
