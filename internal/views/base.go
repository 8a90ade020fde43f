package views

import (
	"context"
	"net/http"

	"github.com/Leganyst/press-archive/internal/queryset"
)

// Request — входные параметры представления: исходный HTTP-запрос
// плюс извлечённые маршрутизатором параметры пути и страницы.
type Request struct {
	HTTP *http.Request

	PK       string
	Slug     string
	ObjectID string // устаревший синоним PK

	Year  string
	Month string
	Week  string

	Page string
}

// Response — результат рендеринга представления.
type Response struct {
	Status      int
	ContentType string
	Headers     map[string]string
	Body        string
}

// View — представление, вызываемое слоем маршрутизации.
type View interface {
	Serve(ctx context.Context, req *Request) (*Response, error)
}

// render — общий хвост конвейера: подобрать шаблон по списку имён,
// отрендерить контекст, завернуть в ответ.
func render(loader Loader, names []string, c Context, contentType string) (*Response, error) {
	tmpl, err := loader.Select(names)
	if err != nil {
		return nil, err
	}

	body, err := tmpl.Render(c)
	if err != nil {
		return nil, err
	}

	return &Response{
		Status:      http.StatusOK,
		ContentType: contentType,
		Headers:     map[string]string{},
		Body:        body,
	}, nil
}

// populateObjectHeaders добавляет к ответу диагностические заголовки
// с типом и идентификатором разрешённого объекта.
// Для объектов без метаданных модели ничего не делает.
func populateObjectHeaders(resp *Response, meta queryset.Meta, obj any) {
	if !meta.Defined() {
		return
	}
	pk := primaryKey(obj)
	if pk == "" {
		return
	}
	resp.Headers["X-Object-Type"] = meta.AppLabel + "." + meta.ObjectName
	resp.Headers["X-Object-Id"] = pk
}
