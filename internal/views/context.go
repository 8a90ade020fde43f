package views

import "net/http"

// Context — окружение ключ/значение, передаваемое шаблону.
// Строится заново на каждый запрос и никогда не переиспользуется:
// одно представление обслуживает много конкурентных запросов.
type Context map[string]any

// ContextProcessor добавляет в контекст сквозные данные окружения
// (настройки сайта, текущий пользователь и т.п.).
type ContextProcessor func(r *http.Request) Context

// newContext собирает базовый контекст запроса: сначала процессоры,
// поверх них представление кладёт свои записи.
func newContext(r *http.Request, processors []ContextProcessor) Context {
	c := Context{}
	for _, proc := range processors {
		for k, v := range proc(r) {
			c[k] = v
		}
	}
	return c
}

func (c Context) merge(other Context) {
	for k, v := range other {
		c[k] = v
	}
}
