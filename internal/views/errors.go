package views

import (
	"errors"
	"fmt"
)

// Таксономия ошибок слоя представлений. Представления ничего не
// ретраят: каждая ошибка — либо клиентский 404, либо ошибка
// конфигурации/маршрутизации, которую транспортный слой отдаёт как 500.
var (
	// Объект, страница или период отсутствуют; транспорт отвечает 404.
	ErrNotFound = errors.New("not found")
	// Обязательная опция представления не задана.
	ErrMisconfigured = errors.New("view is misconfigured")
	// Детальное представление вызвано без pk и без slug —
	// это ошибка маршрутизации, а не 404.
	ErrMissingLookup = errors.New("detail view must be called with either a pk or a slug")
	// Неизвестный ключ в настройках представления.
	ErrUnknownOption = errors.New("unknown view option")
)

func notFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func misconfiguredf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrMisconfigured)...)
}
