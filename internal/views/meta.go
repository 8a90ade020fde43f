package views

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Leganyst/press-archive/internal/queryset"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// contextName строит ключ контекста из человекочитаемого имени сущности:
// нижний регистр, последовательности не-алфавитноцифровых символов
// схлопываются в "_".
func contextName(meta queryset.Meta) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(meta.VerboseName), "_")
}

// fieldString возвращает строковое значение поля структуры по имени.
// Пустая строка — поля нет или оно пустое.
func fieldString(obj any, field string) string {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}
	f := v.FieldByName(field)
	if !f.IsValid() || f.Kind() != reflect.String {
		return ""
	}
	return f.String()
}

// primaryKey возвращает строковое представление поля ID объекта
// для диагностических заголовков; пустая строка — поля нет.
func primaryKey(obj any) string {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}
	f := v.FieldByName("ID")
	if !f.IsValid() {
		return ""
	}
	return fmt.Sprint(f.Interface())
}
