package views

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/Leganyst/press-archive/internal/queryset"
)

// Template — загруженный шаблон, готовый к рендерингу контекста.
type Template interface {
	Render(c Context) (string, error)
}

// Loader подбирает шаблон по списку кандидатов:
// выигрывает первое существующее имя.
type Loader interface {
	Select(names []string) (Template, error)
}

// DirLoader загружает шаблоны из каталога на диске.
type DirLoader struct {
	Root  string
	Funcs template.FuncMap
}

func NewDirLoader(root string) *DirLoader {
	return &DirLoader{Root: root}
}

func (l *DirLoader) Select(names []string) (Template, error) {
	for _, name := range names {
		path := filepath.Join(l.Root, filepath.FromSlash(name))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		tmpl, err := template.New(filepath.Base(path)).Funcs(l.Funcs).ParseFiles(path)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		return &htmlTemplate{tmpl: tmpl}, nil
	}
	return nil, fmt.Errorf("no template found among %v", names)
}

type htmlTemplate struct {
	tmpl *template.Template
}

func (t *htmlTemplate) Render(c Context) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, map[string]any(c)); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// templateNames строит упорядоченный список кандидатов, от самого
// специфичного к самому общему:
//  1. значение поля TemplateNameField разрешённого объекта;
//  2. явный список TemplateNames;
//  3. явное имя TemplateName;
//  4. имя по конвенции "<app>/<object>_<suffix>.html" — только когда
//     коллекция несёт метаданные модели.
//
// Пустой итоговый список — ошибка конфигурации.
func templateNames(cfg Config, obj any, meta *queryset.Meta, suffix string) ([]string, error) {
	var names []string

	if cfg.TemplateNameField != "" && obj != nil {
		if name := fieldString(obj, cfg.TemplateNameField); name != "" {
			names = append(names, name)
		}
	}

	names = append(names, cfg.TemplateNames...)

	if cfg.TemplateName != "" {
		names = append(names, cfg.TemplateName)
	}

	if meta != nil && meta.Defined() {
		names = append(names, fmt.Sprintf("%s/%s_%s.html",
			meta.AppLabel, strings.ToLower(meta.ObjectName), suffix))
	}

	if len(names) == 0 {
		return nil, misconfiguredf("view must provide template_name")
	}
	return names, nil
}
