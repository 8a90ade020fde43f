package views

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Leganyst/press-archive/internal/model"
)

//
// Порядок кандидатов: от самого специфичного к самому общему.
//

func TestTemplateNames_FullChain(t *testing.T) {
	cfg := ListDefaults()
	cfg.TemplateNameField = "Template"
	cfg.TemplateNames = []string{"extras/a.html", "extras/b.html"}
	cfg.TemplateName = "c.html"

	obj := model.Article{Template: "custom.html"}
	meta := model.ArticleMeta()

	names, err := templateNames(cfg, obj, &meta, "detail")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"custom.html",
		"extras/a.html",
		"extras/b.html",
		"c.html",
		"press/article_detail.html",
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestTemplateNames_EmptyFieldSkipped(t *testing.T) {
	cfg := ListDefaults()
	cfg.TemplateNameField = "Template"

	obj := model.Article{}
	meta := model.ArticleMeta()

	names, err := templateNames(cfg, obj, &meta, "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"press/article_list.html"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestTemplateNames_NoMetaNoConvention(t *testing.T) {
	cfg := ListDefaults()
	cfg.TemplateName = "static.html"

	names, err := templateNames(cfg, nil, nil, "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"static.html"}) {
		t.Fatalf("expected [static.html], got %v", names)
	}
}

func TestTemplateNames_NothingConfigured(t *testing.T) {
	cfg := ListDefaults()

	_, err := templateNames(cfg, nil, nil, "list")
	if !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}

//
// DirLoader: выигрывает первый существующий файл.
//

func TestDirLoader_FirstExistingWins(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "press"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	second := filepath.Join(root, "press", "article_list.html")
	if err := os.WriteFile(second, []byte("<p>{{.title}}</p>"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	loader := NewDirLoader(root)
	tmpl, err := loader.Select([]string{"missing.html", "press/article_list.html"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := tmpl.Render(Context{"title": "Новости"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<p>Новости</p>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDirLoader_NoneExist(t *testing.T) {
	loader := NewDirLoader(t.TempDir())

	if _, err := loader.Select([]string{"a.html", "b.html"}); err == nil {
		t.Fatalf("expected error when no candidate exists")
	}
}
