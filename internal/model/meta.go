package model

import "github.com/Leganyst/press-archive/internal/queryset"

// ArticleMeta — метаданные сущности Article для слоя представлений:
// шаблон по конвенции "press/article_<суффикс>.html",
// ключ контекста "articles".
func ArticleMeta() queryset.Meta {
	return queryset.Meta{
		AppLabel:          "press",
		ObjectName:        "Article",
		VerboseName:       "article",
		VerboseNamePlural: "articles",
	}
}
