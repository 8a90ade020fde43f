package views

import (
	"context"
	"errors"
	"log"

	"github.com/Leganyst/press-archive/internal/queryset"
)

// DetailView рендерит один объект, найденный по первичному ключу
// или по slug.
type DetailView[T any] struct {
	cfg    Config
	qs     *queryset.Queryset[T]
	loader Loader
}

func NewDetailView[T any](qs *queryset.Queryset[T], loader Loader, cfg Config) *DetailView[T] {
	return &DetailView[T]{cfg: cfg, qs: qs, loader: loader}
}

func (v *DetailView[T]) Serve(ctx context.Context, req *Request) (*Response, error) {
	obj, err := v.getObject(ctx, req)
	if err != nil {
		return nil, err
	}

	meta := v.qs.Meta()

	names, err := templateNames(v.cfg, obj, &meta, "detail")
	if err != nil {
		return nil, err
	}

	c := newContext(req.HTTP, v.cfg.ContextProcessors)
	c["object"] = obj
	if name := v.objectName(meta); name != "" {
		c[name] = obj
	}

	resp, err := render(v.loader, names, c, v.cfg.ContentType)
	if err != nil {
		return nil, err
	}
	populateObjectHeaders(resp, meta, obj)
	return resp, nil
}

// getObject разрешает целевой объект. Порядок поиска: pk, затем slug,
// затем устаревший object_id (эквивалент pk). Ни одного идентификатора —
// ошибка маршрутизации, а не 404.
func (v *DetailView[T]) getObject(ctx context.Context, req *Request) (*T, error) {
	if v.qs == nil {
		return nil, misconfiguredf("detail view must define queryset")
	}

	qs := v.qs.Clone()
	switch {
	case req.PK != "":
		qs = qs.Filter(v.pkField()+" = ?", req.PK)
	case req.Slug != "":
		qs = qs.Filter(v.slugField()+" = ?", req.Slug)
	case req.ObjectID != "":
		log.Printf("WARN: the object_id parameter to detail views is deprecated, use pk instead")
		qs = qs.Filter(v.pkField()+" = ?", req.ObjectID)
	default:
		return nil, ErrMissingLookup
	}

	obj, err := qs.Get(ctx)
	if errors.Is(err, queryset.ErrObjectNotFound) {
		return nil, notFoundf("no %s found matching the query", v.qs.Meta().VerboseName)
	}
	// ErrMultipleObjects и прочие ошибки поиска уходят наверх как есть.
	return obj, err
}

func (v *DetailView[T]) pkField() string {
	if v.cfg.PKField != "" {
		return v.cfg.PKField
	}
	return "id"
}

func (v *DetailView[T]) slugField() string {
	if v.cfg.SlugField != "" {
		return v.cfg.SlugField
	}
	return "slug"
}

// objectName — именованный ключ объекта в контексте: явное имя,
// иначе имя из метаданных; у объектов без метаданных остаётся
// только общий ключ "object".
func (v *DetailView[T]) objectName(meta queryset.Meta) string {
	if v.cfg.TemplateObjectName != "" {
		return v.cfg.TemplateObjectName
	}
	if meta.Defined() {
		return contextName(meta)
	}
	return ""
}
