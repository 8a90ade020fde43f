package views

import (
	"context"
	"log"

	"github.com/Leganyst/press-archive/internal/queryset"
)

// ListView рендерит список объектов: либо queryset, либо обычный срез.
// Хранит только конфигурацию и коллабораторов; всё производное от
// запроса живёт в локальных переменных Serve.
type ListView[T any] struct {
	cfg    Config
	qs     *queryset.Queryset[T]
	items  []T
	loader Loader
}

// NewListView — списковое представление поверх queryset.
func NewListView[T any](qs *queryset.Queryset[T], loader Loader, cfg Config) *ListView[T] {
	return &ListView[T]{cfg: cfg, qs: qs, loader: loader}
}

// NewStaticListView — списковое представление поверх готового среза.
func NewStaticListView[T any](items []T, loader Loader, cfg Config) *ListView[T] {
	if items == nil {
		items = []T{}
	}
	return &ListView[T]{cfg: cfg, items: items, loader: loader}
}

func (v *ListView[T]) Serve(ctx context.Context, req *Request) (*Response, error) {
	items, err := v.getItems(ctx)
	if err != nil {
		return nil, err
	}

	paginator, page, pageItems, err := v.paginate(items, req.Page)
	if err != nil {
		return nil, err
	}

	names, err := templateNames(v.cfg, nil, v.meta(), "list")
	if err != nil {
		return nil, err
	}

	c := newContext(req.HTTP, v.cfg.ContextProcessors)
	fillListContext(c, v.cfg, v.meta(), pageItems, paginator, page)

	return render(v.loader, names, c, v.cfg.ContentType)
}

// getItems возвращает коллекцию представления. Должно быть задано
// ровно одно из queryset/items; queryset клонируется, чтобы не трогать
// общий для всех запросов экземпляр.
func (v *ListView[T]) getItems(ctx context.Context) ([]T, error) {
	switch {
	case v.qs != nil && v.items != nil:
		return nil, misconfiguredf("list view must define either queryset or items, not both")
	case v.qs != nil:
		return v.qs.Clone().All(ctx)
	case v.items != nil:
		return v.items, nil
	default:
		return nil, misconfiguredf("list view must define queryset or items")
	}
}

// paginate разбивает коллекцию на страницы, если задан размер страницы.
func (v *ListView[T]) paginate(items []T, token string) (*Paginator, *Page[T], []T, error) {
	if v.cfg.PaginateBy == 0 {
		if !v.cfg.AllowEmpty && len(items) == 0 {
			return nil, nil, nil, notFoundf("empty list and allow_empty is false")
		}
		return nil, nil, items, nil
	}

	paginator, page, err := Paginate(items, v.cfg.PaginateBy, v.cfg.AllowEmpty, token)
	if err != nil {
		return nil, nil, nil, err
	}
	return paginator, page, page.Items, nil
}

func (v *ListView[T]) meta() *queryset.Meta {
	if v.qs == nil {
		return nil
	}
	m := v.qs.Meta()
	return &m
}

// listObjectName — имя именованного ключа коллекции в контексте:
// явное имя с суффиксом "_list", иначе множественное имя сущности,
// иначе пусто (у плоских коллекций именованного ключа нет).
func listObjectName(cfg Config, meta *queryset.Meta) string {
	if cfg.TemplateObjectName != "" {
		return cfg.TemplateObjectName + "_list"
	}
	if meta != nil && meta.Defined() {
		return meta.VerboseNamePlural
	}
	return ""
}

// fillListContext кладёт в контекст стандартные ключи спискового
// представления и, в legacy-режиме, плоские ключи пагинации.
func fillListContext[T any](c Context, cfg Config, meta *queryset.Meta, items []T, paginator *Paginator, page *Page[T]) {
	c["object_list"] = items
	c["is_paginated"] = paginator != nil
	if paginator != nil {
		c["paginator"] = paginator
		c["page_obj"] = page
	} else {
		c["paginator"] = nil
		c["page_obj"] = nil
	}

	if name := listObjectName(cfg, meta); name != "" {
		c[name] = items
	}

	if paginator != nil && cfg.LegacyContext {
		log.Printf("WARN: legacy pagination context variables are deprecated; set legacy_context to false and use page_obj instead")
		c.merge(legacyPaginatedContext(paginator, page))
	}
}

// legacyPaginatedContext — плоские ключи пагинации для старых шаблонов.
// Новые шаблоны должны использовать page_obj.
func legacyPaginatedContext[T any](paginator *Paginator, page *Page[T]) Context {
	return Context{
		"is_paginated":     page.HasOtherPages(),
		"results_per_page": paginator.PerPage,
		"has_next":         page.HasNext(),
		"has_previous":     page.HasPrevious(),
		"page":             page.Number,
		"next":             page.NextPageNumber(),
		"previous":         page.PreviousPageNumber(),
		"first_on_page":    page.StartIndex(),
		"last_on_page":     page.EndIndex(),
		"pages":            paginator.NumPages,
		"hits":             paginator.Count,
		"page_range":       paginator.PageRange(),
	}
}
