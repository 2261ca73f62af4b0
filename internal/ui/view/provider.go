// Package view assembles the task and person pages from components and
// drives their navigation flows.
package view

import (
	"context"
	"fmt"

	"github.com/St1cky1/task-management/internal/entity"
)

// DataProvider is pulled by grids for one page of rows at a time. It keeps no
// state between calls.
type DataProvider[T any] interface {
	FetchPage(ctx context.Context, offset, limit int, sort []entity.Order) ([]T, int64, error)
}

type DataProviderFunc[T any] func(ctx context.Context, offset, limit int, sort []entity.Order) ([]T, int64, error)

func (f DataProviderFunc[T]) FetchPage(ctx context.Context, offset, limit int, sort []entity.Order) ([]T, int64, error) {
	return f(ctx, offset, limit, sort)
}

// Lister is a paged listing with a total count, as the services expose it.
type Lister[T any] interface {
	List(ctx context.Context, page entity.PageRequest) ([]T, error)
	Count(ctx context.Context) (int64, error)
}

// PagedProvider serves grid pulls from a Lister.
func PagedProvider[T any](l Lister[T]) DataProvider[T] {
	return DataProviderFunc[T](func(ctx context.Context, offset, limit int, sort []entity.Order) ([]T, int64, error) {
		items, err := l.List(ctx, entity.OffsetPageRequest(offset, limit, sort...))
		if err != nil {
			return nil, 0, err
		}
		total, err := l.Count(ctx)
		if err != nil {
			return nil, 0, err
		}
		return items, total, nil
	})
}

// Window is one fetched slice of a listing.
type Window[T any] struct {
	Items []T
	Total int64
	Page  entity.PageRequest
}

// HasMore reports whether rows beyond this window exist.
func (w Window[T]) HasMore() bool {
	return int64(w.Page.Offset()+len(w.Items)) < w.Total
}

// Fetch pulls the page described by page from p.
func Fetch[T any](ctx context.Context, p DataProvider[T], page entity.PageRequest) (Window[T], error) {
	page = page.Normalize()
	items, total, err := p.FetchPage(ctx, page.Offset(), page.Limit(), page.Sort)
	if err != nil {
		return Window[T]{}, fmt.Errorf("fetch page %d: %w", page.Page, err)
	}
	return Window[T]{Items: items, Total: total, Page: page}, nil
}

// FullWindow wraps an unpaged result set.
func FullWindow[T any](items []T) Window[T] {
	return Window[T]{Items: items, Total: int64(len(items)), Page: entity.NewPageRequest(0, entity.MaxPageSize)}
}

// allPeople reads every person for the combo boxes, page by page.
func allPeople(ctx context.Context, people Lister[entity.Person]) ([]entity.Person, error) {
	var out []entity.Person
	page := entity.NewPageRequest(0, entity.MaxPageSize, entity.Order{Property: "lastName", Direction: entity.Asc})
	for {
		items, err := people.List(ctx, page)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) < page.Limit() {
			return out, nil
		}
		page = page.Next()
	}
}
