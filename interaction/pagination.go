package interaction

import (
	"context"

	"CineReel.com/pkg/errno"
)

// Entity is anything with a stable server-assigned identifier. The paginator
// keys its de-duplication on it.
type Entity interface {
	EntityID() int64
}

// Page is one bounded window over an ordered collection. NextCursor is
// opaque; the empty string means the backend offered no continuation.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor"`
	HasMore    bool   `json:"has_more"`
}

// PageFunc fetches the page starting at cursor for one fixed resource
// (the resource id is captured when the closure is built).
type PageFunc[T any] func(ctx context.Context, cursor string) (*Page[T], error)

// Paginator walks a paginated collection one page at a time. Accumulation is
// idempotent: an id that already came through an earlier page is dropped
// silently, so overlapping or re-fetched pages never duplicate items.
type Paginator[T Entity] struct {
	load    PageFunc[T]
	cursor  string
	hasMore bool
	seen    map[int64]struct{}
}

func NewPaginator[T Entity](load PageFunc[T]) *Paginator[T] {
	return &Paginator[T]{
		load:    load,
		hasMore: true,
		seen:    make(map[int64]struct{}),
	}
}

// HasMore reports whether another fetch can yield items. Once false it
// stays false.
func (p *Paginator[T]) HasMore() bool { return p.hasMore }

// Next fetches the next page and returns its new items in arrival order.
// After the terminal page no request is issued. On error the paginator is
// left exactly as it was, so the caller can retry the same page.
func (p *Paginator[T]) Next(ctx context.Context) ([]T, error) {
	if !p.hasMore {
		return nil, nil
	}

	page, err := p.load(ctx, p.cursor)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errno.RequestErr.WithMessage("empty page response")
	}

	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		id := item.EntityID()
		if _, dup := p.seen[id]; dup {
			continue
		}
		p.seen[id] = struct{}{}
		items = append(items, item)
	}

	p.cursor = page.NextCursor
	p.hasMore = page.HasMore
	return items, nil
}

// Forget removes an id from the seen set so a later page may legitimately
// re-introduce it, e.g. after the caller removed the entity locally.
func (p *Paginator[T]) Forget(id int64) {
	delete(p.seen, id)
}
