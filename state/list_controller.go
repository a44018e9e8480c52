package state

import (
	"context"
	"sync"

	"CineReel.com/interaction"
	"CineReel.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Phase is the controller's fetch lifecycle. Failures always fall back to
// the phase the controller was in before the fetch started, so the UI never
// observes a stuck loading state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseLoadingMore
)

// ListController owns one ordered, id-keyed collection (a post's comments or
// a comment's replies) and mutates it locally without waiting on the
// network. Canonical server entities flow in through Load/LoadMore and
// through Add after a successful create.
type ListController[T interaction.Entity] struct {
	mu      sync.Mutex
	pager   *interaction.Paginator[T]
	items   []T
	index   map[int64]int
	phase   Phase
	lastErr error
	closed  bool
}

func NewListController[T interaction.Entity](load interaction.PageFunc[T]) *ListController[T] {
	return &ListController[T]{
		pager: interaction.NewPaginator[T](load),
		index: make(map[int64]int),
		phase: PhaseIdle,
	}
}

// Load fetches the first page. Safe to call once per mount; a second call
// while ready delegates to LoadMore semantics via the shared fetch path.
func (lc *ListController[T]) Load(ctx context.Context) error {
	return lc.fetch(ctx, PhaseLoading)
}

// LoadMore appends the next page. A no-op once the collection is complete.
func (lc *ListController[T]) LoadMore(ctx context.Context) error {
	return lc.fetch(ctx, PhaseLoadingMore)
}

func (lc *ListController[T]) fetch(ctx context.Context, during Phase) error {
	lc.mu.Lock()
	if lc.closed {
		lc.mu.Unlock()
		return nil
	}
	if !lc.pager.HasMore() {
		lc.mu.Unlock()
		return nil
	}
	prev := lc.phase
	lc.phase = during
	lc.mu.Unlock()

	// The network round-trip happens outside the lock; distinct controllers
	// and their requests proceed independently.
	items, err := lc.pager.Next(ctx)

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.closed {
		// Unmounted while in flight: the response is stale, drop it.
		return nil
	}
	if err != nil {
		lc.phase = prev
		lc.lastErr = err
		hlog.Warnf("list fetch failed: %v", err)
		return err
	}
	for _, item := range items {
		lc.appendLocked(item)
	}
	lc.phase = PhaseReady
	lc.lastErr = nil
	return nil
}

func (lc *ListController[T]) appendLocked(item T) {
	id := item.EntityID()
	if pos, ok := lc.index[id]; ok {
		lc.items[pos] = item
		return
	}
	lc.index[id] = len(lc.items)
	lc.items = append(lc.items, item)
}

// Add inserts an entity at the tail. Local position is a display
// approximation; canonical order is whatever the next full fetch returns.
func (lc *ListController[T]) Add(item T) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.closed {
		return
	}
	lc.appendLocked(item)
	if lc.phase == PhaseIdle {
		lc.phase = PhaseReady
	}
}

// Update applies a patch to the entity matching id. An absent id leaves the
// collection untouched and reports NotFoundErr.
func (lc *ListController[T]) Update(id int64, apply func(T) T) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.closed {
		return nil
	}
	pos, ok := lc.index[id]
	if !ok {
		hlog.Warnf("update for unknown entity %d ignored", id)
		return errno.NotFoundErr.WithMessage("entity not present in collection")
	}
	lc.items[pos] = apply(lc.items[pos])
	return nil
}

// Remove drops the entity matching id. Removing an absent id is a no-op;
// any parent-side bookkeeping (reply counts) belongs to the caller.
func (lc *ListController[T]) Remove(id int64) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.closed {
		return
	}
	pos, ok := lc.index[id]
	if !ok {
		return
	}
	lc.items = append(lc.items[:pos], lc.items[pos+1:]...)
	delete(lc.index, id)
	for i := pos; i < len(lc.items); i++ {
		lc.index[lc.items[i].EntityID()] = i
	}
	lc.pager.Forget(id)
}

// Get returns the entity for id, if present.
func (lc *ListController[T]) Get(id int64) (T, bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	var zero T
	pos, ok := lc.index[id]
	if !ok {
		return zero, false
	}
	return lc.items[pos], true
}

// Items returns a copy of the collection in display order.
func (lc *ListController[T]) Items() []T {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	out := make([]T, len(lc.items))
	copy(out, lc.items)
	return out
}

func (lc *ListController[T]) Len() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return len(lc.items)
}

func (lc *ListController[T]) HasMore() bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.pager.HasMore()
}

func (lc *ListController[T]) Phase() Phase {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.phase
}

// Err returns the error from the most recent failed fetch, cleared by the
// next successful one.
func (lc *ListController[T]) Err() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.lastErr
}

// Close marks the controller unmounted. Responses that arrive afterwards
// are discarded instead of mutating stale state.
func (lc *ListController[T]) Close() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.closed = true
}
