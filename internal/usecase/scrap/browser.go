package scrap

import (
	"slices"
	"sync"
	"time"

	"newspulse/internal/common/debounce"
	"newspulse/internal/domain/entity"
)

// DefaultSearchDebounce is the idle window before a typed search applies.
const DefaultSearchDebounce = 350 * time.Millisecond

// View is what a scrap list screen renders.
type View struct {
	Items       []entity.ScrapRecord
	Categories  []entity.Category
	EmptyReason entity.EmptyReason
	Query       Query
}

// Browser holds a member's unfiltered scraps and the current query, and
// publishes a new View whenever the effective query or the list changes.
// Search input is debounced; category and sort changes apply at once.
type Browser struct {
	ranker    CategoryRanker
	debouncer *debounce.Debouncer

	mu          sync.Mutex
	items       []entity.ScrapRecord
	query       Query
	view        View
	subscribers []func(View)

	publishMu sync.Mutex
}

// NewBrowser creates a Browser. opts configure the search debouncer.
func NewBrowser(ranker CategoryRanker, wait time.Duration, opts ...debounce.Option) *Browser {
	if wait <= 0 {
		wait = DefaultSearchDebounce
	}
	b := &Browser{
		ranker:    ranker,
		debouncer: debounce.New(wait, opts...),
		query:     Query{Sort: SortDesc},
	}
	b.view = b.compute()
	return b
}

// Subscribe registers fn to receive every published View.
// fn runs synchronously and must not change the Browser.
func (b *Browser) Subscribe(fn func(View)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// View returns the most recently computed View.
func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// SetItems replaces the unfiltered list.
func (b *Browser) SetItems(items []entity.ScrapRecord) {
	b.update(func() { b.items = slices.Clone(items) })
}

// Remove drops a scrap from the list after it was unscrapped.
func (b *Browser) Remove(newsID string) {
	b.update(func() {
		b.items = slices.DeleteFunc(slices.Clone(b.items), func(r entity.ScrapRecord) bool {
			return r.NewsID == newsID
		})
	})
}

// SetCategory filters by category. Empty selects all.
func (b *Browser) SetCategory(category string) {
	b.update(func() { b.query.Category = category })
}

// SetSort changes the sort order.
func (b *Browser) SetSort(order SortOrder) {
	b.update(func() { b.query.Sort = order })
}

// SetSearch schedules a search query. Only the last value typed within one
// idle window takes effect.
func (b *Browser) SetSearch(search string) {
	b.debouncer.Trigger(func() {
		b.update(func() { b.query.Search = search })
	})
}

// Flush applies a pending search immediately.
func (b *Browser) Flush() {
	b.debouncer.Flush()
}

// Close discards a pending search.
func (b *Browser) Close() {
	b.debouncer.Stop()
}

func (b *Browser) update(mutate func()) {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	b.mu.Lock()
	mutate()
	b.view = b.compute()
	view := b.view
	subs := slices.Clone(b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(view)
	}
}

// compute derives the View. Callers hold b.mu.
func (b *Browser) compute() View {
	filtered := Compute(b.items, b.query)
	return View{
		Items:       filtered,
		Categories:  Categories(b.items, b.ranker),
		EmptyReason: EmptyReasonFor(len(b.items), len(filtered)),
		Query:       b.query,
	}
}
