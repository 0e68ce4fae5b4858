package components

import "strings"

// Pager holds an entity collection and derives the visible page from a
// free-text filter and a 1-based page index. It starts in a loading phase
// during which it serves zero-value placeholder rows so tables keep stable
// dimensions; loading ends exactly once, when the initial fetch completes.
//
// The same type backs the accounts table, the products table, and the
// account picker embedded in the product form; only the page size and the
// match projection differ.
type Pager[T any] struct {
	items    []T
	match    func(T, string) bool
	filter   string
	page     int
	pageSize int
	loading  bool
	cursor   int
}

// NewPager creates a pager in its loading phase. match projects an entity's
// searchable fields against a lowercased filter term.
func NewPager[T any](pageSize int, match func(T, string) bool) *Pager[T] {
	return &Pager[T]{
		match:    match,
		page:     1,
		pageSize: pageSize,
		loading:  true,
	}
}

// SetItems replaces the collection and ends the loading phase.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.loading = false
	p.cursor = 0
}

// EndLoading ends the loading phase without data, after a failed initial
// fetch. The collection stays empty.
func (p *Pager[T]) EndLoading() {
	p.loading = false
}

// Loading reports whether the pager is still in its placeholder phase.
func (p *Pager[T]) Loading() bool {
	return p.loading
}

// Items returns the full held collection.
func (p *Pager[T]) Items() []T {
	return p.items
}

// Len returns the size of the full collection.
func (p *Pager[T]) Len() int {
	return len(p.items)
}

// Append adds a confirmed entity to the end of the collection.
func (p *Pager[T]) Append(item T) {
	p.items = append(p.items, item)
}

// Patch replaces the first entity matching pred with fn applied to it and
// reports whether a match was found.
func (p *Pager[T]) Patch(pred func(T) bool, fn func(T) T) bool {
	for i, item := range p.items {
		if pred(item) {
			p.items[i] = fn(item)
			return true
		}
	}
	return false
}

// SetFilter replaces the filter text. The page index is deliberately left
// alone: landing past the last page after the result set shrinks is a
// user-visible state, not an error.
func (p *Pager[T]) SetFilter(text string) {
	p.filter = text
}

// Filter returns the current filter text.
func (p *Pager[T]) Filter() string {
	return p.filter
}

// Filtered returns the collection filtered by case-insensitive substring
// match through the projection.
func (p *Pager[T]) Filtered() []T {
	if p.filter == "" || p.match == nil {
		return p.items
	}
	term := strings.ToLower(p.filter)
	var out []T
	for _, item := range p.items {
		if p.match(item, term) {
			out = append(out, item)
		}
	}
	return out
}

// FilteredLen returns the number of entities passing the filter.
func (p *Pager[T]) FilteredLen() int {
	return len(p.Filtered())
}

// PageCount returns ceil(filteredLen / pageSize), minimum 0.
func (p *Pager[T]) PageCount() int {
	return (p.FilteredLen() + p.pageSize - 1) / p.pageSize
}

// Page returns the current 1-based page index.
func (p *Pager[T]) Page() int {
	return p.page
}

// PageSize returns the fixed page size.
func (p *Pager[T]) PageSize() int {
	return p.pageSize
}

// NextPage advances one page, clamped at the current page count.
func (p *Pager[T]) NextPage() {
	if p.page < p.PageCount() {
		p.page++
		p.cursor = 0
	}
}

// PrevPage goes back one page, clamped at 1.
func (p *Pager[T]) PrevPage() {
	if p.page > 1 {
		p.page--
		p.cursor = 0
	}
}

// Visible returns the current page of the filtered collection. While
// loading it returns pageSize zero-value placeholders instead of data; a
// page index beyond the filtered page count yields an empty slice.
func (p *Pager[T]) Visible() []T {
	if p.loading {
		return make([]T, p.pageSize)
	}
	filtered := p.Filtered()
	start := (p.page - 1) * p.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + p.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Cursor returns the row index within the visible page, clamped to it.
func (p *Pager[T]) Cursor() int {
	visible := len(p.Visible())
	if visible == 0 {
		return 0
	}
	if p.cursor >= visible {
		return visible - 1
	}
	return p.cursor
}

// CursorDown moves the cursor down within the visible page.
func (p *Pager[T]) CursorDown() {
	if p.cursor < len(p.Visible())-1 {
		p.cursor++
	}
}

// CursorUp moves the cursor up within the visible page.
func (p *Pager[T]) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// Selected returns the entity under the cursor, if any real one is there.
func (p *Pager[T]) Selected() (T, bool) {
	var zero T
	if p.loading {
		return zero, false
	}
	visible := p.Visible()
	cursor := p.Cursor()
	if cursor >= len(visible) {
		return zero, false
	}
	return visible[cursor], true
}
