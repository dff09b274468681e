// Package pagination slices ordered sequences into numbered pages.
package pagination

import "strconv"

// Window describes which slice of an ordered sequence a page covers.
type Window struct {
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// NewWindow resolves the requested page against total items. A raw page
// number that is not a positive integer yields page 1, one past the end
// yields the last page. An empty sequence still has one (empty) page.
func NewWindow(total, size int, raw string) Window {
	if size < 1 {
		size = 1
	}
	if total < 0 {
		total = 0
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	number := ParseNumber(raw)
	if number > pages {
		number = pages
	}
	return Window{Number: number, Size: size, Total: total, TotalPages: pages}
}

// ParseNumber reads a page number from a query value.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (w Window) Offset() int { return (w.Number - 1) * w.Size }

func (w Window) HasOtherPages() bool { return w.TotalPages > 1 }
func (w Window) HasPrevious() bool   { return w.Number > 1 }
func (w Window) HasNext() bool       { return w.Number < w.TotalPages }
func (w Window) PreviousNumber() int { return w.Number - 1 }
func (w Window) NextNumber() int     { return w.Number + 1 }

// PageRange lists every page number, for rendering page links.
func (w Window) PageRange() []int {
	out := make([]int, w.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Page is one window of items.
type Page[T any] struct {
	Window
	Items []T
}

// Paginate cuts an in-memory slice. Feeds page in SQL instead and only use
// NewWindow.
func Paginate[T any](items []T, size int, raw string) Page[T] {
	w := NewWindow(len(items), size, raw)
	start := w.Offset()
	end := start + w.Size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Window: w, Items: items[start:end]}
}
