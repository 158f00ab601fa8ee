package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lumenik/install-client/model"
)

// SortOrder is a catalog display ordering.
type SortOrder string

const (
	SortNewest       SortOrder = "nuevo"
	SortSizeAsc      SortOrder = "peso-menor"
	SortSizeDesc     SortOrder = "peso-mayor"
	SortAlphabetical SortOrder = "alfabetico"
)

type (
	// Browser is the paged search/sort view over a Cache. Changing the
	// filter or the order resets the cursor to the first page.
	Browser struct {
		cache    *Cache
		pageSize int
		search   string
		order    SortOrder
		page     int

		filtered model.GameList
	}
)

// NewBrowser creates a browser over the cache.
func NewBrowser(cache *Cache, pageSize int) (*Browser, error) {
	if cache == nil {
		return nil, fmt.Errorf("%s: must be set", "cache")
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%s: must be GTE 1", "pageSize")
	}

	b := &Browser{
		cache:    cache,
		pageSize: pageSize,
		order:    SortNewest,
		page:     1,
	}
	b.rebuild()

	return b, nil
}

// Refresh re-reads the cache keeping search/order/page where possible.
func (b *Browser) Refresh() {
	page := b.page
	b.rebuild()
	if page <= b.PageCount() {
		b.page = page
	}
}

// SetSearch filters by a case-insensitive name fragment.
func (b *Browser) SetSearch(text string) {
	b.search = text
	b.rebuild()
}

// SetOrder changes the display ordering.
func (b *Browser) SetOrder(order SortOrder) {
	b.order = order
	b.rebuild()
}

// Reset drops search/order/page back to their defaults.
func (b *Browser) Reset() {
	b.search = ""
	b.order = SortNewest
	b.rebuild()
}

// Page returns the items of the current page.
func (b *Browser) Page() model.GameList {
	start := (b.page - 1) * b.pageSize
	if start >= len(b.filtered) {
		return nil
	}

	end := start + b.pageSize
	if end > len(b.filtered) {
		end = len(b.filtered)
	}

	return b.filtered[start:end]
}

// PageNum returns the current 1-based page number.
func (b *Browser) PageNum() int {
	return b.page
}

// PageCount returns the number of pages (at least 1).
func (b *Browser) PageCount() int {
	if len(b.filtered) == 0 {
		return 1
	}

	return (len(b.filtered) + b.pageSize - 1) / b.pageSize
}

// Next advances one page; it reports whether the cursor moved.
func (b *Browser) Next() bool {
	if b.page >= b.PageCount() {
		return false
	}
	b.page++

	return true
}

// Prev goes back one page; it reports whether the cursor moved.
func (b *Browser) Prev() bool {
	if b.page <= 1 {
		return false
	}
	b.page--

	return true
}

// rebuild refilters and resorts the view; the cursor goes back to page 1.
func (b *Browser) rebuild() {
	items := b.cache.Snapshot()

	if b.search != "" {
		needle := strings.ToLower(b.search)
		filtered := make(model.GameList, 0, len(items))
		for _, g := range items {
			if strings.Contains(strings.ToLower(g.Name), needle) {
				filtered = append(filtered, g)
			}
		}
		items = filtered
	}

	switch b.order {
	case SortNewest:
		// backend order is oldest-first: show the newest additions first
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	case SortSizeAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].SizeGB < items[j].SizeGB })
	case SortSizeDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].SizeGB > items[j].SizeGB })
	case SortAlphabetical:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	}

	b.filtered = items
	b.page = 1
}
