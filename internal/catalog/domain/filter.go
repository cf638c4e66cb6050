package domain

import (
	"sort"
	"strings"
)

// Sort keys accepted by the shop page.
const (
	SortDefault   = "default"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// FilterSpec describes one catalog query: a category (or "All"), a free-text
// search and a sort key. The zero value passes every product through in
// storage order.
type FilterSpec struct {
	Category    string
	SearchQuery string
	SortKey     string
}

// Apply filters and sorts products according to the FilterSpec. Filtering runs
// before sorting, and the input slice is never mutated.
func (f FilterSpec) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))
	query := strings.ToLower(strings.TrimSpace(f.SearchQuery))

	for _, p := range products {
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.SortKey {
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortName:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
		})
	}

	return filtered
}

// matchesQuery reports whether the case-folded query appears in the name,
// the description or any tag.
func matchesQuery(p Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
