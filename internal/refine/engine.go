package refine

import (
	"cmp"
	"slices"

	"quickfind/internal/domain"
)

// Apply filters and sorts products according to state. The input slice is
// never modified; the result is always a fresh slice.
func Apply(products []domain.Product, state State) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, state) {
			out = append(out, p)
		}
	}
	Sort(out, state.Sort)
	return out
}

// Matches reports whether a product passes the store, price and rating filters
func Matches(p domain.Product, state State) bool {
	if len(state.Stores) > 0 {
		if _, ok := state.Stores[p.StoreName]; !ok {
			return false
		}
	}
	if state.Price != nil && p.HasPrice() {
		if !state.Price.Contains(ParseNumber(p.Price)) {
			return false
		}
	}
	if state.MinRating != nil {
		if !p.HasRating() || ParseNumber(p.Rating) < *state.MinRating {
			return false
		}
	}
	return true
}

// Sort orders products in place. The sort is stable so equal keys keep
// their relative order; relevance leaves the slice untouched.
func Sort(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(ParseNumber(a.Price), ParseNumber(b.Price))
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(ParseNumber(b.Price), ParseNumber(a.Price))
		})
	case SortRatingDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(ParseNumber(b.Rating), ParseNumber(a.Rating))
		})
	}
}
