package domain

// MaxCategories is the number of distinct store names offered as category shortcuts
const MaxCategories = 5

// Product represents one catalog item returned by the search API
type Product struct {
	ID                  string `json:"id" validate:"required"`
	Title               string `json:"title" validate:"required"`
	Image               string `json:"image,omitempty"`
	StoreName           string `json:"storeName"`
	Price               string `json:"price,omitempty"`
	Rating              string `json:"rating,omitempty"`
	ReviewCount         string `json:"reviewCount,omitempty"`
	Seller              string `json:"seller,omitempty"`
	Link                string `json:"link,omitempty"`
	DetailedDescription string `json:"detailedDescription,omitempty"`
}

// HasPrice reports whether the product carries a price string
func (p Product) HasPrice() bool {
	return p.Price != ""
}

// HasRating reports whether the product carries a rating string
func (p Product) HasRating() bool {
	return p.Rating != ""
}

// SearchResult is the settled outcome of one search lookup
type SearchResult struct {
	Products   []Product
	Categories []string // distinct store names, first-seen order
}

// NewSearchResult builds a result from a lookup response, keeping at most
// limit products (limit <= 0 keeps all) and maxCategories store names.
func NewSearchResult(products []Product, limit, maxCategories int) SearchResult {
	kept := products
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	out := make([]Product, len(kept))
	copy(out, kept)

	return SearchResult{
		Products:   out,
		Categories: StoreNames(products, maxCategories),
	}
}

// StoreNames returns the distinct store names of products in encounter order.
// A max of zero or less returns every distinct name.
func StoreNames(products []Product, max int) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range products {
		if p.StoreName == "" {
			continue
		}
		if _, ok := seen[p.StoreName]; ok {
			continue
		}
		seen[p.StoreName] = struct{}{}
		names = append(names, p.StoreName)
		if max > 0 && len(names) == max {
			break
		}
	}
	return names
}

// Empty reports whether the result has nothing to show
func (r SearchResult) Empty() bool {
	return len(r.Products) == 0
}
