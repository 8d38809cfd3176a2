package refine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// SortKey selects the ordering of refined results
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
)

// SortOption describes a sort key for selectors
type SortOption struct {
	Key  SortKey
	Name string
}

var sortOptions = []SortOption{
	{SortRelevance, "Relevance"},
	{SortPriceAsc, "Price: Low to High"},
	{SortPriceDesc, "Price: High to Low"},
	{SortRatingDesc, "Highest Rated"},
}

// SortOptions returns the selectable sort keys in display order
func SortOptions() []SortOption {
	out := make([]SortOption, len(sortOptions))
	copy(out, sortOptions)
	return out
}

// Label returns the display name of the key
func (k SortKey) Label() string {
	for _, o := range sortOptions {
		if o.Key == k {
			return o.Name
		}
	}
	return string(k)
}

// ParseSortKey accepts canonical keys plus the short aliases
// price-low, price-high and rating. An empty string is relevance.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance":
		return SortRelevance, nil
	case "price-asc", "price-low":
		return SortPriceAsc, nil
	case "price-desc", "price-high":
		return SortPriceDesc, nil
	case "rating-desc", "rating":
		return SortRatingDesc, nil
	}
	return SortRelevance, fmt.Errorf("unknown sort key %q", s)
}

// PriceRange is an inclusive price bound
type PriceRange struct {
	Min float64
	Max float64
}

// NewPriceRange clamps negative bounds to zero and swaps inverted bounds
func NewPriceRange(min, max float64) *PriceRange {
	if min < 0 {
		min = 0
	}
	if max < 0 {
		max = 0
	}
	if max < min {
		min, max = max, min
	}
	return &PriceRange{Min: min, Max: max}
}

// Contains reports whether v lies within the range
func (r PriceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// String renders the range for display; an unbounded top reads "min+"
func (r PriceRange) String() string {
	if r.Max == math.MaxFloat64 {
		return fmt.Sprintf("%.2f+", r.Min)
	}
	return fmt.Sprintf("%.2f-%.2f", r.Min, r.Max)
}

// State holds the user-selected refinements for one result set.
// The zero value is the identity refinement.
type State struct {
	Sort      SortKey
	Stores    map[string]struct{}
	Price     *PriceRange
	MinRating *float64
}

// Reset restores the identity refinement
func (s *State) Reset() {
	*s = State{}
}

// IsDefault reports whether the state leaves results untouched
func (s State) IsDefault() bool {
	return (s.Sort == "" || s.Sort == SortRelevance) &&
		len(s.Stores) == 0 && s.Price == nil && s.MinRating == nil
}

// HasStore reports whether name is an active store filter
func (s State) HasStore(name string) bool {
	_, ok := s.Stores[name]
	return ok
}

// ToggleStore adds or removes a store from the active filter set
func (s *State) ToggleStore(name string) {
	if s.Stores == nil {
		s.Stores = make(map[string]struct{})
	}
	if _, ok := s.Stores[name]; ok {
		delete(s.Stores, name)
		return
	}
	s.Stores[name] = struct{}{}
}

// SetMinRating sets the rating threshold; a nil value clears it
func (s *State) SetMinRating(v *float64) {
	if v == nil {
		s.MinRating = nil
		return
	}
	r := *v
	s.MinRating = &r
}

// ActiveStores returns the active store names sorted for display
func (s State) ActiveStores() []string {
	names := make([]string, 0, len(s.Stores))
	for name := range s.Stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy
func (s State) Clone() State {
	out := State{Sort: s.Sort}
	if len(s.Stores) > 0 {
		out.Stores = make(map[string]struct{}, len(s.Stores))
		for k := range s.Stores {
			out.Stores[k] = struct{}{}
		}
	}
	if s.Price != nil {
		p := *s.Price
		out.Price = &p
	}
	if s.MinRating != nil {
		r := *s.MinRating
		out.MinRating = &r
	}
	return out
}

// Summary renders the active refinements for status lines
func (s State) Summary() string {
	var parts []string
	if s.Sort != "" && s.Sort != SortRelevance {
		parts = append(parts, "sort: "+s.Sort.Label())
	}
	if len(s.Stores) > 0 {
		parts = append(parts, "stores: "+strings.Join(s.ActiveStores(), ", "))
	}
	if s.Price != nil {
		parts = append(parts, "price: "+s.Price.String())
	}
	if s.MinRating != nil {
		parts = append(parts, fmt.Sprintf("rating >= %.1f", *s.MinRating))
	}
	return strings.Join(parts, " | ")
}
