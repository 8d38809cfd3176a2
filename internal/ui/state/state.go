package state

import (
	"unicode/utf8"

	"quickfind/internal/domain"
	"quickfind/internal/favorites"
	"quickfind/internal/livesearch"
	"quickfind/internal/refine"
	"quickfind/internal/routes"
)

// AppState contains all the application state
type AppState struct {
	Route routes.Route

	// Suggestion dropdown
	SearchInput     string // text as typed, ahead of the debounce
	MinQueryLength  int
	Suggestions     livesearch.State
	SuggestionIndex int // -1 means the input row
	PopularSearches []string

	// Results page
	ResultsQuery   string
	Results        []domain.Product // as returned by the catalog
	Visible        []domain.Product // Results after refinement
	Refinement     refine.State
	ResultsLoading bool
	ResultsErr     string
	ResultsSeq     uint64

	// Product page
	Product        *domain.Product
	ProductLoading bool
	ProductErr     string
	ProductSeq     uint64

	// Favorites page
	Favorites       []domain.Product
	FavoritesFilter string
	FavoriteIDs     map[string]bool

	// Selection state
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int

	// Selector state
	SortOptionIndex int
	StoreIndex      int

	// UI state
	Theme            string
	ShowHelp         bool
	HelpScrollOffset int
	StatusMessage    string
	StatusIsError    bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Route:           routes.Home(),
		SuggestionIndex: -1,
		MinQueryLength:  livesearch.DefaultMinLength,
		FavoritesFilter: favorites.AllStores,
		FavoriteIDs:     make(map[string]bool),
		ViewportHeight:  10,
	}
}

// SetResults stores a fresh result set and resets the cursor
func (s *AppState) SetResults(query string, products []domain.Product) {
	s.ResultsQuery = query
	s.Results = products
	s.ResultsLoading = false
	s.ResultsErr = ""
	s.SelectedIndex = 0
	s.ViewportOffset = 0
	s.Refine()
}

// Refine recomputes the visible products from the current refinement
func (s *AppState) Refine() {
	s.Visible = refine.Apply(s.Results, s.Refinement)
	if s.SelectedIndex >= len(s.Visible) {
		s.SelectedIndex = max(len(s.Visible)-1, 0)
	}
	if s.ViewportOffset > s.SelectedIndex {
		s.ViewportOffset = s.SelectedIndex
	}
}

// ResultStores returns the distinct stores in the unrefined results
func (s *AppState) ResultStores() []string {
	return domain.StoreNames(s.Results, 0)
}

// SetFavorites replaces the cached favorites list
func (s *AppState) SetFavorites(list []domain.Product) {
	s.Favorites = list
	s.FavoriteIDs = make(map[string]bool, len(list))
	for _, p := range list {
		s.FavoriteIDs[p.ID] = true
	}

	// Drop a store filter that no longer has any favorites
	if s.FavoritesFilter != favorites.AllStores {
		found := false
		for _, name := range s.FavoriteStores() {
			if name == s.FavoritesFilter {
				found = true
				break
			}
		}
		if !found {
			s.FavoritesFilter = favorites.AllStores
		}
	}
}

// FavoriteStores returns "all" followed by the distinct favorite stores
func (s *AppState) FavoriteStores() []string {
	return append([]string{favorites.AllStores}, domain.StoreNames(s.Favorites, 0)...)
}

// VisibleFavorites applies the store filter to the favorites list
func (s *AppState) VisibleFavorites() []domain.Product {
	if s.FavoritesFilter == "" || s.FavoritesFilter == favorites.AllStores {
		return s.Favorites
	}
	out := make([]domain.Product, 0, len(s.Favorites))
	for _, p := range s.Favorites {
		if p.StoreName == s.FavoritesFilter {
			out = append(out, p)
		}
	}
	return out
}

// CycleFavoritesFilter steps through the store filter options
func (s *AppState) CycleFavoritesFilter(delta int) {
	stores := s.FavoriteStores()
	idx := 0
	for i, name := range stores {
		if name == s.FavoritesFilter {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(stores) + len(stores)) % len(stores)
	s.FavoritesFilter = stores[idx]
	s.SelectedIndex = 0
	s.ViewportOffset = 0
}

// ListLength returns the number of selectable rows on the current view
func (s *AppState) ListLength() int {
	switch s.Route.View {
	case routes.ViewSearch:
		return len(s.Visible)
	case routes.ViewFavorites:
		return len(s.VisibleFavorites())
	case routes.ViewHome:
		return len(s.PopularSearches)
	}
	return 0
}

// SelectedProduct returns the product under the cursor on list views
func (s *AppState) SelectedProduct() (domain.Product, bool) {
	var list []domain.Product
	switch s.Route.View {
	case routes.ViewSearch:
		list = s.Visible
	case routes.ViewFavorites:
		list = s.VisibleFavorites()
	case routes.ViewProduct:
		if s.Product != nil {
			return *s.Product, true
		}
		return domain.Product{}, false
	}
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(list) {
		return domain.Product{}, false
	}
	return list[s.SelectedIndex], true
}

// SuggestionKind identifies what a dropdown row points at
type SuggestionKind int

const (
	SuggestionNone SuggestionKind = iota
	SuggestionPopular
	SuggestionProduct
	SuggestionStore
	SuggestionViewAll
)

// ShowingPopular reports whether the dropdown lists popular searches
// instead of lookup results, i.e. the typed text is below the lookup minimum.
func (s *AppState) ShowingPopular() bool {
	return utf8.RuneCountInString(s.SearchInput) < s.MinQueryLength
}

// SuggestionRows returns the number of selectable dropdown rows:
// quick results, store categories and the "view all" row.
func (s *AppState) SuggestionRows() int {
	if s.ShowingPopular() {
		return len(s.PopularSearches)
	}
	res := s.Suggestions.Result
	if res == nil || res.Empty() {
		return 0
	}
	return len(res.Products) + len(res.Categories) + 1
}

// SuggestionAt resolves a dropdown row to its target. The value is the
// search term, product id, store name or query depending on the kind.
func (s *AppState) SuggestionAt(i int) (SuggestionKind, string) {
	if i < 0 || i >= s.SuggestionRows() {
		return SuggestionNone, ""
	}
	if s.ShowingPopular() {
		return SuggestionPopular, s.PopularSearches[i]
	}
	res := s.Suggestions.Result
	if i < len(res.Products) {
		return SuggestionProduct, res.Products[i].ID
	}
	i -= len(res.Products)
	if i < len(res.Categories) {
		return SuggestionStore, res.Categories[i]
	}
	return SuggestionViewAll, s.Suggestions.Query
}

// MoveSuggestion shifts the dropdown highlight; -1 is the input row
func (s *AppState) MoveSuggestion(delta int) {
	rows := s.SuggestionRows()
	if rows == 0 {
		s.SuggestionIndex = -1
		return
	}
	next := s.SuggestionIndex + delta
	if next < -1 {
		next = rows - 1
	}
	if next >= rows {
		next = -1
	}
	s.SuggestionIndex = next
}
