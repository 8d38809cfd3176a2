package routes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickfind/internal/refine"
)

func TestParseSimpleRoutes(t *testing.T) {
	tests := []struct {
		raw  string
		want Route
	}{
		{"", Home()},
		{"/", Home()},
		{"/favorites", Favorites()},
		{"/about/", About()},
		{"/product/B09G9FPHY6", Product("B09G9FPHY6")},
		{"/product/a%2Fb", Product("a/b")},
		{"/search?q=+shoes+", Search("shoes")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want.View, got.View)
			assert.Equal(t, tt.want.Query, got.Query)
			assert.Equal(t, tt.want.ProductID, got.ProductID)
		})
	}
}

func TestParseSearchRefinements(t *testing.T) {
	r, err := Parse("/search?q=headphones&sort=price-high&store=Sony&store=Bose&min_price=50&max_price=300&min_rating=4.5&utm=x")
	require.NoError(t, err)

	assert.Equal(t, ViewSearch, r.View)
	assert.Equal(t, "headphones", r.Query)
	assert.Equal(t, refine.SortPriceDesc, r.Refinement.Sort)
	assert.Equal(t, []string{"Bose", "Sony"}, r.Refinement.ActiveStores())
	require.NotNil(t, r.Refinement.Price)
	assert.Equal(t, refine.PriceRange{Min: 50, Max: 300}, *r.Refinement.Price)
	require.NotNil(t, r.Refinement.MinRating)
	assert.Equal(t, 4.5, *r.Refinement.MinRating)
}

func TestParseSearchDefaults(t *testing.T) {
	r, err := Parse("/search?q=tv")
	require.NoError(t, err)
	assert.Equal(t, refine.SortRelevance, r.Refinement.Sort)
	assert.Nil(t, r.Refinement.Price)
	assert.Nil(t, r.Refinement.MinRating)
	assert.Empty(t, r.Refinement.Stores)

	r, err = Parse("/search?q=tv&min_price=20")
	require.NoError(t, err)
	require.NotNil(t, r.Refinement.Price)
	assert.Equal(t, 20.0, r.Refinement.Price.Min)
	assert.Equal(t, math.MaxFloat64, r.Refinement.Price.Max)
}

func TestParseErrors(t *testing.T) {
	for _, raw := range []string{
		"/checkout",
		"/product/",
		"/product/a/b",
		"/search?q=tv&sort=newest",
		"/search?q=tv&min_price=cheap",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			assert.Error(t, err)
		})
	}

	_, err := Parse("/checkout")
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestStringRoundTrip(t *testing.T) {
	rating := 4.0
	routes := []Route{
		Home(),
		Favorites(),
		About(),
		Product("id with space"),
		Search("running shoes"),
		{
			View:  ViewSearch,
			Query: "phone",
			Refinement: refine.State{
				Sort:      refine.SortRatingDesc,
				Stores:    map[string]struct{}{"Apple": {}, "Samsung": {}},
				Price:     refine.NewPriceRange(100, 999.99),
				MinRating: &rating,
			},
		},
	}

	for _, r := range routes {
		t.Run(r.String(), func(t *testing.T) {
			back, err := Parse(r.String())
			require.NoError(t, err)
			assert.Equal(t, r.String(), back.String())
			assert.Equal(t, r.View, back.View)
		})
	}

	assert.Equal(t, "/search?q=running+shoes", Search("running shoes").String())
	assert.Equal(t, "/product/id%20with%20space", Product("id with space").String())
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)
	_, ok := h.Pop()
	assert.False(t, ok)

	h.Push(Home())
	h.Push(Search("a"))
	h.Push(Search("b"))
	assert.Equal(t, 2, h.Len())

	r, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "b", r.Query)
	r, _ = h.Pop()
	assert.Equal(t, "a", r.Query)
	_, ok = h.Pop()
	assert.False(t, ok)
}
