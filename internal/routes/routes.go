package routes

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"quickfind/internal/refine"
)

// View identifies a top level screen
type View int

const (
	ViewHome View = iota
	ViewSearch
	ViewProduct
	ViewFavorites
	ViewAbout
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "Home"
	case ViewSearch:
		return "Search"
	case ViewProduct:
		return "Product"
	case ViewFavorites:
		return "Favorites"
	case ViewAbout:
		return "About"
	}
	return "Unknown"
}

// ErrUnknownRoute is returned by Parse for paths no view handles
var ErrUnknownRoute = errors.New("unknown route")

// Route is a navigable location
type Route struct {
	View       View
	Query      string
	ProductID  string
	Refinement refine.State
}

func Home() Route      { return Route{View: ViewHome} }
func Favorites() Route { return Route{View: ViewFavorites} }
func About() Route     { return Route{View: ViewAbout} }

// Search routes to the results view for query
func Search(query string) Route {
	return Route{View: ViewSearch, Query: query}
}

// Product routes to the detail view of id
func Product(id string) Route {
	return Route{View: ViewProduct, ProductID: id}
}

type searchParams struct {
	Query     string   `schema:"q"`
	Sort      string   `schema:"sort,default:relevance"`
	Stores    []string `schema:"store"`
	MinPrice  float64  `schema:"min_price"`
	MaxPrice  float64  `schema:"max_price"`
	MinRating float64  `schema:"min_rating"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Parse decodes a path such as /search?q=shoes&sort=price-asc or /product/123
func Parse(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, fmt.Errorf("failed to parse route %q: %w", raw, err)
	}

	segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	switch segments[0] {
	case "":
		return Home(), nil
	case "favorites":
		return Favorites(), nil
	case "about":
		return About(), nil
	case "product":
		if len(segments) != 2 || segments[1] == "" {
			return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, raw)
		}
		id, err := url.PathUnescape(segments[1])
		if err != nil {
			return Route{}, fmt.Errorf("failed to parse product id: %w", err)
		}
		return Product(id), nil
	case "search":
		return parseSearch(u.Query())
	}
	return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, raw)
}

func parseSearch(values url.Values) (Route, error) {
	var p searchParams
	if err := decoder.Decode(&p, values); err != nil {
		return Route{}, fmt.Errorf("failed to decode search parameters: %w", err)
	}

	sortKey, err := refine.ParseSortKey(p.Sort)
	if err != nil {
		return Route{}, err
	}

	r := Search(strings.TrimSpace(p.Query))
	r.Refinement.Sort = sortKey
	for _, s := range p.Stores {
		if s != "" && !r.Refinement.HasStore(s) {
			r.Refinement.ToggleStore(s)
		}
	}

	hasMin, hasMax := values.Get("min_price") != "", values.Get("max_price") != ""
	if hasMin || hasMax {
		max := p.MaxPrice
		if !hasMax {
			max = math.MaxFloat64
		}
		r.Refinement.Price = refine.NewPriceRange(p.MinPrice, max)
	}
	if values.Get("min_rating") != "" {
		r.Refinement.SetMinRating(&p.MinRating)
	}
	return r, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String encodes the route back into a path
func (r Route) String() string {
	switch r.View {
	case ViewFavorites:
		return "/favorites"
	case ViewAbout:
		return "/about"
	case ViewProduct:
		return "/product/" + url.PathEscape(r.ProductID)
	case ViewSearch:
		values := url.Values{}
		values.Set("q", r.Query)
		ref := r.Refinement
		if ref.Sort != "" && ref.Sort != refine.SortRelevance {
			values.Set("sort", string(ref.Sort))
		}
		for _, s := range ref.ActiveStores() {
			values.Add("store", s)
		}
		if ref.Price != nil {
			values.Set("min_price", formatFloat(ref.Price.Min))
			if ref.Price.Max != math.MaxFloat64 {
				values.Set("max_price", formatFloat(ref.Price.Max))
			}
		}
		if ref.MinRating != nil {
			values.Set("min_rating", formatFloat(*ref.MinRating))
		}
		return "/search?" + values.Encode()
	}
	return "/"
}

// Title is the label shown in the header for the route
func (r Route) Title() string {
	switch r.View {
	case ViewSearch:
		if r.Query != "" {
			return fmt.Sprintf("Results for %q", r.Query)
		}
		return "Search"
	case ViewProduct:
		return "Product details"
	}
	return r.View.String()
}
