package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (r *Renderer) renderHome(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Find anything, from every store."))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("Press / to search products, brands and stores."))
	b.WriteString("\n")

	if len(state.PopularSearches) > 0 {
		b.WriteString(r.styles.Section.Render("Popular searches"))
		b.WriteString("\n")
		for i, term := range state.PopularSearches {
			line := "  " + term
			if state.InputMode == "" && i == state.SelectedIndex {
				line = r.styles.SelectionBg.Render("> " + term)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if state.FavoritesCount > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("You have %d saved favorites. Press 3 to see them.", state.FavoritesCount)))
	}
	return b.String()
}

// renderSuggestions draws the live dropdown under the search input
func (r *Renderer) renderSuggestions(state ViewState) string {
	var lines []string

	if state.ShowingPopular {
		if len(state.PopularSearches) == 0 {
			return ""
		}
		lines = append(lines, r.styles.Section.UnsetMarginTop().Render("Popular searches"))
		for i, term := range state.PopularSearches {
			if i == state.SuggestionIndex {
				lines = append(lines, r.styles.SelectionBg.Render("> "+term))
			} else {
				lines = append(lines, "  "+term)
			}
		}
		return r.styles.Dropdown.Render(strings.Join(lines, "\n"))
	}

	sugg := state.Suggestions
	if sugg.Loading {
		lines = append(lines, r.styles.StatusLoading.Render("Searching..."))
	}

	res := sugg.Result
	switch {
	case res == nil && !sugg.Loading:
		if sugg.Query == "" {
			return ""
		}
		lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("No results for %q", sugg.Query)))
	case res != nil && res.Empty():
		lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("No results for %q", sugg.Query)))
	case res != nil:
		row := 0
		lines = append(lines, r.styles.Section.UnsetMarginTop().Render("Quick results"))
		for _, p := range res.Products {
			lines = append(lines, r.productRender.RenderCompact(p, row == state.SuggestionIndex, sugg.Query))
			row++
		}
		if len(res.Categories) > 0 {
			lines = append(lines, r.styles.Section.Render("Shop by Store"))
			for _, name := range res.Categories {
				label := "  " + name
				if row == state.SuggestionIndex {
					label = r.styles.SelectionBg.Render("> " + name)
				}
				lines = append(lines, label)
				row++
			}
		}
		viewAll := fmt.Sprintf("View all results for %q", sugg.Query)
		if row == state.SuggestionIndex {
			lines = append(lines, "", r.styles.SelectionBg.Render("> "+viewAll))
		} else {
			lines = append(lines, "", r.styles.Highlight.Render("  "+viewAll))
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return r.styles.Dropdown.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) renderResults(state ViewState) string {
	var b strings.Builder

	if state.ResultsQuery == "" {
		b.WriteString(r.styles.Dim.Render("No search yet. Press / to start."))
		return b.String()
	}

	summary := fmt.Sprintf("%d results for %q", len(state.Results), state.ResultsQuery)
	if len(state.Results) != state.TotalResults {
		summary = fmt.Sprintf("%d of %d results for %q", len(state.Results), state.TotalResults, state.ResultsQuery)
	}
	b.WriteString(r.styles.Title.Render(summary))
	b.WriteString("\n")

	sortKey := state.Refinement.Sort
	if sortKey == "" {
		sortKey = "relevance"
	}
	filterLine := "Sort: " + sortKey.Label()
	if extra := state.Refinement.Summary(); extra != "" && !state.Refinement.IsDefault() {
		filterLine = extra
	}
	b.WriteString(r.styles.Filter.Render(filterLine))
	b.WriteString("\n\n")

	switch {
	case state.ResultsLoading && len(state.Results) == 0:
		b.WriteString(r.styles.StatusLoading.Render("Loading results..."))
	case state.ResultsErr != "":
		b.WriteString(r.styles.StatusError.Render("Could not load results: " + state.ResultsErr))
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("Press R to retry."))
	case state.TotalResults == 0:
		b.WriteString(r.styles.Dim.Render("No products found. Try a different search."))
	case len(state.Results) == 0:
		b.WriteString(r.styles.Dim.Render("No products match these filters. Press c to clear them."))
	default:
		b.WriteString(r.renderList(state, state.Results, state.ResultsQuery))
	}
	return b.String()
}

func (r *Renderer) renderProduct(state ViewState) string {
	if state.ProductLoading {
		return r.styles.StatusLoading.Render("Loading product...")
	}
	if state.ProductErr != "" {
		return r.styles.StatusError.Render(state.ProductErr) + "\n" +
			r.styles.Dim.Render("Press b to go back or R to retry.")
	}
	p := state.Product
	if p == nil {
		return r.styles.Dim.Render("Product not found.")
	}

	var info []string
	title := r.styles.Title.Render(p.Title)
	if state.FavoriteIDs[p.ID] {
		title = r.styles.Favorite.Render("♥ ") + title
	}
	info = append(info, title, "")
	if p.HasPrice() {
		info = append(info, r.styles.Price.Render(p.Price))
	}
	if p.HasRating() {
		info = append(info, r.productRender.renderRating(*p, lipgloss.NewStyle()))
	}
	if p.StoreName != "" {
		info = append(info, "Store:  "+p.StoreName)
	}
	if p.Seller != "" {
		info = append(info, "Seller: "+p.Seller)
	}
	if p.Link != "" {
		info = append(info, r.styles.Dim.Render(p.Link))
	}
	if p.DetailedDescription != "" {
		info = append(info, "", r.styles.Section.UnsetMarginTop().Render("Description"))
		desc := p.DetailedDescription
		if width := state.Width - 40; width > 20 {
			desc = lipgloss.NewStyle().Width(width).Render(desc)
		}
		descLines := strings.Split(desc, "\n")
		if len(descLines) > 6 {
			descLines = append(descLines[:6], r.styles.Dim.Render("… press v to read more"))
		}
		info = append(info, descLines...)
	}

	image := ""
	if w, h, ok := PlaceholderSize(p.Image); ok {
		image = r.styles.RenderPlaceholder(w, h, 24)
	} else {
		image = r.styles.Placeholder.Render(" " + p.Image + " ")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, image, "   ", strings.Join(info, "\n"))
}

func (r *Renderer) renderFavorites(state ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(fmt.Sprintf("Favorites (%d)", state.FavoritesCount)))
	b.WriteString("\n")

	if state.FavoritesCount == 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("No favorites yet. Press f on a product to save it."))
		return b.String()
	}

	var chips []string
	for _, name := range state.FavoriteStores {
		if name == state.FavoritesFilter {
			chips = append(chips, r.styles.TabActive.Render(name))
		} else {
			chips = append(chips, r.styles.Tab.Render(name))
		}
	}
	b.WriteString("Store: " + strings.Join(chips, ""))
	b.WriteString("\n\n")

	if len(state.Favorites) == 0 {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("No favorites from %s.", state.FavoritesFilter)))
		return b.String()
	}
	b.WriteString(r.renderList(state, state.Favorites, ""))
	return b.String()
}

func (r *Renderer) renderAbout(state ViewState) string {
	lines := []string{
		r.styles.Title.Render("About QuickFind"),
		"",
		"QuickFind helps you discover products instantly across stores.",
		"Type to get live suggestions, refine results by store, price and",
		"rating, and keep the products you like in your favorites.",
		"",
		fmt.Sprintf("Catalog API:  %s", state.APIBaseURL),
	}
	if state.Version != "" {
		lines = append(lines, fmt.Sprintf("Version:      %s", state.Version))
	}
	return strings.Join(lines, "\n")
}
