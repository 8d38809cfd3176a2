package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"quickfind/internal/domain"
	"quickfind/internal/livesearch"
	"quickfind/internal/refine"
	"quickfind/internal/routes"
	"quickfind/internal/ui/input/modes"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Route            routes.Route
	StatusMessage    string
	StatusIsError    bool
	ShowHelp         bool
	HelpScrollOffset int
	HelpModel        help.Model
	InputMode        string
	TextInput        string
	FavoritesCount   int
	APIBaseURL       string
	Version          string

	// Search dropdown
	SearchInput     string
	ShowingPopular  bool
	Suggestions     livesearch.State
	SuggestionIndex int
	PopularSearches []string

	// Results
	ResultsQuery    string
	Results         []domain.Product
	TotalResults    int
	Refinement      refine.State
	ResultsLoading  bool
	ResultsErr      string
	AvailableStores []string
	SortOptionIndex int
	StoreIndex      int

	// Product detail
	Product        *domain.Product
	ProductLoading bool
	ProductErr     string

	// Favorites
	Favorites       []domain.Product
	FavoritesFilter string
	FavoriteStores  []string
	FavoriteIDs     map[string]bool

	// List cursor
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	productRender *ProductRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer for a theme
func NewRenderer(theme string) *Renderer {
	r := &Renderer{}
	r.SetTheme(theme)
	return r
}

// SetTheme rebuilds the styles for theme
func (r *Renderer) SetTheme(theme string) {
	r.styles = NewStyles(theme)
	r.productRender = NewProductRenderer(r.styles)
	r.popupRender = NewPopupRenderer(r.styles)
}

// Theme returns the active theme name
func (r *Renderer) Theme() string {
	return r.styles.Theme
}

// Styles exposes the active styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderHeader(state))
	content.WriteString("\n\n")

	switch state.InputMode {
	case "":
	case "sort":
		content.WriteString(r.renderSortOptions(state))
		content.WriteString("\n\n")
	case "stores":
		content.WriteString(r.renderStoreOptions(state))
		content.WriteString("\n\n")
	default:
		content.WriteString(state.TextInput)
		content.WriteString("\n")
		if state.InputMode == "search" {
			content.WriteString(r.renderSuggestions(state))
		}
		content.WriteString("\n")
	}

	switch state.Route.View {
	case routes.ViewSearch:
		content.WriteString(r.renderResults(state))
	case routes.ViewProduct:
		content.WriteString(r.renderProduct(state))
	case routes.ViewFavorites:
		content.WriteString(r.renderFavorites(state))
	case routes.ViewAbout:
		content.WriteString(r.renderAbout(state))
	default:
		content.WriteString(r.renderHome(state))
	}

	footer := r.renderFooter(state)

	// Push the footer to the bottom of the screen
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2 // Main style padding
	if availableLines <= 0 {
		availableLines = 22
	}
	footerLines := strings.Count(footer, "\n") + 1
	if pad := availableLines - currentLines - footerLines; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderHeader draws the logo, view tabs and right aligned indicators
func (r *Renderer) renderHeader(state ViewState) string {
	logo := r.styles.Title.Render("QuickFind")

	tabs := []struct {
		label string
		view  routes.View
	}{
		{"1 Home", routes.ViewHome},
		{"2 Results", routes.ViewSearch},
		{fmt.Sprintf("3 Favorites (%d)", state.FavoritesCount), routes.ViewFavorites},
		{"4 About", routes.ViewAbout},
	}
	var rendered []string
	for _, t := range tabs {
		if t.view == state.Route.View {
			rendered = append(rendered, r.styles.TabActive.Render(t.label))
		} else {
			rendered = append(rendered, r.styles.Tab.Render(t.label))
		}
	}
	left := logo + "  " + strings.Join(rendered, "")

	var indicators []string
	if state.Suggestions.Loading || state.ResultsLoading || state.ProductLoading {
		indicators = append(indicators, "⠿ Searching...")
	}
	if !state.Refinement.IsDefault() && state.Route.View == routes.ViewSearch {
		indicators = append(indicators, r.styles.Filter.Render("[Refined]"))
	}
	indicators = append(indicators, r.styles.Dim.Render(r.styles.Theme))
	right := strings.Join(indicators, "  ")

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	if pad := availableWidth - lipgloss.Width(left) - lipgloss.Width(right); pad > 0 {
		return left + strings.Repeat(" ", pad) + right
	}
	return left + "  " + right
}

// renderFooter draws the status line above the key help
func (r *Renderer) renderFooter(state ViewState) string {
	var lines []string
	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		lines = append(lines, style.Render(state.StatusMessage))
	}
	if !state.ShowHelp {
		lines = append(lines, state.HelpModel.ShortHelpView(FooterBindings(state.Route.View, state.InputMode)))
	}
	return strings.Join(lines, "\n")
}

// FooterBindings picks the key hints for the current view and mode
func FooterBindings(view routes.View, inputMode string) []key.Binding {
	k := modes.Keys
	switch inputMode {
	case "search":
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "suggestions")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	case "price", "rating":
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	case "sort", "stores":
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "choose")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		}
	}

	switch view {
	case routes.ViewSearch:
		return []key.Binding{k.Open, k.Favorite, k.Sort, k.Stores, k.Price, k.Rating, k.Clear, k.Search, k.Back, k.Help, k.Quit}
	case routes.ViewProduct:
		return []key.Binding{k.Favorite, k.Description, k.Back, k.Search, k.Help, k.Quit}
	case routes.ViewFavorites:
		return []key.Binding{k.Open, k.Remove, k.FilterNext, k.Back, k.Search, k.Help, k.Quit}
	case routes.ViewHome:
		return []key.Binding{k.Search, k.Open, k.Favorites, k.Theme, k.Help, k.Quit}
	}
	return []key.Binding{k.Search, k.Back, k.Theme, k.Help, k.Quit}
}

// renderList renders a scrolled window of products
func (r *Renderer) renderList(state ViewState, products []domain.Product, query string) string {
	var lines []string

	start := state.ViewportOffset
	if start < 0 || start >= len(products) {
		start = 0
	}
	height := state.ViewportHeight
	if height <= 0 {
		height = len(products)
	}
	// Same indicator rules as logic.Navigator so the cursor row stays visible
	needsTop := start > 0
	needsBottom := start+height < len(products)
	if !needsBottom && needsTop && len(products)-start > height-1 {
		needsBottom = true
	}
	effective := height
	if needsTop {
		effective--
	}
	if needsBottom {
		effective--
	}
	if effective < 1 {
		effective = 1
	}
	end := min(start+effective, len(products))

	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	width := state.Width - 4
	for i := start; i < end; i++ {
		p := products[i]
		lines = append(lines, r.productRender.RenderRow(p, i == state.SelectedIndex, state.FavoriteIDs[p.ID], query, width))
	}
	if end < len(products) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(products)-end)))
	}
	return strings.Join(lines, "\n")
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(state ViewState) string {
	options := refine.SortOptions()
	var parts []string
	for i, o := range options {
		if i == state.SortOptionIndex {
			parts = append(parts, r.styles.Highlight.Render("["+o.Name+"]"))
		} else {
			parts = append(parts, r.styles.Dim.Render(o.Name))
		}
	}
	helpLine := r.styles.Dim.Render("↑/↓ or j/k to change • Enter to accept • Esc to cancel")
	return "Sort by: " + strings.Join(parts, "  ") + "\n" + helpLine
}

// renderStoreOptions renders the store toggle list
func (r *Renderer) renderStoreOptions(state ViewState) string {
	var lines []string
	lines = append(lines, "Filter by store:")
	for i, name := range state.AvailableStores {
		box := "[ ]"
		if state.Refinement.HasStore(name) {
			box = "[x]"
		}
		line := fmt.Sprintf("  %s %s", box, name)
		if i == state.StoreIndex {
			line = r.styles.Highlight.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, r.styles.Dim.Render("space to toggle • Enter/Esc to close"))
	return strings.Join(lines, "\n")
}
