package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/domain"
	"quickfind/internal/eventbus"
	"quickfind/internal/favorites"
	"quickfind/internal/prefs"
	"quickfind/internal/ui/state"
)

// Catalog is the remote product API the UI reads from
type Catalog interface {
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx       context.Context
	State     *state.AppState
	Bus       eventbus.EventBus
	Catalog   Catalog
	Favorites *favorites.Service
	Prefs     *prefs.Store
}

// ResultsLoadedMsg carries a full result page fetch
type ResultsLoadedMsg struct {
	Seq      uint64
	Query    string
	Products []domain.Product
	Err      error
}

// ProductLoadedMsg carries a product detail fetch
type ProductLoadedMsg struct {
	Seq     uint64
	ID      string
	Product domain.Product
	Err     error
}

// FavoritesLoadedMsg carries the persisted favorites list
type FavoritesLoadedMsg struct {
	Products []domain.Product
}

// FavoriteToggledMsg reports the outcome of a favorite toggle
type FavoriteToggledMsg struct {
	Product domain.Product
	Added   bool
	Err     error
}

// FavoriteRemovedMsg reports the outcome of a favorite removal
type FavoriteRemovedMsg struct {
	ID  string
	Err error
}

// ThemeToggledMsg reports the newly saved theme
type ThemeToggledMsg struct {
	Theme string
	Err   error
}

// SearchCommand fetches the full, uncapped result set for a results page
type SearchCommand struct {
	ctx   *CommandContext
	query string
}

// NewSearchCommand creates a new search command
func NewSearchCommand(ctx *CommandContext, query string) *SearchCommand {
	return &SearchCommand{ctx: ctx, query: query}
}

// Execute marks the results page loading and starts the fetch. Responses
// for an older sequence number are ignored by the model.
func (c *SearchCommand) Execute() tea.Cmd {
	st := c.ctx.State
	st.ResultsSeq++
	st.ResultsLoading = true
	st.ResultsErr = ""
	st.ResultsQuery = c.query
	seq := st.ResultsSeq

	catalog, parent, query := c.ctx.Catalog, c.ctx.Ctx, c.query
	return func() tea.Msg {
		products, err := catalog.Search(parent, query)
		return ResultsLoadedMsg{Seq: seq, Query: query, Products: products, Err: err}
	}
}

// ProductCommand fetches one product for the detail page
type ProductCommand struct {
	ctx *CommandContext
	id  string
}

// NewProductCommand creates a new product command
func NewProductCommand(ctx *CommandContext, id string) *ProductCommand {
	return &ProductCommand{ctx: ctx, id: id}
}

// Execute marks the detail page loading and starts the fetch
func (c *ProductCommand) Execute() tea.Cmd {
	st := c.ctx.State
	st.ProductSeq++
	st.ProductLoading = true
	st.ProductErr = ""
	st.Product = nil
	seq := st.ProductSeq

	catalog, parent, id := c.ctx.Catalog, c.ctx.Ctx, c.id
	return func() tea.Msg {
		p, err := catalog.Product(parent, id)
		return ProductLoadedMsg{Seq: seq, ID: id, Product: p, Err: err}
	}
}

// LoadFavoritesCommand reads the persisted favorites
type LoadFavoritesCommand struct {
	ctx *CommandContext
}

// NewLoadFavoritesCommand creates a new load favorites command
func NewLoadFavoritesCommand(ctx *CommandContext) *LoadFavoritesCommand {
	return &LoadFavoritesCommand{ctx: ctx}
}

// Execute loads the favorites list off the update loop
func (c *LoadFavoritesCommand) Execute() tea.Cmd {
	svc, parent := c.ctx.Favorites, c.ctx.Ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		return FavoritesLoadedMsg{Products: svc.List(parent)}
	}
}

// ToggleFavoriteCommand adds or removes a product from favorites
type ToggleFavoriteCommand struct {
	ctx     *CommandContext
	product domain.Product
}

// NewToggleFavoriteCommand creates a new toggle favorite command
func NewToggleFavoriteCommand(ctx *CommandContext, p domain.Product) *ToggleFavoriteCommand {
	return &ToggleFavoriteCommand{ctx: ctx, product: p}
}

// Execute toggles the product
func (c *ToggleFavoriteCommand) Execute() tea.Cmd {
	svc, parent, p := c.ctx.Favorites, c.ctx.Ctx, c.product
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		added, err := svc.Toggle(parent, p)
		return FavoriteToggledMsg{Product: p, Added: added, Err: err}
	}
}

// RemoveFavoriteCommand removes a product from favorites by id
type RemoveFavoriteCommand struct {
	ctx *CommandContext
	id  string
}

// NewRemoveFavoriteCommand creates a new remove favorite command
func NewRemoveFavoriteCommand(ctx *CommandContext, id string) *RemoveFavoriteCommand {
	return &RemoveFavoriteCommand{ctx: ctx, id: id}
}

// Execute removes the product
func (c *RemoveFavoriteCommand) Execute() tea.Cmd {
	svc, parent, id := c.ctx.Favorites, c.ctx.Ctx, c.id
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		return FavoriteRemovedMsg{ID: id, Err: svc.Remove(parent, id)}
	}
}

// ToggleThemeCommand flips and persists the theme
type ToggleThemeCommand struct {
	ctx *CommandContext
}

// NewToggleThemeCommand creates a new toggle theme command
func NewToggleThemeCommand(ctx *CommandContext) *ToggleThemeCommand {
	return &ToggleThemeCommand{ctx: ctx}
}

// Execute toggles the theme
func (c *ToggleThemeCommand) Execute() tea.Cmd {
	store, parent := c.ctx.Prefs, c.ctx.Ctx
	if store == nil {
		current := c.ctx.State.Theme
		next := prefs.ThemeDark
		if current != prefs.ThemeLight {
			next = prefs.ThemeLight
		}
		return func() tea.Msg { return ThemeToggledMsg{Theme: next} }
	}
	return func() tea.Msg {
		theme, err := store.ToggleTheme(parent)
		return ThemeToggledMsg{Theme: theme, Err: err}
	}
}
