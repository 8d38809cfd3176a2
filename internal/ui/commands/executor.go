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

// Executor handles command execution
type Executor struct {
	ctx    *CommandContext
	cancel context.CancelFunc
}

// Deps are the services commands run against
type Deps struct {
	Bus       eventbus.EventBus
	Catalog   Catalog
	Favorites *favorites.Service
	Prefs     *prefs.Store
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, deps Deps) *Executor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Executor{
		ctx: &CommandContext{
			Ctx:       ctx,
			State:     state,
			Bus:       deps.Bus,
			Catalog:   deps.Catalog,
			Favorites: deps.Favorites,
			Prefs:     deps.Prefs,
		},
		cancel: cancel,
	}
}

// Close cancels in-flight commands
func (e *Executor) Close() {
	e.cancel()
}

// ExecuteSearch creates and executes a search command
func (e *Executor) ExecuteSearch(query string) tea.Cmd {
	return NewSearchCommand(e.ctx, query).Execute()
}

// ExecuteProduct creates and executes a product command
func (e *Executor) ExecuteProduct(id string) tea.Cmd {
	return NewProductCommand(e.ctx, id).Execute()
}

// ExecuteLoadFavorites creates and executes a load favorites command
func (e *Executor) ExecuteLoadFavorites() tea.Cmd {
	return NewLoadFavoritesCommand(e.ctx).Execute()
}

// ExecuteToggleFavorite creates and executes a toggle favorite command
func (e *Executor) ExecuteToggleFavorite(p domain.Product) tea.Cmd {
	return NewToggleFavoriteCommand(e.ctx, p).Execute()
}

// ExecuteRemoveFavorite creates and executes a remove favorite command
func (e *Executor) ExecuteRemoveFavorite(id string) tea.Cmd {
	return NewRemoveFavoriteCommand(e.ctx, id).Execute()
}

// ExecuteToggleTheme creates and executes a toggle theme command
func (e *Executor) ExecuteToggleTheme() tea.Cmd {
	return NewToggleThemeCommand(e.ctx).Execute()
}
