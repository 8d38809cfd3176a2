package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/catalog"
	"quickfind/internal/config"
	"quickfind/internal/domain"
	"quickfind/internal/eventbus"
	"quickfind/internal/favorites"
	"quickfind/internal/livesearch"
	"quickfind/internal/prefs"
	"quickfind/internal/refine"
	"quickfind/internal/routes"
	"quickfind/internal/ui/commands"
	"quickfind/internal/ui/handlers"
	"quickfind/internal/ui/input"
	inputtypes "quickfind/internal/ui/input/types"
	"quickfind/internal/ui/logic"
	"quickfind/internal/ui/state"
	"quickfind/internal/ui/viewmodels"
	"quickfind/internal/ui/views"
)

// historyLimit bounds the back stack
const historyLimit = 50

// Options wires the model to its services. Only Config and Catalog are required.
type Options struct {
	Config    *config.Config
	Bus       eventbus.EventBus
	Catalog   commands.Catalog
	Favorites *favorites.Service
	Prefs     *prefs.Store
	Version   string
	Route     routes.Route // first route shown after Init
	AfterFunc livesearch.AfterFunc
	Pager     Pager
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode
	searching   bool // the search prompt owns the dropdown

	// Handlers
	navigator    *logic.Navigator       // navigation and viewport handler
	renderer     *views.Renderer        // view renderer
	eventHandler *handlers.EventHandler // event processing handler
	viewModel    *viewmodels.ViewModel  // view model for rendering
	cmdExecutor  *commands.Executor     // command executor
	inputHandler *input.Handler         // input handling
	suggest      *livesearch.Controller // debounced dropdown lookups
	history      *routes.History

	pager      Pager
	startRoute routes.Route

	// Program reference for terminal management. Suggestion states arrive on
	// controller goroutines, so the pointer is read atomically.
	program atomic.Pointer[tea.Program]
	// async receives off-loop messages while no program is attached
	async chan tea.Msg
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	appState := state.NewAppState()
	if cfg.Search.MinQueryLength > 0 {
		appState.MinQueryLength = cfg.Search.MinQueryLength
	}
	if cfg.UI.ShowPopular {
		appState.PopularSearches = append([]string(nil), cfg.Search.Popular...)
	}
	appState.Theme = cfg.UI.Theme
	if opts.Prefs != nil {
		appState.Theme = opts.Prefs.Theme(context.Background())
	}

	m := &Model{
		bus:          opts.Bus,
		config:       cfg,
		state:        appState,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(appState.Theme),
		inputHandler: input.New(),
		history:      routes.NewHistory(historyLimit),
		pager:        opts.Pager,
		startRoute:   opts.Route,
		async:        make(chan tea.Msg, 64),
	}

	m.cmdExecutor = commands.NewExecutor(appState, commands.Deps{
		Bus:       opts.Bus,
		Catalog:   opts.Catalog,
		Favorites: opts.Favorites,
		Prefs:     opts.Prefs,
	})
	m.eventHandler = handlers.NewEventHandler(appState, m.cmdExecutor.ExecuteLoadFavorites, m.renderer.SetTheme)

	m.suggest = livesearch.New(opts.Catalog, livesearch.Options{
		QuietPeriod:   cfg.Debounce(),
		MinLength:     cfg.Search.MinQueryLength,
		PreviewSize:   cfg.Search.PreviewSize,
		MaxCategories: cfg.Search.MaxCategories,
		AfterFunc:     opts.AfterFunc,
		Publish: func(s livesearch.State) {
			m.deliver(suggestionsMsg{state: s})
		},
	})

	// View model with a placeholder text input (actual one is in input handler)
	m.viewModel = viewmodels.NewViewModel(appState, cfg, textinput.New())
	m.viewModel.SetVersion(opts.Version)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program.Store(p)
	if m.pager == nil {
		m.pager = NewPagerOps(p)
	}
}

// State exposes the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Close stops the suggestion controller and cancels in-flight commands
func (m *Model) Close() {
	m.suggest.Close()
	m.cmdExecutor.Close()
}

// deliver hands a message produced off the update loop to the program
func (m *Model) deliver(msg tea.Msg) {
	if p := m.program.Load(); p != nil {
		p.Send(msg)
		return
	}
	select {
	case m.async <- msg:
	default:
		log.Printf("ui: dropped %T, no program attached", msg)
	}
}

// syncNavigatorState updates the navigator with current model state
func (m *Model) syncNavigatorState() {
	m.navigator.UpdateState(
		m.state.SelectedIndex,
		m.state.ViewportOffset,
		m.state.ViewportHeight,
		m.state.ListLength(),
	)
}

// Init loads favorites and opens the start route
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.cmdExecutor.ExecuteLoadFavorites()}
	start := m.startRoute
	if start.View == routes.ViewSearch && strings.TrimSpace(start.Query) == "" {
		cmds = append(cmds, m.openSearchPrompt(""))
	} else {
		cmds = append(cmds, m.navigate(start, false))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}

		// Help popup swallows keys while open
		if m.state.ShowHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.state.ShowHelp = false
				m.state.HelpScrollOffset = 0
			case "up", "k":
				if m.state.HelpScrollOffset > 0 {
					m.state.HelpScrollOffset--
				}
			case "down", "j":
				m.state.HelpScrollOffset++
			}
			return m, nil
		}

		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

		// Update text input in view model if in text mode
		if ti := m.inputHandler.TextInput(); ti != nil {
			m.viewModel.UpdateTextInput(*ti)
		}

		return m, tea.Batch(cmds...)

	default:
		// Cursor blink and similar messages belong to the text input
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			if ti := m.inputHandler.TextInput(); ti != nil {
				m.viewModel.UpdateTextInput(*ti)
			}
			_, other := m.handleNonKeyboardMsg(msg)
			return m, tea.Batch(cmd, other)
		}
		return m.handleNonKeyboardMsg(msg)
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetInputMode(m.inputHandler.CurrentMode(), m.inputHandler.Prompt())
	if ti := m.inputHandler.TextInput(); ti != nil {
		m.viewModel.UpdateTextInput(*ti)
	}

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// updateViewportHeight calculates the rows available to the product list
func (m *Model) updateViewportHeight() {
	// Header, input line, list heading, status, footer and padding
	reservedLines := 12

	m.state.ViewportHeight = m.height - reservedLines
	if m.state.ViewportHeight < 3 {
		m.state.ViewportHeight = 3
	}

	m.ensureSelectedVisible()
}

// ensureSelectedVisible ensures the selected item is visible in the viewport
func (m *Model) ensureSelectedVisible() {
	m.syncNavigatorState()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SelectedIndex)
}

// navigate switches to route, fetching whatever the view needs
func (m *Model) navigate(route routes.Route, push bool) tea.Cmd {
	if push && route.String() != m.state.Route.String() {
		m.history.Push(m.state.Route)
	}
	m.state.Route = route
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0

	switch route.View {
	case routes.ViewSearch:
		m.state.Refinement = route.Refinement.Clone()
		query := strings.TrimSpace(route.Query)
		if query == "" {
			return nil
		}
		stale := query != m.state.ResultsQuery || m.state.ResultsErr != "" ||
			(m.state.Results == nil && !m.state.ResultsLoading)
		if stale {
			return m.cmdExecutor.ExecuteSearch(query)
		}
		m.state.Refine()

	case routes.ViewProduct:
		if p := m.state.Product; p == nil || p.ID != route.ProductID || m.state.ProductErr != "" {
			return m.cmdExecutor.ExecuteProduct(route.ProductID)
		}

	case routes.ViewFavorites:
		return m.cmdExecutor.ExecuteLoadFavorites()
	}
	return nil
}

// openSearchPrompt switches the input to the search prompt prefilled with text
func (m *Model) openSearchPrompt(text string) tea.Cmd {
	ctx := &input.ModelContext{State: m.state}
	cmds := []tea.Cmd{textinput.Blink}
	actions := append(m.inputHandler.ChangeMode(inputtypes.ModeSearch, text, ctx),
		inputtypes.ChangeModeAction{Mode: inputtypes.ModeSearch, Data: text})
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

// applyRefinement recomputes the visible results after a refinement change
func (m *Model) applyRefinement() {
	m.state.Refine()
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0
	if m.state.Route.View == routes.ViewSearch {
		m.state.Route.Refinement = m.state.Refinement.Clone()
	}
}

// setStatus shows a transient status line message
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.state.StatusMessage = text
	m.state.StatusIsError = isError
	return handlers.ClearStatusAfter(handlers.StatusTimeout)
}

// publish routes a domain event through the bus, or straight to the
// event handler when the model runs without one.
func (m *Model) publish(event eventbus.DomainEvent) tea.Cmd {
	if m.bus != nil {
		m.bus.Publish(event)
		return nil
	}
	return m.eventHandler.HandleEvent(event)
}

// showInPager returns a command that pages content with ov, pausing rendering
func (m *Model) showInPager(title, content string, done func(error) tea.Msg) tea.Cmd {
	pager := m.pager
	return func() tea.Msg {
		p := m.program.Load()
		if p != nil {
			p.Send(pauseRenderingMsg{})
		}

		err := pager.Show(title, content)

		if p != nil {
			p.Send(resumeRenderingMsg{})
		}
		return done(err)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.syncNavigatorState()
		switch a.Direction {
		case "up":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(-1)
		case "down":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(1)
		case "pageup":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Page(false)
		case "pagedown":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Page(true)
		case "home":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(0)
		case "end":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.ListLength() - 1)
		}

	case inputtypes.GoToViewAction:
		switch a.View {
		case "home":
			return m.navigate(routes.Home(), true)
		case "search":
			if m.state.ResultsQuery == "" {
				return m.openSearchPrompt("")
			}
			r := routes.Search(m.state.ResultsQuery)
			r.Refinement = m.state.Refinement.Clone()
			return m.navigate(r, true)
		case "favorites":
			return m.navigate(routes.Favorites(), true)
		case "about":
			return m.navigate(routes.About(), true)
		}

	case inputtypes.BackAction:
		if r, ok := m.history.Pop(); ok {
			return m.navigate(r, false)
		}
		if m.state.Route.View != routes.ViewHome {
			return m.navigate(routes.Home(), false)
		}

	case inputtypes.OpenAction:
		if m.state.Route.View == routes.ViewHome {
			if i := m.state.SelectedIndex; i >= 0 && i < len(m.state.PopularSearches) {
				return m.navigate(routes.Search(m.state.PopularSearches[i]), true)
			}
			return nil
		}
		if p, ok := m.state.SelectedProduct(); ok && m.state.Route.View != routes.ViewProduct {
			return m.navigate(routes.Product(p.ID), true)
		}

	case inputtypes.ChangeModeAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			m.searching = true
			m.state.SearchInput = a.Data
			m.state.SuggestionIndex = -1
			m.suggest.OnInput(a.Data)
		case inputtypes.ModeNormal:
			if m.searching {
				m.searching = false
				m.state.SearchInput = ""
				m.state.SuggestionIndex = -1
				m.suggest.OnInput("")
			}
		case inputtypes.ModeStoreSelect:
			m.state.StoreIndex = 0
		}

	case inputtypes.UpdateTextAction:
		if m.searching {
			m.state.SearchInput = a.Text
			m.state.SuggestionIndex = -1
			m.suggest.OnInput(a.Text)
		}

	case inputtypes.NavigateSuggestionAction:
		m.state.MoveSuggestion(a.Delta)

	case inputtypes.SubmitTextAction:
		return m.submitText(a)

	case inputtypes.CancelTextAction:
		// The mode change that follows restores normal mode

	case inputtypes.SortByAction:
		m.state.Refinement.Sort = a.Key
		m.applyRefinement()

	case inputtypes.UpdateSortIndexAction:
		m.state.SortOptionIndex = a.Index

	case inputtypes.ToggleStoreAction:
		m.state.Refinement.ToggleStore(a.Store)
		m.applyRefinement()

	case inputtypes.UpdateStoreIndexAction:
		m.state.StoreIndex = a.Index

	case inputtypes.ClearRefinementsAction:
		if m.state.Refinement.IsDefault() {
			return nil
		}
		m.state.Refinement.Reset()
		m.applyRefinement()
		return m.setStatus("Filters cleared", false)

	case inputtypes.CycleFavoritesFilterAction:
		m.state.CycleFavoritesFilter(a.Delta)

	case inputtypes.ToggleFavoriteAction:
		if p, ok := m.state.SelectedProduct(); ok {
			return m.cmdExecutor.ExecuteToggleFavorite(p)
		}

	case inputtypes.RemoveFavoriteAction:
		if p, ok := m.state.SelectedProduct(); ok {
			return m.cmdExecutor.ExecuteRemoveFavorite(p.ID)
		}

	case inputtypes.ViewDescriptionAction:
		p := m.state.Product
		if p == nil || strings.TrimSpace(p.DetailedDescription) == "" {
			return m.setStatus("No description available", false)
		}
		if m.pager == nil {
			return m.setStatus("Pager unavailable", true)
		}
		id := p.ID
		return m.showInPager(p.Title, p.DetailedDescription, func(err error) tea.Msg {
			return descriptionPagerMsg{productID: id, err: err}
		})

	case inputtypes.RetryAction:
		switch m.state.Route.View {
		case routes.ViewSearch:
			if m.state.ResultsQuery != "" {
				return m.cmdExecutor.ExecuteSearch(m.state.ResultsQuery)
			}
		case routes.ViewProduct:
			return m.cmdExecutor.ExecuteProduct(m.state.Route.ProductID)
		}

	case inputtypes.ToggleThemeAction:
		return m.cmdExecutor.ExecuteToggleTheme()

	case inputtypes.ToggleHelpAction:
		if m.pager == nil {
			m.state.ShowHelp = !m.state.ShowHelp
			m.state.HelpScrollOffset = 0
			return nil
		}
		return m.showInPager("QuickFind Help", m.renderer.HelpContent(), func(err error) tea.Msg {
			return helpPagerMsg{err: err}
		})

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// submitText resolves an entered prompt value
func (m *Model) submitText(a inputtypes.SubmitTextAction) tea.Cmd {
	switch a.Mode {
	case inputtypes.ModeSearch:
		kind, value := m.state.SuggestionAt(m.state.SuggestionIndex)
		switch kind {
		case state.SuggestionPopular, state.SuggestionViewAll:
			return m.navigate(routes.Search(value), true)
		case state.SuggestionProduct:
			return m.navigate(routes.Product(value), true)
		case state.SuggestionStore:
			r := routes.Search(m.state.Suggestions.Query)
			r.Refinement.ToggleStore(value)
			return m.navigate(r, true)
		}
		query := strings.TrimSpace(a.Text)
		if query == "" {
			return nil
		}
		return m.navigate(routes.Search(query), true)

	case inputtypes.ModePrice:
		price, err := refine.ParsePriceRange(a.Text)
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.state.Refinement.Price = price
		m.applyRefinement()

	case inputtypes.ModeRating:
		rating, err := refine.ParseMinRating(a.Text)
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.state.Refinement.SetMinRating(rating)
		m.applyRefinement()
	}
	return nil
}

// cachedProduct finds a copy of id among loaded results and favorites
func (m *Model) cachedProduct(id string) (domain.Product, bool) {
	for _, list := range [][]domain.Product{m.state.Results, m.state.Favorites} {
		for _, p := range list {
			if p.ID == id {
				return p, true
			}
		}
	}
	return domain.Product{}, false
}

// handleNonKeyboardMsg processes non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case suggestionsMsg:
		if msg.state.Query != m.state.Suggestions.Query {
			m.state.SuggestionIndex = -1
		}
		m.state.Suggestions = msg.state
		if m.state.SuggestionIndex >= m.state.SuggestionRows() {
			m.state.SuggestionIndex = -1
		}
		return m, nil

	case commands.ResultsLoadedMsg:
		if msg.Seq != m.state.ResultsSeq {
			log.Printf("ui: dropping stale results for %q", msg.Query)
			return m, nil
		}
		if msg.Err != nil {
			m.state.ResultsLoading = false
			if errors.Is(msg.Err, context.Canceled) {
				return m, nil
			}
			log.Printf("ui: search %q failed: %v", msg.Query, msg.Err)
			m.state.Results = nil
			m.state.Visible = nil
			m.state.ResultsErr = handlers.LookupFailureMessage("Search", msg.Err)
			return m, m.publish(eventbus.LookupFailedEvent{Kind: "Search", Query: msg.Query, Err: msg.Err})
		}
		m.state.SetResults(msg.Query, msg.Products)
		return m, nil

	case commands.ProductLoadedMsg:
		if msg.Seq != m.state.ProductSeq {
			return m, nil
		}
		m.state.ProductLoading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return m, nil
			}
			log.Printf("ui: product %q failed: %v", msg.ID, msg.Err)
			if !errors.Is(msg.Err, catalog.ErrNotFound) {
				if cached, ok := m.cachedProduct(msg.ID); ok {
					m.state.Product = &cached
					return m, m.setStatus("Catalog unavailable, showing saved details", true)
				}
			}
			m.state.ProductErr = handlers.LookupFailureMessage("Product", msg.Err)
			return m, m.publish(eventbus.LookupFailedEvent{Kind: "Product", Query: msg.ID, Err: msg.Err})
		}
		p := msg.Product
		m.state.Product = &p
		return m, nil

	case commands.FavoritesLoadedMsg:
		m.state.SetFavorites(msg.Products)
		if m.state.Route.View == routes.ViewFavorites {
			m.ensureSelectedVisible()
		}
		return m, nil

	case commands.FavoriteToggledMsg:
		if msg.Err != nil {
			log.Printf("ui: toggle favorite %s failed: %v", msg.Product.ID, msg.Err)
			return m, m.setStatus(fmt.Sprintf("Failed to save favorite: %v", msg.Err), true)
		}
		text := fmt.Sprintf("Removed %s from favorites", msg.Product.Title)
		if msg.Added {
			text = fmt.Sprintf("Added %s to favorites", msg.Product.Title)
		}
		return m, tea.Batch(m.setStatus(text, false), m.reloadFavorites())

	case commands.FavoriteRemovedMsg:
		if msg.Err != nil {
			log.Printf("ui: remove favorite %s failed: %v", msg.ID, msg.Err)
			return m, m.setStatus(fmt.Sprintf("Failed to remove favorite: %v", msg.Err), true)
		}
		return m, tea.Batch(m.setStatus("Removed from favorites", false), m.reloadFavorites())

	case commands.ThemeToggledMsg:
		if msg.Err != nil {
			log.Printf("ui: theme toggle failed: %v", msg.Err)
			return m, m.setStatus(msg.Err.Error(), true)
		}
		m.state.Theme = msg.Theme
		m.renderer.SetTheme(msg.Theme)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to the popup
			log.Printf("Help pager failed: %v, falling back to popup", msg.err)
			m.state.ShowHelp = true
			m.state.HelpScrollOffset = 0
		}
		return m, nil

	case descriptionPagerMsg:
		if msg.err != nil {
			log.Printf("Description pager failed for %s: %v", msg.productID, msg.err)
			return m, m.setStatus("Failed to open pager", true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case handlers.ClearStatusMsg:
		m.state.StatusMessage = ""
		m.state.StatusIsError = false
		return m, nil
	}

	return m, nil
}

// reloadFavorites re-reads favorites unless the bus will announce the change
func (m *Model) reloadFavorites() tea.Cmd {
	if m.bus != nil {
		return nil
	}
	return m.cmdExecutor.ExecuteLoadFavorites()
}
