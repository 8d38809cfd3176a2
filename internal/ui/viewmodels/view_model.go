package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"quickfind/internal/config"
	"quickfind/internal/ui/input/types"
	"quickfind/internal/ui/state"
	"quickfind/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	config           *config.Config
	width            int
	height           int
	help             help.Model
	version          string
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config, textInput textinput.Model) *ViewModel {
	return &ViewModel{
		state:            appState,
		config:           cfg,
		help:             help.New(),
		inputTransformer: NewInputTransformer(textInput),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width - 4
}

// SetVersion sets the build version shown on the about page
func (vm *ViewModel) SetVersion(v string) {
	vm.version = v
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode types.Mode, prompt string) {
	vm.inputTransformer.SetMode(mode, prompt)
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.inputTransformer.textInput = textInput
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	s := vm.state
	vs := views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Route:            s.Route,
		StatusMessage:    s.StatusMessage,
		StatusIsError:    s.StatusIsError,
		ShowHelp:         s.ShowHelp,
		HelpScrollOffset: s.HelpScrollOffset,
		HelpModel:        vm.help,
		InputMode:        vm.inputTransformer.GetInputModeString(),
		TextInput:        vm.inputTransformer.GetInputText(),
		FavoritesCount:   len(s.Favorites),

		SearchInput:     s.SearchInput,
		ShowingPopular:  s.ShowingPopular(),
		Suggestions:     s.Suggestions,
		SuggestionIndex: s.SuggestionIndex,
		PopularSearches: s.PopularSearches,

		ResultsQuery:    s.ResultsQuery,
		Results:         s.Visible,
		TotalResults:    len(s.Results),
		Refinement:      s.Refinement,
		ResultsLoading:  s.ResultsLoading,
		ResultsErr:      s.ResultsErr,
		AvailableStores: s.ResultStores(),
		SortOptionIndex: s.SortOptionIndex,
		StoreIndex:      s.StoreIndex,

		Product:        s.Product,
		ProductLoading: s.ProductLoading,
		ProductErr:     s.ProductErr,

		Favorites:       s.VisibleFavorites(),
		FavoritesFilter: s.FavoritesFilter,
		FavoriteStores:  s.FavoriteStores(),
		FavoriteIDs:     s.FavoriteIDs,

		SelectedIndex:  s.SelectedIndex,
		ViewportOffset: s.ViewportOffset,
		ViewportHeight: s.ViewportHeight,
	}
	if vm.config != nil {
		vs.APIBaseURL = vm.config.API.BaseURL
	}
	vs.Version = vm.version
	return vs
}
