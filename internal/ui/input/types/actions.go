package types

import "quickfind/internal/refine"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end", "left", "right"
}

func (a NavigateAction) Type() string { return "navigate" }

// GoToViewAction switches to a top level view
type GoToViewAction struct {
	View string // "home", "search", "favorites", "about"
}

func (a GoToViewAction) Type() string { return "go_to_view" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

// OpenAction opens the item under the cursor
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Optional initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// NavigateSuggestionAction moves the highlight in the suggestion dropdown
type NavigateSuggestionAction struct {
	Delta int
}

func (a NavigateSuggestionAction) Type() string { return "navigate_suggestion" }

// Product actions
type ToggleFavoriteAction struct{}

func (a ToggleFavoriteAction) Type() string { return "toggle_favorite" }

type RemoveFavoriteAction struct{}

func (a RemoveFavoriteAction) Type() string { return "remove_favorite" }

type ViewDescriptionAction struct{}

func (a ViewDescriptionAction) Type() string { return "view_description" }

type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

// Refinement actions
type SortByAction struct {
	Key refine.SortKey
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }

type ToggleStoreAction struct {
	Store string
}

func (a ToggleStoreAction) Type() string { return "toggle_store" }

type UpdateStoreIndexAction struct {
	Index int
}

func (a UpdateStoreIndexAction) Type() string { return "update_store_index" }

type ClearRefinementsAction struct{}

func (a ClearRefinementsAction) Type() string { return "clear_refinements" }

// CycleFavoritesFilterAction steps through the favorites store filter
type CycleFavoritesFilterAction struct {
	Delta int
}

func (a CycleFavoritesFilterAction) Type() string { return "cycle_favorites_filter" }

// Other actions
type ToggleThemeAction struct{}

func (a ToggleThemeAction) Type() string { return "toggle_theme" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
