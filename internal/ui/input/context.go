package input

import (
	"quickfind/internal/refine"
	"quickfind/internal/routes"
	"quickfind/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// CurrentView returns the routed view
func (c *ModelContext) CurrentView() routes.View {
	return c.State.Route.View
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of selectable rows on the current view
func (c *ModelContext) TotalItems() int {
	return c.State.ListLength()
}

// CurrentQuery returns the query of the loaded results page
func (c *ModelContext) CurrentQuery() string {
	return c.State.ResultsQuery
}

// CurrentSort returns the active sort key
func (c *ModelContext) CurrentSort() refine.SortKey {
	if c.State.Refinement.Sort == "" {
		return refine.SortRelevance
	}
	return c.State.Refinement.Sort
}

// AvailableStores returns the stores a filter can be toggled for
func (c *ModelContext) AvailableStores() []string {
	return c.State.ResultStores()
}

// ShowingPopup reports whether a modal covers the view
func (c *ModelContext) ShowingPopup() bool {
	return c.State.ShowHelp
}
