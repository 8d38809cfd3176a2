package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/catalog"
	"quickfind/internal/eventbus"
	"quickfind/internal/ui/state"
)

// StatusTimeout is how long transient status messages stay visible
const StatusTimeout = 3 * time.Second

// ClearStatusMsg clears the transient status line
type ClearStatusMsg struct{}

// ClearStatusAfter schedules a ClearStatusMsg
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state          *state.AppState
	reloadFavorite func() tea.Cmd
	applyTheme     func(theme string)
}

// NewEventHandler creates a new event handler. reloadFavorites refreshes the
// cached favorites list and applyTheme restyles the renderer.
func NewEventHandler(appState *state.AppState, reloadFavorites func() tea.Cmd, applyTheme func(string)) *EventHandler {
	return &EventHandler{
		state:          appState,
		reloadFavorite: reloadFavorites,
		applyTheme:     applyTheme,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.FavoritesChangedEvent:
		// Another writer may have changed the blob; re-read it
		if h.reloadFavorite != nil {
			return h.reloadFavorite()
		}

	case eventbus.ThemeChangedEvent:
		if e.Theme != h.state.Theme {
			h.state.Theme = e.Theme
			if h.applyTheme != nil {
				h.applyTheme(e.Theme)
			}
		}

	case eventbus.LookupFailedEvent:
		h.state.StatusMessage = LookupFailureMessage(e.Kind, e.Err)
		h.state.StatusIsError = true
		return ClearStatusAfter(StatusTimeout)

	case eventbus.ConfigSavedEvent:
		log.Printf("config saved to %s", e.Path)

	case eventbus.ConfigLoadedEvent:
		log.Printf("config loaded from %s", e.Path)
	}

	return nil
}

// LookupFailureMessage renders a catalog failure for the status line
func LookupFailureMessage(kind string, err error) string {
	var statusErr *catalog.StatusError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return "Product not found"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("%s failed: catalog returned %d", kind, statusErr.Code)
	case err == nil:
		return kind + " failed"
	}
	return fmt.Sprintf("%s failed: %v", kind, err)
}
