package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/routes"
	"quickfind/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	// gg jumps to the top; any other key cancels the prefix
	if msg.String() == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}
	m.lastKeyWasG = false

	view := ctx.CurrentView()

	// Favorites filter cycling shadows left/right before generic navigation
	if view == routes.ViewFavorites {
		switch {
		case key.Matches(msg, Keys.FilterNext):
			return []types.Action{types.CycleFavoritesFilterAction{Delta: 1}}, true
		case key.Matches(msg, Keys.FilterPrev):
			return []types.Action{types.CycleFavoritesFilterAction{Delta: -1}}, true
		case key.Matches(msg, Keys.Remove):
			if ctx.TotalItems() > 0 {
				return []types.Action{types.RemoveFavoriteAction{}}, true
			}
			return nil, true
		}
	}

	switch {
	case key.Matches(msg, Keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, Keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case msg.String() == "pgup":
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case msg.String() == "pgdown":
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case msg.String() == "home":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case msg.String() == "end", msg.String() == "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, Keys.Open):
		return []types.Action{types.OpenAction{}}, true
	case key.Matches(msg, Keys.Back):
		return []types.Action{types.BackAction{}}, true
	case key.Matches(msg, Keys.Search):
		// Refining a results page starts from its query
		data := ""
		if view == routes.ViewSearch {
			data = ctx.CurrentQuery()
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: data}}, true

	case key.Matches(msg, Keys.Home):
		return []types.Action{types.GoToViewAction{View: "home"}}, true
	case key.Matches(msg, Keys.Results):
		return []types.Action{types.GoToViewAction{View: "search"}}, true
	case key.Matches(msg, Keys.Favorites):
		return []types.Action{types.GoToViewAction{View: "favorites"}}, true
	case key.Matches(msg, Keys.About):
		return []types.Action{types.GoToViewAction{View: "about"}}, true

	case key.Matches(msg, Keys.Theme):
		return []types.Action{types.ToggleThemeAction{}}, true
	case key.Matches(msg, Keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, Keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	switch view {
	case routes.ViewSearch:
		return m.handleResultsKey(msg, ctx)
	case routes.ViewProduct:
		return m.handleProductKey(msg)
	}

	return nil, false
}

func (m *NormalMode) handleResultsKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, Keys.Favorite):
		if ctx.TotalItems() > 0 {
			return []types.Action{types.ToggleFavoriteAction{}}, true
		}
		return nil, true
	case key.Matches(msg, Keys.Sort):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true
	case key.Matches(msg, Keys.Stores):
		if len(ctx.AvailableStores()) > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeStoreSelect}}, true
		}
		return nil, true
	case key.Matches(msg, Keys.Price):
		return []types.Action{types.ChangeModeAction{Mode: types.ModePrice}}, true
	case key.Matches(msg, Keys.Rating):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeRating}}, true
	case key.Matches(msg, Keys.Clear):
		return []types.Action{types.ClearRefinementsAction{}}, true
	case key.Matches(msg, Keys.Retry):
		return []types.Action{types.RetryAction{}}, true
	}
	return nil, false
}

func (m *NormalMode) handleProductKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, Keys.Favorite):
		return []types.Action{types.ToggleFavoriteAction{}}, true
	case key.Matches(msg, Keys.Description):
		return []types.Action{types.ViewDescriptionAction{}}, true
	case key.Matches(msg, Keys.Retry):
		return []types.Action{types.RetryAction{}}, true
	}
	return nil, false
}
