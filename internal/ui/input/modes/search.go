package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/ui/input/types"
)

// SearchMode edits the query and drives the suggestion dropdown
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p":
		return []types.Action{types.NavigateSuggestionAction{Delta: -1}}, true
	case "down", "ctrl+n", "tab":
		return []types.Action{types.NavigateSuggestionAction{Delta: 1}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
