package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/ui/input/types"
)

// StoreSelectMode toggles store filters from the stores in the current result set
type StoreSelectMode struct {
	index int
}

func NewStoreSelectMode() *StoreSelectMode {
	return &StoreSelectMode{}
}

func (m *StoreSelectMode) Name() string {
	return "stores"
}

func (m *StoreSelectMode) Enter(ctx types.Context) []types.Action {
	m.index = 0
	return []types.Action{types.UpdateStoreIndexAction{Index: 0}}
}

func (m *StoreSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *StoreSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	stores := ctx.AvailableStores()

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "enter", "q", "S":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	if len(stores) == 0 {
		return nil, true
	}

	switch msg.String() {
	case "up", "k":
		m.index = (m.index - 1 + len(stores)) % len(stores)
		return []types.Action{types.UpdateStoreIndexAction{Index: m.index}}, true
	case "down", "j":
		m.index = (m.index + 1) % len(stores)
		return []types.Action{types.UpdateStoreIndexAction{Index: m.index}}, true
	case " ", "x":
		if m.index >= len(stores) {
			m.index = len(stores) - 1
		}
		return []types.Action{types.ToggleStoreAction{Store: stores[m.index]}}, true
	}

	return nil, true
}

// GetCurrentIndex returns the highlighted store row
func (m *StoreSelectMode) GetCurrentIndex() int {
	return m.index
}
