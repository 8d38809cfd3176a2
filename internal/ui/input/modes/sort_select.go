package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"quickfind/internal/refine"
	"quickfind/internal/ui/input/types"
)

// SortSelectMode cycles through sort options, applying each immediately
type SortSelectMode struct {
	options       []refine.SortOption
	sortIndex     int
	originalIndex int // Remember the original sort when entering
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{options: refine.SortOptions()}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	current := ctx.CurrentSort()
	m.sortIndex = 0
	m.originalIndex = 0
	for i, option := range m.options {
		if option.Key == current {
			m.sortIndex = i
			m.originalIndex = i
			break
		}
	}
	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		// Cancel and restore original sort
		return []types.Action{
			types.SortByAction{Key: m.options[m.originalIndex].Key},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true

	case "up", "k":
		m.sortIndex--
		if m.sortIndex < 0 {
			m.sortIndex = len(m.options) - 1
		}
		return m.apply(), true

	case "down", "j", "s":
		m.sortIndex++
		if m.sortIndex >= len(m.options) {
			m.sortIndex = 0
		}
		return m.apply(), true
	}

	return nil, true
}

func (m *SortSelectMode) apply() []types.Action {
	return []types.Action{
		types.UpdateSortIndexAction{Index: m.sortIndex},
		types.SortByAction{Key: m.options[m.sortIndex].Key},
	}
}

// GetCurrentIndex returns the current sort option index
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}
