package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickfind/internal/domain"
	"quickfind/internal/refine"
	"quickfind/internal/routes"
	"quickfind/internal/ui/input/types"
	"quickfind/internal/ui/state"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newContext(view routes.View) *ModelContext {
	st := state.NewAppState()
	st.Route = routes.Route{View: view}
	st.SetResults("shoes", []domain.Product{
		{ID: "1", Title: "Air Max", StoreName: "Nike"},
		{ID: "2", Title: "Headphones", StoreName: "Sony"},
	})
	return &ModelContext{State: st}
}

func findAction[T types.Action](actions []types.Action) (T, bool) {
	for _, a := range actions {
		if v, ok := a.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestSlashEntersSearchMode(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewHome)

	actions, _ := h.HandleKey(runes("/"), ctx)

	_, ok := findAction[types.ChangeModeAction](actions)
	assert.True(t, ok)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "Search: ", h.Prompt())
}

func TestTypingEmitsUpdateText(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewHome)
	h.HandleKey(runes("/"), ctx)

	h.HandleKey(runes("l"), ctx)
	actions, _ := h.HandleKey(runes("a"), ctx)

	upd, ok := findAction[types.UpdateTextAction](actions)
	require.True(t, ok)
	assert.Equal(t, "la", upd.Text)
}

func TestEnterSubmitsAndReturnsToNormal(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewHome)
	h.HandleKey(runes("/"), ctx)
	for _, r := range "tv" {
		h.HandleKey(runes(string(r)), ctx)
	}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)

	submit, ok := findAction[types.SubmitTextAction](actions)
	require.True(t, ok)
	assert.Equal(t, "tv", submit.Text)
	assert.Equal(t, types.ModeSearch, submit.Mode)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestSearchArrowsNavigateSuggestions(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewHome)
	h.HandleKey(runes("/"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)

	nav, ok := findAction[types.NavigateSuggestionAction](actions)
	require.True(t, ok)
	assert.Equal(t, 1, nav.Delta)
}

func TestResultsOnlyKeys(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("p"), newContext(routes.ViewHome))
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("p"), newContext(routes.ViewSearch))
	change, ok := findAction[types.ChangeModeAction](actions)
	require.True(t, ok)
	assert.Equal(t, types.ModePrice, change.Mode)
}

func TestSortSelectCyclesAndRestoresOnEsc(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewSearch)

	h.HandleKey(runes("s"), ctx)
	require.Equal(t, types.ModeSort, h.CurrentMode())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	sortBy, ok := findAction[types.SortByAction](actions)
	require.True(t, ok)
	assert.Equal(t, refine.SortPriceAsc, sortBy.Key)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	sortBy, ok = findAction[types.SortByAction](actions)
	require.True(t, ok)
	assert.Equal(t, refine.SortRelevance, sortBy.Key)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestStoreSelectToggles(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewSearch)

	h.HandleKey(runes("S"), ctx)
	require.Equal(t, types.ModeStoreSelect, h.CurrentMode())

	h.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, ctx)
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, ctx)

	toggle, ok := findAction[types.ToggleStoreAction](actions)
	require.True(t, ok)
	assert.Equal(t, "Sony", toggle.Store)
}

func TestFavoritesViewKeys(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewFavorites)
	ctx.State.SetFavorites([]domain.Product{{ID: "1", StoreName: "Nike"}})

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	cycle, ok := findAction[types.CycleFavoritesFilterAction](actions)
	require.True(t, ok)
	assert.Equal(t, 1, cycle.Delta)

	actions, _ = h.HandleKey(runes("x"), ctx)
	_, ok = findAction[types.RemoveFavoriteAction](actions)
	assert.True(t, ok)
}

func TestQuitKeys(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewHome)

	actions, _ := h.HandleKey(runes("q"), ctx)
	quit, ok := findAction[types.QuitAction](actions)
	require.True(t, ok)
	assert.False(t, quit.Force)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx)
	quit, ok = findAction[types.QuitAction](actions)
	require.True(t, ok)
	assert.True(t, quit.Force)
}

func TestSearchFromResultsPrefillsQuery(t *testing.T) {
	h := New()
	ctx := newContext(routes.ViewSearch)

	actions, _ := h.HandleKey(runes("/"), ctx)

	change, ok := findAction[types.ChangeModeAction](actions)
	require.True(t, ok)
	assert.Equal(t, "shoes", change.Data)
	assert.Equal(t, "shoes", h.TextInput().Value())
}
