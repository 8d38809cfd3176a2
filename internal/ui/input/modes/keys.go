package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings. The footer help renders from it.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	Search      key.Binding
	Favorite    key.Binding
	Remove      key.Binding
	Sort        key.Binding
	Stores      key.Binding
	Price       key.Binding
	Rating      key.Binding
	Clear       key.Binding
	Description key.Binding
	Retry       key.Binding
	FilterNext  key.Binding
	FilterPrev  key.Binding
	Home        key.Binding
	Results     key.Binding
	Favorites   key.Binding
	About       key.Binding
	Theme       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the stock bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:        key.NewBinding(key.WithKeys("esc", "b", "backspace"), key.WithHelp("esc/b", "back")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Favorite:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Remove:      key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "remove")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Stores:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "stores")),
		Price:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "price")),
		Rating:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rating")),
		Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Description: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "description")),
		Retry:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "retry")),
		FilterNext:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next store")),
		FilterPrev:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev store")),
		Home:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Results:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "results")),
		Favorites:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "favorites")),
		About:       key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "about")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Keys is shared by the normal mode and the footer
var Keys = DefaultKeyMap()
