package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colors a theme is built from
type Palette struct {
	Accent  string
	Muted   string
	Text    string
	Warn    string
	Error   string
	Success string
	Select  string
	Star    string
}

var palettes = map[string]Palette{
	"dark": {
		Accent:  "99",
		Muted:   "241",
		Text:    "252",
		Warn:    "214",
		Error:   "203",
		Success: "78",
		Select:  "238",
		Star:    "220",
	},
	"light": {
		Accent:  "55",
		Muted:   "244",
		Text:    "235",
		Warn:    "130",
		Error:   "160",
		Success: "28",
		Select:  "254",
		Star:    "136",
	},
}

// Styles contains all the style definitions for the UI
type Styles struct {
	Theme         string
	Palette       Palette
	Title         lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	Dim           lipgloss.Style
	Text          lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	Price         lipgloss.Style
	Rating        lipgloss.Style
	Store         lipgloss.Style
	Favorite      lipgloss.Style
	Section       lipgloss.Style
	Dropdown      lipgloss.Style
	InfoBox       lipgloss.Style
	Placeholder   lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates the styles for a theme; unknown themes fall back to dark
func NewStyles(theme string) *Styles {
	p, ok := palettes[theme]
	if !ok {
		theme = "dark"
		p = palettes[theme]
	}

	return &Styles{
		Theme:   theme,
		Palette: p,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true).Underline(true).Padding(0, 1),
		Dim:       lipgloss.NewStyle().Faint(true),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color(p.Select)),
		Price:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)).Bold(true),
		Rating:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Star)),
		Store:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Favorite:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)).
			MarginTop(1),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Muted)).
			Padding(0, 1),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color(p.Muted)),
		Placeholder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.Muted)).
			Foreground(lipgloss.Color(p.Muted)),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),   // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)),    // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),   // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)), // green
	}
}

// RatingColor picks a color for a parsed rating
func RatingColor(p Palette, rating float64) string {
	switch {
	case rating >= 4.5:
		return p.Success
	case rating >= 3.5:
		return p.Star
	case rating > 0:
		return p.Warn
	default:
		return p.Muted
	}
}
