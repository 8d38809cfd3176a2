package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	rows  [][2]string
}

var helpSections = []helpSection{
	{"Navigation", [][2]string{
		{"↑/↓, j/k", "Move up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"gg/G", "Go to top/bottom"},
		{"Enter", "Open selection"},
		{"Esc, b", "Go back"},
		{"1-4", "Home, results, favorites, about"},
	}},
	{"Search", [][2]string{
		{"/", "Search products (live suggestions)"},
		{"↑/↓, Tab", "Move through suggestions"},
		{"Enter", "Open suggestion or view all results"},
	}},
	{"Refine results", [][2]string{
		{"s", "Choose sort order"},
		{"S", "Toggle stores"},
		{"p", "Price range, e.g. 20-100"},
		{"r", "Minimum rating, e.g. 4.5"},
		{"c", "Clear all refinements"},
		{"R", "Retry a failed load"},
	}},
	{"Products & favorites", [][2]string{
		{"f", "Toggle favorite"},
		{"v", "Read full description"},
		{"x", "Remove favorite"},
		{"Tab/Shift+Tab", "Cycle favorites store filter"},
	}},
	{"Other", [][2]string{
		{"t", "Toggle dark/light theme"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

// HelpContent renders the full help text; the pager shows it as is
func (r *Renderer) HelpContent() string {
	titleStyle := r.styles.Title.MarginBottom(1)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(r.styles.Palette.Star))
	descStyle := r.styles.Text

	var help strings.Builder
	help.WriteString(titleStyle.Render("QuickFind Help"))
	help.WriteString("\n")
	for _, section := range helpSections {
		help.WriteString(r.styles.Section.Render(section.title))
		help.WriteString("\n")
		for _, row := range section.rows {
			k := keyStyle.Render(fmt.Sprintf("%-14s", row[0]))
			help.WriteString(fmt.Sprintf("  %s %s\n", k, descStyle.Render(row[1])))
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// renderHelpContent returns the scrolled window of help shown in the popup
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(r.HelpContent(), "\n")

	visibleHeight := height - 6 // popup border and padding
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if len(lines) <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	maxOffset := len(lines) - visibleHeight
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	window := lines[scrollOffset : scrollOffset+visibleHeight]
	footer := r.styles.Scroll.Render(fmt.Sprintf("↑/↓ to scroll (%d/%d)", scrollOffset+visibleHeight, len(lines)))
	return strings.Join(window, "\n") + "\n" + footer
}
