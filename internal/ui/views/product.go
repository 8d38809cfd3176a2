package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quickfind/internal/domain"
	"quickfind/internal/refine"
)

// ProductRenderer handles rendering of product rows
type ProductRenderer struct {
	styles *Styles
}

// NewProductRenderer creates a new product renderer
func NewProductRenderer(styles *Styles) *ProductRenderer {
	return &ProductRenderer{styles: styles}
}

// RenderRow renders one product as a list row
func (r *ProductRenderer) RenderRow(p domain.Product, isSelected, isFavorite bool, query string, width int) string {
	bg := lipgloss.NewStyle()
	if isSelected {
		bg = r.styles.SelectionBg
	}

	heart := "  "
	if isFavorite {
		heart = r.styles.Favorite.Inherit(bg).Render("♥ ")
	} else {
		heart = bg.Render(heart)
	}

	cursor := "  "
	if isSelected {
		cursor = "> "
	}

	title := r.highlightMatch(p.Title, query, r.styles.Highlight.Inherit(bg), r.styles.Text.Inherit(bg))

	var meta []string
	if p.HasPrice() {
		meta = append(meta, r.styles.Price.Inherit(bg).Render(p.Price))
	}
	if p.HasRating() {
		meta = append(meta, r.renderRating(p, bg))
	}
	if p.StoreName != "" {
		meta = append(meta, r.styles.Store.Inherit(bg).Render(p.StoreName))
	}

	line := bg.Render(cursor) + heart + title
	if len(meta) > 0 {
		line += bg.Render("  ") + strings.Join(meta, bg.Render("  "))
	}

	if isSelected && width > 0 {
		if pad := width - lipgloss.Width(line); pad > 0 {
			line += bg.Render(strings.Repeat(" ", pad))
		}
	}
	return line
}

// RenderCompact renders a dropdown row: title, price and store
func (r *ProductRenderer) RenderCompact(p domain.Product, isSelected bool, query string) string {
	bg := lipgloss.NewStyle()
	prefix := "  "
	if isSelected {
		bg = r.styles.SelectionBg
		prefix = "> "
	}
	parts := []string{bg.Render(prefix) + r.highlightMatch(p.Title, query, r.styles.Highlight.Inherit(bg), r.styles.Text.Inherit(bg))}
	if p.HasPrice() {
		parts = append(parts, r.styles.Price.Inherit(bg).Render(p.Price))
	}
	if p.StoreName != "" {
		parts = append(parts, r.styles.Store.Inherit(bg).Render(p.StoreName))
	}
	return strings.Join(parts, bg.Render("  "))
}

func (r *ProductRenderer) renderRating(p domain.Product, bg lipgloss.Style) string {
	v := refine.ParseNumber(p.Rating)
	text := fmt.Sprintf("★ %s", p.Rating)
	if p.ReviewCount != "" {
		text += fmt.Sprintf(" (%s)", p.ReviewCount)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(RatingColor(r.styles.Palette, v))).
		Inherit(bg).
		Render(text)
}

// highlightMatch highlights matching text within a string
func (r *ProductRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	if query == "" {
		return normalStyle.Render(text)
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	// lowering can change byte lengths for some scripts
	if index == -1 || len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}
