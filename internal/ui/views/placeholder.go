package views

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	placeholderMin = 1
	placeholderMax = 2000
)

// ClampDimension limits a placeholder dimension to 1..2000
func ClampDimension(v int) int {
	if v < placeholderMin {
		return placeholderMin
	}
	if v > placeholderMax {
		return placeholderMax
	}
	return v
}

// ParseDimensions reads a "WxH" or "W×H" size string. Unparsable sides
// fall back to def before clamping.
func ParseDimensions(s string, def int) (int, int) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "×", "x")
	ws, hs, _ := strings.Cut(s, "x")
	return parseDimension(ws, def), parseDimension(hs, def)
}

func parseDimension(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		v = def
	}
	return ClampDimension(v)
}

// PlaceholderLabel is the caption drawn inside a placeholder box
func PlaceholderLabel(w, h int) string {
	return fmt.Sprintf("%d×%d", ClampDimension(w), ClampDimension(h))
}

// RenderPlaceholder draws a bordered box standing in for a product image.
// The box is scaled to fit within maxCols terminal columns, keeping the
// label legible.
func (s *Styles) RenderPlaceholder(w, h, maxCols int) string {
	w, h = ClampDimension(w), ClampDimension(h)
	label := PlaceholderLabel(w, h)

	cols := maxCols
	if cols < len([]rune(label))+2 {
		cols = len([]rune(label)) + 2
	}
	// terminal cells are roughly twice as tall as wide
	rows := cols * h / w / 2
	if rows < 1 {
		rows = 1
	}
	if rows > 12 {
		rows = 12
	}

	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat(" ", cols)
	}
	pad := (cols - len([]rune(label))) / 2
	lines[rows/2] = strings.Repeat(" ", pad) + label + strings.Repeat(" ", cols-pad-len([]rune(label)))

	return s.Placeholder.Render(strings.Join(lines, "\n"))
}

// DefaultPlaceholderSize is drawn when a product has no image at all
const DefaultPlaceholderSize = 300

// PlaceholderSize decides whether an image reference should be drawn as a
// placeholder. Empty references and "/api/placeholder/W/H" paths qualify.
func PlaceholderSize(image string) (int, int, bool) {
	image = strings.TrimSpace(image)
	if image == "" {
		return DefaultPlaceholderSize, DefaultPlaceholderSize, true
	}
	_, rest, found := strings.Cut(image, "/api/placeholder/")
	if !found {
		return 0, 0, false
	}
	rest, _, _ = strings.Cut(rest, "?")
	w, h := ParseDimensions(strings.Replace(rest, "/", "x", 1), DefaultPlaceholderSize)
	return w, h, true
}
