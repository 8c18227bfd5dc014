package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"

	"spotlight/internal/domain"
)

// markupGlyph stands in for vector icons a terminal cannot draw
const markupGlyph = "◆"

// GlyphSanitizer renders every vector icon as a single glyph
type GlyphSanitizer struct{}

func (GlyphSanitizer) Sanitize(string) (string, error) {
	return markupGlyph, nil
}

// RowRenderer handles rendering of result rows and group headers
type RowRenderer struct {
	styles    *Styles
	sanitizer domain.IconSanitizer
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles, sanitizer domain.IconSanitizer) *RowRenderer {
	if sanitizer == nil {
		sanitizer = GlyphSanitizer{}
	}
	return &RowRenderer{styles: styles, sanitizer: sanitizer}
}

// RenderHeader renders a group header
func (r *RowRenderer) RenderHeader(label string, count int) string {
	return r.styles.GroupHeader.Render(fmt.Sprintf("%s (%d)", label, count))
}

// RenderItem renders one result row padded to width
func (r *RowRenderer) RenderItem(item domain.Item, active bool, query string, width int) string {
	marker := "  "
	if active {
		marker = "› "
	}

	icon := r.icon(item.Icon)
	label := item.Label
	if item.Disabled {
		label = r.styles.Disabled.Render(label)
	} else {
		label = r.highlight(item.Label, query)
	}

	left := marker + icon + " " + label
	right := ""
	if item.Shortcut != "" {
		right = r.styles.Shortcut.Render(item.Shortcut)
	}

	// Description fills whatever is left between label and shortcut
	room := width - lipgloss.Width(left) - lipgloss.Width(right) - 3
	if item.Description != "" && room > 3 {
		desc := truncate.StringWithTail(item.Description, uint(room), "…")
		left += "  " + r.styles.Description.Render(desc)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right

	if active {
		return r.styles.Active.Render(line)
	}
	return r.styles.Row.Render(line)
}

// icon renders the item's icon cell
func (r *RowRenderer) icon(raw string) string {
	switch domain.ClassifyIcon(raw) {
	case domain.IconText:
		return r.styles.Icon.Render(truncate.String(strings.TrimSpace(raw), 2))
	case domain.IconMarkup:
		safe, err := r.sanitizer.Sanitize(raw)
		if err != nil || safe == "" {
			return " "
		}
		return r.styles.Icon.Render(safe)
	}
	return " "
}

// highlight marks the label runes matched by the query
func (r *RowRenderer) highlight(label, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return label
	}

	matches := fuzzy.Find(query, []string{label})
	if len(matches) == 0 {
		return label
	}

	hit := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, i := range matches[0].MatchedIndexes {
		hit[i] = true
	}

	var b strings.Builder
	for i, ch := range label {
		if hit[i] {
			b.WriteString(r.styles.Highlight.Render(string(ch)))
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
