package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// Placement returns the top-left corner for a popup of the given size.
// The popup sits horizontally centred, a fifth of the way down.
func (pr *PopupRenderer) Placement(popupW, popupH, width, height int) (x, y int) {
	x = (width - popupW) / 2
	y = height / 5
	if y+popupH > height {
		y = height - popupH
	}
	return max(0, x), max(0, y)
}

// RenderPopupOverlay draws popup over a greyed-out copy of base at (x, y)
func (pr *PopupRenderer) RenderPopupOverlay(base, popup string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")
	popupW := lipgloss.Width(popup)

	for len(baseLines) < y+len(popupLines) {
		baseLines = append(baseLines, "")
	}

	out := make([]string, len(baseLines))
	for i, line := range baseLines {
		plain := ansiRE.ReplaceAllString(line, "")
		row := i - y
		if row < 0 || row >= len(popupLines) {
			out[i] = pr.grey(plain)
			continue
		}

		// Splice the popup line between the two visible halves of the base
		left := truncate.String(plain, uint(x))
		if w := lipgloss.Width(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		p := popupLines[row]
		if w := lipgloss.Width(p); w < popupW {
			p += strings.Repeat(" ", popupW-w)
		}
		out[i] = pr.grey(left) + p + pr.grey(skipWidth(plain, x+popupW))
	}
	return strings.Join(out, "\n")
}

func (pr *PopupRenderer) grey(s string) string {
	if s == "" {
		return ""
	}
	return pr.styles.Backdrop.Render(s)
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// skipWidth drops the first n cells of plain text
func skipWidth(plain string, n int) string {
	w := 0
	for i, ch := range plain {
		if w >= n {
			return plain[i:]
		}
		w += lipgloss.Width(string(ch))
	}
	return ""
}
