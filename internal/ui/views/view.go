package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spotlight/internal/domain"
	"spotlight/internal/spotlight"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Palette        spotlight.View
	Input          string // rendered query box
	ViewportHeight int
	Hotkey         string
	Recent         []domain.Item
	StatusMessage  string
	StatusIsError  bool
	HelpText       string
}

// Layout records where the palette landed on screen, for pointer input
type Layout struct {
	Top    int
	Left   int
	Width  int
	Height int
	rows   map[int]int // screen row -> flat result index
}

// Contains reports whether the cell lies inside the palette box
func (l Layout) Contains(x, y int) bool {
	return l.Width > 0 && x >= l.Left && x < l.Left+l.Width && y >= l.Top && y < l.Top+l.Height
}

// IndexAt returns the result under the cell
func (l Layout) IndexAt(x, y int) (int, bool) {
	if !l.Contains(x, y) {
		return 0, false
	}
	i, ok := l.rows[y]
	return i, ok
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	rowRender   *RowRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer. A nil sanitizer draws a placeholder
// glyph for vector icons.
func NewRenderer(sanitizer domain.IconSanitizer) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		rowRender:   NewRowRenderer(styles, sanitizer),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view and the palette layout
func (r *Renderer) Render(state ViewState) (string, Layout) {
	if state.Width <= 0 {
		state.Width = 80
	}
	if state.Height <= 0 {
		state.Height = 24
	}

	base := r.renderLauncher(state)
	if !state.Palette.IsOpen {
		return base, Layout{}
	}

	boxW := min(max(48, state.Width*3/5), state.Width-2)
	inner := boxW - r.styles.Box.GetHorizontalFrameSize()

	lines := []string{r.renderInputLine(state, inner)}
	lines = append(lines, r.styles.Dim.Render(strings.Repeat("─", max(0, inner))))
	bodyStart := len(lines)
	body, index := r.renderResults(state, inner)
	lines = append(lines, body...)

	box := r.styles.Box.Width(inner + r.styles.Box.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x, y := r.popupRender.Placement(w, h, state.Width, state.Height)

	layout := Layout{Top: y, Left: x, Width: w, Height: h, rows: make(map[int]int)}
	top := y + r.styles.Box.GetBorderTopSize() + r.styles.Box.GetPaddingTop() + bodyStart
	for i, flat := range index {
		if flat >= 0 {
			layout.rows[top+i] = flat
		}
	}

	return r.popupRender.RenderPopupOverlay(base, box, x, y), layout
}

// renderInputLine renders the query box with a right-aligned loading marker
func (r *Renderer) renderInputLine(state ViewState, width int) string {
	line := r.styles.Input.Render(state.Input)
	if !state.Palette.IsLoading {
		return line
	}
	marker := r.styles.Loading.Render("searching…")
	gap := width - lipgloss.Width(line) - lipgloss.Width(marker)
	if gap < 1 {
		return line
	}
	return line + strings.Repeat(" ", gap) + marker
}

// renderResults renders the visible window of results. The second return
// value maps each line to its flat result index, or -1.
func (r *Renderer) renderResults(state ViewState, width int) ([]string, []int) {
	p := state.Palette
	if len(p.Results) == 0 {
		msg := p.EmptyMessage
		if p.IsLoading {
			msg = "Searching…"
		}
		return []string{r.styles.Empty.Render(msg)}, []int{-1}
	}

	offset := p.ViewportOffset
	end := len(p.Results)
	if state.ViewportHeight > 0 {
		end = min(end, offset+state.ViewportHeight)
	}

	var lines []string
	var index []int
	add := func(line string, flat int) {
		lines = append(lines, line)
		index = append(index, flat)
	}

	if offset > 0 {
		add(r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", offset)), -1)
	}

	for _, bucket := range p.Groups {
		var visible []int
		for i, e := range bucket.Entries {
			if e.FlatIndex >= offset && e.FlatIndex < end {
				visible = append(visible, i)
			}
		}
		if len(visible) == 0 {
			continue
		}
		if bucket.Label != "" {
			add(r.rowRender.RenderHeader(bucket.Label, len(bucket.Entries)), -1)
		}
		for _, i := range visible {
			e := bucket.Entries[i]
			active := e.FlatIndex == p.SelectedIndex
			add(r.rowRender.RenderItem(e.Item, active, p.Query, width), e.FlatIndex)
		}
	}

	if below := len(p.Results) - end; below > 0 {
		add(r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", below)), -1)
	}
	return lines, index
}

// renderLauncher renders the screen shown behind the palette
func (r *Renderer) renderLauncher(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render("spotlight"))
	content.WriteString("\n")
	if state.Hotkey != "" {
		content.WriteString(r.styles.Dim.Render(fmt.Sprintf("Press %s to open the palette", state.Hotkey)))
		content.WriteString("\n")
	}

	if len(state.Recent) > 0 {
		content.WriteString("\n")
		content.WriteString(r.styles.GroupHeader.Render("Recent"))
		content.WriteString("\n")
		for _, item := range state.Recent {
			content.WriteString(r.rowRender.RenderItem(item, false, "", state.Width))
			content.WriteString("\n")
		}
	}

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		content.WriteString("\n")
		content.WriteString(style.Render(state.StatusMessage))
	}

	// Push the help line to the bottom
	if state.HelpText != "" {
		current := strings.Count(content.String(), "\n") + 1
		if pad := state.Height - current - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpText))
	}

	return lipgloss.NewStyle().MaxHeight(state.Height).Render(content.String())
}
